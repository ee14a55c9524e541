/*
NAME
  plot.go

DESCRIPTION
  plot.go is an opt-in debug helper, not on the hot decode path, for
  visualising per-symbol MARK/SPACE energy while diagnosing a
  marginal-SNR capture. It renders the two energy traces to a PNG using
  gonum/plot, one of the teacher's own direct dependencies.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package afsk

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SymbolEnergy is one window's MARK and SPACE energy pair, as computed
// internally by Demodulator.tonesEnergy.
type SymbolEnergy struct {
	Mark  float64
	Space float64
}

// Energies returns the per-symbol MARK/SPACE energy pairs for samples,
// using the same windowing and FFT binning as Demodulate, without
// discarding the raw values the way Demodulate's bit decision does.
func (d *Demodulator) Energies(samples []int16) []SymbolEnergy {
	spb := d.cfg.SamplesPerBit()
	if spb <= 0 {
		return nil
	}

	n := len(samples) / spb
	out := make([]SymbolEnergy, n)
	for i := 0; i < n; i++ {
		chunk := samples[i*spb : (i+1)*spb]
		mark, space := d.tonesEnergy(chunk)
		out[i] = SymbolEnergy{Mark: mark, Space: space}
	}
	return out
}

// PlotEnergies renders the MARK and SPACE energy traces of energies to
// a PNG at path, for visual inspection of a decode that produced
// unexpected bits.
func PlotEnergies(energies []SymbolEnergy, path string) error {
	p := plot.New()
	p.Title.Text = "AFSK per-symbol tone energy"
	p.X.Label.Text = "symbol index"
	p.Y.Label.Text = "energy"

	mark := make(plotter.XYs, len(energies))
	space := make(plotter.XYs, len(energies))
	for i, e := range energies {
		mark[i].X, mark[i].Y = float64(i), e.Mark
		space[i].X, space[i].Y = float64(i), e.Space
	}

	markLine, err := plotter.NewLine(mark)
	if err != nil {
		return errors.Wrap(err, "could not create mark energy line")
	}
	spaceLine, err := plotter.NewLine(space)
	if err != nil {
		return errors.Wrap(err, "could not create space energy line")
	}
	markLine.Color = color.RGBA{R: 220, A: 255}
	spaceLine.Color = color.RGBA{B: 220, A: 255}

	p.Add(markLine, spaceLine)
	p.Legend.Add("mark", markLine)
	p.Legend.Add("space", spaceLine)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "could not save plot to %s", path)
	}
	return nil
}
