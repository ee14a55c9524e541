/*
NAME
  modulator.go

DESCRIPTION
  modulator.go implements the AFSK modulator: mapping a byte stream,
  most-significant-bit first, to a concatenated sine-wave PCM sample
  stream at two tones (Bell 202 MARK/SPACE by default).

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package afsk

import "math"

// Modulator synthesises AFSK audio for a given Config. It holds no
// mutable state between calls; each Modulate call is independent.
type Modulator struct {
	cfg Config
}

// NewModulator returns a Modulator using cfg.
func NewModulator(cfg Config) *Modulator {
	return &Modulator{cfg: cfg}
}

// Modulate returns the PCM samples (signed 16-bit, peak-scaled to the
// full int16 range) representing data, MSB-first per byte. Phase resets
// to 0 at the start of every symbol.
func (m *Modulator) Modulate(data []byte) []int16 {
	spb := m.cfg.SamplesPerBit()
	out := make([]int16, 0, len(data)*8*spb)

	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			set := (b>>uint(bit))&1 == 1
			out = append(out, m.symbol(set, spb)...)
		}
	}
	return out
}

// symbol synthesises spb samples of a pure sine tone for one bit: MARK
// if set, SPACE otherwise.
func (m *Modulator) symbol(set bool, spb int) []int16 {
	freq := m.cfg.SpaceFreq
	if set {
		freq = m.cfg.MarkFreq
	}

	samples := make([]int16, spb)
	step := 2 * math.Pi * float64(freq) / float64(m.cfg.SampleRate)
	for n := 0; n < spb; n++ {
		v := math.Sin(step * float64(n))
		samples[n] = scaleToInt16(v)
	}
	return samples
}

// scaleToInt16 maps a float in [-1,1] to the full int16 range, clamping
// any out-of-range value rather than overflowing.
func scaleToInt16(v float64) int16 {
	scaled := math.Round(v * math.MaxInt16)
	if scaled > math.MaxInt16 {
		scaled = math.MaxInt16
	}
	if scaled < math.MinInt16 {
		scaled = math.MinInt16
	}
	return int16(scaled)
}
