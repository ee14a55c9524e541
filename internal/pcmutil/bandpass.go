/*
NAME
  bandpass.go

DESCRIPTION
  bandpass.go is an optional pre-filter that narrows captured audio to
  the Bell 202 tone band before it reaches codec/afsk, for use against
  noisy off-air captures. Adapted from
  codec/pcm.NewBandPass/NewLowPass/NewHighPass/fastConvolve in the
  wider codebase, narrowed to operate directly on []int16 rather than
  that package's byte-buffer/BufferFormat abstraction, since this is
  the only filter shape this codec needs.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package pcmutil

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/pkg/errors"
)

// BandPassFilter is an FIR band-pass filter built by windowed-sinc
// design, the product of convolving a low-pass and a high-pass filter
// the same way codec/pcm.NewBandPass does.
type BandPassFilter struct {
	coeffs []float64
}

// NewBandPassFilter builds a band-pass filter for sampleRate Hz audio
// passing [lowCut, highCut] Hz, with an FIR length of taps. For Bell
// 202 AFSK, callers typically want lowCut/highCut to bracket both the
// 1200Hz MARK and 2200Hz SPACE tones, e.g. 900Hz-2500Hz.
func NewBandPassFilter(lowCut, highCut float64, sampleRate int, taps int) (*BandPassFilter, error) {
	if lowCut <= 0 || highCut <= 0 || lowCut >= float64(sampleRate)/2 || highCut >= float64(sampleRate)/2 {
		return nil, errors.New("pcmutil: cutoff frequencies out of bounds")
	}
	if lowCut >= highCut {
		return nil, errors.New("pcmutil: lowCut must be below highCut")
	}
	if taps <= 0 {
		return nil, errors.New("pcmutil: filter taps must be > 0")
	}

	hp, err := sincFilter(lowCut, float64(sampleRate), taps, true)
	if err != nil {
		return nil, errors.Wrap(err, "could not build highpass half")
	}
	lp, err := sincFilter(highCut, float64(sampleRate), taps, false)
	if err != nil {
		return nil, errors.Wrap(err, "could not build lowpass half")
	}
	coeffs, err := fastConvolve(hp, lp)
	if err != nil {
		return nil, errors.Wrap(err, "could not convolve band filter halves")
	}
	return &BandPassFilter{coeffs: coeffs}, nil
}

// Apply convolves samples with the filter's FIR coefficients,
// returning a new slice of the same scale (signed 16-bit full scale).
func (f *BandPassFilter) Apply(samples []int16) ([]int16, error) {
	floats := make([]float64, len(samples))
	for i, s := range samples {
		floats[i] = float64(s) / (math.MaxInt16 + 1)
	}
	convolved, err := fastConvolve(floats, f.coeffs)
	if err != nil {
		return nil, errors.Wrap(err, "could not convolve samples")
	}

	out := make([]int16, len(samples))
	for i := range out {
		v := convolved[i] * math.MaxInt16
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		out[i] = int16(v)
	}
	return out, nil
}

// sincFilter builds one windowed-sinc low-pass or high-pass half of a
// band filter, the same construction as codec/pcm.newLoHiFilter.
func sincFilter(fc, sampleRate float64, taps int, highPass bool) ([]float64, error) {
	fd := fc / sampleRate
	factor1, factor2 := 1.0, 2*fd
	if highPass {
		factor1, factor2 = -1.0, 1-2*fd
	}

	size := taps + 1
	coeffs := make([]float64, size)
	b := 2 * math.Pi * fd
	win := window.FlatTop(size)
	for n := 0; n < taps/2; n++ {
		c := float64(n) - float64(taps)/2
		y := math.Sin(c*b) / (math.Pi * c)
		coeffs[n] = factor1 * y * win[n]
		coeffs[size-1-n] = coeffs[n]
	}
	coeffs[taps/2] = factor2 * win[taps/2]
	return coeffs, nil
}

// fastConvolve computes the linear convolution of x and h via zero-padded
// FFT multiplication, the same O(n log n) approach as codec/pcm.fastConvolve.
func fastConvolve(x, h []float64) ([]float64, error) {
	if len(x) == 0 || len(h) == 0 {
		return nil, errors.New("pcmutil: convolution requires non-empty inputs")
	}

	convLen := len(x) + len(h) - 1
	padLen := int(math.Pow(2, math.Ceil(math.Log2(float64(convLen)))))

	xPadded := make([]float64, padLen)
	copy(xPadded, x)
	hPadded := make([]float64, padLen)
	copy(hPadded, h)

	xFFT, hFFT := fft.FFTReal(xPadded), fft.FFTReal(hPadded)
	yFFT := make([]complex128, padLen)
	for i := range xFFT {
		yFFT[i] = xFFT[i] * hFFT[i]
	}

	iy := fft.IFFT(yFFT)
	y := make([]float64, convLen)
	for i := range y {
		y[i] = real(iy[i])
	}
	return y, nil
}
