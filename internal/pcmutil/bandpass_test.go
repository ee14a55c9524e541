/*
NAME
  bandpass_test.go

DESCRIPTION
  bandpass_test.go tests the optional band-limiting pre-filter's cutoff
  validation and its attenuation of out-of-band tones.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package pcmutil

import (
	"math"
	"testing"
)

func TestNewBandPassFilterRejectsBadCutoffs(t *testing.T) {
	cases := []struct {
		name             string
		low, high        float64
		rate, taps       int
	}{
		{"low out of bounds", 0, 2000, 44100, 64},
		{"high above nyquist", 900, 30000, 44100, 64},
		{"low >= high", 2000, 1000, 44100, 64},
		{"zero taps", 900, 2500, 44100, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewBandPassFilter(c.low, c.high, c.rate, c.taps); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestBandPassFilterAttenuatesOutOfBandTone(t *testing.T) {
	const sampleRate = 44100
	f, err := NewBandPassFilter(900, 2500, sampleRate, 128)
	if err != nil {
		t.Fatalf("NewBandPassFilter failed: %v", err)
	}

	inBand := tone(1200, sampleRate, 1024)
	outOfBand := tone(8000, sampleRate, 1024)

	filteredIn, err := f.Apply(inBand)
	if err != nil {
		t.Fatalf("Apply(inBand) failed: %v", err)
	}
	filteredOut, err := f.Apply(outOfBand)
	if err != nil {
		t.Fatalf("Apply(outOfBand) failed: %v", err)
	}

	if rms(filteredOut) >= rms(filteredIn) {
		t.Errorf("expected the 8kHz tone to be attenuated more than the 1200Hz tone: rms(out)=%.2f rms(in)=%.2f",
			rms(filteredOut), rms(filteredIn))
	}
}

func tone(freq, sampleRate, n int) []int16 {
	out := make([]int16, n)
	step := 2 * math.Pi * float64(freq) / float64(sampleRate)
	for i := range out {
		out[i] = int16(0.8 * math.MaxInt16 * math.Sin(step*float64(i)))
	}
	return out
}

func rms(samples []int16) float64 {
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}
