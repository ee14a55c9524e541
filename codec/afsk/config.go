/*
NAME
  config.go

DESCRIPTION
  config.go defines the immutable parameter set for the AFSK modulator
  and demodulator, replacing the module-level tone/rate constants a
  single-purpose codec would otherwise hard-code, so the same code can
  be exercised at other sample rates or tone pairs in tests.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package afsk

// Config holds the tone pair, baud rate, and PCM sample rate used by
// both the modulator and demodulator. A Config value is immutable once
// constructed; there is no package-level mutable state.
type Config struct {
	// SampleRate is the PCM sample rate in Hz.
	SampleRate int
	// MarkFreq is the tone frequency in Hz representing bit 1.
	MarkFreq int
	// SpaceFreq is the tone frequency in Hz representing bit 0.
	SpaceFreq int
	// Baud is the symbol rate in bits/second.
	Baud int
}

// Bell202 is the standard 1200-baud APRS tone pair: MARK 1200Hz, SPACE
// 2200Hz, at 44100Hz PCM sample rate.
func Bell202() Config {
	return Config{
		SampleRate: 44100,
		MarkFreq:   1200,
		SpaceFreq:  2200,
		Baud:       1200,
	}
}

// SamplesPerBit is the number of PCM samples in one symbol period,
// truncated toward zero as spec requires (SPB = floor(SampleRate/Baud)).
func (c Config) SamplesPerBit() int {
	return c.SampleRate / c.Baud
}
