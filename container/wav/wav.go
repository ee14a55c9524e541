/*
NAME
  wav.go

DESCRIPTION
  wav.go is the container boundary between this codec and the outside
  world: Encode wraps modulated PCM samples in a WAV file, and Decode
  unwraps an uploaded or recorded WAV file back into the mono 44100Hz
  PCM stream codec/afsk expects, normalising sample rate and channel
  count along the way. Adapted from exp/flac/decode.go's writeSeeker
  and go-audio/wav.Encoder/Decoder wiring in the wider codebase, and
  from codec/wav.WAV's Metadata validation, now delegating the wire
  format itself to go-audio/wav rather than the hand-rolled RIFF writer
  it replaces.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

// Package wav encodes and decodes the WAV container around this
// codec's PCM samples.
package wav

import (
	"bytes"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/kc5afs/aprsafsk/internal/pcmutil"
)

// TargetSampleRate is the sample rate codec/afsk's Bell 202 timing is
// computed against. Decode resamples any other input rate to this.
const TargetSampleRate = 44100

const (
	bitDepth    = 16
	numChannels = 1
	pcmFormat   = 1 // WAVE_FORMAT_PCM
)

// ErrUnsupportedWav is returned by Decode when the input cannot be
// coerced into mono 16-bit PCM, e.g. an unreadable or non-PCM WAV.
var ErrUnsupportedWav = errors.New("wav: unsupported or invalid WAV file")

// writeSeeker is a minimal in-memory io.WriteSeeker, the same adapter
// exp/flac/decode.go uses to give go-audio/wav.Encoder somewhere to
// write without touching the filesystem.
type writeSeeker struct {
	buf []byte
	pos int
}

func (w *writeSeeker) Bytes() []byte { return w.buf }

func (w *writeSeeker) Write(p []byte) (int, error) {
	minCap := w.pos + len(p)
	if minCap > cap(w.buf) {
		buf2 := make([]byte, len(w.buf), minCap+len(p))
		copy(buf2, w.buf)
		w.buf = buf2
	}
	if minCap > len(w.buf) {
		w.buf = w.buf[:minCap]
	}
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
	return len(p), nil
}

func (w *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	newPos := 0
	switch whence {
	case io.SeekStart:
		newPos = int(offset)
	case io.SeekCurrent:
		newPos = w.pos + int(offset)
	case io.SeekEnd:
		newPos = len(w.buf) + int(offset)
	}
	if newPos < 0 {
		return 0, errors.New("wav: negative seek position")
	}
	w.pos = newPos
	return int64(newPos), nil
}

// Encode wraps mono 16-bit samples, sampled at TargetSampleRate, in a
// WAV container.
func Encode(samples []int16) ([]byte, error) {
	ws := &writeSeeker{}
	enc := wav.NewEncoder(ws, TargetSampleRate, bitDepth, numChannels, pcmFormat)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: TargetSampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return nil, errors.Wrap(err, "could not write PCM to WAV encoder")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "could not finalise WAV encoder")
	}
	return ws.Bytes(), nil
}

// Decode unwraps a WAV file into mono 16-bit PCM at TargetSampleRate,
// downmixing stereo input and downsampling any rate that is an integer
// multiple of TargetSampleRate. Input with any other sample rate
// (including rates below TargetSampleRate), or that is not integer PCM,
// is rejected with ErrUnsupportedWav.
func Decode(raw []byte) ([]int16, error) {
	dec := wav.NewDecoder(bytes.NewReader(raw))
	if !dec.IsValidFile() {
		return nil, ErrUnsupportedWav
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrap(ErrUnsupportedWav, err.Error())
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}

	if buf.Format.NumChannels == 2 {
		samples = pcmutil.DownmixStereo(samples)
	} else if buf.Format.NumChannels != 1 {
		return nil, errors.Wrapf(ErrUnsupportedWav, "unsupported channel count %d", buf.Format.NumChannels)
	}

	rate := buf.Format.SampleRate
	if rate != TargetSampleRate {
		samples, err = pcmutil.Resample(samples, rate, TargetSampleRate)
		if err != nil {
			return nil, errors.Wrapf(ErrUnsupportedWav, "could not normalise sample rate: %v", err)
		}
	}
	return samples, nil
}

// bandpassLow and bandpassHigh bracket both the 1200Hz MARK and 2200Hz
// SPACE Bell 202 tones with headroom for channel drift.
const (
	bandpassLow  = 900.0
	bandpassHigh = 2500.0
	bandpassTaps = 128
)

// DecodeFiltered behaves like Decode but additionally attenuates energy
// outside the Bell 202 tone band before returning, for noisy captures
// where a plain Decode produces corrupted frames.
func DecodeFiltered(raw []byte) ([]int16, error) {
	samples, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	f, err := pcmutil.NewBandPassFilter(bandpassLow, bandpassHigh, TargetSampleRate, bandpassTaps)
	if err != nil {
		return nil, errors.Wrap(err, "could not build band-pass filter")
	}
	filtered, err := f.Apply(samples)
	if err != nil {
		return nil, errors.Wrap(err, "could not apply band-pass filter")
	}
	return filtered, nil
}
