/*
NAME
  aprs_test.go

DESCRIPTION
  aprs_test.go exercises the full encode/decode pipeline against the
  concrete end-to-end scenarios from the codec's design notes.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package aprs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kc5afs/aprsafsk/codec/afsk"
	"github.com/kc5afs/aprsafsk/codec/ax25"
)

func TestRoundtripShortASCII(t *testing.T) {
	cfg := afsk.Bell202()
	p := NewPacket("N0CALL", "APRS", nil, []byte("Hello"))

	samples, err := Encode(p, cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	const wantSamples = (1 + 7 + 7 + 1 + 1 + 5 + 2 + 1) * 8 * 36
	if len(samples) != wantSamples {
		t.Errorf("len(samples) = %d, want %d", len(samples), wantSamples)
	}

	got, err := Decode(samples, cfg)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Source != p.Source || got.Destination != p.Destination {
		t.Errorf("got source/dest %q/%q, want %q/%q", got.Source, got.Destination, p.Source, p.Destination)
	}
	if !bytes.Equal(got.Information, p.Information) {
		t.Errorf("information = %q, want %q", got.Information, p.Information)
	}
}

func TestRoundtripWithDigipeater(t *testing.T) {
	cfg := afsk.Bell202()
	p := NewPacket("N0CALL-1", "APRS", []string{"WIDE1-1"}, []byte("X"))

	samples, err := Encode(p, cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(samples, cfg)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Source != "N0CALL-1" || got.Destination != "APRS" {
		t.Errorf("got %+v", got)
	}
	if len(got.Digipeaters) != 1 || got.Digipeaters[0] != "WIDE1-1" {
		t.Errorf("digipeaters = %v, want [WIDE1-1]", got.Digipeaters)
	}
}

func TestEncodeFragmentsOversizedPayload(t *testing.T) {
	cfg := afsk.Bell202()
	payload := []byte(strings.Repeat("A", 300))
	p := NewPacket("N0CALL", "APRS", nil, payload)

	samples, err := Encode(p, cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Demodulate and manually split on frame flags to recover both
	// fragment frames, since Decode only returns the first.
	demod := afsk.NewDemodulator(cfg)
	bits := demod.Demodulate(samples)
	allBytes := afsk.PackBits(bits)

	frames := splitFrames(t, allBytes)
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}

	var packets []Packet
	for _, f := range frames {
		pkt, err := ax25.Parse(f)
		if err != nil {
			t.Fatalf("ax25.Parse failed: %v", err)
		}
		packets = append(packets, pkt)
	}

	reassembled, err := Reassemble(packets)
	if err != nil {
		t.Fatalf("Reassemble failed: %v", err)
	}
	if !bytes.Equal(reassembled, payload) {
		t.Errorf("reassembled length %d, want %d", len(reassembled), len(payload))
	}
}

func TestDecodeCrcCorruption(t *testing.T) {
	cfg := afsk.Bell202()
	p := NewPacket("N0CALL", "APRS", nil, []byte("Hello"))

	samples, err := Encode(p, cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Flip the first bit of the information field by re-synthesising
	// that one symbol's audio at the opposite tone, which changes the
	// demodulated bit for that symbol and therefore the information
	// byte it belongs to.
	spb := cfg.SamplesPerBit()
	infoSymbolStart := (1 + 7 + 7 + 1 + 1) * 8 * spb
	originalBit := (p.Information[0] >> 7) & 1
	flippedByte := (1 - originalBit) << 7
	opposite := afsk.NewModulator(cfg).Modulate([]byte{flippedByte})[:spb]
	copy(samples[infoSymbolStart:infoSymbolStart+spb], opposite)

	_, err = Decode(samples, cfg)
	if err == nil {
		t.Fatal("expected a CRC mismatch error, got nil")
	}
}

func TestEncodeRejectsEmptyInformation(t *testing.T) {
	cfg := afsk.Bell202()
	p := NewPacket("N0CALL", "APRS", nil, nil)

	_, err := Encode(p, cfg)
	if err != ErrEmptyInformation {
		t.Errorf("err = %v, want ErrEmptyInformation", err)
	}
}

func TestRoundtripUnicodePayload(t *testing.T) {
	cfg := afsk.Bell202()
	p := NewPacket("N0CALL", "APRS", nil, []byte("你好"))

	samples, err := Encode(p, cfg)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(samples, cfg)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if string(got.Information) != "你好" {
		t.Errorf("information = %q, want 你好", got.Information)
	}
}

// splitFrames scans b for HDLC flag-delimited frames (0x7E ... 0x7E).
// Frames may either share one flag byte at the boundary or, as Encode
// produces, each carry their own leading and trailing flag back to
// back; a flag immediately following the previous frame's closing flag
// is treated as the next frame's opening flag rather than the close of
// a spurious empty frame.
func splitFrames(t *testing.T, b []byte) [][]byte {
	t.Helper()
	const flag = 0x7E
	var frames [][]byte
	start := -1
	for i, v := range b {
		if v != flag {
			continue
		}
		switch {
		case start == -1:
			start = i
		case i == start+1:
			// Back-to-back flags: this one opens the next frame.
			start = i
		default:
			frames = append(frames, b[start:i+1])
			start = i
		}
	}
	return frames
}
