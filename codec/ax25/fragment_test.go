/*
NAME
  fragment_test.go

DESCRIPTION
  fragment_test.go tests the oversized-payload fragmenter and its
  receive-side reassembler.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package ax25

import (
	"bytes"
	"strings"
	"testing"
)

func TestFragmentSmallPayloadIsBare(t *testing.T) {
	frames := Fragment([]byte("short"))
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if string(frames[0]) != "short" {
		t.Errorf("frame = %q, want no fragment prefix", frames[0])
	}
}

func TestFragmentOversizedPayload(t *testing.T) {
	payload := []byte(strings.Repeat("x", 300))
	frames := Fragment(payload)

	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if !bytes.HasPrefix(frames[0], []byte("{1:2}")) {
		t.Errorf("frame 0 = %q, want prefix {1:2}", frames[0][:10])
	}
	if !bytes.HasPrefix(frames[1], []byte("{2:2}")) {
		t.Errorf("frame 1 = %q, want prefix {2:2}", frames[1][:10])
	}

	reassembled, err := Reassemble(frames)
	if err != nil {
		t.Fatalf("Reassemble failed: %v", err)
	}
	if !bytes.Equal(reassembled, payload) {
		t.Errorf("reassembled payload length %d, want %d", len(reassembled), len(payload))
	}
}

func TestReassembleOutOfOrder(t *testing.T) {
	payload := []byte(strings.Repeat("y", 500))
	frames := Fragment(payload)
	reordered := [][]byte{frames[1], frames[0]}
	if len(frames) >= 3 {
		reordered = append(reordered, frames[2])
	}

	got, err := Reassemble(reordered)
	if err != nil {
		t.Fatalf("Reassemble failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("reassembled payload does not match original after reordering")
	}
}

func TestReassembleIncomplete(t *testing.T) {
	payload := []byte(strings.Repeat("z", 300))
	frames := Fragment(payload)

	_, err := Reassemble(frames[:1])
	fe, ok := err.(*FragmentError)
	if !ok {
		t.Fatalf("error type = %T, want *FragmentError", err)
	}
	if fe.Kind != FragmentIncomplete {
		t.Errorf("Kind = %v, want FragmentIncomplete", fe.Kind)
	}
}

func TestReassembleInconsistentCount(t *testing.T) {
	frames := [][]byte{
		[]byte("{1:2}abc"),
		[]byte("{2:3}def"),
	}
	_, err := Reassemble(frames)
	fe, ok := err.(*FragmentError)
	if !ok {
		t.Fatalf("error type = %T, want *FragmentError", err)
	}
	if fe.Kind != FragmentInconsistent {
		t.Errorf("Kind = %v, want FragmentInconsistent", fe.Kind)
	}
}
