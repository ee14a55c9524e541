/*
NAME
  aprs.go

DESCRIPTION
  aprs.go wires the leaf codec packages into the two directional
  pipelines: Encode (Packet -> PCM samples) and Decode (PCM samples ->
  Packet), the way revid/pipeline.go in the wider codebase wires leaf
  codec/container packages into one directional media pipeline.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package aprs

import (
	"github.com/kc5afs/aprsafsk/codec/afsk"
	"github.com/kc5afs/aprsafsk/codec/ax25"
)

// Packet is the routing envelope and payload encoded/decoded by this
// package. It is an alias of ax25.Packet since the frame assembler
// operates on it directly.
type Packet = ax25.Packet

// NewPacket builds a Packet. Canonical argument order is (source,
// destination, digipeaters, information).
func NewPacket(source, destination string, digipeaters []string, information []byte) Packet {
	return ax25.NewPacket(source, destination, digipeaters, information)
}

// ErrEmptyInformation is returned by Encode when the packet's
// information field is empty: spec.md's §4.7 scenario 6 resolves this
// ambiguity by rejecting empty information at the encoder rather than
// producing a frame no decoder can distinguish from a truncated one.
var ErrEmptyInformation = errEmptyInformation{}

type errEmptyInformation struct{}

func (errEmptyInformation) Error() string {
	return "aprs: information field must be at least 1 byte"
}

// Encode fragments p.Information if it exceeds ax25.MaxPayloadSize,
// assembles one AX.25 UI-frame per fragment, and concatenates their
// modulated PCM samples with no inter-frame silence.
func Encode(p Packet, cfg afsk.Config) ([]int16, error) {
	if len(p.Information) == 0 {
		return nil, ErrEmptyInformation
	}

	mod := afsk.NewModulator(cfg)
	fragments := ax25.Fragment(p.Information)

	var out []int16
	for _, info := range fragments {
		frame := ax25.Assemble(ax25.Packet{
			Source:      p.Source,
			Destination: p.Destination,
			Digipeaters: p.Digipeaters,
			Information: info,
		})
		out = append(out, mod.Modulate(frame)...)
	}
	return out, nil
}

// Decode demodulates samples and parses the first successfully decoded
// AX.25 UI-frame into a Packet. Multi-frame demultiplexing (e.g.
// reassembling a fragmented transmission split across separate PCM
// captures) is a caller concern; see Reassemble for that step once the
// caller has decoded each fragment's frame independently.
func Decode(samples []int16, cfg afsk.Config) (Packet, error) {
	demod := afsk.NewDemodulator(cfg)
	bits := demod.Demodulate(samples)
	bytes := afsk.PackBits(bits)

	// Try each flag byte in turn as the closing flag, so that a capture
	// of several back-to-back frames yields the first one that parses.
	for end := 1; end < len(bytes); end++ {
		if bytes[end] != ax25.FlagByte {
			continue
		}
		if p, err := ax25.Parse(bytes[:end+1]); err == nil {
			return p, nil
		}
	}
	return ax25.Parse(bytes)
}

// Reassemble concatenates the information fields of packets that share
// the same source/destination/digipeater routing but were split by
// Fragment, stripping any "{i:k}" prefix, in fragment order.
func Reassemble(packets []Packet) ([]byte, error) {
	infos := make([][]byte, len(packets))
	for i, p := range packets {
		infos[i] = p.Information
	}
	return ax25.Reassemble(infos)
}
