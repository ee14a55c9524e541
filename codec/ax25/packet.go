/*
NAME
  packet.go

DESCRIPTION
  packet.go defines the Packet data model: a routing envelope plus an
  information payload, as carried by one AX.25 UI-frame.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package ax25

// MaxPayloadSize is the largest information field a single frame can
// carry before the fragmenter must split it across multiple frames.
const MaxPayloadSize = 256

// FlagByte is the AX.25 HDLC frame delimiter, one per frame start and end.
const FlagByte = 0x7E

// Control and protocol-ID bytes fixed for APRS UI-frames: unnumbered
// information, no layer-3 protocol.
const (
	ControlUI  = 0x03
	PidNoLayer = 0xF0
)

// Packet is the routing envelope and payload for one AX.25 UI-frame.
// Canonical constructor argument order is (source, destination,
// digipeaters, information).
type Packet struct {
	Source      string
	Destination string
	Digipeaters []string
	Information []byte
}

// NewPacket builds a Packet. digipeaters and information are not copied;
// callers should treat them as moved into the Packet.
func NewPacket(source, destination string, digipeaters []string, information []byte) Packet {
	return Packet{
		Source:      source,
		Destination: destination,
		Digipeaters: digipeaters,
		Information: information,
	}
}
