/*
NAME
  frame.go

DESCRIPTION
  frame.go assembles a Packet into the AX.25 UI-frame byte layout and
  parses it back:

    FLAG(1) | DEST(7) | SRC(7) | DIGI*(0..56) | CTRL(1) | PID(1) |
    INFO(1..256) | FCS(2, little-endian) | FLAG(1)

  The CRC in FCS covers the information field only, not the addresses
  or control/PID bytes. Strict on-air AX.25 covers destination through
  end-of-info; this codec intentionally does not, so encode/decode stay
  self-consistent at the cost of on-air interoperability.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package ax25

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// minFrameLen is FLAG+DEST+SRC+CTRL+PID+1-byte-info+FCS+FLAG.
const minFrameLen = 1 + AddrLen + AddrLen + 1 + 1 + 1 + 2 + 1

// Assemble builds the wire bytes for one AX.25 UI-frame carrying p.
// Destination is never the last address; source is last iff there are
// no digipeaters; otherwise the final digipeater is last.
func Assemble(p Packet) []byte {
	out := make([]byte, 0, minFrameLen+len(p.Digipeaters)*AddrLen+len(p.Information))

	out = append(out, FlagByte)

	dest := EncodeAddress(p.Destination, false)
	out = append(out, dest[:]...)

	srcLast := len(p.Digipeaters) == 0
	src := EncodeAddress(p.Source, srcLast)
	out = append(out, src[:]...)

	for i, d := range p.Digipeaters {
		digi := EncodeAddress(d, i == len(p.Digipeaters)-1)
		out = append(out, digi[:]...)
	}

	out = append(out, ControlUI, PidNoLayer)
	out = append(out, p.Information...)

	fcs := CRC16(p.Information)
	var fcsBytes [2]byte
	binary.LittleEndian.PutUint16(fcsBytes[:], fcs)
	out = append(out, fcsBytes[:]...)

	out = append(out, FlagByte)
	return out
}

// Parse decodes a single AX.25 UI-frame's bytes back into a Packet.
func Parse(b []byte) (Packet, error) {
	if len(b) < minFrameLen {
		return Packet{}, errors.Wrapf(ErrInputTooShort, "got %d bytes, need at least %d", len(b), minFrameLen)
	}

	start := -1
	for i, v := range b {
		if v == FlagByte {
			start = i + 1
			break
		}
	}
	if start == -1 {
		return Packet{}, ErrNoStartFlag
	}

	cursor := start
	if len(b)-cursor < AddrLen {
		return Packet{}, errors.Wrap(ErrInputTooShort, "truncated destination address")
	}
	var destBytes [AddrLen]byte
	copy(destBytes[:], b[cursor:cursor+AddrLen])
	dest, _ := DecodeAddress(destBytes)
	cursor += AddrLen

	if len(b)-cursor < AddrLen {
		return Packet{}, errors.Wrap(ErrInputTooShort, "truncated source address")
	}
	var srcBytes [AddrLen]byte
	copy(srcBytes[:], b[cursor:cursor+AddrLen])
	src, srcLast := DecodeAddress(srcBytes)
	cursor += AddrLen

	var digis []string
	last := srcLast
	for !last {
		if len(b)-cursor < AddrLen {
			return Packet{}, errors.Wrap(ErrAddressDecodeFailure, "address field ran past end of buffer")
		}
		var digiBytes [AddrLen]byte
		copy(digiBytes[:], b[cursor:cursor+AddrLen])
		digi, digiLast := DecodeAddress(digiBytes)
		digis = append(digis, digi)
		cursor += AddrLen
		last = digiLast
	}

	if len(b)-cursor < 2 {
		return Packet{}, errors.Wrap(ErrInputTooShort, "truncated control/PID")
	}
	if b[cursor] != ControlUI || b[cursor+1] != PidNoLayer {
		return Packet{}, errors.Wrapf(ErrMissingControlOrPid, "got 0x%02X 0x%02X", b[cursor], b[cursor+1])
	}
	cursor += 2

	// The remaining bytes are INFO || FCS(2) || FLAG(1).
	if len(b)-cursor < 3 {
		return Packet{}, errors.Wrap(ErrInputTooShort, "no room for information, FCS and end flag")
	}
	infoEnd := len(b) - 3
	info := b[cursor:infoEnd]

	fcs := binary.LittleEndian.Uint16(b[infoEnd : infoEnd+2])
	computed := CRC16(info)
	if fcs != computed {
		return Packet{}, &CrcMismatchError{Expected: fcs, Actual: computed}
	}

	if b[len(b)-1] != FlagByte {
		return Packet{}, ErrNoEndFlag
	}

	infoCopy := make([]byte, len(info))
	copy(infoCopy, info)

	return Packet{
		Source:      src,
		Destination: dest,
		Digipeaters: digis,
		Information: infoCopy,
	}, nil
}
