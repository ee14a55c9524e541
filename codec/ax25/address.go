/*
NAME
  address.go

DESCRIPTION
  address.go implements the AX.25 address field codec: encoding a
  callsign-SSID into its 7-byte shifted wire form and decoding it back.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package ax25

import (
	"strconv"
	"strings"
)

// AddrLen is the number of bytes a single AX.25 address occupies on the wire.
const AddrLen = 7

// MinSSID and MaxSSID bound the valid secondary station identifier range.
const (
	MinSSID = 0
	MaxSSID = 15
)

// endOfAddressBit marks the final octet of an address field; the AX.25
// spec calls this the "extension bit". The two high bits (0x60) are the
// reserved bits plus the command/response bit, always set to 1 by this
// codec per spec.
const (
	reservedAndCommandBits = 0x60
	endOfAddressBit        = 0x01
	ssidShift              = 1
	ssidMask               = 0x0F
)

// EncodeAddress encodes a "CALLSIGN[-SSID]" string into its 7-byte AX.25
// wire form. last marks whether this address is the final one in the
// address field (destination, source, digipeaters) and so has its
// end-of-address bit set.
//
// The callsign is uppercased and truncated/padded to exactly 6 characters.
// An SSID outside [0,15], or a missing SSID, is treated as 0.
func EncodeAddress(address string, last bool) [AddrLen]byte {
	call, ssid := splitCallsign(address)

	var out [AddrLen]byte
	for i := 0; i < 6; i++ {
		out[i] = call[i] << 1
	}

	out[6] = reservedAndCommandBits | (ssid << ssidShift)
	if last {
		out[6] |= endOfAddressBit
	}
	return out
}

// splitCallsign normalises address into a 6-byte, space-padded, uppercase
// callsign and an SSID in [0,15]; a missing, unparseable or out-of-range
// SSID becomes 0.
func splitCallsign(address string) ([6]byte, byte) {
	call := address
	ssid := byte(0)

	if idx := strings.IndexByte(address, '-'); idx >= 0 {
		call = address[:idx]
		if n, err := strconv.Atoi(address[idx+1:]); err == nil && n >= MinSSID && n <= MaxSSID {
			ssid = byte(n)
		}
	}

	call = strings.ToUpper(call)
	if len(call) > 6 {
		call = call[:6]
	}

	var padded [6]byte
	for i := range padded {
		padded[i] = ' '
	}
	copy(padded[:], call)

	return padded, ssid
}

// DecodeAddress decodes a 7-byte AX.25 address field into its normalised
// "CALLSIGN[-SSID]" text form, returning also whether the end-of-address
// bit was set. Bytes that don't shift back to printable ASCII are
// replaced with '?' — the caller's CRC check guards overall frame
// integrity, so address decode never fails outright.
func DecodeAddress(b [AddrLen]byte) (address string, last bool) {
	var call [6]byte
	for i := 0; i < 6; i++ {
		c := b[i] >> 1
		if c < 0x20 || c > 0x7E {
			c = '?'
		}
		call[i] = c
	}

	callsign := strings.TrimRight(string(call[:]), " ")
	ssid := (b[6] >> ssidShift) & ssidMask
	last = b[6]&endOfAddressBit != 0

	if ssid == 0 {
		return callsign, last
	}
	return callsign + "-" + strconv.Itoa(int(ssid)), last
}
