/*
NAME
  fragment.go

DESCRIPTION
  fragment.go splits an oversized information field into sequenced
  sub-payloads bounded by MaxPayloadSize, and reassembles them on the
  receiving side. For k>1 fragments each information field is prefixed
  with "{i:k}" (1-based i); a single-fragment payload is sent bare.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

package ax25

import (
	"fmt"
	"strconv"
	"strings"
)

// Fragment splits information into one or more byte slices, each carrying
// at most MaxPayloadSize bytes of information. When there is more than
// one fragment, the "{i:k}" prefix is prepended after chunking, so such a
// slice can be up to MaxPayloadSize+len(prefix) bytes long.
func Fragment(information []byte) [][]byte {
	if len(information) == 0 {
		return [][]byte{{}}
	}

	chunks := chunk(information, MaxPayloadSize)
	if len(chunks) == 1 {
		return chunks
	}

	out := make([][]byte, len(chunks))
	for i, c := range chunks {
		prefix := fmt.Sprintf("{%d:%d}", i+1, len(chunks))
		out[i] = append([]byte(prefix), c...)
	}
	return out
}

// chunk splits data into slices of at most size bytes, preserving order.
func chunk(data []byte, size int) [][]byte {
	var out [][]byte
	for len(data) > 0 {
		n := size
		if n > len(data) {
			n = len(data)
		}
		out = append(out, data[:n])
		data = data[n:]
	}
	if len(out) == 0 {
		out = [][]byte{{}}
	}
	return out
}

// fragmentPrefix, if present at the start of s, returns the 1-based index,
// the total count, the remainder of s after the prefix, and true.
func fragmentPrefix(s []byte) (index, total int, rest []byte, ok bool) {
	if len(s) < 2 || s[0] != '{' {
		return 0, 0, s, false
	}
	end := -1
	for i := 1; i < len(s); i++ {
		if s[i] == '}' {
			end = i
			break
		}
	}
	if end == -1 {
		return 0, 0, s, false
	}
	parts := strings.SplitN(string(s[1:end]), ":", 2)
	if len(parts) != 2 {
		return 0, 0, s, false
	}
	idx, err1 := strconv.Atoi(parts[0])
	tot, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || idx < 1 || tot < 1 {
		return 0, 0, s, false
	}
	return idx, tot, s[end+1:], true
}

// Reassemble concatenates the information fields of frames in fragment
// index order, stripping any "{i:k}" prefix. frames need not already be sorted
// by fragment index; Reassemble sorts by the index it finds. It fails
// with a FragmentError if any fragment 1..k is missing, or if frames
// disagree about k.
func Reassemble(frames [][]byte) ([]byte, error) {
	if len(frames) == 0 {
		return nil, &FragmentError{Kind: FragmentIncomplete, Detail: "no frames given"}
	}

	firstIdx, total, _, hasPrefix := fragmentPrefix(frames[0])
	if !hasPrefix {
		if len(frames) != 1 {
			return nil, &FragmentError{Kind: FragmentInconsistent, Detail: "multiple frames but no fragment prefix"}
		}
		return append([]byte{}, frames[0]...), nil
	}
	_ = firstIdx

	ordered := make([][]byte, total)
	seen := make([]bool, total)
	for _, f := range frames {
		idx, tot, rest, ok := fragmentPrefix(f)
		if !ok {
			return nil, &FragmentError{Kind: FragmentInconsistent, Detail: "frame missing fragment prefix"}
		}
		if tot != total {
			return nil, &FragmentError{Kind: FragmentInconsistent, Detail: fmt.Sprintf("fragment count mismatch: %d vs %d", tot, total)}
		}
		if idx < 1 || idx > total {
			return nil, &FragmentError{Kind: FragmentInconsistent, Detail: fmt.Sprintf("fragment index %d out of range [1,%d]", idx, total)}
		}
		ordered[idx-1] = rest
		seen[idx-1] = true
	}

	for i, ok := range seen {
		if !ok {
			return nil, &FragmentError{Kind: FragmentIncomplete, Detail: fmt.Sprintf("missing fragment %d of %d", i+1, total)}
		}
	}

	var out []byte
	for _, part := range ordered {
		out = append(out, part...)
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}
