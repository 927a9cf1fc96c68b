// Package azam implements a case-insensitive, self-delimiting binary-to-text
// encoding with a 32 character alphabet.
//
// A byte slice is read as a big-endian number and written one nibble per
// character with leading zero nibbles dropped. Every nibble but the last is
// written from the high alphabet "ghjkmnpqrstvwxyz" and the last one from the
// low alphabet "0123456789abcdef", so an encoded value (a section) ends at
// the first low character. Sections can be concatenated without separators:
//
//	azam.EncodeBytes([]byte{0xff}, []byte{0x01, 0x00}) // "zfhg0"
//
// Decoding ignores case and accepts o/O for 0 and i/I/l/L for 1.
package azam

import (
	"io"
	"strings"
)

// AppendBytes appends one section per value to dst, in order.
func AppendBytes(dst []byte, values ...[]byte) []byte {
	for _, v := range values {
		dst = AppendSection(dst, v)
	}
	return dst
}

// EncodeBytes returns the concatenated sections encoding values, in order.
func EncodeBytes(values ...[]byte) string {
	n := 0
	for _, v := range values {
		n += EncodedLen(v)
	}
	return string(AppendBytes(make([]byte, 0, n), values...))
}

// DecodeBytes decodes every section of s. An empty s decodes to zero
// sections. On error no sections are returned.
func DecodeBytes(s string) ([][]byte, error) {
	var out [][]byte
	err := eachSection(s, func(b []byte, _ int) error {
		out = append(out, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// eachSection calls fn with every section of s and the offset it started at.
// It stops at the first decode error or the first error returned by fn.
func eachSection(s string, fn func(b []byte, off int) error) error {
	r := strings.NewReader(s)
	off := 0
	for {
		b, n, err := decodeSection(r, off)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(b, off); err != nil {
			return err
		}
		off += n
	}
}
