package azam

import (
	"encoding/binary"
	"math/big"

	"github.com/cockroachdb/errors"
)

// Fixed-width integers are encoded from their full big-endian bit pattern,
// so signed values are not special: EncodeInt32s(-1) == EncodeUint32s(0xffffffff).
// Decoding reads each section as an unsigned big-endian number and fails with
// ErrOutOfRange when it holds more bytes than the target width.

// EncodeUint32s returns one section per value.
func EncodeUint32s(values ...uint32) string {
	var buf [4]byte
	dst := make([]byte, 0, len(values)*8)
	for _, v := range values {
		binary.BigEndian.PutUint32(buf[:], v)
		dst = AppendSection(dst, buf[:])
	}
	return string(dst)
}

// EncodeUint64s returns one section per value.
func EncodeUint64s(values ...uint64) string {
	var buf [8]byte
	dst := make([]byte, 0, len(values)*16)
	for _, v := range values {
		binary.BigEndian.PutUint64(buf[:], v)
		dst = AppendSection(dst, buf[:])
	}
	return string(dst)
}

// EncodeInt32s returns one section per value's bit pattern.
func EncodeInt32s(values ...int32) string {
	var buf [4]byte
	dst := make([]byte, 0, len(values)*8)
	for _, v := range values {
		binary.BigEndian.PutUint32(buf[:], uint32(v))
		dst = AppendSection(dst, buf[:])
	}
	return string(dst)
}

// EncodeInt64s returns one section per value's bit pattern.
func EncodeInt64s(values ...int64) string {
	var buf [8]byte
	dst := make([]byte, 0, len(values)*16)
	for _, v := range values {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		dst = AppendSection(dst, buf[:])
	}
	return string(dst)
}

// EncodeBigInts returns one section per value's two's-complement bit
// pattern, in the fewest bytes that keep the sign bit. DecodeBigInts reads
// the pattern back as unsigned, so -1 decodes as 255. A nil value encodes
// as zero.
func EncodeBigInts(values ...*big.Int) string {
	var dst []byte
	for _, v := range values {
		dst = AppendSection(dst, bigIntBytes(v))
	}
	return string(dst)
}

func bigIntBytes(v *big.Int) []byte {
	if v == nil {
		return nil
	}
	if v.Sign() >= 0 {
		return v.Bytes()
	}
	// For v < 0 the pattern is 2^(8n) + v, where n leaves room for the sign
	// bit of ^v = -v-1.
	n := new(big.Int).Not(v).BitLen()/8 + 1
	x := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	return x.Add(x, v).FillBytes(make([]byte, n))
}

// DecodeUint32s decodes every section of s as a uint32.
func DecodeUint32s(s string) ([]uint32, error) {
	return decodeFixed[uint32](s, 4)
}

// DecodeUint64s decodes every section of s as a uint64.
func DecodeUint64s(s string) ([]uint64, error) {
	return decodeFixed[uint64](s, 8)
}

// DecodeInt32s decodes every section of s as the bit pattern of an int32.
func DecodeInt32s(s string) ([]int32, error) {
	u, err := decodeFixed[uint32](s, 4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(u))
	for i, v := range u {
		out[i] = int32(v)
	}
	return out, nil
}

// DecodeInt64s decodes every section of s as the bit pattern of an int64.
func DecodeInt64s(s string) ([]int64, error) {
	u, err := decodeFixed[uint64](s, 8)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(u))
	for i, v := range u {
		out[i] = int64(v)
	}
	return out, nil
}

// DecodeBigInts decodes every section of s as a non-negative big.Int.
func DecodeBigInts(s string) ([]*big.Int, error) {
	var out []*big.Int
	err := eachSection(s, func(b []byte, _ int) error {
		out = append(out, new(big.Int).SetBytes(b))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeFixed[T uint32 | uint64](s string, width int) ([]T, error) {
	var out []T
	err := eachSection(s, func(b []byte, off int) error {
		v, err := uintFromBytes[T](b, width)
		if err != nil {
			return errors.Wrapf(err, "section at offset %d", off)
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// uintFromBytes reads b as an unsigned big-endian number of at most width
// bytes.
func uintFromBytes[T uint32 | uint64](b []byte, width int) (T, error) {
	if len(b) > width {
		return 0, errors.Wrapf(ErrOutOfRange, "%d bytes do not fit in %d", len(b), width)
	}
	var v T
	for _, c := range b {
		v = v<<8 | T(c)
	}
	return v, nil
}
