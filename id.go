package azam

import (
	"encoding"
	"encoding/binary"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Compile-time interface checks for ID
var (
	_ fmt.Stringer               = ID(0)
	_ encoding.TextMarshaler     = ID(0)
	_ encoding.TextUnmarshaler   = (*ID)(nil)
	_ encoding.BinaryMarshaler   = ID(0)
	_ encoding.BinaryUnmarshaler = (*ID)(nil)
	_ json.Marshaler             = ID(0)
	_ json.Unmarshaler           = (*ID)(nil)
	_ gob.GobEncoder             = ID(0)
	_ gob.GobDecoder             = (*ID)(nil)
)

type Format string

const (
	FormatAzam    Format = "azam"
	FormatDecimal Format = "decimal"
	FormatHex     Format = "hex"
)

// ID is a 64-bit identifier whose text form is a single azam section.
type ID uint64

var Nil ID = 0

func (id ID) Uint64() uint64 {
	return uint64(id)
}

func (id ID) IsNil() bool {
	return id == Nil
}

// Bytes returns the ID as an 8-byte big-endian slice.
func (id ID) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func (id ID) String() string {
	return id.Format(FormatAzam)
}

func (id ID) Format(f Format) string {
	switch f {
	case FormatDecimal:
		return strconv.FormatUint(uint64(id), 10)
	case FormatHex:
		return strconv.FormatUint(uint64(id), 16)
	default:
		return EncodeUint64s(uint64(id))
	}
}

// AppendText implements encoding.TextAppender
func (id ID) AppendText(b []byte) ([]byte, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	return AppendSection(b, buf[:]), nil
}

// MarshalText implements encoding.TextMarshaler
func (id ID) MarshalText() ([]byte, error) {
	return id.AppendText(nil)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (id ID) MarshalJSON() ([]byte, error) {
	b, _ := id.AppendText([]byte{'"'})
	return append(b, '"'), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = Nil
		return nil
	}
	// Bare numbers are accepted for clients that store IDs as integers.
	if len(b) > 0 && b[0] != '"' {
		n, err := strconv.ParseUint(string(b), 10, 64)
		if err != nil {
			return errors.New("azam: invalid JSON value")
		}
		*id = ID(n)
		return nil
	}
	if len(b) < 2 || b[len(b)-1] != '"' {
		return errors.New("azam: invalid JSON string")
	}
	return id.UnmarshalText(b[1 : len(b)-1])
}

// Parse parses a single azam section into an ID.
func Parse(s string) (ID, error) {
	b, err := DecodeSectionString(s)
	if err != nil {
		return Nil, err
	}
	return FromBytes(b)
}

// ParseDecimal parses a decimal string into an ID.
func ParseDecimal(s string) (ID, error) {
	if len(s) == 0 {
		return Nil, ErrEmpty
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Nil, errors.Wrap(err, "azam: invalid decimal")
	}
	return ID(n), nil
}

// ParseHex parses a hex string of at most 16 digits into an ID.
func ParseHex(s string) (ID, error) {
	if len(s) == 0 {
		return Nil, ErrEmpty
	}
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return Nil, errors.Wrap(err, "azam: invalid hex")
	}
	return ID(n), nil
}

// Parse parses a string into the ID receiver.
func (id *ID) Parse(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// FromString returns an ID parsed from the input string.
// Alias for Parse.
func FromString(s string) (ID, error) {
	return Parse(s)
}

// FromStringOrNil returns an ID parsed from the input string.
// Returns Nil on error.
func FromStringOrNil(s string) ID {
	id, err := Parse(s)
	if err != nil {
		return Nil
	}
	return id
}

// FromBytes returns an ID from a big-endian slice of 1 to 8 bytes.
func FromBytes(b []byte) (ID, error) {
	if len(b) == 0 {
		return Nil, errors.New("azam: ID needs at least 1 byte")
	}
	n, err := uintFromBytes[uint64](b, 8)
	if err != nil {
		return Nil, err
	}
	return ID(n), nil
}

// FromBytesOrNil returns an ID from a big-endian slice.
// Returns Nil on error.
func FromBytesOrNil(b []byte) ID {
	id, err := FromBytes(b)
	if err != nil {
		return Nil
	}
	return id
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (id ID) MarshalBinary() ([]byte, error) {
	return id.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (id *ID) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return errors.Newf("azam: ID must be exactly 8 bytes, got %d", len(data))
	}
	*id = ID(binary.BigEndian.Uint64(data))
	return nil
}

// GobEncode implements gob.GobEncoder.
func (id ID) GobEncode() ([]byte, error) {
	return id.MarshalBinary()
}

// GobDecode implements gob.GobDecoder.
func (id *ID) GobDecode(data []byte) error {
	return id.UnmarshalBinary(data)
}

// Must panics if err is not nil
func Must(id ID, err error) ID {
	if err != nil {
		panic(err)
	}
	return id
}
