package azam

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidCharacter is returned for a character outside the alphabet.
	ErrInvalidCharacter = errors.New("azam: invalid character")

	// ErrIllegalLeadingNibble is returned when a section starts with 'g',
	// which would encode a redundant leading zero.
	ErrIllegalLeadingNibble = errors.New("azam: illegal leading nibble")

	// ErrUnterminated is returned when the input ends inside a section.
	ErrUnterminated = errors.New("azam: section not terminated")

	// ErrEmpty is returned when a single section is required but the input
	// holds no symbols. Stream decoders report this condition as io.EOF.
	ErrEmpty = errors.New("azam: empty input")

	// ErrTrailingData is returned when a single section is required but more
	// symbols follow it.
	ErrTrailingData = errors.New("azam: trailing data after section")

	// ErrOutOfRange is returned when a decoded section does not fit the
	// target integer width.
	ErrOutOfRange = errors.New("azam: value out of range")
)

// SyntaxError describes malformed input. Err is one of ErrInvalidCharacter,
// ErrIllegalLeadingNibble, ErrUnterminated or ErrTrailingData.
type SyntaxError struct {
	Offset int  // offset of the offending symbol in the input
	Char   byte // offending character, unset for ErrUnterminated
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Err == ErrInvalidCharacter {
		return fmt.Sprintf("%v %q at offset %d", e.Err, e.Char, e.Offset)
	}
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
