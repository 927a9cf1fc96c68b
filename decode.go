package azam

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

type decodeState uint8

const (
	expectFirst decodeState = iota
	reading
	done
)

// decodeSection reads exactly one section from r. off is the input offset of
// the section's first symbol and is only used to position errors. It returns
// the decoded bytes and the number of symbols consumed.
//
// io.EOF is returned, unwrapped, only when r is exhausted before the first
// symbol. Running out of input after that is ErrUnterminated.
func decodeSection(r io.ByteReader, off int) ([]byte, int, error) {
	var (
		out     []byte
		pending byte
		half    bool
		n       int
		state   = expectFirst
	)
	for state != done {
		c, err := r.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, n, errors.Wrapf(err, "azam: read at offset %d", off+n)
			}
			if state == expectFirst {
				return nil, 0, io.EOF
			}
			return nil, n, &SyntaxError{Offset: off + n, Err: ErrUnterminated}
		}
		sym, ok := Lookup(c)
		if !ok {
			return nil, n, &SyntaxError{Offset: off + n, Char: c, Err: ErrInvalidCharacter}
		}
		if state == expectFirst && sym == leadingZero {
			return nil, n, &SyntaxError{Offset: off + n, Char: c, Err: ErrIllegalLeadingNibble}
		}
		n++

		if half {
			out = append(out, pending<<4|sym.Nibble())
		}
		pending = sym.Nibble()
		half = !half

		if sym.Terminal() {
			state = done
		} else {
			state = reading
		}
	}

	// An odd nibble count means the encoder dropped a leading zero nibble.
	// Flush the last nibble and shift everything back into place.
	if half {
		out = append(out, pending<<4)
		shiftRight4(out)
	}
	return out, n, nil
}

// DecodeSection reads one section from r and returns its bytes. It returns
// io.EOF if r holds no more symbols. Error offsets are relative to the
// position of r when DecodeSection was called.
func DecodeSection(r io.ByteReader) ([]byte, error) {
	b, _, err := decodeSection(r, 0)
	return b, err
}

// DecodeSectionString decodes s, which must hold exactly one section.
func DecodeSectionString(s string) ([]byte, error) {
	r := strings.NewReader(s)
	b, n, err := decodeSection(r, 0)
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, err
	}
	if n < len(s) {
		return nil, &SyntaxError{Offset: n, Char: s[n], Err: ErrTrailingData}
	}
	return b, nil
}
