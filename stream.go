package azam

import (
	"bufio"
	"io"

	"github.com/cockroachdb/errors"
)

// An Encoder writes sections to an output stream. Output is buffered; call
// Flush when done. After an error every later call returns that error.
type Encoder struct {
	w   *bufio.Writer
	buf []byte
	err error
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes one section per value, in order.
func (e *Encoder) Encode(values ...[]byte) error {
	if e.err != nil {
		return e.err
	}
	for _, v := range values {
		e.buf = AppendSection(e.buf[:0], v)
		if err := e.write(); err != nil {
			return err
		}
	}
	return nil
}

// EncodeFrom reads r until io.EOF and writes its bytes as one section. The
// input is never held in memory as a whole.
//
// If r fails, the section is left unterminated. Symbols still buffered are
// discarded and Flush reports the read error, but output larger than the
// buffer may already have reached the underlying writer.
func (e *Encoder) EncodeFrom(r io.Reader) error {
	if e.err != nil {
		return e.err
	}
	var (
		sw    sectionWriter
		chunk [4096]byte
	)
	for {
		n, rerr := r.Read(chunk[:])
		e.buf = e.buf[:0]
		for _, b := range chunk[:n] {
			e.buf = sw.writeByte(e.buf, b)
		}
		if err := e.write(); err != nil {
			return err
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			e.err = errors.Wrap(rerr, "azam: read")
			return e.err
		}
	}
	e.buf = sw.close(e.buf[:0])
	return e.write()
}

// Flush writes any buffered output to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		e.err = errors.Wrap(err, "azam: flush")
	}
	return e.err
}

func (e *Encoder) write() error {
	if _, err := e.w.Write(e.buf); err != nil {
		e.err = errors.Wrap(err, "azam: write")
	}
	return e.err
}

// A Decoder reads sections from an input stream.
type Decoder struct {
	r   io.ByteReader
	off int
}

// NewDecoder returns a Decoder reading from r. If r does not implement
// io.ByteReader it is wrapped in a bufio.Reader, and the Decoder may read
// past the last section it returns.
func NewDecoder(r io.Reader) *Decoder {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{r: br}
}

// DecodeSection reads the next section. It returns io.EOF when the input
// ends exactly at a section boundary.
func (d *Decoder) DecodeSection() ([]byte, error) {
	b, n, err := decodeSection(d.r, d.off)
	d.off += n
	return b, err
}

// DecodeAll reads sections until the input is exhausted. On error no
// sections are returned.
func (d *Decoder) DecodeAll() ([][]byte, error) {
	var out [][]byte
	for {
		b, err := d.DecodeSection()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
}

// Offset returns the number of symbols consumed so far.
func (d *Decoder) Offset() int {
	return d.off
}
