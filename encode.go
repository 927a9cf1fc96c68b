package azam

// sectionWriter emits one section a nibble at a time. It holds back the most
// recent nibble because only the last nibble of a section is written with the
// terminal alphabet, and that is not known until close.
type sectionWriter struct {
	started bool
	pending byte
}

func (w *sectionWriter) writeNibble(dst []byte, n byte) []byte {
	if !w.started {
		if n == 0 {
			return dst
		}
		w.started = true
	} else {
		dst = append(dst, Continuation(w.pending).Char())
	}
	w.pending = n
	return dst
}

func (w *sectionWriter) writeByte(dst []byte, b byte) []byte {
	dst = w.writeNibble(dst, b>>4)
	return w.writeNibble(dst, b&0x0f)
}

// close terminates the section and resets w. A section that never saw a
// non-zero nibble is written as "0".
func (w *sectionWriter) close(dst []byte) []byte {
	dst = append(dst, Terminal(w.pending).Char())
	*w = sectionWriter{}
	return dst
}

// AppendSection appends the section encoding src to dst and returns the
// extended buffer.
func AppendSection(dst, src []byte) []byte {
	var w sectionWriter
	for i := firstSignificant(src); i < 2*len(src); i++ {
		dst = w.writeNibble(dst, nibbleAt(src, i))
	}
	return w.close(dst)
}

// EncodeSection returns the section encoding src. Empty and all-zero inputs
// encode as "0".
func EncodeSection(src []byte) string {
	return string(AppendSection(make([]byte, 0, EncodedLen(src)), src))
}

// EncodedLen returns the length in symbols of the section encoding src.
func EncodedLen(src []byte) int {
	return minimalLen(src)
}
