package azam

// A byte slice is read as a big-endian magnitude of 2*len(b) nibbles. Its
// minimal form drops every leading zero nibble but keeps at least one nibble,
// so the zero value is the single nibble 0. The encoder produces the minimal
// form and the decoder restores bytes from it, re-inserting the one zero
// nibble needed to fill a byte when the nibble count is odd.

// nibbleAt returns the i-th nibble of b, most significant first.
func nibbleAt(b []byte, i int) byte {
	if i%2 == 0 {
		return b[i/2] >> 4
	}
	return b[i/2] & 0x0f
}

// firstSignificant returns the index of the first non-zero nibble of b, or
// 2*len(b) when every nibble is zero.
func firstSignificant(b []byte) int {
	for i, c := range b {
		switch {
		case c>>4 != 0:
			return 2 * i
		case c != 0:
			return 2*i + 1
		}
	}
	return 2 * len(b)
}

// minimalLen returns the number of nibbles in the minimal form of b.
func minimalLen(b []byte) int {
	n := 2*len(b) - firstSignificant(b)
	if n == 0 {
		return 1
	}
	return n
}

// shiftRight4 shifts b right by one nibble in place, carrying the low nibble
// of each byte into the high nibble of the next.
func shiftRight4(b []byte) {
	var carry byte
	for i, c := range b {
		b[i] = c>>4 | carry<<4
		carry = c & 0x0f
	}
}
