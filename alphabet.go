package azam

// Symbol is a decoded azam character: a nibble value tagged with the
// alphabet it was drawn from. Terminal symbols (0x00-0x0f) end a section,
// continuation symbols (0x10-0x1f) do not.
type Symbol uint8

const (
	continuation Symbol = 0x10

	// leadingZero is the continuation symbol for nibble 0. It can never start
	// a section because it would encode a redundant leading zero.
	leadingZero = continuation

	invalid = -1
)

// Terminal returns a terminal symbol for the low 4 bits of n.
func Terminal(n byte) Symbol { return Symbol(n & 0x0f) }

// Continuation returns a continuation symbol for the low 4 bits of n.
func Continuation(n byte) Symbol { return Symbol(n&0x0f) | continuation }

// Nibble returns the 4-bit value carried by s.
func (s Symbol) Nibble() byte { return byte(s & 0x0f) }

// Terminal reports whether s ends a section.
func (s Symbol) Terminal() bool { return s&continuation == 0 }

// Char returns the canonical lowercase character for s.
func (s Symbol) Char() byte { return alphabet[s&0x1f] }

func (s Symbol) String() string { return string(s.Char()) }

// alphabet holds the low set followed by the high set. Neither set contains
// i, l, o or u.
var alphabet = [32]byte{
	'0', '1', '2', '3', '4', '5', '6', '7',
	'8', '9', 'a', 'b', 'c', 'd', 'e', 'f',
	'g', 'h', 'j', 'k', 'm', 'n', 'p', 'q',
	'r', 's', 't', 'v', 'w', 'x', 'y', 'z',
}

var decode [256]int8

func init() {
	for i := range decode {
		decode[i] = invalid
	}
	for i, c := range alphabet {
		decode[c] = int8(i)
		// Case-insensitive: map uppercase to same value
		if c >= 'a' && c <= 'z' {
			decode[c-32] = int8(i)
		}
	}
	// Look-alike substitutions
	for _, c := range []byte("oO") {
		decode[c] = 0
	}
	for _, c := range []byte("iIlL") {
		decode[c] = 1
	}
}

// Lookup resolves c to its symbol. The second result is false when c is not
// part of the alphabet.
func Lookup(c byte) (Symbol, bool) {
	v := decode[c]
	if v == invalid {
		return 0, false
	}
	return Symbol(v), true
}
