// Package alphabet provides the ordered symbol set used by rotor wirings,
// plugboards and the cipher machine for symbol/index translation.
package alphabet

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptyAlphabet is returned when an alphabet is constructed without symbols.
var ErrEmptyAlphabet = errors.New("alphabet: must not be empty")

// Alphabet is an immutable, canonically sorted set of unique upper-case
// symbols. Two alphabets built from the same symbols (any case, any order)
// behave identically.
type Alphabet struct {
	chars string
}

// Default is the latin A-Z alphabet.
var Default = Alphabet{chars: "ABCDEFGHIJKLMNOPQRSTUVWXYZ"}

// New creates an Alphabet from chars. Symbols are upper-cased, deduplicated
// and sorted.
func New(chars string) (Alphabet, error) {
	if strings.TrimSpace(chars) == "" {
		return Alphabet{}, ErrEmptyAlphabet
	}

	seen := make(map[byte]bool, len(chars))
	unique := make([]byte, 0, len(chars))
	for _, ch := range []byte(strings.ToUpper(chars)) {
		if !seen[ch] {
			seen[ch] = true
			unique = append(unique, ch)
		}
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })

	return Alphabet{chars: string(unique)}, nil
}

// MustNew is like New but panics on error. Intended for fixed literals.
func MustNew(chars string) Alphabet {
	a, err := New(chars)
	if err != nil {
		panic(err)
	}
	return a
}

// Contains reports whether ch is part of the alphabet.
func (a Alphabet) Contains(ch byte) bool {
	return strings.IndexByte(a.chars, ch) >= 0
}

// IndexOf returns the position of ch within the canonical ordering,
// or -1 when ch is not part of the alphabet.
func (a Alphabet) IndexOf(ch byte) int {
	return strings.IndexByte(a.chars, ch)
}

// Len returns the number of symbols.
func (a Alphabet) Len() int {
	return len(a.chars)
}

// Symbol returns the symbol at position i of the canonical ordering.
func (a Alphabet) Symbol(i int) byte {
	return a.chars[i]
}

// Chars returns all symbols in canonical order.
func (a Alphabet) Chars() string {
	return a.chars
}

// SymbolIndex creates a symbol-to-position table sized to the highest
// symbol value. Entries for symbols outside the alphabet are zero and must
// not be dereferenced; callers validate membership first.
func (a Alphabet) SymbolIndex() []int {
	highest := a.chars[len(a.chars)-1]
	table := make([]int, int(highest)+1)

	for i := 0; i < len(a.chars); i++ {
		table[a.chars[i]] = i
	}

	return table
}

// WiringIndex creates a symbol-to-position table over a rotor wiring,
// mapping each wiring symbol to its offset within the wiring. It is the
// inverse-permutation lookup used by the reverse pass.
func (a Alphabet) WiringIndex(wiring string) []int {
	highest := a.chars[len(a.chars)-1]
	table := make([]int, int(highest)+1)

	for i := 0; i < len(wiring); i++ {
		table[wiring[i]] = i
	}

	return table
}

func (a Alphabet) String() string {
	return a.chars
}
