// Package plugboard implements the patch bay of military machine editions:
// up to ten symmetric, non-overlapping symbol swaps applied before and after
// the rotor chain.
package plugboard

import (
	"errors"
	"fmt"

	"github.com/mp911de/enigma4j/machine/alphabet"
)

// MaxPatches is the number of patch slots on the board.
const MaxPatches = 10

var (
	// ErrInvalidPatch is returned for a malformed patch tuple.
	ErrInvalidPatch = errors.New("plugboard: patch must name two distinct characters")

	// ErrUnsupportedCharacter is returned when a patch character is not part
	// of the alphabet.
	ErrUnsupportedCharacter = errors.New("plugboard: character not supported by alphabet")

	// ErrPatchOverlap is returned when a patch character already participates
	// in another patch.
	ErrPatchOverlap = errors.New("plugboard: patch overlaps with existing patch")

	// ErrNoFreeSlot is returned when all patch slots are occupied.
	ErrNoFreeSlot = errors.New("plugboard: all slots are patched")
)

// Patch is a symmetric swap between two characters. The zero value is an
// unoccupied slot.
type Patch struct {
	from byte
	to   byte
}

// From returns the first character of the pair.
func (p Patch) From() byte {
	return p.from
}

// To returns the second character of the pair.
func (p Patch) To() byte {
	return p.to
}

// IsPatched reports whether the slot holds an actual swap.
func (p Patch) IsPatched() bool {
	return p.from != 0 && p.to != 0
}

// OverlapsWith reports whether the two patches share a character.
func (p Patch) OverlapsWith(other Patch) bool {
	if p.from == other.from || p.from == other.to {
		return true
	}
	return p.to == other.to || p.to == other.from
}

func (p Patch) String() string {
	return string([]byte{p.from, p.to})
}

// Plugboard routes characters through the configured patches. Instances are
// immutable: WithPatch returns a new board and never mutates the receiver,
// so boards can be shared freely.
type Plugboard struct {
	alphabet alphabet.Alphabet
	patches  [MaxPatches]Patch
	table    []byte
}

// Empty creates a Plugboard without any patches; every character routes to
// itself.
func Empty(a alphabet.Alphabet) *Plugboard {
	b := &Plugboard{alphabet: a}
	b.table = createTable(b.patches)
	return b
}

// createTable builds the routing table sized to the highest patched
// character. Characters beyond the table route to themselves.
func createTable(patches [MaxPatches]Patch) []byte {
	max := byte(0)
	for _, p := range patches {
		if p.from > max {
			max = p.from
		}
		if p.to > max {
			max = p.to
		}
	}

	table := make([]byte, int(max)+1)
	for i := range table {
		table[i] = byte(i)
	}
	for _, p := range patches {
		if !p.IsPatched() {
			continue
		}
		table[p.from] = p.to
		table[p.to] = p.from
	}

	return table
}

// WithPatch returns a new Plugboard with the given two-character tuple
// applied. Both characters must be distinct members of the alphabet and must
// not participate in an existing patch. Directionality has no significance.
func (b *Plugboard) WithPatch(tuple string) (*Plugboard, error) {
	if len(tuple) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPatch, tuple)
	}

	c1, c2 := tuple[0], tuple[1]
	if c1 == c2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPatch, tuple)
	}
	if !b.alphabet.Contains(c1) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharacter, string(c1))
	}
	if !b.alphabet.Contains(c2) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharacter, string(c2))
	}

	toPatch := Patch{from: c1, to: c2}
	for _, existing := range b.patches {
		if existing.IsPatched() && existing.OverlapsWith(toPatch) {
			return nil, fmt.Errorf("%w: %s", ErrPatchOverlap, existing)
		}
	}

	free := -1
	for i, p := range b.patches {
		if !p.IsPatched() {
			free = i
			break
		}
	}
	if free < 0 {
		return nil, ErrNoFreeSlot
	}

	next := &Plugboard{alphabet: b.alphabet, patches: b.patches}
	next.patches[free] = toPatch
	next.table = createTable(next.patches)

	return next, nil
}

// Route applies patch routing to a character. Unpatched characters route to
// themselves. Routing is its own inverse.
func (b *Plugboard) Route(ch byte) byte {
	if int(ch) < len(b.table) {
		return b.table[ch]
	}
	return ch
}

// Patches returns the occupied patch slots in installation order.
func (b *Plugboard) Patches() []Patch {
	var installed []Patch
	for _, p := range b.patches {
		if p.IsPatched() {
			installed = append(installed, p)
		}
	}
	return installed
}
