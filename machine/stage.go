package machine

import (
	"fmt"

	"github.com/mp911de/enigma4j/machine/alphabet"
	"github.com/mp911de/enigma4j/machine/rotor"
)

// stage is the mutable runtime state around one rotor: the current rotation
// offset plus the translation tables derived from rotor wiring and alphabet.
// Stages live in the machine's chain and are only mutated through advance
// and setPosition.
type stage struct {
	rotor    rotor.Rotor
	mapping  string // forward wiring
	reverse  []int  // wiring symbol -> wiring position, inverts the permutation
	notches  []bool // by alphabet position
	symIndex []int  // alphabet symbol -> alphabet position
	chars    string // alphabet position -> symbol
	position int
}

func newStage(r rotor.Rotor, a alphabet.Alphabet) *stage {
	st := &stage{
		rotor:    r,
		mapping:  r.Wiring(),
		reverse:  a.WiringIndex(r.Wiring()),
		notches:  make([]bool, a.Len()),
		symIndex: a.SymbolIndex(),
		chars:    a.Chars(),
	}

	for _, notch := range r.Notches() {
		if notch == "" {
			continue
		}
		if i := a.IndexOf(notch[0]); i >= 0 {
			st.notches[i] = true
		}
	}

	return st
}

// processInput runs the forward pass: the input pin is shifted by the
// current rotational offset before consulting the wiring, and the result is
// shifted back to express the signal in un-rotated coordinates.
func (st *stage) processInput(in byte) byte {
	n := len(st.mapping)

	shifted := (st.symIndex[in] + st.position) % n
	wired := st.mapping[shifted]

	out := st.symIndex[wired] - st.position
	if out < 0 {
		out += len(st.chars)
	}

	return st.chars[out%n]
}

// processOutput runs the reverse pass through the inverted wiring. The
// signal arrives in un-rotated coordinates, is shifted onto the rotor's
// current frame, looked up against the inverse permutation and shifted back.
func (st *stage) processOutput(in byte) byte {
	n := len(st.mapping)

	pin := (st.symIndex[in] + st.position) % n
	translated := st.chars[pin]

	out := (st.reverse[translated] - st.position) % n
	if out < 0 {
		out += len(st.chars)
	}

	return st.chars[out%n]
}

// advance increments the rotation offset of a rotating stage. It reports a
// notch hit when the position the stage just stepped off was a notch, which
// is what triggers the next stage of the cascade. Entry and reflecting
// stages never move.
func (st *stage) advance() bool {
	if !st.rotor.IsRotating() {
		return false
	}

	st.position++
	if st.position >= len(st.mapping) {
		st.position = 0
	}

	notchPosition := st.position - 1
	if notchPosition < 0 {
		notchPosition += len(st.mapping)
	}

	return st.notches[notchPosition]
}

// setPosition applies a rotation offset. Entry and reflecting stages are
// clamped to zero; rotating stages take the value as-is and callers are
// responsible for supplying values within the wiring length.
func (st *stage) setPosition(position int) {
	if !st.rotor.IsRotating() {
		st.position = 0
		return
	}

	st.position = position
}

func (st *stage) String() string {
	return fmt.Sprintf("%s[%d]", st.rotor.Name(), st.position)
}
