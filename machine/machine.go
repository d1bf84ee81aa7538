// Package machine implements the cipher engine: an ordered chain of rotor
// stages with notch-cascaded stepping, wrapped by a plugboard. A machine
// configured identically on both ends is self-inverse: feeding ciphertext
// from the same rotor positions reproduces the plaintext.
package machine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mp911de/enigma4j/machine/alphabet"
	"github.com/mp911de/enigma4j/machine/plugboard"
	"github.com/mp911de/enigma4j/machine/rotor"
)

var (
	// ErrNoRotors is returned when a machine is created without rotors.
	ErrNoRotors = errors.New("machine: at least one rotor is required")

	// ErrInvalidCharacter is returned when input contains a character
	// outside the configured alphabet.
	ErrInvalidCharacter = errors.New("machine: character is not part of the alphabet")

	// ErrPositionCount is returned when the number of supplied positions
	// does not match the number of rotating rotors.
	ErrPositionCount = errors.New("machine: number of positions does not match number of rotating rotors")
)

// Trace directions reported to a TraceFunc.
const (
	TraceForward = "FWD"
	TraceReverse = "REV"
)

// TraceFunc observes a single wiring hop: direction, stage name, the
// stage's rotation offset and the symbol before and after the hop.
type TraceFunc func(direction, stage string, position int, in, out byte)

// Machine is a runtime cipher machine instance. Rotor positions mutate with
// every processed symbol, so instances must not be shared between
// goroutines without external serialization. New instances start with all
// rotors at position zero.
//
// The chain follows signal order: typically an entry rotor (ETW) first,
// rotating rotors next and the reflecting rotor (UKW) last. Structural
// validation of that ordering is the configuration layer's job; the engine
// processes whatever chain it is given.
type Machine struct {
	alphabet  alphabet.Alphabet
	plugboard *plugboard.Plugboard
	stages    []*stage
	rotating  int
	trace     TraceFunc
}

// New creates a Machine from a rotor chain and a plugboard. A nil plugboard
// is replaced by an empty one.
func New(a alphabet.Alphabet, rotors []rotor.Rotor, board *plugboard.Plugboard) (*Machine, error) {
	if len(rotors) == 0 {
		return nil, ErrNoRotors
	}
	if board == nil {
		board = plugboard.Empty(a)
	}

	m := &Machine{alphabet: a, plugboard: board}
	for _, r := range rotors {
		m.stages = append(m.stages, newStage(r, a))
		if r.IsRotating() {
			m.rotating++
		}
	}

	return m, nil
}

// SetTrace installs fn as the per-hop trace observer. A nil fn disables
// tracing.
func (m *Machine) SetTrace(fn TraceFunc) {
	m.trace = fn
}

// Alphabet returns the configured alphabet.
func (m *Machine) Alphabet() alphabet.Alphabet {
	return m.alphabet
}

// Process enciphers input and returns the transformed sequence in input
// order. Input is upper-cased first; the whole batch is validated against
// the alphabet before any rotor moves, so a rejected batch never mutates
// machine state. Processing advances rotor positions as a side effect:
// running the same input twice without resetting positions yields different
// output.
func (m *Machine) Process(input string) (string, error) {
	upper := strings.ToUpper(input)

	for i := 0; i < len(upper); i++ {
		if !m.alphabet.Contains(upper[i]) {
			return "", fmt.Errorf("%w: %q (0x%X)", ErrInvalidCharacter, string(input[i]), input[i])
		}
	}

	out := make([]byte, len(upper))
	for i := 0; i < len(upper); i++ {
		out[i] = m.plugboard.Route(m.enter(m.plugboard.Route(upper[i])))
	}

	return string(out), nil
}

// enter feeds one symbol through the signal path: cascade advance, forward
// pass through every stage, then reverse pass from the stage before the
// last back through the first. The reflecting stage is only traversed
// forward; the entry stage is traversed in both directions.
func (m *Machine) enter(in byte) byte {
	start := 0
	if !m.stages[0].rotor.IsRotating() {
		start = 1
	}
	for i := start; i < len(m.stages); i++ {
		if !m.stages[i].advance() {
			break
		}
	}

	transformed := in
	for _, st := range m.stages {
		prev := transformed
		transformed = st.processInput(transformed)
		m.traceHop(TraceForward, st, prev, transformed)
	}

	for i := len(m.stages) - 2; i >= 0; i-- {
		prev := transformed
		transformed = m.stages[i].processOutput(transformed)
		m.traceHop(TraceReverse, m.stages[i], prev, transformed)
	}

	return transformed
}

func (m *Machine) traceHop(direction string, st *stage, in, out byte) {
	if m.trace == nil {
		return
	}
	m.trace(direction, st.rotor.Name(), st.position, in, out)
}

// SetRotorPositions applies positions to the rotating rotors in chain
// order. The number of positions must match the number of rotating rotors.
func (m *Machine) SetRotorPositions(positions ...int) error {
	if len(positions) != m.rotating {
		return fmt.Errorf("%w: got %d, want %d", ErrPositionCount, len(positions), m.rotating)
	}

	index := 0
	for _, st := range m.stages {
		if st.rotor.IsRotating() {
			st.setPosition(positions[index])
			index++
		}
	}

	return nil
}

// RotorPositions returns the current positions of the rotating rotors in
// chain order.
func (m *Machine) RotorPositions() []int {
	positions := make([]int, 0, m.rotating)
	for _, st := range m.stages {
		if st.rotor.IsRotating() {
			positions = append(positions, st.position)
		}
	}

	return positions
}
