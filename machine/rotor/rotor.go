// Package rotor defines the immutable rotor data model: a named wiring
// permutation, its notch symbols and its structural role within the chain.
package rotor

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyName is returned when a rotor is created without a name.
	ErrEmptyName = errors.New("rotor: name must not be empty")

	// ErrEmptyWiring is returned when a rotor is created without a wiring.
	ErrEmptyWiring = errors.New("rotor: wiring must not be empty")
)

// Role describes the structural behavior of a rotor within the chain.
type Role int

const (
	// Rotating rotors advance on every symbol entered, subject to the
	// notch cascade.
	Rotating Role = iota

	// Entry rotors pre- and post-process the signal but never rotate.
	// An entry rotor occupies the first position of the chain.
	Entry

	// Reflecting rotors turn the signal back and never rotate.
	// A reflecting rotor occupies the last position of the chain.
	Reflecting
)

func (r Role) String() string {
	switch r {
	case Entry:
		return "entry"
	case Reflecting:
		return "reflecting"
	default:
		return "rotating"
	}
}

// Rotor is an immutable wiring permutation with a name and notch symbols.
// The role is derived once from the name prefix at construction: ETW marks
// the entry rotor (Eintrittswalze), UKW the reflecting rotor (Umkehrwalze),
// everything else rotates.
type Rotor struct {
	name    string
	wiring  string
	notches []string
	role    Role
}

// New creates a Rotor. The notches slice may be empty; nil is treated as
// empty.
func New(name, wiring string, notches []string) (Rotor, error) {
	if strings.TrimSpace(name) == "" {
		return Rotor{}, ErrEmptyName
	}
	if strings.TrimSpace(wiring) == "" {
		return Rotor{}, ErrEmptyWiring
	}

	role := Rotating
	if strings.HasPrefix(name, "ETW") {
		role = Entry
	} else if strings.HasPrefix(name, "UKW") {
		role = Reflecting
	}

	r := Rotor{
		name:    name,
		wiring:  strings.ToUpper(wiring),
		notches: make([]string, len(notches)),
		role:    role,
	}
	copy(r.notches, notches)

	return r, nil
}

// MustNew is like New but panics on error. Intended for fixed literals.
func MustNew(name, wiring string, notches []string) Rotor {
	r, err := New(name, wiring, notches)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the rotor name.
func (r Rotor) Name() string {
	return r.name
}

// Wiring returns the wiring permutation as an ordered symbol sequence.
func (r Rotor) Wiring() string {
	return r.wiring
}

// Notches returns the notch symbols.
func (r Rotor) Notches() []string {
	notches := make([]string, len(r.notches))
	copy(notches, r.notches)
	return notches
}

// Role returns the structural role.
func (r Rotor) Role() Role {
	return r.role
}

// IsRotating reports whether the rotor advances during processing.
func (r Rotor) IsRotating() bool {
	return r.role == Rotating
}

func (r Rotor) String() string {
	return r.name
}
