package rotor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mp911de/enigma4j/machine/rotor"
)

func TestNew_DerivesRoleFromNamePrefix(t *testing.T) {
	tests := []struct {
		name string
		role rotor.Role
	}{
		{"ETW", rotor.Entry},
		{"UKW", rotor.Reflecting},
		{"UKW A", rotor.Reflecting},
		{"I", rotor.Rotating},
		{"III", rotor.Rotating},
	}

	for _, tt := range tests {
		r, err := rotor.New(tt.name, "ABCDEFGHIJKLMNOPQRSTUVWXYZ", nil)
		require.NoError(t, err)
		assert.Equal(t, tt.role, r.Role(), "rotor %q", tt.name)
		assert.Equal(t, tt.role == rotor.Rotating, r.IsRotating())
	}
}

func TestNew_RejectsEmptyNameAndWiring(t *testing.T) {
	_, err := rotor.New("", "ABC", nil)
	assert.ErrorIs(t, err, rotor.ErrEmptyName)

	_, err = rotor.New("I", "", nil)
	assert.ErrorIs(t, err, rotor.ErrEmptyWiring)
}

func TestNew_UppercasesWiring(t *testing.T) {
	r, err := rotor.New("I", "bacd", nil)
	require.NoError(t, err)
	assert.Equal(t, "BACD", r.Wiring())
}

func TestNotches_AreCopied(t *testing.T) {
	notches := []string{"Q"}
	r, err := rotor.New("I", "ABCD", notches)
	require.NoError(t, err)

	notches[0] = "Z"
	assert.Equal(t, []string{"Q"}, r.Notches())

	got := r.Notches()
	got[0] = "Z"
	assert.Equal(t, []string{"Q"}, r.Notches())
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "entry", rotor.Entry.String())
	assert.Equal(t, "reflecting", rotor.Reflecting.String())
	assert.Equal(t, "rotating", rotor.Rotating.String())
}
