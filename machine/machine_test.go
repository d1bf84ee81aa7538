package machine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mp911de/enigma4j/machine"
	"github.com/mp911de/enigma4j/machine/alphabet"
	"github.com/mp911de/enigma4j/machine/plugboard"
	"github.com/mp911de/enigma4j/machine/rotor"
)

// modelD is the commercial machine chain in signal order.
func modelD() []rotor.Rotor {
	return []rotor.Rotor{
		rotor.MustNew("ETW", "QWERTZUIOASDFGHJKPYXCVBNML", nil),
		rotor.MustNew("I", "RECFWYAZUIKGVMDOHTNSQXJLBP", []string{"Y"}),
		rotor.MustNew("II", "SLVGBTFXJQOHEWIRZYAMKPCNDU", []string{"E"}),
		rotor.MustNew("III", "CJGDPSHKTURAWZXFMYNQOBVLIE", []string{"N"}),
		rotor.MustNew("UKW", "ZJLSVHKFQBGCORMYINDXWEUTPA", nil),
	}
}

// enigmaI is the army machine chain in signal order: III next to the entry
// wheel, I next to the reflector.
func enigmaI() []rotor.Rotor {
	return []rotor.Rotor{
		rotor.MustNew("ETW", "ABCDEFGHIJKLMNOPQRSTUVWXYZ", nil),
		rotor.MustNew("III", "BDFHJLCPRTXVZNYEIWGAKMUSQO", []string{"V"}),
		rotor.MustNew("II", "AJDKSIRUXBLHWTMCQGZNPYFVOE", []string{"E"}),
		rotor.MustNew("I", "EKMFLGDQVZNTOWYHXUSPAIBRCJ", []string{"Q"}),
		rotor.MustNew("UKW A", "EJMZALYXVBWFCRQUONTSPIKHGD", nil),
	}
}

func newMachine(t *testing.T, rotors []rotor.Rotor, board *plugboard.Plugboard) *machine.Machine {
	t.Helper()

	m, err := machine.New(alphabet.Default, rotors, board)
	require.NoError(t, err)

	return m
}

func process(t *testing.T, m *machine.Machine, input string) string {
	t.Helper()

	out, err := m.Process(input)
	require.NoError(t, err)

	return out
}

func TestNew_RequiresRotors(t *testing.T) {
	_, err := machine.New(alphabet.Default, nil, nil)
	assert.ErrorIs(t, err, machine.ErrNoRotors)
}

func TestProcess_SingleCharacters(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"A", "H"},
		{"Z", "T"},
		{"H", "A"},
		{"T", "Z"},
	}

	for _, tt := range tests {
		m := newMachine(t, modelD(), nil)
		assert.Equal(t, tt.out, process(t, m, tt.in), "input %q", tt.in)
	}
}

func TestProcess_AdvancesRotorsPerSymbol(t *testing.T) {
	m := newMachine(t, modelD(), nil)

	assert.Equal(t, "ALSYI", process(t, m, "HALLO"))
	assert.Equal(t, []int{5, 0, 0}, m.RotorPositions())

	assert.Equal(t, "PMON", process(t, m, "WELT"))
	assert.Equal(t, []int{9, 0, 0}, m.RotorPositions())
}

func TestProcess_UppercasesInput(t *testing.T) {
	m := newMachine(t, modelD(), nil)
	assert.Equal(t, "ALSYI", process(t, m, "hallo"))
}

func TestProcess_IsSelfInverse(t *testing.T) {
	encipher := newMachine(t, modelD(), nil)
	decipher := newMachine(t, modelD(), nil)

	ciphertext := process(t, encipher, "WURSTSALAT")
	assert.Equal(t, "CJTNNZROOG", ciphertext)
	assert.Equal(t, "WURSTSALAT", process(t, decipher, ciphertext))
}

func TestProcess_NotchCascadesIntoSecondRotor(t *testing.T) {
	m := newMachine(t, modelD(), nil)

	out := process(t, m, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	assert.Equal(t, "HVYPRYUKPDYHLMQDFKFGIFQUKJ", out)
	assert.Equal(t, []int{0, 1, 0}, m.RotorPositions())

	assert.Equal(t, "JANRK", process(t, m, "FFFFF"))
	assert.Equal(t, []int{5, 1, 0}, m.RotorPositions())
}

// A fixed-point-free reflector wiring makes the whole machine map
// fixed-point-free. This is a property of the configuration, not of the
// engine: other chains may well map a symbol to itself.
func TestProcess_FixedPointFreeReflectorNeverMapsSymbolToItself(t *testing.T) {
	for i := 0; i < alphabet.Default.Len(); i++ {
		m := newMachine(t, enigmaI(), nil)
		in := string(alphabet.Default.Symbol(i))
		assert.NotEqual(t, in, process(t, m, in))
	}
}

func TestProcess_RejectsForeignCharactersWithoutStateChange(t *testing.T) {
	m := newMachine(t, modelD(), nil)
	process(t, m, "HAL")

	_, err := m.Process("LO\n")
	assert.ErrorIs(t, err, machine.ErrInvalidCharacter)
	assert.Equal(t, []int{3, 0, 0}, m.RotorPositions(), "rejected batch must not move rotors")
}

func TestSetRotorPositions(t *testing.T) {
	m := newMachine(t, modelD(), nil)

	process(t, m, "H")
	require.NoError(t, m.SetRotorPositions(0, 0, 0))
	assert.Equal(t, "A", process(t, m, "H"))

	require.NoError(t, m.SetRotorPositions(1, 0, 0))
	assert.Equal(t, "L", process(t, m, "A"))
}

func TestSetRotorPositions_RejectsWrongCount(t *testing.T) {
	m := newMachine(t, modelD(), nil)

	err := m.SetRotorPositions(0, 0)
	assert.ErrorIs(t, err, machine.ErrPositionCount)

	err = m.SetRotorPositions(0, 0, 0, 0)
	assert.ErrorIs(t, err, machine.ErrPositionCount)
}

func TestProcess_EnigmaI(t *testing.T) {
	m := newMachine(t, enigmaI(), nil)

	assert.Equal(t, "SKPTTUPKYFVACQLMWMEHE", process(t, m, "ABCDEFGHIJKLMNOPQRSTU"))
	assert.Equal(t, []int{21, 0, 0}, m.RotorPositions())

	assert.Equal(t, "HENIK", process(t, m, "VWXYZ"))
	assert.Equal(t, []int{0, 1, 0}, m.RotorPositions())

	assert.Equal(t, "WXQAZ", process(t, m, "FFFFF"))
	assert.Equal(t, []int{5, 1, 0}, m.RotorPositions())
}

func TestProcess_EnigmaIIsSelfInverse(t *testing.T) {
	encipher := newMachine(t, enigmaI(), nil)
	decipher := newMachine(t, enigmaI(), nil)

	ciphertext := process(t, encipher, "WURSTSALAT")
	assert.Equal(t, "FXYKEONOEX", ciphertext)
	assert.Equal(t, "WURSTSALAT", process(t, decipher, ciphertext))
}

func TestProcess_DeepCascade(t *testing.T) {
	m := newMachine(t, enigmaI(), nil)

	process(t, m, strings.Repeat("A", 130))
	assert.Equal(t, []int{0, 5, 1}, m.RotorPositions())
}

func TestProcess_PlugboardWrapsSignalPath(t *testing.T) {
	board, err := plugboard.Empty(alphabet.Default).WithPatch("AC")
	require.NoError(t, err)
	board, err = board.WithPatch("BF")
	require.NoError(t, err)

	m := newMachine(t, modelD(), board)
	assert.Equal(t, "COSYI", process(t, m, "HALLO"))
}

func TestProcess_PlugboardEnigmaI(t *testing.T) {
	board, err := plugboard.Empty(alphabet.Default).WithPatch("AC")
	require.NoError(t, err)
	board, err = board.WithPatch("BF")
	require.NoError(t, err)

	m := newMachine(t, enigmaI(), board)
	assert.Equal(t, "YOKTTGPKYBVCAQLMWMEHE", process(t, m, "ABCDEFGHIJKLMNOPQRSTU"))
}

func TestSetTrace_ObservesEveryHop(t *testing.T) {
	m := newMachine(t, modelD(), nil)

	type hop struct {
		direction, stage string
	}
	var hops []hop
	m.SetTrace(func(direction, stage string, position int, in, out byte) {
		hops = append(hops, hop{direction, stage})
	})

	process(t, m, "A")

	// Five stages forward, four back: the reflector is only passed once.
	require.Len(t, hops, 9)
	assert.Equal(t, hop{machine.TraceForward, "ETW"}, hops[0])
	assert.Equal(t, hop{machine.TraceForward, "UKW"}, hops[4])
	assert.Equal(t, hop{machine.TraceReverse, "III"}, hops[5])
	assert.Equal(t, hop{machine.TraceReverse, "ETW"}, hops[8])

	m.SetTrace(nil)
	process(t, m, "A")
	assert.Len(t, hops, 9)
}

func TestProcess_PartialChainWithoutEntryWheel(t *testing.T) {
	rotors := []rotor.Rotor{
		rotor.MustNew("II", "AJDKSIRUXBLHWTMCQGZNPYFVOE", []string{"E"}),
		rotor.MustNew("I", "EKMFLGDQVZNTOWYHXUSPAIBRCJ", []string{"Q"}),
		rotor.MustNew("III", "BDFHJLCPRTXVZNYEIWGAKMUSQO", []string{"V"}),
	}

	m := newMachine(t, rotors, nil)
	require.NoError(t, m.SetRotorPositions(1, 2, 3))
	assert.Equal(t, "BPLKHVVVKT", process(t, m, "WURSTSALAT"))
}

func TestAlphabet(t *testing.T) {
	m := newMachine(t, modelD(), nil)
	assert.Equal(t, alphabet.Default, m.Alphabet())
}
