// Package inventory holds the catalog of machine models: alphabets, named
// rotor wirings, notch tables and default rotor configurations. It is the
// configuration layer in front of the engine and owns the structural
// validation (entry rotor first, reflecting rotor last) that the engine
// itself does not perform.
package inventory

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mp911de/enigma4j/machine"
	"github.com/mp911de/enigma4j/machine/alphabet"
	"github.com/mp911de/enigma4j/machine/plugboard"
	"github.com/mp911de/enigma4j/machine/rotor"
)

var (
	// ErrUnknownModel is returned when no model exists under the requested
	// name.
	ErrUnknownModel = errors.New("inventory: no such model")

	// ErrUnknownRotor is returned when a rotor cannot be looked up by name.
	ErrUnknownRotor = errors.New("inventory: no such rotor")

	// ErrUnknownNotchTable is returned when a model references a notch
	// table that is not part of the inventory resource.
	ErrUnknownNotchTable = errors.New("inventory: no such notch table")

	// ErrRotorOrder is returned when a configuration places an entry rotor
	// anywhere but first or a reflecting rotor anywhere but last.
	ErrRotorOrder = errors.New("inventory: invalid rotor order")
)

//go:embed inventory.json
var inventoryJSON []byte

type jsonNotchTable struct {
	At map[string][]string `json:"at"`
}

type jsonModel struct {
	Alphabet             string            `json:"alphabet"`
	Notch                string            `json:"notch"`
	Rotors               map[string]string `json:"rotors"`
	DefaultConfiguration []string          `json:"defaultConfiguration"`
}

type jsonInventory struct {
	Notches map[string]jsonNotchTable `json:"notches"`
	Models  map[string]jsonModel      `json:"models"`
}

// Inventory is the loaded model catalog.
type Inventory struct {
	models map[string]Model
}

// Load parses the embedded inventory resource.
func Load() (*Inventory, error) {
	var parsed jsonInventory
	if err := json.Unmarshal(inventoryJSON, &parsed); err != nil {
		return nil, fmt.Errorf("inventory: cannot load inventory: %w", err)
	}

	models := make(map[string]Model, len(parsed.Models))
	for name, descriptor := range parsed.Models {
		model, err := parseModel(name, descriptor, parsed.Notches)
		if err != nil {
			return nil, err
		}
		models[name] = model
	}

	return &Inventory{models: models}, nil
}

func parseModel(name string, descriptor jsonModel, notches map[string]jsonNotchTable) (Model, error) {
	a, err := alphabet.New(descriptor.Alphabet)
	if err != nil {
		return Model{}, fmt.Errorf("inventory: model %q: %w", name, err)
	}

	table, ok := notches[descriptor.Notch]
	if !ok {
		return Model{}, fmt.Errorf("%w: %q (model %q)", ErrUnknownNotchTable, descriptor.Notch, name)
	}

	rotorNames := make([]string, 0, len(descriptor.Rotors))
	for rotorName := range descriptor.Rotors {
		rotorNames = append(rotorNames, rotorName)
	}
	sort.Strings(rotorNames)

	rotors := make([]rotor.Rotor, 0, len(rotorNames))
	for _, rotorName := range rotorNames {
		r, err := rotor.New(rotorName, descriptor.Rotors[rotorName], table.At[rotorName])
		if err != nil {
			return Model{}, fmt.Errorf("inventory: model %q: %w", name, err)
		}
		rotors = append(rotors, r)
	}

	model := Model{name: name, alphabet: a, rotors: rotors}

	if len(descriptor.DefaultConfiguration) == 0 {
		model.defaults = rotors
		return model, nil
	}

	defaults := make([]rotor.Rotor, 0, len(descriptor.DefaultConfiguration))
	for _, ref := range descriptor.DefaultConfiguration {
		r, err := model.Rotor(ref)
		if err != nil {
			return Model{}, fmt.Errorf("inventory: model %q default configuration: %w", name, err)
		}
		defaults = append(defaults, r)
	}
	model.defaults = defaults

	return model, nil
}

// Models returns the available model names, sorted.
func (inv *Inventory) Models() []string {
	names := make([]string, 0, len(inv.models))
	for name := range inv.models {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Model retrieves a model by name.
func (inv *Inventory) Model(name string) (Model, error) {
	model, ok := inv.models[name]
	if !ok {
		return Model{}, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}

	return model, nil
}

// Model describes a machine model: its alphabet, the rotors available to it
// and the default rotor configuration.
type Model struct {
	name     string
	alphabet alphabet.Alphabet
	rotors   []rotor.Rotor
	defaults []rotor.Rotor
}

// Name returns the model name.
func (m Model) Name() string {
	return m.name
}

// Alphabet returns the model's alphabet.
func (m Model) Alphabet() alphabet.Alphabet {
	return m.alphabet
}

// Rotors returns all rotors available to the model, sorted by name.
func (m Model) Rotors() []rotor.Rotor {
	rotors := make([]rotor.Rotor, len(m.rotors))
	copy(rotors, m.rotors)
	return rotors
}

// DefaultConfiguration returns the model's default rotor chain.
func (m Model) DefaultConfiguration() []rotor.Rotor {
	defaults := make([]rotor.Rotor, len(m.defaults))
	copy(defaults, m.defaults)
	return defaults
}

// Rotor looks up a rotor by name, ignoring case.
func (m Model) Rotor(name string) (rotor.Rotor, error) {
	for _, r := range m.rotors {
		if strings.EqualFold(r.Name(), name) {
			return r, nil
		}
	}

	return rotor.Rotor{}, fmt.Errorf("%w: %q", ErrUnknownRotor, name)
}

// NewMachine creates a machine using the model's configuration defaults:
// the default rotor chain, all positions zero and an empty plugboard.
func (m Model) NewMachine() (*machine.Machine, error) {
	return machine.New(m.alphabet, m.defaults, plugboard.Empty(m.alphabet))
}

// Config selects rotors, start positions and plugboard patches for a
// machine instance. The zero value yields the model defaults.
type Config struct {
	// Rotors names the rotor chain in signal order. Empty means the
	// model's default configuration.
	Rotors []string

	// Positions are the start positions of the rotating rotors in chain
	// order. Missing positions are padded with zero.
	Positions []int

	// Patches are plugboard tuples such as "AT", applied in order.
	Patches []string
}

// Machine assembles a machine instance from cfg. The rotor chain is
// validated structurally before construction: an entry rotor may only sit
// at the first position and a reflecting rotor only at the last.
func (m Model) Machine(cfg Config) (*machine.Machine, error) {
	rotors := m.defaults
	if len(cfg.Rotors) > 0 {
		rotors = make([]rotor.Rotor, 0, len(cfg.Rotors))
		for _, name := range cfg.Rotors {
			r, err := m.Rotor(name)
			if err != nil {
				return nil, err
			}
			rotors = append(rotors, r)
		}
	}

	rotating := 0
	for i, r := range rotors {
		if r.IsRotating() {
			rotating++
			continue
		}
		if r.Role() == rotor.Entry && i != 0 {
			return nil, fmt.Errorf("%w: entry rotor %q must be first, not at position %d", ErrRotorOrder, r.Name(), i)
		}
		if r.Role() == rotor.Reflecting && i != len(rotors)-1 {
			return nil, fmt.Errorf("%w: reflecting rotor %q must be last, not at position %d", ErrRotorOrder, r.Name(), i)
		}
	}

	positions := make([]int, rotating)
	copy(positions, cfg.Positions)
	if len(cfg.Positions) > rotating {
		return nil, fmt.Errorf("%w: got %d, want %d", machine.ErrPositionCount, len(cfg.Positions), rotating)
	}

	board := plugboard.Empty(m.alphabet)
	for _, patch := range cfg.Patches {
		next, err := board.WithPatch(patch)
		if err != nil {
			return nil, err
		}
		board = next
	}

	instance, err := machine.New(m.alphabet, rotors, board)
	if err != nil {
		return nil, err
	}
	if err := instance.SetRotorPositions(positions...); err != nil {
		return nil, err
	}

	return instance, nil
}
