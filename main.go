// Package main - enigma4j is an emulation of an electromechanical rotor
// cipher machine: rotating substitution rotors, a reflecting rotor and an
// optional plugboard, wired into a self-inverse signal path.
package main

import "github.com/mp911de/enigma4j/cmd"

func main() {
	cmd.Execute()
}
