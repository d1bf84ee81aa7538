/*
Copyright © 2026 The enigma4j authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mp911de/enigma4j/inventory"
	"github.com/mp911de/enigma4j/machine"
)

var usePem bool

// encipherCmd represents the encipher command
var encipherCmd = &cobra.Command{
	Use:     "encipher [message]",
	Aliases: []string{"encrypt"},
	Short:   "Encipher a message",
	Long: `Encipher a message with the configured machine model. Characters outside
the machine's alphabet (spaces, punctuation, line breaks) are dropped
before processing. The machine settings required to decipher the message
can be embedded in a PEM armor using --usePem.`,
	Run: func(cmd *cobra.Command, args []string) {
		encipher(args)
	},
}

func init() {
	rootCmd.AddCommand(encipherCmd)
	encipherCmd.Flags().BoolVarP(&usePem, "usePem", "u", false, "wrap the result in a PEM block carrying the machine settings")
}

func encipher(args []string) {
	settings := resolveSettings()
	instance, model := buildMachine(settings)
	startPositions := instance.RotorPositions()

	fin, fout := getInputAndOutputFiles()
	defer fout.Close()

	text := sanitize(instance, readMessage(args, fin))
	if fin != os.Stdin {
		fin.Close()
	}

	// Writing through the machine writer enciphers the message.
	var ciphertext bytes.Buffer
	_, err := io.WriteString(machine.NewWriter(&ciphertext, instance), text)
	cobra.CheckErr(err)

	if usePem {
		var blck pem.Block
		blck.Type = "Enigma4j Enciphered Message"
		blck.Headers = make(map[string]string)
		blck.Headers["Model"] = model.Name()
		blck.Headers["Rotors"] = strings.Join(chainNames(settings, model), ",")
		blck.Headers["Positions"] = joinPositions(startPositions)
		if len(settings.patches) > 0 {
			blck.Headers["Patches"] = strings.Join(settings.patches, ",")
		}
		_, err = io.Copy(fout, pem.ToPem(&ciphertext, blck))
	} else {
		_, err = io.Copy(fout, lines.SplitToLines(&ciphertext))
		fmt.Fprintln(fout)
	}
	checkError(err)
}

// readMessage obtains the message to encipher from either the command line
// arguments, the input stream, or - when stdin is a terminal - an
// interactive prompt.
func readMessage(args []string, fin *os.File) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}

	if fin == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "Enter the message: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		checkError(err)
		return line
	}

	raw, err := io.ReadAll(fin)
	cobra.CheckErr(err)

	return string(raw)
}

// chainNames returns the rotor chain of the settings, falling back to the
// model's default configuration.
func chainNames(settings machineSettings, model inventory.Model) []string {
	if len(settings.rotors) > 0 {
		return settings.rotors
	}

	names := make([]string, 0, len(model.DefaultConfiguration()))
	for _, r := range model.DefaultConfiguration() {
		names = append(names, r.Name())
	}

	return names
}

func joinPositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}

	return strings.Join(parts, ",")
}
