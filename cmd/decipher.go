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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
)

// decipherCmd represents the decipher command
var decipherCmd = &cobra.Command{
	Use:     "decipher",
	Aliases: []string{"decrypt"},
	Short:   "Decipher an enciphered message",
	Long: `Decipher a message enciphered by enigma4j. PEM-armored input restores the
machine settings from the armor headers; plain input relies on the
configured model, rotors and positions matching the enciphering side.`,
	Run: func(cmd *cobra.Command, args []string) {
		decipher()
	},
}

func init() {
	rootCmd.AddCommand(decipherCmd)
}

func decipher() {
	settings := resolveSettings()

	fin, fout := getInputAndOutputFiles()
	defer fout.Close()

	bRdr := bufio.NewReader(fin)
	var ciphertext []byte
	var err error

	b, peekErr := bRdr.Peek(5)
	if peekErr == nil && string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		settings = settingsFromHeaders(settings, blck)
		ciphertext, err = io.ReadAll(pRdr)
	} else {
		ciphertext, err = io.ReadAll(lines.CombineLines(bRdr))
	}
	checkError(err)
	if fin != os.Stdin {
		fin.Close()
	}

	instance, _ := buildMachine(settings)

	plaintext, err := instance.Process(sanitize(instance, string(ciphertext)))
	cobra.CheckErr(err)

	fmt.Fprintln(fout, plaintext)
}

// settingsFromHeaders applies the machine settings carried in the PEM armor
// headers. Headers take precedence over flags and configuration since they
// describe the machine that produced the message.
func settingsFromHeaders(settings machineSettings, blck pem.Block) machineSettings {
	if model, ok := blck.Headers["Model"]; ok {
		settings.model = model
	}
	if rotors, ok := blck.Headers["Rotors"]; ok {
		settings.rotors = strings.Split(rotors, ",")
	}
	if positions, ok := blck.Headers["Positions"]; ok {
		settings.positions = splitPositions(positions)
	}
	if patchList, ok := blck.Headers["Patches"]; ok {
		settings.patches = strings.Split(patchList, ",")
	}

	return settings
}

func splitPositions(positions string) []int {
	parts := strings.Split(positions, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		cobra.CheckErr(err)
		values = append(values, value)
	}

	return values
}
