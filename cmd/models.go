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
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mp911de/enigma4j/inventory"
)

// modelsCmd represents the models command
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available machine models and their rotors",
	Run: func(cmd *cobra.Command, args []string) {
		listModels()
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func listModels() {
	inv, err := inventory.Load()
	cobra.CheckErr(err)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	defer w.Flush()

	for _, name := range inv.Models() {
		model, err := inv.Model(name)
		cobra.CheckErr(err)

		var defaults []string
		for _, r := range model.DefaultConfiguration() {
			defaults = append(defaults, r.Name())
		}

		fmt.Fprintf(w, "%s\talphabet %s\n", model.Name(), model.Alphabet())
		fmt.Fprintf(w, "\tdefault chain: %s\n", strings.Join(defaults, ", "))
		for _, r := range model.Rotors() {
			notches := strings.Join(r.Notches(), ",")
			if notches == "" {
				notches = "-"
			}
			fmt.Fprintf(w, "\t%s\t%s\t%s\tnotches %s\n", r.Name(), r.Role(), r.Wiring(), notches)
		}
		fmt.Fprintln(w)
	}
}
