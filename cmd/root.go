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
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mp911de/enigma4j/inventory"
	"github.com/mp911de/enigma4j/machine"
)

var (
	cfgFile        string
	modelName      string
	rotorNames     []string
	rotorPositions []int
	patches        []string
	inputFileName  string
	outputFileName string
	traceWiring    bool
	Version        string = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "enigma4j",
	Short: "A rotor cipher machine",
	Long: `enigma4j enciphers and deciphers messages with an emulated rotor cipher
machine: a chain of rotating substitution rotors behind a plugboard. The
same machine settings encipher and decipher a message.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enigma4j.yaml)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "machine model to use (see the models command)")
	rootCmd.PersistentFlags().StringSliceVarP(&rotorNames, "rotors", "r", nil, "rotor chain in signal order (default is the model configuration)")
	rootCmd.PersistentFlags().IntSliceVarP(&rotorPositions, "positions", "P", nil, "start positions of the rotating rotors")
	rootCmd.PersistentFlags().StringArrayVarP(&patches, "patch", "p", nil, "plugboard patch tuple such as AT (repeatable, up to 10)")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "name of the message file to encipher/decipher")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "name of the file receiving the result")
	rootCmd.PersistentFlags().BoolVar(&traceWiring, "trace", false, "log every wiring hop to stderr")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".enigma4j" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".enigma4j")
	}

	viper.SetDefault("model", "D")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// machineSettings are the resolved settings used to assemble a machine
// instance: flags take precedence over the config file, the config file
// over model defaults.
type machineSettings struct {
	model     string
	rotors    []string
	positions []int
	patches   []string
}

func resolveSettings() machineSettings {
	settings := machineSettings{
		model:     modelName,
		rotors:    rotorNames,
		positions: rotorPositions,
		patches:   patches,
	}

	if settings.model == "" {
		settings.model = viper.GetString("model")
	}
	if len(settings.rotors) == 0 {
		settings.rotors = viper.GetStringSlice("rotors")
	}
	if len(settings.positions) == 0 {
		settings.positions = viper.GetIntSlice("positions")
	}
	if len(settings.patches) == 0 {
		settings.patches = viper.GetStringSlice("patches")
	}

	return settings
}

// buildMachine assembles a machine instance from the resolved settings.
func buildMachine(settings machineSettings) (*machine.Machine, inventory.Model) {
	inv, err := inventory.Load()
	cobra.CheckErr(err)

	model, err := inv.Model(settings.model)
	cobra.CheckErr(err)

	instance, err := model.Machine(inventory.Config{
		Rotors:    settings.rotors,
		Positions: settings.positions,
		Patches:   settings.patches,
	})
	cobra.CheckErr(err)

	if traceWiring {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		instance.SetTrace(func(direction, stage string, position int, in, out byte) {
			logger.Debug(direction,
				"stage", stage,
				"position", position,
				"in", string(in),
				"out", string(out))
		})
	}

	return instance, model
}

/*
getInputAndOutputFiles will return the input and output files to use while
enciphering/deciphering a message. If input and/or output file names were
given, then those files will be opened. Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles() (*os.File, *os.File) {
	var fin *os.File
	var err error

	if len(inputFileName) > 0 && inputFileName != "-" {
		fin, err = os.Open(inputFileName)
		cobra.CheckErr(err)
	} else {
		fin = os.Stdin
	}

	var fout *os.File

	if len(outputFileName) > 0 && outputFileName != "-" {
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		fout = os.Stdout
	}

	return fin, fout
}

// sanitize upper-cases text and drops every character the machine's
// alphabet does not carry (whitespace, punctuation, line breaks). The
// engine itself rejects whole batches containing such characters; dropping
// them here is the traditional operator practice.
func sanitize(m *machine.Machine, text string) string {
	upper := strings.ToUpper(text)
	var b strings.Builder
	b.Grow(len(upper))

	for i := 0; i < len(upper); i++ {
		if m.Alphabet().Contains(upper[i]) {
			b.WriteByte(upper[i])
		}
	}

	return b.String()
}

// checkError checks for errors that are not io.EOF and io.ErrUnexpectedEOF.
func checkError(e error) {
	if e != io.EOF && e != io.ErrUnexpectedEOF {
		cobra.CheckErr(e)
	}
}
