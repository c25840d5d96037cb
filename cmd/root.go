// Copyright © 2024 The Quill authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Quill — concatenative stack language interpreter",
	Long: `Quill is a small concatenative stack language implemented in Go.  Programs
are sequences of words evaluated left to right against a shared data stack.

Getting started:
  quill run file.ql            Run a quill source file
  quill run -e '1 2 +'         Evaluate an expression
  quill repl                   Start an interactive REPL
  quill doc expand             Show documentation for a word
  quill doc -l                 List every word in the dictionary

Language overview:
  Integers and "strings" push themselves onto the stack.  Words execute
  immediately; quotations like { dup * } push unevaluated code that eval,
  if, and try run later.  name = expr defines a word in the dictionary.
  expand substitutes stack values into a quotation template, which is how
  the library builds loop and while from tail calls.  try runs a quotation
  with an error handler: { 1 0 / } { echo } try.

Standard library words (loaded automatically):
  dup swap over rot -rot nip   Stack shuffles built from pick and roll
  loop while                   Combinators built from expand
  interpret                    Load, parse, and evaluate a source file
  ps1 repl                     The interactive session, written in quill

Documentation is built in: use 'inspect name' in the REPL or quill doc
<name> from the command line.

More information:
  Source code:     https://github.com/quill-lang/quill`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.quill.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".quill" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".quill")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
