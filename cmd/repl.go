// Copyright © 2024 The Quill authors

package cmd

import (
	"github.com/quill-lang/quill/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive quill REPL",
	Long: `Start an interactive read-eval-print loop for quill.

The standard library is loaded automatically.  The prompt renders the data
stack, so the session state is always visible.  Line editing and in-session
command history are supported via readline.  Use Ctrl-D or the bye word to
exit.

Example REPL session:
  > 1 2
  1 ~> 2 > +
  3 > 10 *
  30 > double = { 2 * }
  30 > double
  60 > drop
  > { 1 0 / } { echo } try
  divide-by-zero: 1 / 0
  > bye`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl(repl.DefaultPrompt)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
