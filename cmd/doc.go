// Copyright © 2024 The Quill authors

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/quill-lang/quill/quill"
	"github.com/quill-lang/quill/quill/quillib/libhelp"
	"github.com/spf13/cobra"
)

var docSourceFile string
var docListWords bool
var docMissing bool

// docCmd represents the doc command
var docCmd = &cobra.Command{
	Use:   "doc [flags] WORD",
	Short: "Show documentation for dictionary words",
	Long: `Show built-in documentation for quill words.

By default, looks up a word by name and prints its stack effect and
description.  User definitions loaded with -f print their bodies instead.

Examples:
  quill doc expand                 Show docs for the expand word
  quill doc roll                   Show docs for the roll word
  quill doc -f mylib.ql my-word    Load a file, then show docs for my-word

Use -l to list every word in the dictionary:
  quill doc -l`,
	Run: func(cmd *cobra.Command, args []string) {
		if docListWords {
			if err := docExec("", libhelp.RenderWordList); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
		if docMissing {
			missing := libhelp.CheckMissing()
			for _, m := range missing {
				fmt.Println(m.Name)
			}
			if len(missing) > 0 {
				os.Exit(1)
			}
			return
		}
		if len(args) != 1 {
			_ = cmd.Help()
			os.Exit(1)
		}
		err := docExec(args[0], nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// docExec renders documentation to stdout.  When render is nil the query
// word is documented; otherwise render receives the prepared environment.
func docExec(query string, render func(w io.Writer, env *quill.Env) error) error {
	env := newUserEnv()
	if docSourceFile != "" {
		res := env.LoadFile(docSourceFile)
		if res.Type == quill.QError {
			renderQuillError(res, docSourceFile)
			os.Exit(1)
		}
	}
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush() //nolint:errcheck // best-effort flush on exit
	if render != nil {
		return render(out, env)
	}
	return libhelp.RenderWord(out, env, query)
}

func init() {
	rootCmd.AddCommand(docCmd)

	// Here flags for the doc command are defined
	docCmd.Flags().StringVarP(&docSourceFile, "source-file", "f", "",
		"Evaluate a quill source file before querying documentation.")
	docCmd.Flags().BoolVarP(&docListWords, "list-words", "l", false,
		"List every word in the dictionary with its stack effect.")
	docCmd.Flags().BoolVarP(&docMissing, "missing", "m", false,
		"List native words that are missing documentation.")
}
