// Copyright © 2024 The Quill authors

package cmd

import (
	"fmt"
	"os"

	"github.com/quill-lang/quill/parser"
	"github.com/quill-lang/quill/quill"
	"github.com/quill-lang/quill/quill/quillib"
	"github.com/quill-lang/quill/quill/x/profiler"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
	runCallgrind  string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run quill code",
	Long: `Run quill code supplied via the command line or a file.

Each argument is executed in order against a single shared data stack, so
several files compose the way words on one line do.  With -e the arguments
are treated as source text instead of file paths.`,
	Run: func(cmd *cobra.Command, args []string) {
		env := newUserEnv()
		if runCallgrind != "" {
			p := profiler.NewCallgrindProfiler(env.Runtime)
			if err := p.SetFile(runCallgrind); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if err := p.Enable(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer func() {
				if err := p.Complete(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
			}()
		}
		for i := range args {
			var res *quill.Val
			if runExpression {
				res = env.LoadString(fmt.Sprintf("arg%d", i+1), args[i])
			} else {
				res = env.LoadFile(args[i])
			}
			if res.Type == quill.QError {
				if runExpression {
					renderQuillError(res)
				} else {
					renderQuillError(res, args[i])
				}
				os.Exit(1)
			}
		}
		if runPrint {
			fmt.Println(env.Data.Snapshot())
		}
	},
}

// newUserEnv builds the environment used by non-interactive commands.  It
// exits on initialization failure.
func newUserEnv() *quill.Env {
	env := quill.NewEnv(nil)
	env.Runtime.Reader = parser.NewReader()
	env.Runtime.Library = &quill.RelativeFileSystemLibrary{}
	rc := quill.InitializeUserEnv(env)
	if rc.Type == quill.QError {
		fmt.Fprintln(os.Stderr, rc)
		os.Exit(1)
	}
	rc = quillib.LoadLibrary(env)
	if rc.Type == quill.QError {
		fmt.Fprintln(os.Stderr, rc)
		os.Exit(1)
	}
	return env
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as quill expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print the final data stack to stdout")
	runCmd.Flags().StringVar(&runCallgrind, "callgrind-file", "",
		"Write a callgrind profile of the evaluation to the given file")
}
