// Copyright © 2024 The Quill authors

package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/quill-lang/quill/parser"
	"github.com/quill-lang/quill/parser/lexer"
	"github.com/quill-lang/quill/parser/rdparser"
	"github.com/quill-lang/quill/parser/token"
	"github.com/quill-lang/quill/quill"
	"github.com/quill-lang/quill/quill/quillib"
)

// DefaultPrompt is shown when the data stack is empty.
const DefaultPrompt = "> "

type config struct {
	stdin  io.ReadCloser
	stderr io.WriteCloser
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output to the REPL.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// RunRepl runs a simple repl in a vanilla quill environment.  The prompt
// argument is shown when the data stack is empty; a non-empty stack renders
// into the prompt instead.
func RunRepl(prompt string, opts ...Option) {
	env := quill.NewEnv(nil)

	envOpts := []quill.Config{
		quill.WithReader(parser.NewReader()),
		quill.WithLibrary(&quill.RelativeFileSystemLibrary{}),
	}

	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		// Route all session output to one stream so a caller capturing the
		// REPL sees word output interleaved with errors and prompts.
		envOpts = append(envOpts,
			quill.WithStdout(cfg.stderr),
			quill.WithStderr(cfg.stderr))
	}

	rc := quill.InitializeUserEnv(env, envOpts...)
	if rc.Type == quill.QError {
		errlnf("Language initialization failure: %v", rc)
		os.Exit(1)
	}
	rc = quillib.LoadLibrary(env)
	if rc.Type == quill.QError {
		errlnf("Stdlib initialization failure: %v", rc)
		os.Exit(1)
	}

	RunEnv(env, prompt, opts...)
}

// RunEnv runs a simple repl with env as its environment.  The session reads
// one line at a time, evaluates every expression on the line against the
// shared data stack, and renders the stack into the next prompt.
func RunEnv(env *quill.Env, prompt string, opts ...Option) {
	if prompt == "" {
		prompt = DefaultPrompt
	}

	p := rdparser.NewInteractive(nil)
	p.SetPrompts(prompt, strings.Repeat(" ", len(prompt)))

	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		env.Runtime.Stderr = cfg.stderr
	}

	histFile := historyPath()
	ensureHistoryFilePermissions(histFile)
	rlCfg := &readline.Config{
		Stdout:            env.Runtime.Stderr,
		Stderr:            env.Runtime.Stderr,
		Prompt:            p.Prompt(),
		HistoryFile:       histFile,
		HistorySearchFold: true,
		AutoComplete:      &wordCompleter{env: env},
	}

	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		panic(err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	p.Read = func() []*token.Token {
		if !p.IsParsing() {
			base := stackPrompt(env, prompt)
			p.SetPrompts(base, strings.Repeat(" ", len(base)))
		}
		rl.SetPrompt(p.Prompt())
		for {
			var line []byte
			line, err = rl.ReadSlice()
			if err != nil && err != readline.ErrInterrupt {
				return []*token.Token{{
					Type: token.EOF,
					Text: "",
				}}
			}
			if err == readline.ErrInterrupt {
				line = nil
				continue
			}
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			var tokens []*token.Token
			scanner := token.NewScanner("stdin", bytes.NewReader(line))
			lex := lexer.New(scanner)
			for {
				tok := lex.ReadToken()
				if len(tok) != 1 {
					panic("bad tokens")
				}
				if tok[0].Type == token.EOF {
					// A trailing separator marks the end of the physical
					// line so a line-final word resolves without waiting
					// for a possible assignment operator on the next line.
					tokens = append(tokens, &token.Token{
						Type:   token.SEP,
						Text:   ";",
						Source: tok[0].Source,
					})
					return tokens
				}
				tokens = append(tokens, tok...)
				if tok[0].Type == token.ERROR {
					// This will work itself out eventually...
					return tokens
				}
			}
		}
	}

	for {
		expr, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(env.Runtime.Stderr, err) //nolint:errcheck // best-effort error display
			continue
		}
		val := env.RunProgram([]*quill.Val{expr})
		if val.Type == quill.QError {
			renderError(env.Runtime.Stderr, val)
		}
		if env.Terminated() {
			break
		}
	}
}

// stackPrompt renders the data stack into a prompt the way the ps1 library
// word does.  An empty stack yields the base prompt; otherwise the values
// are joined by " ~> " with a trailing " > ".
func stackPrompt(env *quill.Env, base string) string {
	snap := env.Data.Snapshot()
	if len(snap.Cells) == 0 {
		return base
	}
	parts := make([]string, 0, len(snap.Cells))
	for _, v := range snap.Cells {
		parts = append(parts, v.Display())
	}
	return strings.Join(parts, " ~> ") + " > "
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quill_history")
}

// ensureHistoryFilePermissions creates the history file if needed and
// restricts it to owner read/write.  Session history can contain pasted
// secrets.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0600) //#nosec G304
	if err != nil {
		return
	}
	f.Close() //nolint:errcheck,gosec // best-effort cleanup
	_ = os.Chmod(path, 0600)
}

func errlnf(format string, v ...interface{}) {
	if strings.HasSuffix(format, "\n") {
		errf(format, v...)
		return
	}
	errf(format+"\n", v...)
}

func errf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}
