// Copyright © 2024 The Quill authors

// Package quilltest provides a harness for testing quill programs.  The
// central tool is TestSuite, which scripts a session of expressions against
// a shared data stack and checks the stack rendering and printed output
// after every step.
package quilltest

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quill-lang/quill/parser"
	"github.com/quill-lang/quill/quill"
	"github.com/quill-lang/quill/quill/quillib"
)

// MaxTestSteps bounds evaluation during tests so a buggy loop fails with a
// step-limit error instead of hanging the test binary.
const MaxTestSteps = 1 << 20

func BenchmarkParse(path string, r func() quill.Reader) func(*testing.B) {
	return func(b *testing.B) {
		buf, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			b.Fatalf("Unable to read source file %v: %v", path, err)
		}
		b.SetBytes(int64(len(buf)))
		for i := 0; i < b.N; i++ {
			_, err := r().Read("test", bytes.NewReader(buf))
			if err != nil {
				b.Fatalf("Parse failure: %v", err)
			}
		}
	}
}

// Runner constructs isolated quill environments for tests.
type Runner struct {
	// Loader initializes the dictionary of a new test environment.  When
	// Loader is nil quillib.LoadLibrary is used.
	Loader func(*quill.Env) *quill.Val

	// Teardown runs after each file executed by RunTestFile.  Any error
	// returned by the teardown function is reported as a test failure.
	Teardown func(*quill.Env) *quill.Val
}

// NewEnv returns a fresh environment whose output streams log through t.
func (r *Runner) NewEnv(t testing.TB) (*quill.Env, error) {
	logger := NewLogger(t)
	runtime := &quill.Runtime{
		Reader: parser.NewReader(),
		Stdout: logger,
		Stderr: logger,
	}
	env := quill.NewEnv(runtime)
	err := quill.GoError(quill.InitializeUserEnv(env, quill.WithMaxSteps(MaxTestSteps)))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize quill environment: %v", err)
	}
	loader := r.Loader
	if loader == nil {
		loader = quillib.LoadLibrary
	}
	err = quill.GoError(loader(env))
	if err != nil {
		return nil, fmt.Errorf("failed to load standard library: %v", err)
	}
	return env, nil
}

// RunTestFile executes the quill source file at path in a fresh environment.
// A program error is reported as a test failure.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	env, enverr := r.NewEnv(t)
	if enverr != nil {
		t.Error(enverr.Error())
		return
	}
	defer env.Runtime.Stderr.(*Logger).Flush()
	if r.Teardown != nil {
		defer r.Teardown(env)
	}
	err = quill.GoError(env.Load(filepath.Base(path), bytes.NewReader(source)))
	if err != nil {
		r.QuillError(t, err)
	}
}

func (r *Runner) QuillError(t testing.TB, err error) {
	lerr, ok := err.(*quill.ErrorVal)
	if !ok {
		t.Error(err)
		return
	}
	t.Error(lerr.Error())
}

// TestSequence is a sequence of quill expressions evaluated in order against
// a single shared data stack.
type TestSequence []struct {
	Expr   string // a quill expression
	Stack  string // rendering of the data stack after evaluation
	Output string // output written to Runtime.Stdout during evaluation
	Err    string // expected error condition, empty when evaluation succeeds
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated quill
// environments with the standard library loaded.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		log.Printf("test %d -- %s", i, test.Name)
		env := quill.NewEnv(nil)
		var outBuf bytes.Buffer
		err := quill.GoError(quill.InitializeUserEnv(env,
			quill.WithMaxSteps(MaxTestSteps),
			quill.WithReader(parser.NewReader()),
			quill.WithStdout(&outBuf),
			quill.WithStderr(io.Discard),
		))
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		err = quill.GoError(quillib.LoadLibrary(env))
		if err != nil {
			t.Errorf("test %d %q: stdlib: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			outBuf.Reset()
			v, err := env.Runtime.Reader.Read("test", strings.NewReader(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			lerr := env.RunProgram(v)
			if lerr.Type == quill.QError {
				cond := (*quill.ErrorVal)(lerr).Condition()
				if expr.Err == "" {
					t.Errorf("test %d %q: expr %d: unexpected error: %v", i, test.Name, j, quill.GoError(lerr))
				} else if cond != expr.Err {
					t.Errorf("test %d %q: expr %d: expected error condition %s (got %s: %v)", i, test.Name, j, expr.Err, cond, quill.GoError(lerr))
				}
			} else if expr.Err != "" {
				t.Errorf("test %d %q: expr %d: expected error condition %s (got none)", i, test.Name, j, expr.Err)
			}
			stack := env.Data.Snapshot().String()
			if stack != expr.Stack {
				t.Errorf("test %d %q: expr %d: expected stack %s (got %s)", i, test.Name, j, expr.Stack, stack)
			}
			if outBuf.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, outBuf.String())
			}
		}
	}
}

// RunBenchmark runs a standard benchmark that executes expressions parsed
// from source.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	p := parser.NewReader()
	exprs, err := p.Read("benchmark", strings.NewReader(source))
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}
	for i := 0; i < b.N; i++ {
		env := quill.NewEnv(nil)
		err := quill.GoError(quill.InitializeUserEnv(env,
			quill.WithReader(p),
			quill.WithStdout(io.Discard),
			quill.WithStderr(io.Discard),
		))
		if err != nil {
			b.Fatal(err)
		}
		err = quill.GoError(quillib.LoadLibrary(env))
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		for i, expr := range exprs {
			lerr := env.RunProgram([]*quill.Val{expr})
			if lerr.Type == quill.QError {
				b.Fatalf("expr %d: %v", i, lerr)
			}
		}
		b.StopTimer()
	}
}
