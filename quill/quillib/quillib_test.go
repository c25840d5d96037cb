// Copyright © 2024 The Quill authors

package quillib_test

import (
	"io"
	"testing"

	"github.com/quill-lang/quill/parser"
	"github.com/quill-lang/quill/quill"
	"github.com/quill-lang/quill/quill/quillib"
	"github.com/quill-lang/quill/quilltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLibrary(t *testing.T) {
	env := quill.NewEnv(nil)
	lerr := quill.InitializeUserEnv(env,
		quill.WithReader(parser.NewReader()),
		quill.WithStdout(io.Discard),
		quill.WithStderr(io.Discard),
	)
	require.NoError(t, quill.GoError(lerr))
	require.NoError(t, quill.GoError(quillib.LoadLibrary(env)))

	for _, name := range []string{"dup", "swap", "over", "rot", "-rot", "nip", "loop", "while", "interpret", "ps1", "repl"} {
		binding := env.Get(name)
		if binding == nil {
			t.Errorf("library does not define %s", name)
			continue
		}
		// library words are ordinary definitions, not native words.
		assert.Nil(t, binding.Builtin, "library word %s is native", name)
	}
}

func TestShuffleWords(t *testing.T) {
	tests := quilltest.TestSuite{
		{"shuffles", quilltest.TestSequence{
			{`1 2 dup`, `( 1 2 2 )`, "", ""},
			{`clear 1 2 swap`, `( 2 1 )`, "", ""},
			{`clear 1 2 over`, `( 1 2 1 )`, "", ""},
			{`clear 1 2 3 rot`, `( 2 3 1 )`, "", ""},
			{`clear 1 2 3 -rot`, `( 3 1 2 )`, "", ""},
			{`clear 1 2 nip`, `( 2 )`, "", ""},
		}},
		{"shuffle-identities", quilltest.TestSequence{
			{`1 2 3 rot rot rot`, `( 1 2 3 )`, "", ""},
			{`clear 1 2 3 -rot rot`, `( 1 2 3 )`, "", ""},
			{`clear 1 2 swap swap`, `( 1 2 )`, "", ""},
			{`clear 3 dup drop`, `( 3 )`, "", ""},
		}},
		{"shuffle-underflow", quilltest.TestSequence{
			{`1 swap`, `( 1 )`, "", "stack-underflow"},
		}},
	}
	quilltest.RunTestSuite(t, tests)
}

func TestCombinators(t *testing.T) {
	tests := quilltest.TestSuite{
		{"while-countdown", quilltest.TestSequence{
			{`3 { dup 0 > } { dup echo 1 - } while`, `( 0 )`, "3\n2\n1\n", ""},
		}},
		{"while-false-condition", quilltest.TestSequence{
			// the body never runs when the condition is false at entry.
			{`0 { dup 0 > } { "unreachable" echo } while`, `( 0 )`, "", ""},
		}},
		{"loop-until-error", quilltest.TestSequence{
			// loop repeats forever; an error is the only exit, and try turns
			// it back into control flow.
			{`{ 0 { 1 + dup echo dup 2 > { 1 0 / } { } if } loop } { drop } try`,
				`()`, "1\n2\n3\n", ""},
		}},
		{"tail-recursion-is-bounded", quilltest.TestSequence{
			// a deep countdown exercises the work list; host recursion this
			// deep would overflow the goroutine stack.
			{`20000 { dup 0 > } { 1 - } while`, `( 0 )`, "", ""},
		}},
	}
	quilltest.RunTestSuite(t, tests)
}

func TestPs1(t *testing.T) {
	tests := quilltest.TestSuite{
		{"empty-stack", quilltest.TestSequence{
			{`ps1`, `( "> " )`, "", ""},
		}},
		{"stack-rendering", quilltest.TestSequence{
			{`1 "hi" ps1`, `( 1 "hi" "1 ~> hi > " )`, "", ""},
		}},
	}
	quilltest.RunTestSuite(t, tests)
}

func TestInterpret(t *testing.T) {
	tests := quilltest.TestSuite{
		{"interpret-file", quilltest.TestSequence{
			{`21 "testdata/double.ql" interpret`, `( 42 )`, "", ""},
		}},
		{"missing-file", quilltest.TestSequence{
			{`"testdata/missing.ql" load`, `()`, "", "io-error"},
		}},
	}
	quilltest.RunTestSuite(t, tests)
}
