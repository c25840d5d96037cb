// Copyright © 2024 The Quill authors

package quill_test

import (
	"testing"

	"github.com/quill-lang/quill/quilltest"
)

func TestTry(t *testing.T) {
	tests := quilltest.TestSuite{
		{"body-succeeds", quilltest.TestSequence{
			// the handler never runs when the body completes.
			{`{ 1 2 + } { "handled" } try`, `( 3 )`, "", ""},
		}},
		{"handler-receives-error", quilltest.TestSequence{
			{`{ 1 0 / } { } try`, `( divide-by-zero: 1 / 0 )`, "", ""},
			{`drop { fnord } { echo } try`, `()`, "undefined-word: undefined word: fnord\n", ""},
		}},
		{"depth-restored", quilltest.TestSequence{
			// values the body pushed above the try depth are discarded before
			// the error is delivered.
			{`1 { 2 3 fnord } { } try`, `( 1 undefined-word: undefined word: fnord )`, "", ""},
			{`drop depth`, `( 1 1 )`, "", ""},
		}},
		{"handler-errors-propagate", quilltest.TestSequence{
			{`{ 1 0 / } { drop fnord } try`, `()`, "", "undefined-word"},
		}},
		{"nested-try", quilltest.TestSequence{
			{`{ { 1 0 / } { drop "inner" } try } { drop "outer" } try`, `( "inner" )`, "", ""},
			{`clear { { 1 2 + } { drop "inner" } try fnord } { drop "outer" } try`, `( "outer" )`, "", ""},
		}},
	}
	quilltest.RunTestSuite(t, tests)
}

func TestErrorValuesAsData(t *testing.T) {
	tests := quilltest.TestSuite{
		{"errors-are-values", quilltest.TestSequence{
			// a delivered error is ordinary data: it can be copied, compared,
			// and dropped without re-raising.
			{`{ fnord } { } try`, `( undefined-word: undefined word: fnord )`, "", ""},
			{`0 pick ==`, `( true )`, "", ""},
			{`drop { fnord } { } try { 1 0 / } { } try`,
				`( undefined-word: undefined word: fnord divide-by-zero: 1 / 0 )`, "", ""},
			// errors compare by condition name.
			{`==`, `( false )`, "", ""},
			{`drop`, `()`, "", ""},
		}},
	}
	quilltest.RunTestSuite(t, tests)
}

func TestStepLimit(t *testing.T) {
	tests := quilltest.TestSuite{
		{"runaway-recursion", quilltest.TestSequence{
			{`spin = { spin }`, `()`, "", ""},
			{`spin`, `()`, "", "step-limit-exceeded"},
		}},
		{"step-limit-bypasses-try", quilltest.TestSequence{
			// the limit is a host safeguard, not a program error; handlers do
			// not observe it.
			{`spin = { spin }`, `()`, "", ""},
			{`{ spin } { drop "caught" } try`, `()`, "", "step-limit-exceeded"},
		}},
	}
	quilltest.RunTestSuite(t, tests)
}
