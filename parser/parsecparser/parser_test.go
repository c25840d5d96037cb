// Copyright © 2024 The Quill authors

package parsecparser

import (
	"strings"
	"testing"

	"github.com/quill-lang/quill/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVal(t *testing.T) {
	tests := []struct {
		source string
		output string
	}{
		{`0`, `0`},
		{`12`, `12`},
		{`-5`, `-5`},
		{`+5`, `5`},
		{`abc`, `abc`},
		{`==`, `==`},
		{`"xyz"`, `"xyz"`},
		{`"x\nyz"`, `"x\nyz"`},
		{`""`, `""`},
		{`{}`, `{}`},
		{`{ 1 2 3 }`, `{ 1 2 3 }`},
		{`{1 2 3}`, `{ 1 2 3 }`},
		{`{ 1 "abc" { x y } }`, `{ 1 "abc" { x y } }`},
		{`x = 1`, `x = 1`},
		{`double = { 2 * }`, `double = { 2 * }`},
		{`; 1`, `1`},
		{`# leading comment
		1`, `1`},
		{`{ 1 # comment
		2 }`, `{ 1 2 }`},
	}

	for i, test := range tests {
		vals, n, err := ParseVal([]byte(test.source))
		if err != nil {
			t.Errorf("test %d: parse error: %v", i, err)
			continue
		}
		assert.Equal(t, len(test.source), n, "test %d", i)
		if len(vals) != 1 {
			t.Errorf("test %d: parsed %d expressions", i, len(vals))
			continue
		}
		assert.Equal(t, test.output, vals[0].String(), "test %d", i)
	}
}

func TestParseValErrors(t *testing.T) {
	tests := []struct {
		source string
		errmsg string
	}{
		{`{ 1 2`, `unmatched`},
		{`{ 1 { 2 }`, `unmatched`},
		{`}`, `unexpected source text`},
	}

	for i, test := range tests {
		_, _, err := ParseVal([]byte(test.source))
		if err == nil {
			t.Errorf("test %d: did not produce an error", i)
			continue
		}
		t.Log(err)
		assert.Contains(t, err.Error(), test.errmsg, "test %d", i)
	}
}

func TestReader(t *testing.T) {
	r := NewReader()
	vals, err := r.Read("test", strings.NewReader(`1 2 + double = { 2 * }`))
	require.NoError(t, err)
	require.Len(t, vals, 4)
	assert.Equal(t, `1`, vals[0].String())
	assert.Equal(t, `2`, vals[1].String())
	assert.Equal(t, `+`, vals[2].String())
	assert.Equal(t, `double = { 2 * }`, vals[3].String())
}

// The combinator reader and the default reader accept the same language.
func TestReaderAgreement(t *testing.T) {
	const source = `
# stack shuffles over a quotation literal
1 2 { swap } eval
greet = { "hello, " swap strcat echo }
{ "world" greet } eval
`
	pvals, err := NewReader().Read("test", strings.NewReader(source))
	require.NoError(t, err)
	rvals, err := rdparser.NewReader().Read("test", strings.NewReader(source))
	require.NoError(t, err)
	require.Equal(t, len(rvals), len(pvals))
	for i := range rvals {
		assert.Equal(t, rvals[i].String(), pvals[i].String(), "expr %d", i)
	}
}

func BenchmarkParseVal(b *testing.B) {
	const source = `
double = { 2 * }
count = { { N } { N 0 > { N echo N 1 - count } { } if } expand eval }
{ 10 double count } { echo } try
`
	b.SetBytes(int64(len(source)))
	for i := 0; i < b.N; i++ {
		_, _, err := ParseVal([]byte(source))
		if err != nil {
			b.Fatalf("Parse failure: %v", err)
		}
	}
}
