// Copyright © 2024 The Quill authors

package lexer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/quill-lang/quill/parser/token"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []*token.Token
	}{
		{``, []*token.Token{
			testToken(token.EOF, ""),
		}},
		{`abc`, []*token.Token{
			testToken(token.WORD, "abc"),
			testToken(token.EOF, ""),
		}},
		{`{ dup * } ;`, []*token.Token{
			testToken(token.BRACE_L, "{"),
			testToken(token.WORD, "dup"),
			testToken(token.WORD, "*"),
			testToken(token.BRACE_R, "}"),
			testToken(token.SEP, ";"),
			testToken(token.EOF, ""),
		}},
		{`{dup}`, []*token.Token{
			testToken(token.BRACE_L, "{"),
			testToken(token.WORD, "dup"),
			testToken(token.BRACE_R, "}"),
			testToken(token.EOF, ""),
		}},
		{`x = 1`, []*token.Token{
			testToken(token.WORD, "x"),
			testToken(token.ASSIGN, "="),
			testToken(token.INT, "1"),
			testToken(token.EOF, ""),
		}},
		// Assignment needs whitespace; =1 scans as a single word.
		{`x=1`, []*token.Token{
			testToken(token.WORD, "x"),
			testToken(token.WORD, "=1"),
			testToken(token.EOF, ""),
		}},
		// A lone = assigns but longer runs of word runes are words.
		{`== =x ===`, []*token.Token{
			testToken(token.WORD, "=="),
			testToken(token.WORD, "=x"),
			testToken(token.WORD, "==="),
			testToken(token.EOF, ""),
		}},
		{`10 -5 +5 0 12abc -`, []*token.Token{
			testToken(token.INT, "10"),
			testToken(token.INT, "-5"),
			testToken(token.INT, "+5"),
			testToken(token.INT, "0"),
			testToken(token.WORD, "12abc"),
			testToken(token.WORD, "-"),
			testToken(token.EOF, ""),
		}},
		{`"abc" ""`, []*token.Token{
			testToken(token.STRING, `"abc"`),
			testToken(token.STRING, `""`),
			testToken(token.EOF, ""),
		}},
		{`"a\"b" "x\ny"`, []*token.Token{
			testToken(token.STRING, `"a\"b"`),
			testToken(token.STRING, `"x\ny"`),
			testToken(token.EOF, ""),
		}},
		{"1 # trailing comment\n2", []*token.Token{
			testToken(token.INT, "1"),
			testToken(token.COMMENT, "# trailing comment"),
			testToken(token.INT, "2"),
			testToken(token.EOF, ""),
		}},
		{`#`, []*token.Token{
			testToken(token.COMMENT, "#"),
			testToken(token.EOF, ""),
		}},
		{"\"abc\ndef\"", []*token.Token{
			testToken(token.ERROR, "unterminated string literal"),
		}},
		{`"abc`, []*token.Token{
			testToken(token.ERROR, "unexpected EOF"),
		}},
	}
testloop:
	for i, test := range tests {
		lex := New(token.NewScanner("", strings.NewReader(test.input)))
		var tokens []*token.Token
		numToken := 0
		for {
			toks := lex.ReadToken()
			if len(toks) != 1 {
				t.Fatalf("test %d: lexer returned %d tokens", i, len(toks))
			}
			tok := toks[0]
			tok.Source = nil
			tokens = append(tokens, tok)
			if tok.Type == token.EOF || tok.Type == token.ERROR || tok.Type == token.INVALID {
				break
			}
			numToken++
			if numToken > 100000 {
				t.Errorf("test %d: apparent infinite scanning loop", i)
				for _, tok := range tokens[len(tokens)-10:] {
					t.Log(tok)
				}
				continue testloop
			}
		}
		if !reflect.DeepEqual(tokens, test.tokens) {
			t.Errorf("test %d: unexpected tokens for input", i)
			t.Logf("source:\n\t%s", test.input)
			t.Logf("tokens:")
			for _, tok := range tokens {
				t.Logf("\t%v %q", tok.Type, tok.Text)
			}
		}
	}
}

func testToken(typ token.Type, text string) *token.Token {
	return &token.Token{
		Type: typ,
		Text: text,
	}
}
