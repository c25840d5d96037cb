// Copyright © 2024 The Quill authors

package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/quill-lang/quill/parser/token"
)

type LexFn func(*Lexer) []*token.Token

// delimRunes terminate a word and are never part of one.
const delimRunes = `{}"#;=`

type Lexer struct {
	scanner *token.Scanner
	lex     LexFn
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
		lex:     (*Lexer).readToken,
	}
	return lex
}

func (lex *Lexer) ReadToken() []*token.Token {
	return lex.lex(lex)
}

func (lex *Lexer) readToken() []*token.Token {
	lex.skipWhitespace()
	if !lex.scanner.Accept(func(c rune) bool { return true }) {
		if lex.scanner.EOF() {
			return lex.emit(token.EOF, "")
		}
		err := lex.scanner.Err()
		if err != nil {
			return lex.emitError(err, false)
		}
	}
	switch lex.scanner.Rune() {
	case '{':
		return lex.charToken(token.BRACE_L)
	case '}':
		return lex.charToken(token.BRACE_R)
	case ';':
		return lex.charToken(token.SEP)
	case '#':
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		return lex.emitText(token.COMMENT)
	case '=':
		// A lone = is the assignment operator; a longer run of word runes
		// starting with = (e.g. ==) is an ordinary word.
		lex.scanner.AcceptSeq(func(c rune) bool { return c == '=' })
		if lex.scanner.AcceptSeq(isWord) > 0 || len(lex.scanner.Text()) > 1 {
			return lex.emitText(token.WORD)
		}
		return lex.emitText(token.ASSIGN)
	case '"':
		return lex.readString()
	case '-', '+':
		if isDigit(lex.peekRune()) {
			return lex.readNumber()
		}
		return lex.readWord()
	default:
		if isDigit(lex.scanner.Rune()) {
			return lex.readNumber()
		}
		if isWord(lex.scanner.Rune()) {
			return lex.readWord()
		}
		err := fmt.Errorf("unexpected text starting with %q", lex.scanner.Rune())
		return lex.emit(token.INVALID, err.Error())
	}
}

func (lex *Lexer) emit(typ token.Type, text string) []*token.Token {
	tok := []*token.Token{{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitText(typ token.Type) []*token.Token {
	tok := lex.scanner.EmitToken(typ)
	return []*token.Token{tok}
}

func (lex *Lexer) emitError(err error, expectEOF bool) []*token.Token {
	if err == io.EOF {
		if expectEOF {
			return lex.emit(token.EOF, "")
		}
		return lex.emit(token.ERROR, "unexpected EOF")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) []*token.Token {
	return lex.emitError(fmt.Errorf(format, v...), false)
}

func (lex *Lexer) charToken(typ token.Type) []*token.Token {
	return lex.emitText(typ)
}

func (lex *Lexer) readString() []*token.Token {
	for {
		if lex.scanner.AcceptRune('"') {
			return lex.emitText(token.STRING)
		}
		if lex.scanner.AcceptRune('\n') {
			return lex.errorf("unterminated string literal")
		}
		if lex.scanner.AcceptRune('\\') {
			// Wait until parsing to check the escaped character
			if !lex.scanner.Accept(func(c rune) bool { return true }) {
				return lex.errorf("unterminated string literal")
			}
			continue
		}
		if !lex.scanner.Accept(func(c rune) bool { return true }) {
			err := lex.scanner.Err()
			if err != nil {
				return lex.errorf("scan failure: %v", err)
			}
			// A short final read can leave the scanner unable to report
			// EOF, so any errorless accept failure here means the input
			// ended before the closing quote.
			return lex.errorf("unexpected EOF")
		}
	}
}

func (lex *Lexer) readNumber() []*token.Token {
	lex.scanner.AcceptSeqDigit() // the first digit (or sign) already scanned
	if lex.scanner.AcceptSeq(isWord) > 0 {
		// 12abc scans as a single word token
		return lex.emitText(token.WORD)
	}
	return lex.emitText(token.INT)
	// the returned string may not actually be a usable number (overflow), but
	// we can find that out at parse time -- not scan time.
}

func (lex *Lexer) readWord() []*token.Token {
	lex.scanner.AcceptSeq(isWord)
	return lex.emitText(token.WORD)
}

func (lex *Lexer) skipWhitespace() {
	lex.scanner.AcceptSeqSpace()
	lex.scanner.Ignore()
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func isWord(c rune) bool {
	return !unicode.IsSpace(c) && !strings.ContainsRune(delimRunes, c) && c != 0
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
