// Copyright © 2024 The Quill authors

package rdparser

import (
	"io"
	"strconv"

	"github.com/quill-lang/quill/parser/token"
	"github.com/quill-lang/quill/quill"
)

type reader struct {
}

// NewReader returns a quill.Reader to use in a quill.Runtime.
func NewReader() quill.Reader {
	return &reader{}
}

// Read implements quill.Reader.
func (*reader) Read(name string, r io.Reader) ([]*quill.Val, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseProgram()
}

// ReadLocation is like Read but associates a physical location with the
// stream.
func (*reader) ReadLocation(name string, loc string, r io.Reader) ([]*quill.Val, error) {
	s := token.NewScanner(name, r)
	s.SetPath(loc)
	p := New(s)
	return p.ParseProgram()
}

// Parser is a quill parser.
type Parser struct {
	parsing bool
	src     *TokenSource
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{
		src: src,
	}
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return NewFromSource(NewTokenSource(scanner))
}

// Parse is a generic entry point that is similar to ParseExpression but is
// capable of handling EOF before reading an expression.
func (p *Parser) Parse() (*quill.Val, error) {
	p.ignoreTrivia()
	if p.src.IsEOF() {
		return nil, io.EOF
	}
	expr := p.ParseExpression()
	if expr.Type == quill.QError {
		return nil, quill.GoError(expr)
	}
	return expr, nil
}

// ParseProgram parses a series of expressions.
func (p *Parser) ParseProgram() ([]*quill.Val, error) {
	var exprs []*quill.Val

	for {
		expr, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	return exprs, nil
}

// ParseExpression parses a single expression.  Unlike Parse, ParseExpression
// requires an expression to be present in the input stream and will report
// unexpected EOF tokens encountered.
func (p *Parser) ParseExpression() *quill.Val {
	fn := p.parseExpression()

	// We have a token marking the beginning of an expression.  Flag that we
	// are currently in the middle of an expression while we finish parsing the
	// expression so that an Interactive parser can determine what state we are
	// in (and thus imply what the REPL prompt should be).
	if !p.parsing {
		p.parsing = true
		defer func() { p.parsing = false }()
	}

	return fn(p)
}

func (p *Parser) parseExpression() func(p *Parser) *quill.Val {
	p.ignoreTrivia()
	switch p.PeekType() {
	case token.INT:
		return (*Parser).ParseLiteralInt
	case token.STRING:
		return (*Parser).ParseLiteralString
	case token.WORD:
		return (*Parser).ParseWord
	case token.BRACE_L:
		return (*Parser).ParseQuotation
	case token.BRACE_R:
		return func(p *Parser) *quill.Val {
			p.ReadToken()
			return p.errorf(quill.CondUnmatchedSyntax, "unmatched %s", p.TokenText())
		}
	case token.ASSIGN:
		return func(p *Parser) *quill.Val {
			p.ReadToken()
			return p.errorf(quill.CondSyntaxError, "= is not preceded by a word")
		}
	case token.ERROR, token.INVALID:
		return func(p *Parser) *quill.Val {
			p.ReadToken()
			return p.errorf(quill.CondSyntaxError, "%s", p.TokenText())
		}
	default:
		return func(p *Parser) *quill.Val {
			p.ReadToken()
			return p.errorf(quill.CondSyntaxError, "unexpected token: %v", p.TokenType())
		}
	}
}

func (p *Parser) ParseLiteralInt() *quill.Val {
	if !p.Accept(token.INT) {
		return p.errorf(quill.CondSyntaxError, "invalid integer literal: %v", p.PeekType())
	}
	text := p.TokenText()
	x, err := strconv.Atoi(text)
	if err != nil {
		return p.errorf(quill.CondSyntaxError, "integer literal overflows int: %v", text)
	}
	return p.Int(x)
}

func (p *Parser) ParseLiteralString() *quill.Val {
	if !p.Accept(token.STRING) {
		return p.errorf(quill.CondSyntaxError, "invalid string literal: %v", p.PeekType())
	}
	s, err := strconv.Unquote(p.TokenText())
	if err != nil {
		return p.errorf(quill.CondSyntaxError, "invalid string literal: %v", p.TokenText())
	}
	return p.String(s)
}

// ParseWord parses a word, or an assignment form when the word is
// immediately followed by the assignment operator.  The assignment
// lookahead deliberately does not skip separators so that an interactive
// session terminating each line with a separator never blocks waiting for
// a = that could only arrive on the next line.
func (p *Parser) ParseWord() *quill.Val {
	if !p.Accept(token.WORD) {
		return p.errorf(quill.CondSyntaxError, "invalid word: %v", p.PeekType())
	}
	word := p.Word(p.TokenText())
	if p.PeekType() != token.ASSIGN {
		return word
	}
	p.Accept(token.ASSIGN)
	body := p.ParseExpression()
	if body.Type == quill.QError {
		return body
	}
	def := quill.Def(word.Str, body)
	def.Source = word.Source
	return def
}

func (p *Parser) ParseQuotation() *quill.Val {
	if !p.Accept(token.BRACE_L) {
		return p.errorf(quill.CondSyntaxError, "invalid quotation: %v", p.PeekType())
	}
	open := p.src.Token
	expr := p.Quot(nil)
	for {
		p.ignoreTrivia()
		if p.src.IsEOF() {
			return p.errorf(quill.CondUnmatchedSyntax, "unmatched %s", open.Text)
		}
		if p.Accept(token.BRACE_R) {
			break
		}
		x := p.ParseExpression()
		if x.Type == quill.QError {
			return x
		}
		expr.Cells = append(expr.Cells, x)
	}
	return expr
}

// ignoreTrivia skips comments and form separators.
func (p *Parser) ignoreTrivia() {
	for p.Accept(token.COMMENT, token.SEP) {
	}
}

func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) TokenText() string {
	return p.src.Token.Text
}

func (p *Parser) TokenType() token.Type {
	return p.src.Token.Type
}

func (p *Parser) Location() *token.Location {
	return p.src.Token.Source
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek().Type
}

func (p *Parser) PeekLocation() *token.Location {
	return p.src.Peek().Source
}

func (p *Parser) String(s string) *quill.Val {
	return p.tokenVal(quill.String(s))
}

func (p *Parser) Word(s string) *quill.Val {
	return p.tokenVal(quill.Word(s))
}

func (p *Parser) Int(x int) *quill.Val {
	return p.tokenVal(quill.Int(x))
}

func (p *Parser) Quot(cells []*quill.Val) *quill.Val {
	return p.tokenVal(quill.Quot(cells))
}

func (p *Parser) tokenVal(v *quill.Val) *quill.Val {
	v.Source = p.Location()
	return v
}

func (p *Parser) Accept(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

func (p *Parser) errorf(condition string, format string, v ...interface{}) *quill.Val {
	err := quill.ErrorConditionf(condition, format, v...)
	err.Source = p.Location()
	return err
}
