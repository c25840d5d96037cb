// Copyright © 2024 The Quill authors

/*
Package parsecparser provides a quill parser built on parser combinators.

	program := <expr>*
	expr    := <assign> | <word> | <int> | <string> | '{' <expr>* '}'
	assign  := <word> '=' <expr>
	int     := /[+-]?[0-9]+/
	string  := '"' <strcontent> '"'
	word    := /[^[:space:]{}";#=]+/

It produces the same values as the default recursive-descent reader but
does not track source locations and cannot drive an interactive session.
*/
package parsecparser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	parsec "github.com/prataprc/goparsec"
	"github.com/quill-lang/quill/quill"
)

// NewReader returns a quill.Reader.
func NewReader() quill.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(name string, r io.Reader) ([]*quill.Val, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	vals, n, err := ParseVal(b)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, io.ErrUnexpectedEOF
	}
	return vals, nil
}

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeAssign
	nodeQuot
	nodeQuotUnmatched
)

var nodeTypeStrings = []string{
	nodeInvalid:       "INVALID",
	nodeTerm:          "TERM",
	nodeAssign:        "ASSIGN",
	nodeQuot:          "QUOT",
	nodeQuotUnmatched: "QUOTOPENUNMATCHED",
}

// ParseVal parses quill values from text and returns them.  The number of
// bytes read is returned along with any error that was encountered in
// parsing.
func ParseVal(text []byte) ([]*quill.Val, int, error) {
	var v []*quill.Val
	s := parsec.NewScanner(text)
	s = s.TrackLineno()
	parser := newParsecParser()
	root, s := parser(s)
	for root != nil {
		val := getVal(root)
		if val != nil {
			if val.Type == quill.QError {
				return v, s.GetCursor(), quill.GoError(val)
			}
			v = append(v, val)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		b, _ := s.Match(`.{1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		return v, s.GetCursor(), fmt.Errorf("%d: unexpected source text possibly starting: %s", s.Lineno(), b)
	}
	return v, s.GetCursor(), nil
}

func newParsecParser() parsec.Parser {
	openB := parsec.Atom("{", "OPENB")
	closeB := parsec.Atom("}", "CLOSEB")
	assign := parsec.Atom("=", "ASSIGNOP")
	comment := parsec.Token(`#([^\n]*[^\s])?`, "COMMENT")
	sep := parsec.Atom(";", "SEP")
	number := parsec.Token(`[+-]?[0-9]+`, "NUMBER")
	// == and friends are ordinary words even though a lone = is the
	// assignment operator.  The alternation must be grouped: Token anchors
	// the pattern with ^, which would otherwise bind only the first branch
	// and let the second match past an unconsumed delimiter.
	word := parsec.Token(`^(==+|[^\s{}";#=]+)`, "WORD")
	term := parsec.OrdChoice(astNode(nodeTerm), // terminal token
		parsec.String(),
		number,
		word, // word comes last because it swallows anything
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	quotation := parsec.And(astNode(nodeQuot), openB, exprList, closeB)
	quotUnmatched := parsec.And(astNode(nodeQuotUnmatched), openB, exprList, parsec.End())
	assignExpr := parsec.And(astNode(nodeAssign), word, assign, &expr)
	expr = parsec.OrdChoice(nil,
		comment,
		sep,
		assignExpr,
		term,
		quotation,
		// Error matching cases come last because they have the lowest
		// precedence.
		quotUnmatched,
	)
	return expr
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes, ok := cleanParsecNodeList(nodes)
	if len(nodes) == 0 {
		return nil
	}
	if !ok {
		// There is an error in the first position.
		return nodes[0]
	}
	switch typ {
	case nodeTerm:
		switch term := nodes[0].(type) {
		case string:
			return quill.String(unquoteString(term))
		case *parsec.Terminal:
			switch term.Name {
			case "NUMBER":
				x, err := strconv.Atoi(term.Value)
				if err != nil {
					return fmt.Errorf("bad number: %v (%s)", err, term.Value)
				}
				return quill.Int(x)
			case "WORD":
				return quill.Word(term.Value)
			}
		}
		return nodes[0]
	case nodeAssign:
		name := nodes[0].(*parsec.Terminal)
		body, ok := nodes[2].(*quill.Val)
		if !ok {
			if err, isErr := nodes[2].(error); isErr {
				return err
			}
			return fmt.Errorf("%s = is not followed by an expression", name.Value)
		}
		return quill.Def(name.Value, body)
	case nodeQuot:
		// We don't want terminal parsec nodes '{' and '}'
		v := quill.Quot(make([]*quill.Val, 0, len(nodes)-2))
		for _, c := range nodes {
			switch c := c.(type) {
			case *quill.Val:
				v.Cells = append(v.Cells, c)
			}
		}
		return v
	case nodeQuotUnmatched:
		open := nodes[0].(*parsec.Terminal)
		rest := open.GetValue() + stringifyNodes(nodes[1:len(nodes)-1]) // Trim off the End node
		if len(rest) > 10 {
			rest = rest[:10] + "..."
		}
		return fmt.Errorf("unmatched %q starting: %v", open.GetValue(), rest)
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func stringifyNodes(nodes []parsec.ParsecNode) string {
	var s []string
	for _, node := range nodes {
		switch node := node.(type) {
		case *parsec.Terminal:
			switch node.GetName() {
			case "OPENB", "CLOSEB":
				continue
			}
			s = append(s, node.GetValue())
		case []parsec.ParsecNode:
			s = append(s, "{"+stringifyNodes(node)+"}")
		case *quill.Val:
			s = append(s, node.String())
		default:
			s = append(s, fmt.Sprint(node))
		}
	}
	return strings.Join(s, " ")
}

func cleanParsecNodeList(lis []parsec.ParsecNode) ([]parsec.ParsecNode, bool) {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case *parsec.Terminal:
			switch node.Name {
			case "COMMENT", "SEP":
				continue
			}
			nodes = append(nodes, node)
		case error:
			nodes = []parsec.ParsecNode{node}
			return nodes, false
		case []parsec.ParsecNode:
			clean, ok := cleanParsecNodeList(node)
			if !ok {
				return clean, false
			}
			nodes = append(nodes, clean...)
		default:
			if node == nil {
				continue
			}
			nodes = append(nodes, node)
		}
	}
	return nodes, true
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func getVal(root parsec.ParsecNode) *quill.Val {
	nodes, ok := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		// we can be here if there is only whitespace on a line
		return nil
	}
	if !ok {
		return quill.Error(nodes[0].(error))
	}
	v, ok := nodes[0].(*quill.Val)
	if !ok {
		// we can be here if there is only a comment on a line
		return nil
	}
	return v
}

// The unquoteString function may look broken.  But the goparsec.String()
// parser is pretty weird.  The input string is parsed (escaped characters in
// the source text become unescaped).  But, the resulting object (the argument
// s) is then wrapped by double quotes.
func unquoteString(s string) string {
	return s[1 : len(s)-1]
}
