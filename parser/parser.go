// Copyright © 2024 The Quill authors

package parser

import (
	"github.com/quill-lang/quill/parser/rdparser"
	"github.com/quill-lang/quill/quill"
)

// NewReader returns a new quill.Reader
func NewReader() quill.Reader {
	return rdparser.NewReader()
}
