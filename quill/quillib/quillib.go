// Copyright © 2024 The Quill authors

// Package quillib is used to conveniently load the standard library for the
// quill environment.
package quillib

import (
	"bytes"
	_ "embed"

	"github.com/quill-lang/quill/quill"
)

//go:embed stdlib.ql
var stdlib []byte

// SourceName is the name reported in source locations for errors raised
// while loading the embedded library.
const SourceName = "<stdlib>"

// LoadLibrary loads the standard library into env.  The library defines the
// shuffle words (dup, swap, over, rot, -rot, nip), the combinators loop and
// while, the file word interpret, and the session words ps1 and repl.  All
// of them are ordinary dictionary definitions; user code may shadow them.
func LoadLibrary(env *quill.Env) *quill.Val {
	return env.Load(SourceName, bytes.NewReader(stdlib))
}
