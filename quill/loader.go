// Copyright © 2024 The Quill authors

package quill

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Reader abstracts a parser implementation so that it may be implemented in
// a separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the sequence of Vals that it
	// contains.  The returned Vals are executed left to right when loaded.
	Read(name string, r io.Reader) ([]*Val, error)
}

// SourceLibrary abstracts the source text store consulted by the load word.
// A library maps a source designator (typically a relative file path) to
// the text it names.
type SourceLibrary interface {
	// LoadSource resolves the designator loc and returns a display name for
	// the source, the resolved physical location, and the source text.
	LoadSource(loc string) (name string, path string, src []byte, err error)
}

// RelativeFileSystemLibrary is a SourceLibrary that reads files relative to
// RootDir, or relative to the process working directory when RootDir is
// empty.  Absolute designators escape RootDir; embedders that need
// confinement must supply their own library.
type RelativeFileSystemLibrary struct {
	RootDir string
}

var _ SourceLibrary = &RelativeFileSystemLibrary{}

func (lib *RelativeFileSystemLibrary) LoadSource(loc string) (string, string, []byte, error) {
	path := loc
	if !filepath.IsAbs(path) && lib.RootDir != "" {
		path = filepath.Join(lib.RootDir, path)
	}
	src, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		return "", "", nil, fmt.Errorf("library error: %w", err)
	}
	return loc, path, src, nil
}

// MapLibrary is a SourceLibrary backed by an in-memory map from designator
// to source text.  It is primarily useful in tests.
type MapLibrary struct {
	Sources map[string]string
}

var _ SourceLibrary = &MapLibrary{}

func (lib *MapLibrary) LoadSource(loc string) (string, string, []byte, error) {
	src, ok := lib.Sources[loc]
	if !ok {
		return "", "", nil, fmt.Errorf("library error: no source %q", loc)
	}
	return loc, loc, []byte(src), nil
}
