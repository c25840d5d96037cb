// Copyright © 2024 The Quill authors

package quill

import (
	"bufio"
	"io"
	"os"
)

// LineReader abstracts the input collaborator consumed by the capture and
// prompt words.  ReadLine returns one line of input without its trailing
// newline.  At the end of input ReadLine returns io.EOF.
type LineReader interface {
	ReadLine() (string, error)
}

// Runtime is an object underlying an Env.  It holds the host collaborators
// shared by every word invocation: output streams, the line input source,
// the source reader, and the source library used by load.
type Runtime struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Input    LineReader
	Reader   Reader
	Library  SourceLibrary
	Profiler Profiler
	maxSteps int64
}

// StandardRuntime returns a new Runtime connected to the standard streams
// and loading sources from the filesystem relative to the working
// directory.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Input:   NewLineReader(os.Stdin),
		Library: &RelativeFileSystemLibrary{},
	}
}

type bufioLineReader struct {
	br *bufio.Reader
}

// NewLineReader returns a LineReader that buffers r and splits it on
// newlines.  A final line without a trailing newline is still returned
// before io.EOF.
func NewLineReader(r io.Reader) LineReader {
	return &bufioLineReader{bufio.NewReader(r)}
}

func (r *bufioLineReader) ReadLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	return line[:len(line)-1], nil
}
