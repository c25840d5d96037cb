// Copyright © 2024 The Quill authors

package quill

import "io"

// Config is a function that configures an environment or its runtime.
type Config func(env *Env) *Val

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *Env) *Val {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithStdout returns a Config that makes echo and prompt write to w instead
// of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *Env) *Val {
		env.Runtime.Stdout = w
		return Nil()
	}
}

// WithStderr returns a Config that makes environments write debugging
// output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *Env) *Val {
		env.Runtime.Stderr = w
		return Nil()
	}
}

// WithInput returns a Config that makes capture and prompt read lines from
// r.
func WithInput(r LineReader) Config {
	return func(env *Env) *Val {
		env.Runtime.Input = r
		return Nil()
	}
}

// WithLibrary returns a Config that makes environments use l as a source
// library.
func WithLibrary(l SourceLibrary) Config {
	return func(env *Env) *Val {
		env.Runtime.Library = l
		return Nil()
	}
}

// WithMaxSteps returns a Config that sets the maximum number of evaluation
// steps before evaluation returns a CondStepLimit error.  One step is
// counted for each work list element consumed.  A value of 0 means
// unlimited (the default).
func WithMaxSteps(n int64) Config {
	return func(env *Env) *Val {
		env.Runtime.maxSteps = n
		return Nil()
	}
}
