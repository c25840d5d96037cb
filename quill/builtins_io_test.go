// Copyright © 2024 The Quill authors

package quill

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInputEnv(t *testing.T, input string, stdout io.Writer) *Env {
	t.Helper()
	if stdout == nil {
		stdout = io.Discard
	}
	env := NewEnv(nil)
	lerr := InitializeUserEnv(env,
		WithStdout(stdout),
		WithStderr(io.Discard),
		WithInput(NewLineReader(strings.NewReader(input))),
	)
	require.NoError(t, GoError(lerr))
	return env
}

func TestCapture(t *testing.T) {
	env := newInputEnv(t, "one\ntwo", nil)
	lerr := env.RunProgram([]*Val{Word("capture"), Word("capture")})
	require.NoError(t, GoError(lerr))
	assert.Equal(t, `( "one" "two" )`, env.Data.Snapshot().String())

	// A final line without a trailing newline is still returned before EOF.
	lerr = env.RunProgram([]*Val{Word("capture")})
	require.Error(t, GoError(lerr))
	assert.Equal(t, CondEndOfInput, (*ErrorVal)(lerr).Condition())
}

// Exhausted input is a session sentinel, not a failure, so it propagates to
// the host even through try.
func TestCaptureEndOfInputBypassesTry(t *testing.T) {
	env := newInputEnv(t, "", nil)
	prog := []*Val{
		Quot([]*Val{Word("capture")}),
		Quot([]*Val{Word("drop"), String("caught")}),
		Word("try"),
	}
	lerr := env.RunProgram(prog)
	require.Error(t, GoError(lerr))
	assert.Equal(t, CondEndOfInput, (*ErrorVal)(lerr).Condition())
	assert.Equal(t, 0, env.Data.Depth())
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	env := newInputEnv(t, "yes\n", &out)
	lerr := env.RunProgram([]*Val{String("ok? "), Word("prompt")})
	require.NoError(t, GoError(lerr))
	assert.Equal(t, "ok? ", out.String())
	assert.Equal(t, `( "yes" )`, env.Data.Snapshot().String())
}

func TestCaptureNoInput(t *testing.T) {
	env := NewEnv(&Runtime{Stdout: io.Discard, Stderr: io.Discard})
	require.NoError(t, GoError(InitializeUserEnv(env)))
	lerr := env.RunProgram([]*Val{Word("capture")})
	require.Error(t, GoError(lerr))
	assert.Equal(t, CondIOError, (*ErrorVal)(lerr).Condition())
}
