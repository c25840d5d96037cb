// Copyright © 2024 The Quill authors

package repl

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/quill-lang/quill/parser"
	"github.com/quill-lang/quill/quill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runReplWithString(t *testing.T, input string) (string, error) {
	t.Helper()
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	go func() {
		defer inW.Close() //nolint:errcheck // test cleanup
		_, _ = io.WriteString(inW, input)
	}()

	go func() {
		RunRepl(DefaultPrompt, WithStdin(inR), WithStderr(outW))
		inR.Close()  //nolint:errcheck,gosec // test cleanup
		outW.Close() //nolint:errcheck,gosec // test cleanup
	}()

	var output bytes.Buffer
	_, _ = io.Copy(&output, outR)
	outR.Close() //nolint:errcheck,gosec // test cleanup

	return output.String(), nil
}

func TestEnsureHistoryFilePermissions_CreatesWithRestrictedMode(t *testing.T) {
	dir := t.TempDir()
	histFile := filepath.Join(dir, ".quill_history")

	// File does not exist yet.
	ensureHistoryFilePermissions(histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err, "history file should be created")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "new history file should have mode 0600")
}

func TestEnsureHistoryFilePermissions_RestrictsExistingFile(t *testing.T) {
	dir := t.TempDir()
	histFile := filepath.Join(dir, ".quill_history")

	// Create the file with overly permissive mode.
	err := os.WriteFile(histFile, []byte("some history"), 0644)
	require.NoError(t, err)

	ensureHistoryFilePermissions(histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "existing history file should be restricted to 0600")

	// Verify contents are preserved.
	data, err := os.ReadFile(histFile)
	require.NoError(t, err)
	assert.Equal(t, "some history", string(data))
}

func TestEnsureHistoryFilePermissions_EmptyPathNoOp(t *testing.T) {
	// Should not panic or error with empty path.
	ensureHistoryFilePermissions("")
}

func TestRunRepl(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple Addition",
			input:    "1 2 + echo\n",
			expected: "3\n",
		},
		{
			name:     "Definition",
			input:    "double = { 2 * }\n21 double echo\n",
			expected: "42\n",
		},
		{
			name:     "Error",
			input:    "fnord\n",
			expected: "undefined-word",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := runReplWithString(t, tc.input)
			require.NoError(t, err)
			require.Contains(t, got, tc.expected)
		})
	}
}

func TestRunReplBye(t *testing.T) {
	got, err := runReplWithString(t, "1 echo\nbye\n2 echo\n")
	require.NoError(t, err)
	assert.Contains(t, got, "1\n")
	assert.NotContains(t, got, "2\n")
}

func TestStackPrompt(t *testing.T) {
	env := quill.NewEnv(nil)
	lerr := quill.InitializeUserEnv(env, quill.WithReader(parser.NewReader()))
	require.NotEqual(t, quill.QError, lerr.Type)
	assert.Equal(t, "> ", stackPrompt(env, "> "))

	lerr = env.LoadString("test.ql", `"hi" 42`)
	require.NotEqual(t, quill.QError, lerr.Type)
	assert.Equal(t, "hi ~> 42 > ", stackPrompt(env, "> "))
}
