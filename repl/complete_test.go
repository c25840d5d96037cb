// Copyright © 2024 The Quill authors

package repl

import (
	"testing"

	"github.com/quill-lang/quill/parser"
	"github.com/quill-lang/quill/quill"
	"github.com/quill-lang/quill/quill/quillib"
)

func TestWordCompleter(t *testing.T) {
	env := quill.NewEnv(nil)
	quill.InitializeUserEnv(env,
		quill.WithReader(parser.NewReader()),
	)
	quillib.LoadLibrary(env)

	c := &wordCompleter{env: env}

	// "ro" should match roll and rot.
	candidates, offset := c.Do([]rune("1 ro"), 4)
	if offset != 2 {
		t.Errorf("offset = %d, want 2", offset)
	}
	if len(candidates) == 0 {
		t.Error("expected completions for 'ro', got none")
	}

	// Completion restarts after a quotation delimiter.
	candidates, offset = c.Do([]rune("{ dep"), 5)
	if offset != 3 {
		t.Errorf("offset = %d, want 3", offset)
	}
	if len(candidates) == 0 {
		t.Error("expected completions for 'dep', got none")
	}

	// "zzz-nonexistent" should have no completions.
	candidates, _ = c.Do([]rune("zzz-nonexistent"), 15)
	if len(candidates) != 0 {
		t.Errorf("expected no completions for 'zzz-nonexistent', got %d", len(candidates))
	}
}
