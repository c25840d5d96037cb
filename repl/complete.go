// Copyright © 2024 The Quill authors

package repl

import (
	"strings"

	"github.com/quill-lang/quill/quill"
)

// wordCompleter implements readline.AutoCompleter by enumerating dictionary
// words from the current quill environment.
type wordCompleter struct {
	env *quill.Env
}

func (c *wordCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to whitespace or a
	// delimiter).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' || ch == '{' || ch == '}' || ch == ';' || ch == '\n' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectWords(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, name := range candidates {
		suffix := name[len(prefix):]
		result = append(result, []rune(suffix))
	}
	return result, len(prefix)
}

func (c *wordCompleter) collectWords(prefix string) []string {
	var result []string
	// Words returns names in sorted order so completions are stable.
	for _, name := range c.env.Words() {
		if strings.HasPrefix(name, prefix) {
			result = append(result, name)
		}
	}
	return result
}
