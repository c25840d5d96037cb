// Copyright © 2024 The Quill authors

// Package libhelp renders dictionary documentation for the doc command and
// interactive sessions.
package libhelp

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/quill-lang/quill/quill"
)

// MissingDoc describes a native word with no documentation.
type MissingDoc struct {
	// Name is the dictionary name of the word.
	Name string
}

// CheckMissing reports native words missing documentation.
func CheckMissing() []MissingDoc {
	var missing []MissingDoc
	for _, b := range quill.DefaultBuiltins() {
		if b.Doc() == "" {
			missing = append(missing, MissingDoc{Name: b.Name()})
		}
	}
	return missing
}

// RenderWordList writes a summary of every dictionary word to w.  Each word
// is listed with its stack effect and the first line of its documentation,
// if any.  Words are sorted alphabetically.
func RenderWordList(w io.Writer, env *quill.Env) error {
	for _, name := range env.Words() {
		binding := env.Get(name)
		line := fmt.Sprintf("  %-12s", name)
		if binding.Builtin != nil {
			line += "  " + binding.Builtin.Effect
			if binding.Builtin.Doc != "" {
				first := strings.SplitN(strings.TrimSpace(binding.Builtin.Doc), "\n", 2)[0]
				line += "  " + strings.TrimSpace(first)
			}
		} else {
			line += "  " + binding.Val.String()
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderWord writes to w formatted documentation for the dictionary word
// named by query in env.  The exact formatting of the rendered documentation
// is subject to change across quill versions.
func RenderWord(w io.Writer, env *quill.Env, query string) error {
	binding := env.Get(query)
	if binding == nil {
		return fmt.Errorf("undefined word: %s", query)
	}
	if binding.Builtin == nil {
		// A user definition has no docstring, only its body.
		_, err := fmt.Fprintf(w, "%s = %v\n", binding.Name, binding.Val)
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s  <native word>\n", binding.Name, binding.Builtin.Effect)
	if err != nil {
		return err
	}
	doc := cleanDocstring(binding.Builtin.Doc)
	if doc != "" {
		_, err = fmt.Fprintln(w, doc)
	}
	return err
}

func cleanDocstring(doc string) string {
	if doc == "" {
		return ""
	}
	if doc[0] == '\n' {
		doc = doc[1:]
	}
	doc = indent.String(wordwrap.String(dedentDoc(doc), 72), 2)
	doc = strings.TrimSuffix(doc, "\n")
	return doc
}

// dedentDoc removes common leading whitespace from all non-empty lines.
// It handles Go raw string literals where the first line may have less
// indentation than continuation lines (which inherit the source code's
// tab indentation). Tabs are normalized to spaces before processing.
func dedentDoc(s string) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	lines := strings.Split(s, "\n")

	// Find minimum leading spaces across non-empty lines, skipping
	// the first line (which in raw strings often has no indentation).
	minWS := -1
	start := 0
	if len(lines) > 1 {
		start = 1
	}
	for _, line := range lines[start:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		ws := len(line) - len(trimmed)
		if minWS < 0 || ws < minWS {
			minWS = ws
		}
	}
	if minWS <= 0 {
		return strings.TrimLeft(lines[0], " ") + "\n" + strings.Join(lines[1:], "\n")
	}

	lines[0] = strings.TrimLeft(lines[0], " ")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = ""
		} else if len(lines[i]) >= minWS {
			lines[i] = lines[i][minWS:]
		}
	}
	return strings.Join(lines, "\n")
}
