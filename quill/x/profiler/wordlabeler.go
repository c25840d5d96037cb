// Copyright © 2024 The Quill authors

package profiler

import (
	"regexp"

	"github.com/quill-lang/quill/quill"
)

// WordLabeler provides an alternative name for a word's label in the trace.
type WordLabeler func(runtime *quill.Runtime, word *quill.Val) string

// WithSourceLabeler labels spans with the source file of the word occurrence
// in addition to the word name.
func WithSourceLabeler() Option {
	return WithWordLabeler(sourceWordLabeler)
}

// WithWordLabeler sets the labeler for tracing spans.
func WithWordLabeler(wordLabeler WordLabeler) Option {
	return func(p *profiler) {
		p.wordLabeler = wordLabeler
	}
}

var (
	sanitizeRegExp   = regexp.MustCompile(`[\s_]+`)
	validLabelRegExp = regexp.MustCompile(`[[:graph:]]*`)
)

func sanitizeLabel(userLabel string) string {
	if userLabel == "" {
		return ""
	}

	userLabel = sanitizeRegExp.ReplaceAllString(userLabel, "_")

	matches := validLabelRegExp.FindStringSubmatch(userLabel)
	if len(matches) > 0 {
		return matches[0]
	}

	return ""
}

func sourceWordLabeler(runtime *quill.Runtime, word *quill.Val) string {
	loc := getSourceLoc(word)
	if loc == nil {
		return ""
	}
	return sanitizeLabel(loc.File + ":" + word.Str)
}
