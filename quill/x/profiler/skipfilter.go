// Copyright © 2024 The Quill authors

package profiler

import (
	"github.com/quill-lang/quill/quill"
)

type SkipFilter func(word *quill.Val) bool

func defaultSkipFilter(word *quill.Val) bool {
	// Only word invocations are bracketed by the evaluator but a custom
	// filter may be handed other values by tooling.
	return word.Type != quill.QWord
}

// WithTracedWords filters to only include spans for the named words.
func WithTracedWords(names ...string) Option {
	traced := make(map[string]bool, len(names))
	for _, name := range names {
		traced[name] = true
	}
	return WithSkipFilter(func(word *quill.Val) bool {
		return !traced[word.Str]
	})
}

// WithSkippedWords drops spans for the named words and traces everything
// else.
func WithSkippedWords(names ...string) Option {
	skipped := make(map[string]bool, len(names))
	for _, name := range names {
		skipped[name] = true
	}
	return WithSkipFilter(func(word *quill.Val) bool {
		return skipped[word.Str]
	})
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}
