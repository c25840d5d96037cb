// Copyright © 2024 The Quill authors

package profiler

import (
	"fmt"

	"github.com/quill-lang/quill/parser/token"
	"github.com/quill-lang/quill/quill"
)

// profiler is a minimal quill.Profiler
type profiler struct {
	runtime     *quill.Runtime
	enabled     bool
	skipFilter  SkipFilter
	wordLabeler WordLabeler
}

var _ quill.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Complete() error {
	return nil
}

func (p *profiler) Start(word *quill.Val) func() {
	return func() {}
}

// defaultWordName returns the dictionary name the evaluator resolved.
func defaultWordName(word *quill.Val) string {
	if word.Type != quill.QWord {
		return ""
	}
	return word.Str
}

// prettyWordName returns a pretty name and original name for a word.  If
// there is no pretty name, then the pretty name is the original name.
func (p *profiler) prettyWordName(word *quill.Val) (string, string) {
	origLabel := defaultWordName(word)
	if origLabel == "" {
		return "", ""
	}
	prettyLabel := origLabel
	if p.wordLabeler != nil {
		prettyLabel = p.wordLabeler(p.runtime, word)
	}
	if prettyLabel == "" {
		prettyLabel = origLabel
	}

	return prettyLabel, origLabel
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(v *quill.Val) bool {
	return !p.enabled || defaultSkipFilter(v) || p.skipFilter != nil && p.skipFilter(v)
}

func getSourceLoc(word *quill.Val) *token.Location {
	if word.Source == nil || word.Source.File == "<native code>" {
		return nil
	}
	return word.Source
}
