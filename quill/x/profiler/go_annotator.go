// Copyright © 2024 The Quill authors

package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/quill-lang/quill/quill"
)

// pprofAnnotator appends tags to pprof output if pprof is enabled.  It does
// not start pprof for the user; the surrounding program decides whether a
// CPU profile is running.
type pprofAnnotator struct {
	profiler
	currentContext context.Context
}

var _ quill.Profiler = &pprofAnnotator{}

func NewPprofAnnotator(runtime *quill.Runtime, parentContext context.Context, opts ...Option) *pprofAnnotator {
	p := &pprofAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		p.currentContext = context.Background()
	}
	return p.profiler.Enable()
}

func (p *pprofAnnotator) Complete() error {
	pprof.SetGoroutineLabels(context.Background())
	return nil
}

func (p *pprofAnnotator) Start(word *quill.Val) func() {
	if p.skipTrace(word) {
		return func() {}
	}
	oldContext := p.currentContext
	prettyLabel, _ := p.prettyWordName(word)
	p.currentContext = pprof.WithLabels(p.currentContext, pprof.Labels("word", prettyLabel))
	// Apply the selected labels to the current goroutine.  They propagate if
	// the traced code spawns goroutines.
	pprof.SetGoroutineLabels(p.currentContext)

	return func() {
		p.currentContext = oldContext
		pprof.SetGoroutineLabels(p.currentContext)
	}
}
