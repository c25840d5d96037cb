// Copyright © 2024 The Quill authors

package profiler

import (
	"context"
	"errors"

	"github.com/quill-lang/quill/quill"
	"go.opencensus.io/trace"
)

var _ quill.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
}

func NewOpenCensusAnnotator(runtime *quill.Runtime, parentContext context.Context, opts ...Option) *ocAnnotator {
	p := &ocAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *ocAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

func (p *ocAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func (p *ocAnnotator) Start(word *quill.Val) func() {
	if p.skipTrace(word) {
		return func() {}
	}
	oldContext := p.currentContext
	prettyLabel, _ := p.prettyWordName(word)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, prettyLabel)
	if loc := getSourceLoc(word); loc != nil {
		p.currentSpan.Annotate([]trace.Attribute{
			trace.StringAttribute("file", loc.File),
			trace.Int64Attribute("line", int64(loc.Line)),
		}, "source")
	}
	return func() {
		p.currentSpan.End()
		// And pop the current context back
		p.currentContext = oldContext
		p.currentSpan = trace.FromContext(p.currentContext)
	}
}
