// Copyright © 2024 The Quill authors

package profiler_test

import (
	"context"
	"log"
	"testing"

	"github.com/quill-lang/quill/parser"
	"github.com/quill-lang/quill/quill"
	"github.com/quill-lang/quill/quill/quillib"
	"github.com/quill-lang/quill/quill/x/profiler"
	"github.com/stretchr/testify/assert"
	"go.opencensus.io/trace"
)

func TestNewOpenCensusAnnotator(t *testing.T) {
	env := quill.NewEnv(nil)
	env.Runtime.Reader = parser.NewReader()
	// Sample at 100% for the purposes of this test.
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	trace.RegisterExporter(new(customExporter))
	ppa := profiler.NewOpenCensusAnnotator(env.Runtime, context.Background())
	assert.NoError(t, ppa.Enable())
	lerr := quill.InitializeUserEnv(env)
	if quill.GoError(lerr) != nil {
		t.Fatal(quill.GoError(lerr))
	}
	lerr = quillib.LoadLibrary(env)
	if quill.GoError(lerr) != nil {
		t.Fatal(quill.GoError(lerr))
	}
	lerr = env.LoadString("test.ql", testProgram)
	assert.NotEqual(t, quill.QError, lerr.Type)
	// Mark the profile as complete and dump the rest of the profile
	assert.NoError(t, ppa.Complete())
}

// a simple exporter that prints to the screen - in the real world, you'd go
// to one of the myriad exporters supported by opencensus
// https://opencensus.io/exporters/supported-exporters/go/
type customExporter struct{}

func (cse *customExporter) ExportSpan(sd *trace.SpanData) {
	log.Printf("Name: %s\n\tTraceID: %x\n\tSpanID: %x\n\tParentSpanID: %x\n\tStartTime: %s\n\tEndTime: %s\n\tAnnotations: %+v\n",
		sd.Name, sd.TraceID, sd.SpanID, sd.ParentSpanID, sd.StartTime, sd.EndTime, sd.Annotations)
}
