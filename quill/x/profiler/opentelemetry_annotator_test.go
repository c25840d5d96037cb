// Copyright © 2024 The Quill authors

package profiler_test

import (
	"context"
	"testing"

	"github.com/quill-lang/quill/parser"
	"github.com/quill-lang/quill/quill"
	"github.com/quill-lang/quill/quill/quillib"
	"github.com/quill-lang/quill/quill/x/profiler"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// Some spurious words to check we get a profile out.
const testProgram = `
square = { dup * }
cube = { dup square * }
4 square drop
3 cube drop`

func TestNewOpenTelemetryAnnotator(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)

	env := quill.NewEnv(nil)
	env.Runtime.Reader = parser.NewReader()
	ppa := profiler.NewOpenTelemetryAnnotator(env.Runtime, context.Background())
	assert.NoError(t, ppa.Enable())
	lerr := quill.InitializeUserEnv(env)
	assert.NoError(t, quill.GoError(lerr))
	lerr = quillib.LoadLibrary(env)
	assert.NoError(t, quill.GoError(lerr))
	lerr = env.LoadString("test.ql", testProgram)
	assert.NotEqual(t, quill.QError, lerr.Type, lerr.Str)
	assert.NoError(t, ppa.Complete())

	spans := exporter.GetSpans()
	assert.GreaterOrEqual(t, len(spans), 3, "Expected at least three spans")
}

func TestNewOpenTelemetryAnnotatorSkip(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)

	env := quill.NewEnv(nil)
	env.Runtime.Reader = parser.NewReader()
	ppa := profiler.NewOpenTelemetryAnnotator(env.Runtime, context.Background(),
		profiler.WithTracedWords("square", "cube"))
	assert.NoError(t, ppa.Enable())
	lerr := quill.InitializeUserEnv(env)
	assert.NoError(t, quill.GoError(lerr))
	lerr = quillib.LoadLibrary(env)
	assert.NoError(t, quill.GoError(lerr))
	lerr = env.LoadString("test.ql", testProgram)
	assert.NotEqual(t, quill.QError, lerr.Type, lerr.Str)
	assert.NoError(t, ppa.Complete())

	// Spans export as they end, so the nested square call inside cube
	// appears before cube itself.
	spans := exporter.GetSpans()
	assert.Equal(t, 3, len(spans), "Expected selective spans")
	assert.Equal(t, "square", spans[0].Name)
	assert.Equal(t, "square", spans[1].Name)
	assert.Equal(t, "cube", spans[2].Name)
}

func TestNewOpenTelemetryAnnotatorSourceLabels(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()

	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)

	env := quill.NewEnv(nil)
	env.Runtime.Reader = parser.NewReader()
	ppa := profiler.NewOpenTelemetryAnnotator(env.Runtime, context.Background(),
		profiler.WithTracedWords("square", "cube"),
		profiler.WithSourceLabeler())
	assert.NoError(t, ppa.Enable())
	lerr := quill.InitializeUserEnv(env)
	assert.NoError(t, quill.GoError(lerr))
	lerr = quillib.LoadLibrary(env)
	assert.NoError(t, quill.GoError(lerr))
	lerr = env.LoadString("test.ql", testProgram)
	assert.NotEqual(t, quill.QError, lerr.Type, lerr.Str)
	assert.NoError(t, ppa.Complete())

	spans := exporter.GetSpans()
	assert.Equal(t, 3, len(spans), "Expected selective spans")
	assert.Equal(t, "test.ql:square", spans[0].Name, "Expected source label")
	assert.Equal(t, "test.ql:cube", spans[2].Name, "Expected source label")
}
