// Copyright © 2024 The Quill authors

package cmd

import (
	"os"

	"github.com/quill-lang/quill/diagnostic"
	"github.com/quill-lang/quill/quill"
)

func colorMode() diagnostic.ColorMode {
	switch colorFlag {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}

func newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: colorMode()}
}

// quillErrorToDiagnostic converts a QError value to a Diagnostic for display.
func quillErrorToDiagnostic(lerr *quill.Val) diagnostic.Diagnostic {
	ev := (*quill.ErrorVal)(lerr)
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Message:  ev.ErrorMessage(),
	}

	// Prefix the condition name so handlers and humans read the same thing.
	if cond := ev.Condition(); cond != "" && cond != quill.CondError {
		d.Message = cond + ": " + d.Message
	}

	// Add source span if available
	if lerr.Source != nil && lerr.Source.File != "" && lerr.Source.File != "<native code>" {
		span := diagnostic.Span{
			File: lerr.Source.File,
			Line: lerr.Source.Line,
			Col:  lerr.Source.Col,
		}
		// Prefer physical path for reading source
		if lerr.Source.Path != "" {
			span.File = lerr.Source.Path
		}
		d.Spans = append(d.Spans, span)
	}

	return d
}

// renderQuillError renders a quill error with diagnostic formatting to
// stderr.  If sourceFile is non-empty a hint naming the failing file is
// appended.
func renderQuillError(lerr *quill.Val, sourceFiles ...string) {
	d := quillErrorToDiagnostic(lerr)
	if len(sourceFiles) > 0 && sourceFiles[0] != "" {
		d.Notes = append(d.Notes, "while running "+sourceFiles[0])
	}
	r := newRenderer()
	_ = r.Render(os.Stderr, d)
}
