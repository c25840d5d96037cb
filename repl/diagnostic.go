// Copyright © 2024 The Quill authors

package repl

import (
	"io"

	"github.com/quill-lang/quill/diagnostic"
	"github.com/quill-lang/quill/quill"
)

// renderError renders a quill error using the diagnostic renderer for
// Rust-style annotated output. For REPL errors, source snippets may not
// be available (input comes from stdin, not files), but the renderer
// degrades gracefully to show just the location and error message.
func renderError(w io.Writer, lerr *quill.Val) {
	d := quillErrorToDiag(lerr)
	d.Notes = append(d.Notes, "use 'inspect name' to describe a dictionary word")
	r := &diagnostic.Renderer{Color: diagnostic.ColorAuto}
	_ = r.Render(w, d)
}

// quillErrorToDiag converts a QError value to a Diagnostic for display.
func quillErrorToDiag(lerr *quill.Val) diagnostic.Diagnostic {
	ev := (*quill.ErrorVal)(lerr)
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Message:  ev.ErrorMessage(),
	}

	if cond := ev.Condition(); cond != "" && cond != quill.CondError {
		d.Message = cond + ": " + d.Message
	}

	if lerr.Source != nil && lerr.Source.File != "" && lerr.Source.File != "<native code>" {
		span := diagnostic.Span{
			File: lerr.Source.File,
			Line: lerr.Source.Line,
			Col:  lerr.Source.Col,
		}
		if lerr.Source.Path != "" {
			span.File = lerr.Source.Path
		}
		d.Spans = append(d.Spans, span)
	}

	return d
}
