// Copyright © 2024 The Quill authors

package quill

import (
	"bytes"
	"fmt"
)

// ErrorVal implements the error interface so that errors can be first class
// quill objects.  The error condition name is stored in the Str field while
// message data is stored in the Cells slice.
type ErrorVal Val

// Error implements the error interface.  When the error condition is not
// the generic ``error'' it is printed preceding the error message.
func (e *ErrorVal) Error() string {
	if e.Source != nil && e.Source.File != "<native code>" {
		return fmt.Sprintf("%s: %s", e.Source, e.baseMessage())
	}
	return e.baseMessage()
}

func (e *ErrorVal) baseMessage() string {
	msg := e.ErrorMessage()
	if e.Str != CondError {
		return fmt.Sprintf("%s: %s", e.Str, msg)
	}
	return msg
}

// Condition returns the error condition name (e.g. "stack-underflow",
// "unmatched-syntax").
func (e *ErrorVal) Condition() string {
	return e.Str
}

// ErrorMessage returns the underlying message in the error.
func (e *ErrorVal) ErrorMessage() string {
	if len(e.Cells) > 0 {
		switch v := e.Cells[0].Native.(type) {
		case error:
			return v.Error()
		}
	}
	return errorCellMessage(e.Cells)
}

func errorCellMessage(ecells []*Val) string {
	var buf bytes.Buffer
	for i, cell := range ecells {
		if i > 0 {
			buf.WriteString(" ")
		}
		if cell.Type == QString {
			buf.WriteString(cell.Str)
		} else {
			buf.WriteString(cell.String())
		}
	}
	return buf.String()
}
