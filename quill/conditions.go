// Copyright © 2024 The Quill authors

package quill

// Error condition names.  These are stable API for programmatic error
// classification, both from Go embedders and from quill code dispatching on
// errors delivered by try.
const (
	CondError           = "error"
	CondSyntaxError     = "syntax-error"
	CondUnmatchedSyntax = "unmatched-syntax"
	CondUndefinedWord   = "undefined-word"
	CondStackUnderflow  = "stack-underflow"
	CondTypeMismatch    = "type-mismatch"
	CondEmptySequence   = "empty-sequence"
	CondDivideByZero    = "divide-by-zero"
	CondMacroError      = "macro-error"
	CondIOError         = "io-error"
	CondStepLimit       = "step-limit-exceeded"
	// CondEndOfInput signals exhausted input to capture.  It is a session
	// sentinel rather than a failure and is not catchable with try.
	CondEndOfInput = "end-of-input"
)
