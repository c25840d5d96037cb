// Copyright © 2024 The Quill authors

package quill

// QuillVersion is reported by the version command and the REPL banner.
const QuillVersion = "0.3"

// Profiler is the interface for evaluation profilers.  When a Runtime has
// an enabled Profiler the evaluator brackets every word invocation with a
// Start call and runs the returned closure when the invocation's code has
// been consumed (or unwound by an error).
type Profiler interface {
	// Is the profiler enabled?
	IsEnabled() bool
	// Enable the profiler
	Enable() error
	// End the profiling session and output summary lines
	Complete() error
	// Marks the start of a word invocation; the returned closure marks its
	// end
	Start(word *Val) func()
}
