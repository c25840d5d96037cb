// Copyright © 2024 The Quill authors

package quill

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/quill-lang/quill/parser/token"
)

// InitializeUserEnv installs the default builtin words into env and applies
// the given configuration.  It must be called on a fresh environment before
// any program is run.
func InitializeUserEnv(env *Env, config ...Config) *Val {
	env.AddBuiltins(true)
	for _, fn := range config {
		lerr := fn(env)
		if lerr.Type == QError {
			return lerr
		}
	}
	return Nil()
}

// Binding is a dictionary entry.  A binding holds either a native builtin
// word or a user definition created by an assignment form.  User definitions
// are usually quotations but scalar constants are allowed.
type Binding struct {
	Name    string
	Builtin *Builtin
	Val     *Val
}

// Env is a quill execution environment.  It owns the dictionary, the data
// stack, and the evaluator's code work list.  The work list makes control
// flow explicit: executing a quotation schedules its elements instead of
// recursing in Go, so language-level tail recursion (loop, while) runs in
// constant host stack space.
//
// An Env is not safe for concurrent use.
type Env struct {
	Loc     *token.Location
	Dict    map[string]*Binding
	Data    *Stack
	Runtime *Runtime

	// code is the work list.  The next element to execute is at the end of
	// the slice.
	code  []*Val
	steps int64
	bye   bool
}

// NewEnv initializes and returns a new Env.  When rt is nil
// StandardRuntime() is called to create a Runtime for the returned Env.
func NewEnv(rt *Runtime) *Env {
	if rt == nil {
		rt = StandardRuntime()
	}
	return &Env{
		Loc:     nativeSource(),
		Dict:    make(map[string]*Binding),
		Data:    NewStack(),
		Runtime: rt,
	}
}

// Errorf returns a QError under the generic "error" condition with source
// location information from the environment.
func (env *Env) Errorf(format string, vs ...interface{}) *Val {
	return env.ErrorConditionf(CondError, format, vs...)
}

// ErrorConditionf returns a QError with the given condition name and source
// location information from the environment.
func (env *Env) ErrorConditionf(condition string, format string, vs ...interface{}) *Val {
	lerr := ErrorConditionf(condition, format, vs...)
	lerr.Source = env.Loc
	return lerr
}

// Define binds name in the dictionary.  An existing binding for name,
// builtin or not, is replaced.  There is no way to delete a binding.
func (env *Env) Define(name string, v *Val) {
	env.Dict[name] = &Binding{Name: name, Val: v}
}

// Get returns the binding for name, or nil when name is not defined.
func (env *Env) Get(name string) *Binding {
	return env.Dict[name]
}

// Words returns the names of all dictionary bindings in sorted order.
func (env *Env) Words() []string {
	names := make([]string, 0, len(env.Dict))
	for name := range env.Dict {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Terminated returns true once the bye word has run.  Session drivers use
// it to distinguish a requested exit from normal completion.
func (env *Env) Terminated() bool {
	return env.bye
}

// LoadFile resolves loc through the runtime's source library and evaluates
// the text it names.
func (env *Env) LoadFile(loc string) *Val {
	if env.Runtime.Library == nil {
		return env.Errorf("no source library for environment runtime")
	}
	name, _, src, err := env.Runtime.Library.LoadSource(loc)
	if err != nil {
		return env.ErrorConditionf(CondIOError, "%v", err)
	}
	return env.Load(name, bytes.NewReader(src))
}

// LoadString reads quill source from the string text and evaluates it.
func (env *Env) LoadString(name, text string) *Val {
	return env.Load(name, bytes.NewReader([]byte(text)))
}

// Load reads Vals from r and evaluates them left to right against the
// environment's data stack.  If env.Runtime.Reader has not been set then an
// error is returned by Load.
func (env *Env) Load(name string, r io.Reader) *Val {
	if env.Runtime.Reader == nil {
		return env.Errorf("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return readError(err)
	}
	return env.RunProgram(exprs)
}

// ReadString parses source text without evaluating it and returns a single
// quotation wrapping the parsed forms.  It backs the parse word.
func (env *Env) ReadString(name, text string) *Val {
	if env.Runtime.Reader == nil {
		return env.Errorf("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, bytes.NewReader([]byte(text)))
	if err != nil {
		return readError(err)
	}
	return Quot(exprs)
}

func readError(err error) *Val {
	if lerr, ok := err.(*ErrorVal); ok {
		return (*Val)(lerr)
	}
	return ErrorCondition(CondSyntaxError, err)
}

// RunProgram schedules exprs on the work list and runs the evaluator until
// the work list drains or an uncaught error occurs.  The data stack and
// dictionary persist across calls, which is what lets a REPL feed programs
// through one form at a time.
func (env *Env) RunProgram(exprs []*Val) *Val {
	env.loadCode(exprs)
	return env.run()
}

// EvalQuot executes the quotation v against the current stack.
func (env *Env) EvalQuot(v *Val) *Val {
	if v.Type != QQuot {
		return env.ErrorConditionf(CondTypeMismatch, "eval on %s, not a quotation", v.Type)
	}
	return env.RunProgram(v.Cells)
}

// loadCode schedules cells for execution ahead of everything currently on
// the work list.  Cells are appended in reverse so that the leftmost cell
// is consumed first.
func (env *Env) loadCode(cells []*Val) {
	for i := len(cells) - 1; i >= 0; i-- {
		env.code = append(env.code, cells[i])
	}
}

// nextCode removes and returns the next work list element.  It returns nil
// when the work list is empty.
func (env *Env) nextCode() *Val {
	if len(env.code) == 0 {
		return nil
	}
	v := env.code[len(env.code)-1]
	env.code[len(env.code)-1] = nil
	env.code = env.code[:len(env.code)-1]
	return v
}

// run is the evaluator's trampoline.  It consumes the work list one element
// at a time and never recurses into itself for user-level calls.
func (env *Env) run() *Val {
	for len(env.code) > 0 {
		if env.bye {
			env.unwindAll()
			return Nil()
		}
		if env.Runtime.maxSteps > 0 {
			env.steps++
			if env.steps > env.Runtime.maxSteps {
				env.unwindAll()
				return env.ErrorConditionf(CondStepLimit, "evaluation exceeded %d steps", env.Runtime.maxSteps)
			}
		}
		v := env.nextCode()
		if v.Source != nil {
			env.Loc = v.Source
		}
		lerr := env.step(v)
		if lerr.Type == QError {
			lerr = env.recover(lerr)
			if lerr.Type == QError {
				env.unwindAll()
				return lerr
			}
		}
	}
	return Nil()
}

// step executes a single work list element.
func (env *Env) step(v *Val) *Val {
	switch v.Type {
	case QInt, QString, QBool, QQuot, QError:
		env.Data.Push(v)
	case QSeq:
		// Sequences have mutable length; pushing a copy keeps repeated
		// executions of the same code (loop bodies) from aliasing one
		// spine.
		env.Data.Push(v.Copy())
	case QWord:
		return env.stepWord(v)
	case QDef:
		env.Define(v.Str, v.Cells[0])
	case QMarkTry:
		// The guarded block completed; its handler is never run.
	case QMarkProf:
		v.Native.(func())()
	default:
		return env.Errorf("cannot execute %s value", v.Type)
	}
	return Nil()
}

func (env *Env) stepWord(v *Val) *Val {
	binding := env.Get(v.Str)
	if binding == nil {
		return env.ErrorConditionf(CondUndefinedWord, "undefined word: %s", v.Str)
	}
	var end func()
	if p := env.Runtime.Profiler; p != nil && p.IsEnabled() {
		end = p.Start(v)
	}
	if binding.Builtin != nil {
		lerr := binding.Builtin.Fun(env)
		if end != nil {
			end()
		}
		return lerr
	}
	if binding.Val.Type == QQuot {
		// Word invocation shares the caller's stack; the definition's
		// cells are simply scheduled in place of the word.
		if end != nil {
			env.code = append(env.code, markProf(end))
		}
		env.loadCode(binding.Val.Cells)
		return Nil()
	}
	// scalar constant
	env.Data.Push(binding.Val.Copy())
	if end != nil {
		end()
	}
	return Nil()
}

// recover unwinds the work list to the innermost try marker, restores the
// stack depth recorded by try, delivers lerr on the stack, and schedules
// the handler.  Errors with no enclosing try, and the end-of-input
// sentinel, propagate to the Go caller.
func (env *Env) recover(lerr *Val) *Val {
	if lerr.Str == CondEndOfInput {
		return lerr
	}
	for {
		v := env.nextCode()
		if v == nil {
			return lerr
		}
		switch v.Type {
		case QMarkProf:
			v.Native.(func())()
		case QMarkTry:
			env.Data.Truncate(v.Int)
			env.Data.Push(lerr)
			env.loadCode(v.Cells[0].Cells)
			return Nil()
		}
	}
}

// unwindAll discards the work list, closing any profiler spans still open.
func (env *Env) unwindAll() {
	for {
		v := env.nextCode()
		if v == nil {
			return
		}
		if v.Type == QMarkProf {
			v.Native.(func())()
		}
	}
}

// dumpCode writes the pending work list to w, next element first.  The
// debug word uses it.
func (env *Env) dumpCode(w io.Writer) {
	for i := len(env.code) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "%4d  %s\n", len(env.code)-1-i, env.code[i]) //nolint:errcheck
	}
}
