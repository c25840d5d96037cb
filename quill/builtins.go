// Copyright © 2024 The Quill authors

package quill

import (
	"fmt"
)

// BuiltinFun executes a native word.  The function pops its own operands
// from the environment's data stack and pushes its results there.  A
// non-error return value means the word completed.
type BuiltinFun func(env *Env) *Val

// BuiltinDef describes a built-in word.
type BuiltinDef interface {
	Name() string
	// Effect describes the word's stack effect, e.g. "( n -- x )".  The
	// effect is documentation only; it is not enforced.
	Effect() string
	Doc() string
	Eval(env *Env) *Val
}

type langBuiltin struct {
	name   string
	effect string
	fun    BuiltinFun
	doc    string
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Effect() string {
	return fun.effect
}

func (fun *langBuiltin) Doc() string {
	return fun.doc
}

func (fun *langBuiltin) Eval(env *Env) *Val {
	return fun.fun(env)
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"pick", "( n -- x )", builtinPick,
		"Copy the value at depth n to the top of the stack.  0 pick duplicates the top value."},
	{"roll", "( n -- x )", builtinRoll,
		"Move the value at depth n to the top of the stack.  1 roll swaps the top two values."},
	{"drop", "( x -- )", builtinDrop,
		"Discard the top value."},
	{"clear", "( ... -- )", builtinClear,
		"Discard every value on the stack."},
	{"depth", "( -- n )", builtinDepth,
		"Push the number of values on the stack."},
	{"stack", "( -- seq )", builtinStack,
		"Push a sequence holding a snapshot of the stack, bottom first."},
	{"if", "( bool then else -- )", builtinIf,
		"Execute the then quotation when bool is true, the else quotation otherwise."},
	{"eval", "( quot -- )", builtinEval,
		"Execute a quotation against the current stack."},
	{"try", "( body handler -- )", builtinTry,
		"Execute body; if it fails, restore the stack depth, push the error, and execute handler."},
	{"expand", "( ... pattern template -- quot )", builtinExpand,
		"Pop one value per pattern name (the rightmost name binds the top) and push a new quotation equal to template with every bound name replaced by its value."},
	{"quote", "( -- x )", builtinQuote,
		"Push the next element of the program as data instead of executing it."},
	{"((", "( -- ... )", builtinInfix,
		"Evaluate a three-part infix expression, e.g. (( 1 + 2 )).  The operator may be any defined word."},
	{"true", "( -- bool )", builtinTrue,
		"Push the boolean true."},
	{"false", "( -- bool )", builtinFalse,
		"Push the boolean false."},
	{"==", "( a b -- bool )", builtinEqual,
		"Push true when a and b are structurally equal values of the same type."},
	{"not", "( bool -- bool )", builtinNot,
		"Negate a boolean."},
	{"words", "( -- seq )", builtinWords,
		"Push a sequence of all defined word names."},
	{"inspect", "( -- )", builtinInspect,
		"Print the definition of the next word in the program, e.g. inspect swap."},
	{"debug", "( -- )", builtinDebug,
		"Dump the pending program to the debug stream."},
	{"bye", "( -- )", builtinBye,
		"End the session."},
	{"len", "( x -- n )", builtinLen,
		"Pop a sequence, quotation, or string and push its length."},
	{"shift", "( seq -- seq x )", builtinShift,
		"Remove the first element of a sequence and push it."},
	{"pop", "( seq -- seq x )", builtinPop,
		"Remove the last element of a sequence and push it."},
	{"unshift", "( seq x -- seq )", builtinUnshift,
		"Insert a value at the front of a sequence."},
	{"push", "( seq x -- seq )", builtinPush,
		"Append a value at the back of a sequence."},
	{"append", "( seq seq -- seq )", builtinAppend,
		"Concatenate two sequences."},
	{"explode", "( seq -- ... )", builtinExplode,
		"Push every element of a sequence or quotation, leftmost deepest."},
	{"seq", "( quot -- seq )", builtinSeq,
		"Convert a quotation to a sequence of its elements."},
	{"quot", "( seq -- quot )", builtinQuot,
		"Convert a sequence to a quotation of its elements."},
	{"flatten", "( seq sep -- str )", builtinFlatten,
		"Join the rendered elements of a sequence with the separator string."},
	{"lines", "( str -- seq )", builtinLines,
		"Split a string into a sequence of its lines."},
	{"strcat", "( a b -- str )", builtinStrcat,
		"Concatenate two strings; the deeper value is the left operand."},
	{"+", "( a b -- n )", builtinAdd, "Add two integers."},
	{"-", "( a b -- n )", builtinSub, "Subtract the top integer from the one beneath it."},
	{"*", "( a b -- n )", builtinMul, "Multiply two integers."},
	{"/", "( a b -- n )", builtinDiv, "Divide the deeper integer by the top one."},
	{"~", "( n -- n )", builtinNeg, "Negate an integer."},
	{"<", "( a b -- bool )", builtinLT, "Push true when the deeper integer is less than the top one."},
	{">", "( a b -- bool )", builtinGT, "Push true when the deeper integer is greater than the top one."},
	{"int", "( str -- n )", builtinInt,
		"Parse a string as an integer."},
	{"hex", "( n -- str )", builtinHex,
		"Render a non-negative integer in hexadecimal, e.g. 42 hex is \"2a\"."},
	{"str", "( x -- str )", builtinStr,
		"Render any value to a string."},
	{"echo", "( x -- )", builtinEcho,
		"Print the top value followed by a newline.  Strings print raw, without quotes."},
	{"capture", "( -- str )", builtinCapture,
		"Read one line of input and push it."},
	{"prompt", "( str -- str )", builtinPrompt,
		"Print a prompt string, then read one line of input and push it."},
	{"parse", "( str -- quot )", builtinParse,
		"Parse source text and push a quotation holding the parsed program."},
	{"load", "( str -- str )", builtinLoad,
		"Read the source text named by a designator and push it as a string."},
	{"command", "( str seq -- str )", builtinCommand,
		"Run an external command with the given argument sequence and push its output."},
}

// RegisterDefaultBuiltin adds the given word to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, effect string, fn BuiltinFun) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, effect, fn, ""})
}

// DefaultBuiltins returns the default set of BuiltinDefs added to Env
// objects when Env.AddBuiltins is called.
func DefaultBuiltins() []BuiltinDef {
	ops := make([]BuiltinDef, 0, len(langBuiltins)+len(userBuiltins))
	for i := range langBuiltins {
		ops = append(ops, langBuiltins[i])
	}
	for i := range userBuiltins {
		ops = append(ops, userBuiltins[i])
	}
	return ops
}

// AddBuiltins binds the default builtin words in env's dictionary.  Bound
// builtins are replaced when and only when replace is true.
func (env *Env) AddBuiltins(replace bool, funs ...BuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, fn := range funs {
		if !replace {
			if _, ok := env.Dict[fn.Name()]; ok {
				continue
			}
		}
		fn := fn
		env.Dict[fn.Name()] = &Binding{
			Name: fn.Name(),
			Builtin: &Builtin{
				Name:   fn.Name(),
				Effect: fn.Effect(),
				Doc:    fn.Doc(),
				Fun:    fn.Eval,
			},
		}
	}
}

// Builtin is the dictionary representation of a native word.
type Builtin struct {
	Name   string
	Effect string
	Doc    string
	Fun    BuiltinFun
}

// popVal pops the top value for the word named by word, reporting underflow
// when the stack is empty.
func (env *Env) popVal(word string) *Val {
	v := env.Data.Pop()
	if v == nil {
		return env.ErrorConditionf(CondStackUnderflow, "%s on an empty stack", word)
	}
	return v
}

// popType pops the top value and requires it to have type t.
func (env *Env) popType(word string, t QType) *Val {
	v := env.popVal(word)
	if v.Type == t || v.Type == QError {
		return v
	}
	return env.ErrorConditionf(CondTypeMismatch, "%s on %s, not %s", word, v.Type, t)
}

func builtinPick(env *Env) *Val {
	n := env.popType("pick", QInt)
	if n.Type == QError {
		return n
	}
	v := env.Data.Pick(n.Int)
	if v == nil {
		return env.ErrorConditionf(CondStackUnderflow, "pick %d with stack depth %d", n.Int, env.Data.Depth())
	}
	env.Data.Push(v)
	return Nil()
}

func builtinRoll(env *Env) *Val {
	n := env.popType("roll", QInt)
	if n.Type == QError {
		return n
	}
	v := env.Data.Roll(n.Int)
	if v == nil {
		return env.ErrorConditionf(CondStackUnderflow, "roll %d with stack depth %d", n.Int, env.Data.Depth())
	}
	env.Data.Push(v)
	return Nil()
}

func builtinDrop(env *Env) *Val {
	// Direct stack access: drop discards error values held as data just
	// like anything else.
	if env.Data.Pop() == nil {
		return env.ErrorConditionf(CondStackUnderflow, "drop on an empty stack")
	}
	return Nil()
}

func builtinClear(env *Env) *Val {
	env.Data.Clear()
	return Nil()
}

func builtinDepth(env *Env) *Val {
	env.Data.Push(Int(env.Data.Depth()))
	return Nil()
}

func builtinStack(env *Env) *Val {
	env.Data.Push(env.Data.Snapshot())
	return Nil()
}

func builtinIf(env *Env) *Val {
	alt := env.popType("if", QQuot)
	if alt.Type == QError {
		return alt
	}
	cons := env.popType("if", QQuot)
	if cons.Type == QError {
		return cons
	}
	cond := env.Data.Pop()
	if cond == nil {
		return env.ErrorConditionf(CondStackUnderflow, "if on an empty stack")
	}
	if cond.Type != QBool {
		return env.ErrorConditionf(CondTypeMismatch, "if condition is %s, not bool", cond.Type)
	}
	if True(cond) {
		env.loadCode(cons.Cells)
	} else {
		env.loadCode(alt.Cells)
	}
	return Nil()
}

func builtinEval(env *Env) *Val {
	quot := env.popType("eval", QQuot)
	if quot.Type == QError {
		return quot
	}
	env.loadCode(quot.Cells)
	return Nil()
}

func builtinTry(env *Env) *Val {
	handler := env.popType("try", QQuot)
	if handler.Type == QError {
		return handler
	}
	body := env.popType("try", QQuot)
	if body.Type == QError {
		return body
	}
	// The marker records the depth to restore and rides the work list
	// under the body.  If the body completes the evaluator discards the
	// marker and the handler never runs.
	env.code = append(env.code, markTry(env.Data.Depth(), handler))
	env.loadCode(body.Cells)
	return Nil()
}

func builtinQuote(env *Env) *Val {
	v := env.nextCode()
	if v == nil {
		return env.ErrorConditionf(CondMacroError, "quote at the end of the program")
	}
	switch v.Type {
	case QMarkTry, QMarkProf:
		// Markers are not data; put it back rather than leak it.
		env.code = append(env.code, v)
		return env.ErrorConditionf(CondMacroError, "quote at the end of the program")
	}
	env.Data.Push(v)
	return Nil()
}

func builtinInfix(env *Env) *Val {
	var part [4]*Val
	for i := range part {
		v := env.nextCode()
		if v == nil {
			return env.ErrorConditionf(CondMacroError, "(( without a matching ))")
		}
		switch v.Type {
		case QMarkTry, QMarkProf:
			// Markers are not source text; put it back rather than leak it.
			env.code = append(env.code, v)
			return env.ErrorConditionf(CondMacroError, "(( without a matching ))")
		}
		part[i] = v
	}
	lhs, op, rhs, end := part[0], part[1], part[2], part[3]
	if end.Type != QWord || end.Str != "))" {
		return env.ErrorConditionf(CondMacroError, "(( without a matching ))")
	}
	if op.Type != QWord {
		return env.ErrorConditionf(CondMacroError, "infix operator is %s, not a word", op.Type)
	}
	// The rewritten expression runs in postfix order: lhs, rhs, op.
	env.code = append(env.code, op, rhs, lhs)
	return Nil()
}

func builtinTrue(env *Env) *Val {
	env.Data.Push(Bool(true))
	return Nil()
}

func builtinFalse(env *Env) *Val {
	env.Data.Push(Bool(false))
	return Nil()
}

func builtinEqual(env *Env) *Val {
	// Direct stack access: comparing error values is how handlers
	// dispatch on a delivered error.
	b := env.Data.Pop()
	a := env.Data.Pop()
	if a == nil || b == nil {
		return env.ErrorConditionf(CondStackUnderflow, "== needs two values")
	}
	env.Data.Push(a.Equal(b))
	return Nil()
}

func builtinNot(env *Env) *Val {
	v := env.popType("not", QBool)
	if v.Type == QError {
		return v
	}
	env.Data.Push(Bool(!True(v)))
	return Nil()
}

func builtinWords(env *Env) *Val {
	names := env.Words()
	cells := make([]*Val, len(names))
	for i, name := range names {
		cells[i] = String(name)
	}
	env.Data.Push(Seq(cells))
	return Nil()
}

func builtinInspect(env *Env) *Val {
	v := env.nextCode()
	if v == nil || v.Type != QWord {
		if v != nil {
			env.code = append(env.code, v)
		}
		return env.ErrorConditionf(CondMacroError, "inspect is not followed by a word")
	}
	binding := env.Get(v.Str)
	if binding == nil {
		return env.ErrorConditionf(CondUndefinedWord, "undefined word: %s", v.Str)
	}
	fmt.Fprintln(env.Runtime.Stdout, DescribeBinding(binding)) //nolint:errcheck
	return Nil()
}

// DescribeBinding renders a dictionary binding the way inspect prints it.
func DescribeBinding(binding *Binding) string {
	if binding.Builtin != nil {
		return fmt.Sprintf("%s %s  <native word>", binding.Name, binding.Builtin.Effect)
	}
	return fmt.Sprintf("%s = %s", binding.Name, binding.Val)
}

func builtinDebug(env *Env) *Val {
	env.dumpCode(env.Runtime.Stderr)
	return Nil()
}

func builtinBye(env *Env) *Val {
	env.bye = true
	return Nil()
}
