// Copyright © 2024 The Quill authors

package quill

import (
	"fmt"
	"io"
	"os/exec"
)

func builtinEcho(env *Env) *Val {
	// Direct stack access: echo is the canonical error handler body and
	// must print error values instead of re-raising them.
	v := env.Data.Pop()
	if v == nil {
		return env.ErrorConditionf(CondStackUnderflow, "echo on an empty stack")
	}
	_, err := fmt.Fprintln(env.Runtime.Stdout, v.Display())
	if err != nil {
		return env.ErrorConditionf(CondIOError, "echo: %v", err)
	}
	return Nil()
}

func builtinCapture(env *Env) *Val {
	return captureLine(env, "capture")
}

func builtinPrompt(env *Env) *Val {
	text := env.popType("prompt", QString)
	if text.Type == QError {
		return text
	}
	_, err := io.WriteString(env.Runtime.Stdout, text.Str)
	if err != nil {
		return env.ErrorConditionf(CondIOError, "prompt: %v", err)
	}
	return captureLine(env, "prompt")
}

func captureLine(env *Env, word string) *Val {
	if env.Runtime.Input == nil {
		return env.ErrorConditionf(CondIOError, "%s with no input for environment runtime", word)
	}
	line, err := env.Runtime.Input.ReadLine()
	if err == io.EOF {
		return env.ErrorConditionf(CondEndOfInput, "end of input")
	}
	if err != nil {
		return env.ErrorConditionf(CondIOError, "%s: %v", word, err)
	}
	env.Data.Push(String(line))
	return Nil()
}

func builtinParse(env *Env) *Val {
	src := env.popType("parse", QString)
	if src.Type == QError {
		return src
	}
	quot := env.ReadString("parse", src.Str)
	if quot.Type == QError {
		return quot
	}
	env.Data.Push(quot)
	return Nil()
}

func builtinLoad(env *Env) *Val {
	loc := env.popType("load", QString)
	if loc.Type == QError {
		return loc
	}
	if env.Runtime.Library == nil {
		return env.Errorf("no source library for environment runtime")
	}
	_, _, src, err := env.Runtime.Library.LoadSource(loc.Str)
	if err != nil {
		return env.ErrorConditionf(CondIOError, "%v", err)
	}
	env.Data.Push(String(string(src)))
	return Nil()
}

func builtinCommand(env *Env) *Val {
	args := env.popType("command", QSeq)
	if args.Type == QError {
		return args
	}
	name := env.popType("command", QString)
	if name.Type == QError {
		return name
	}
	argv := make([]string, len(args.Cells))
	for i, cell := range args.Cells {
		if cell.Type != QString {
			return env.ErrorConditionf(CondTypeMismatch, "command argument %d is %s, not string", i, cell.Type)
		}
		argv[i] = cell.Str
	}
	out, err := exec.Command(name.Str, argv...).Output() //#nosec G204
	if err != nil {
		return env.ErrorConditionf(CondIOError, "command %s: %v", name.Str, err)
	}
	env.Data.Push(String(string(out)))
	return Nil()
}
