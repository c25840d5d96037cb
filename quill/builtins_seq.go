// Copyright © 2024 The Quill authors

package quill

import (
	"bytes"
	"strings"
)

func builtinLen(env *Env) *Val {
	v := env.popVal("len")
	if v.Type == QError {
		return v
	}
	n := v.Len()
	if n < 0 {
		return env.ErrorConditionf(CondTypeMismatch, "len on %s, not a sequence, quotation, or string", v.Type)
	}
	env.Data.Push(Int(n))
	return Nil()
}

func builtinShift(env *Env) *Val {
	seq := env.popType("shift", QSeq)
	if seq.Type == QError {
		return seq
	}
	if len(seq.Cells) == 0 {
		return env.ErrorConditionf(CondEmptySequence, "shift on an empty sequence")
	}
	v := seq.Cells[0]
	seq.Cells = seq.Cells[1:]
	env.Data.Push(seq)
	env.Data.Push(v)
	return Nil()
}

func builtinPop(env *Env) *Val {
	seq := env.popType("pop", QSeq)
	if seq.Type == QError {
		return seq
	}
	if len(seq.Cells) == 0 {
		return env.ErrorConditionf(CondEmptySequence, "pop on an empty sequence")
	}
	v := seq.Cells[len(seq.Cells)-1]
	seq.Cells[len(seq.Cells)-1] = nil
	seq.Cells = seq.Cells[:len(seq.Cells)-1]
	env.Data.Push(seq)
	env.Data.Push(v)
	return Nil()
}

func builtinUnshift(env *Env) *Val {
	v := env.popVal("unshift")
	if v.Type == QError {
		return v
	}
	seq := env.popType("unshift", QSeq)
	if seq.Type == QError {
		return seq
	}
	seq.Cells = append([]*Val{v}, seq.Cells...)
	env.Data.Push(seq)
	return Nil()
}

func builtinPush(env *Env) *Val {
	v := env.popVal("push")
	if v.Type == QError {
		return v
	}
	seq := env.popType("push", QSeq)
	if seq.Type == QError {
		return seq
	}
	seq.Cells = append(seq.Cells, v)
	env.Data.Push(seq)
	return Nil()
}

func builtinAppend(env *Env) *Val {
	b := env.popType("append", QSeq)
	if b.Type == QError {
		return b
	}
	a := env.popType("append", QSeq)
	if a.Type == QError {
		return a
	}
	cells := make([]*Val, 0, len(a.Cells)+len(b.Cells))
	cells = append(cells, a.Cells...)
	cells = append(cells, b.Cells...)
	env.Data.Push(Seq(cells))
	return Nil()
}

func builtinExplode(env *Env) *Val {
	v := env.popVal("explode")
	if v.Type == QError {
		return v
	}
	if v.Type != QSeq && v.Type != QQuot {
		return env.ErrorConditionf(CondTypeMismatch, "explode on %s, not a sequence or quotation", v.Type)
	}
	for _, cell := range v.Cells {
		env.Data.Push(cell.Copy())
	}
	return Nil()
}

func builtinSeq(env *Env) *Val {
	quot := env.popType("seq", QQuot)
	if quot.Type == QError {
		return quot
	}
	cells := make([]*Val, len(quot.Cells))
	copy(cells, quot.Cells)
	env.Data.Push(Seq(cells))
	return Nil()
}

func builtinQuot(env *Env) *Val {
	seq := env.popType("quot", QSeq)
	if seq.Type == QError {
		return seq
	}
	cells := make([]*Val, len(seq.Cells))
	copy(cells, seq.Cells)
	env.Data.Push(Quot(cells))
	return Nil()
}

func builtinFlatten(env *Env) *Val {
	sep := env.popType("flatten", QString)
	if sep.Type == QError {
		return sep
	}
	seq := env.popType("flatten", QSeq)
	if seq.Type == QError {
		return seq
	}
	var buf bytes.Buffer
	for i, cell := range seq.Cells {
		if i > 0 {
			buf.WriteString(sep.Str)
		}
		buf.WriteString(cell.Display())
	}
	env.Data.Push(String(buf.String()))
	return Nil()
}

func builtinLines(env *Env) *Val {
	s := env.popType("lines", QString)
	if s.Type == QError {
		return s
	}
	var cells []*Val
	if s.Str != "" {
		for _, line := range strings.Split(strings.TrimSuffix(s.Str, "\n"), "\n") {
			cells = append(cells, String(line))
		}
	}
	env.Data.Push(Seq(cells))
	return Nil()
}

func builtinStrcat(env *Env) *Val {
	b := env.popType("strcat", QString)
	if b.Type == QError {
		return b
	}
	a := env.popType("strcat", QString)
	if a.Type == QError {
		return a
	}
	env.Data.Push(String(a.Str + b.Str))
	return Nil()
}
