// Copyright © 2024 The Quill authors

package quill

import "strconv"

func (env *Env) popInt2(word string) (a, b *Val, lerr *Val) {
	b = env.popType(word, QInt)
	if b.Type == QError {
		return nil, nil, b
	}
	a = env.popType(word, QInt)
	if a.Type == QError {
		return nil, nil, a
	}
	return a, b, Nil()
}

func builtinAdd(env *Env) *Val {
	a, b, lerr := env.popInt2("+")
	if lerr.Type == QError {
		return lerr
	}
	env.Data.Push(Int(a.Int + b.Int))
	return Nil()
}

func builtinSub(env *Env) *Val {
	a, b, lerr := env.popInt2("-")
	if lerr.Type == QError {
		return lerr
	}
	env.Data.Push(Int(a.Int - b.Int))
	return Nil()
}

func builtinMul(env *Env) *Val {
	a, b, lerr := env.popInt2("*")
	if lerr.Type == QError {
		return lerr
	}
	env.Data.Push(Int(a.Int * b.Int))
	return Nil()
}

func builtinDiv(env *Env) *Val {
	a, b, lerr := env.popInt2("/")
	if lerr.Type == QError {
		return lerr
	}
	if b.Int == 0 {
		return env.ErrorConditionf(CondDivideByZero, "%d / 0", a.Int)
	}
	env.Data.Push(Int(a.Int / b.Int))
	return Nil()
}

func builtinNeg(env *Env) *Val {
	n := env.popType("~", QInt)
	if n.Type == QError {
		return n
	}
	env.Data.Push(Int(-n.Int))
	return Nil()
}

func builtinLT(env *Env) *Val {
	a, b, lerr := env.popInt2("<")
	if lerr.Type == QError {
		return lerr
	}
	env.Data.Push(Bool(a.Int < b.Int))
	return Nil()
}

func builtinGT(env *Env) *Val {
	a, b, lerr := env.popInt2(">")
	if lerr.Type == QError {
		return lerr
	}
	env.Data.Push(Bool(a.Int > b.Int))
	return Nil()
}

func builtinInt(env *Env) *Val {
	s := env.popType("int", QString)
	if s.Type == QError {
		return s
	}
	n, err := strconv.Atoi(s.Str)
	if err != nil {
		return env.ErrorConditionf(CondTypeMismatch, "int on %q, not an integer", s.Str)
	}
	env.Data.Push(Int(n))
	return Nil()
}

func builtinHex(env *Env) *Val {
	n := env.popType("hex", QInt)
	if n.Type == QError {
		return n
	}
	if n.Int < 0 {
		return env.ErrorConditionf(CondTypeMismatch, "hex on a negative integer")
	}
	env.Data.Push(String(strconv.FormatInt(int64(n.Int), 16)))
	return Nil()
}

func builtinStr(env *Env) *Val {
	v := env.Data.Pop()
	if v == nil {
		return env.ErrorConditionf(CondStackUnderflow, "str on an empty stack")
	}
	env.Data.Push(String(v.Display()))
	return Nil()
}
