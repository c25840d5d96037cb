// Copyright © 2024 The Quill authors

package quill

// builtinExpand pops a template quotation, a pattern quotation, and one
// stack value per pattern name, then pushes a new quotation equal to the
// template with every occurrence of a bound name replaced by its captured
// value.  The rightmost pattern name binds the top of the stack.
//
// Substitution recurses through nested quotations and assignment bodies.
// Bindings are ephemeral to the one expand call; they are substitution, not
// lexical capture.  Template names that do not appear in the pattern are
// left as ordinary words and resolve against the dictionary whenever the
// produced quotation is eventually executed.  A bound name shadows any
// dictionary word of the same name inside the template.
func builtinExpand(env *Env) *Val {
	template := env.popType("expand", QQuot)
	if template.Type == QError {
		return template
	}
	pattern := env.popType("expand", QQuot)
	if pattern.Type == QError {
		return pattern
	}
	names := make([]string, len(pattern.Cells))
	for i, cell := range pattern.Cells {
		if cell.Type != QWord {
			return env.ErrorConditionf(CondMacroError, "expand pattern element %d is %s, not a word", i, cell.Type)
		}
		names[i] = cell.Str
	}
	bindings := make(map[string]*Val, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		if _, ok := bindings[names[i]]; ok {
			return env.ErrorConditionf(CondMacroError, "expand pattern binds %s twice", names[i])
		}
		v := env.Data.Pop()
		if v == nil {
			return env.ErrorConditionf(CondStackUnderflow, "expand pattern needs %d values", len(names))
		}
		bindings[names[i]] = v
	}
	env.Data.Push(substituteQuot(template, bindings))
	return Nil()
}

// substituteQuot returns a new quotation equal to quot with bound words
// replaced by their values.  The input quotation is never modified, so a
// template held in a definition can be expanded any number of times and
// every expansion with the same inputs is structurally identical.
func substituteQuot(quot *Val, bindings map[string]*Val) *Val {
	cells := make([]*Val, len(quot.Cells))
	for i, cell := range quot.Cells {
		cells[i] = substitute(cell, bindings)
	}
	cp := Quot(cells)
	cp.Source = quot.Source
	return cp
}

func substitute(v *Val, bindings map[string]*Val) *Val {
	switch v.Type {
	case QWord:
		if bound, ok := bindings[v.Str]; ok {
			// A bound quotation substitutes as a literal value; it is not
			// spliced into the surrounding code.
			return bound
		}
		return v
	case QQuot:
		return substituteQuot(v, bindings)
	case QDef:
		body := substitute(v.Cells[0], bindings)
		if body == v.Cells[0] {
			return v
		}
		def := Def(v.Str, body)
		def.Source = v.Source
		return def
	default:
		return v
	}
}
