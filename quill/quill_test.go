// Copyright © 2024 The Quill authors

package quill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValString(t *testing.T) {
	tests := []struct {
		v      *Val
		output string
	}{
		{Int(0), `0`},
		{Int(-12), `-12`},
		{Bool(true), `true`},
		{Bool(false), `false`},
		{String("abc"), `"abc"`},
		{String("a\nb"), `"a\nb"`},
		{String(""), `""`},
		{Word("swap"), `swap`},
		{Quot(nil), `{}`},
		{Quot([]*Val{Int(1), Word("x")}), `{ 1 x }`},
		{Seq(nil), `()`},
		{Seq([]*Val{Int(1), String("a")}), `( 1 "a" )`},
		{Def("x", Int(1)), `x = 1`},
		{Def("double", Quot([]*Val{Int(2), Word("*")})), `double = { 2 * }`},
		{ErrorConditionf(CondDivideByZero, "1 / 0"), `divide-by-zero: 1 / 0`},
	}
	for i, test := range tests {
		assert.Equal(t, test.output, test.v.String(), "test %d", i)
	}
}

func TestValDisplay(t *testing.T) {
	// Strings display raw; everything else displays its readable form.
	assert.Equal(t, "abc", String("abc").Display())
	assert.Equal(t, "12", Int(12).Display())
	assert.Equal(t, `{ 1 "a" }`, Quot([]*Val{Int(1), String("a")}).Display())
}

func TestValEqual(t *testing.T) {
	tests := []struct {
		a, b  *Val
		equal bool
	}{
		{Int(1), Int(1), true},
		{Int(1), Int(2), false},
		{Int(1), String("1"), false},
		{String("a"), String("a"), true},
		{Word("a"), Word("a"), true},
		{Word("a"), String("a"), false},
		{Bool(true), Bool(true), true},
		{Bool(true), Bool(false), false},
		{Quot([]*Val{Int(1), Quot([]*Val{Word("x")})}), Quot([]*Val{Int(1), Quot([]*Val{Word("x")})}), true},
		{Quot([]*Val{Int(1)}), Quot([]*Val{Int(2)}), false},
		{Quot([]*Val{Int(1)}), Quot([]*Val{Int(1), Int(2)}), false},
		{Quot([]*Val{Int(1)}), Seq([]*Val{Int(1)}), false},
		{Seq([]*Val{Int(1)}), Seq([]*Val{Int(1)}), true},
		{ErrorConditionf(CondDivideByZero, "1 / 0"), ErrorConditionf(CondDivideByZero, "2 / 0"), true},
		{ErrorConditionf(CondDivideByZero, "1 / 0"), ErrorConditionf(CondTypeMismatch, "1 / 0"), false},
	}
	for i, test := range tests {
		assert.Equal(t, test.equal, True(test.a.Equal(test.b)), "test %d: %s == %s", i, test.a, test.b)
	}
}

func TestValLen(t *testing.T) {
	assert.Equal(t, 3, String("abc").Len())
	assert.Equal(t, 0, String("").Len())
	assert.Equal(t, 2, Quot([]*Val{Int(1), Int(2)}).Len())
	assert.Equal(t, 0, Seq(nil).Len())
	assert.Equal(t, -1, Int(12).Len())
	assert.Equal(t, -1, Bool(true).Len())
}

func TestValCopy(t *testing.T) {
	// Quotations are immutable and share backing cells.
	quot := Quot([]*Val{Int(1), Int(2)})
	cp := quot.Copy()
	assert.NotSame(t, quot, cp)
	assert.Same(t, quot.Cells[0], cp.Cells[0])

	// Sequences copy their spine and elements.
	seq := Seq([]*Val{Int(1), Seq([]*Val{Int(2)})})
	cp = seq.Copy()
	assert.NotSame(t, seq, cp)
	assert.NotSame(t, seq.Cells[0], cp.Cells[0])
	assert.NotSame(t, seq.Cells[1].Cells[0], cp.Cells[1].Cells[0])
	assert.True(t, True(seq.Equal(cp)))

	var nilVal *Val
	assert.Nil(t, nilVal.Copy())
}

func TestBoolSingletons(t *testing.T) {
	assert.Same(t, Bool(true), Bool(true))
	assert.Same(t, Bool(false), Bool(false))
	assert.Same(t, Nil(), Nil())
	assert.True(t, True(Bool(true)))
	assert.False(t, True(Bool(false)))
	assert.False(t, True(Int(1)))
}
