// Copyright © 2024 The Quill authors

package quill

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/quill-lang/quill/parser/token"
)

// QType is the type of a Val.
type QType uint

// Possible QType values.
const (
	// QInvalid (0) is not a valid quill type.
	QInvalid QType = iota
	// QInt values store an int in the Val.Int field.
	QInt
	// QBool values are the shared True and False singletons.  Truthiness is
	// stored in the Val.Int field (zero is false).
	QBool
	// QString values store a string in the Val.Str field.
	QString
	// QWord values store a name in the Val.Str field.  Words are resolved
	// against the dictionary when they are executed, never when they are
	// parsed.
	QWord
	// QQuot values are quotations, immutable blocks of code stored in
	// Val.Cells.  A quotation executes only when a word definition bound to
	// it is invoked or when it is passed to ``eval'' (or a combinator built
	// on eval).  Quotations must never be mutated after construction --
	// expand builds new quotations instead of rewriting old ones.
	QQuot
	// QSeq values are sequences, ordered lists with mutable length, stored
	// in Val.Cells.  Stack snapshots, ``lines'' output, and the list words
	// (push, pop, shift, unshift, append) operate on sequences.
	QSeq
	// QError values store an error condition name (e.g. "stack-underflow")
	// in the Val.Str field and message data in Val.Cells.  A wrapped Go
	// error may be stored in Cells[0].Native.
	QError
	// QDef values are parsed assignment forms (name = expr).  The bound
	// name is stored in Val.Str and the definition body in Val.Cells[0].
	// Executing a QDef binds the dictionary; it pushes nothing.
	QDef
	// Mark values are used internally by the evaluator's work list.  They
	// carry control information between evaluation steps and must never be
	// observable from quill code.
	QMarkTry  // delimits a try body; Cells[0] holds the handler, Int the saved depth
	QMarkProf // closes a profiler span; Native holds a func()
	// QTypeMax is not a real type but represents a value numerically
	// greater than all valid QType values.
	QTypeMax
)

var qtypeStrings = []string{
	QInvalid:  "INVALID",
	QInt:      "int",
	QBool:     "bool",
	QString:   "string",
	QWord:     "word",
	QQuot:     "quotation",
	QSeq:      "sequence",
	QError:    "error",
	QDef:      "definition",
	QMarkTry:  "marker-try",
	QMarkProf: "marker-profile",
}

func (t QType) String() string {
	if t >= QType(len(qtypeStrings)) {
		return qtypeStrings[QInvalid]
	}
	return qtypeStrings[t]
}

// Val is a quill value.
type Val struct {
	// Native is generic storage for data which cannot be represented as a
	// Val (wrapped Go errors, profiler callbacks).
	Native interface{}

	// Source is the value's originating location in source code.  Programs
	// should not modify the contents of Source as the reference may be
	// shared by multiple Vals.
	Source *token.Location

	// Str is used by QString, QWord and QDef values, and holds the
	// condition name for QError values.
	Str string

	// Cells holds the elements of QQuot and QSeq values, the message data
	// of QError values, and the body of QDef values.
	Cells []*Val

	// Type is the quill type of the value.
	Type QType

	// Int is used by QInt values, carries truthiness for QBool values, and
	// records the saved stack depth for try markers.
	Int int
}

// Singleton Vals for true, false, and the empty return value.
//
// These are pre-allocated, shared, immutable values returned by Bool() and
// Nil().  Bool() is returned by every comparison and predicate, and Nil() by
// every builtin that "returns nothing", so constructing fresh values on each
// call would be pure allocator churn.
//
// INVARIANT: Code that receives a Bool() or Nil() return value MUST NOT
// mutate any field on the returned *Val.  The language has no word that
// mutates a boolean or a quotation in place, so the only mutation vector
// would be a builtin written in Go; new builtins must push copies if they
// need writable cells.
var (
	singletonNil   = &Val{Source: nativeSource(), Type: QQuot}
	singletonTrue  = &Val{Source: nativeSource(), Type: QBool, Int: 1}
	singletonFalse = &Val{Source: nativeSource(), Type: QBool, Int: 0}
)

// Bool returns a Val with truthiness identical to b.
//
// The returned value is a shared singleton -- callers MUST NOT mutate it.
func Bool(b bool) *Val {
	if b {
		return singletonTrue
	}
	return singletonFalse
}

// True returns true when v is the boolean true value.
func True(v *Val) bool {
	return v.Type == QBool && v.Int != 0
}

// Nil returns the empty quotation used as a "no value" result by builtins
// and by the evaluator.
//
// The returned value is a shared singleton -- callers MUST NOT mutate it.
// Code that needs a writable empty quotation must use Quot(nil) directly.
func Nil() *Val {
	return singletonNil
}

// Int returns a Val representing the number x.
func Int(x int) *Val {
	return &Val{
		Source: nativeSource(),
		Type:   QInt,
		Int:    x,
	}
}

// String returns a Val representing the string str.
func String(str string) *Val {
	return &Val{
		Source: nativeSource(),
		Type:   QString,
		Str:    str,
	}
}

// Word returns a Val representing the word named s.  The word is not
// resolved against any dictionary until it is executed.
func Word(s string) *Val {
	return &Val{
		Source: nativeSource(),
		Type:   QWord,
		Str:    s,
	}
}

// Quot returns a quotation with the given elements.  Provided cells are used
// as backing storage for the quotation and are not copied.  The caller must
// not modify cells afterwards; quotations are immutable.
func Quot(cells []*Val) *Val {
	return &Val{
		Source: nativeSource(),
		Type:   QQuot,
		Cells:  cells,
	}
}

// Seq returns a sequence with the given elements.  Provided cells are used
// as backing storage for the sequence and are not copied.
func Seq(cells []*Val) *Val {
	return &Val{
		Source: nativeSource(),
		Type:   QSeq,
		Cells:  cells,
	}
}

// Def returns a parsed assignment form binding name to the expression body.
func Def(name string, body *Val) *Val {
	return &Val{
		Source: nativeSource(),
		Type:   QDef,
		Str:    name,
		Cells:  []*Val{body},
	}
}

func markTry(depth int, handler *Val) *Val {
	return &Val{
		Source: nativeSource(),
		Type:   QMarkTry,
		Int:    depth,
		Cells:  []*Val{handler},
	}
}

func markProf(end func()) *Val {
	return &Val{
		Source: nativeSource(),
		Type:   QMarkProf,
		Native: end,
	}
}

// Error returns a QError wrapping err under the generic "error" condition.
func Error(err error) *Val {
	return ErrorCondition(CondError, err)
}

// ErrorCondition returns a QError wrapping err and having the given
// condition name.
func ErrorCondition(condition string, err error) *Val {
	return &Val{
		Source: nativeSource(),
		Type:   QError,
		Str:    condition,
		Cells: []*Val{{
			Source: nativeSource(),
			Type:   QString,
			Str:    err.Error(),
			Native: err,
		}},
	}
}

// Errorf returns a QError with a formatted message under the generic
// "error" condition.
func Errorf(format string, vs ...interface{}) *Val {
	return ErrorConditionf(CondError, format, vs...)
}

// ErrorConditionf returns a QError with a formatted message and the given
// condition name.
func ErrorConditionf(condition string, format string, vs ...interface{}) *Val {
	return &Val{
		Source: nativeSource(),
		Type:   QError,
		Str:    condition,
		Cells:  []*Val{String(fmt.Sprintf(format, vs...))},
	}
}

// GoError converts a QError into a Go error.  Non-error values produce nil.
func GoError(v *Val) error {
	if v.Type != QError {
		return nil
	}
	return (*ErrorVal)(v)
}

// nativeSource returns a source location for values created outside of any
// source file.
func nativeSource() *token.Location {
	return &token.Location{File: "<native code>"}
}

// Len returns the number of elements in a quotation or sequence, or the
// number of bytes in a string.  Other types have length -1.
func (v *Val) Len() int {
	switch v.Type {
	case QQuot, QSeq:
		return len(v.Cells)
	case QString:
		return len(v.Str)
	default:
		return -1
	}
}

// Equal returns a Bool indicating structural equality of v and other.
// Values of different types are never equal.
func (v *Val) Equal(other *Val) *Val {
	if v.Type != other.Type {
		return Bool(false)
	}
	switch v.Type {
	case QInt:
		return Bool(v.Int == other.Int)
	case QBool:
		return Bool((v.Int != 0) == (other.Int != 0))
	case QString, QWord:
		return Bool(v.Str == other.Str)
	case QQuot, QSeq:
		if len(v.Cells) != len(other.Cells) {
			return Bool(false)
		}
		for i := range v.Cells {
			if !True(v.Cells[i].Equal(other.Cells[i])) {
				return Bool(false)
			}
		}
		return Bool(true)
	case QError:
		return Bool(v.Str == other.Str)
	default:
		return Bool(false)
	}
}

// Copy creates a copy of the receiver that is safe for the caller to hold
// on the stack.  Quotations are immutable and share their backing cells;
// sequences copy their spine so that list words on the copy cannot disturb
// the original.
func (v *Val) Copy() *Val {
	if v == nil {
		return nil
	}
	cp := &Val{}
	*cp = *v
	switch v.Type {
	case QQuot:
		// immutable, share cells
	default:
		cp.Cells = v.copyCells()
	}
	return cp
}

func (v *Val) copyCells() []*Val {
	if len(v.Cells) == 0 {
		return nil
	}
	cells := make([]*Val, len(v.Cells))
	for i := range cells {
		cells[i] = v.Cells[i].Copy()
	}
	return cells
}

func (v *Val) String() string {
	switch v.Type {
	case QInt:
		return strconv.Itoa(v.Int)
	case QBool:
		if v.Int != 0 {
			return "true"
		}
		return "false"
	case QString:
		return strconv.Quote(v.Str)
	case QWord:
		return v.Str
	case QQuot:
		return v.renderSeq("{", "}")
	case QSeq:
		return v.renderSeq("(", ")")
	case QError:
		return fmt.Sprintf("%s: %s", v.Str, (*ErrorVal)(v).ErrorMessage())
	case QDef:
		return fmt.Sprintf("%s = %s", v.Str, v.Cells[0])
	case QMarkTry:
		return fmt.Sprintf("#<try-marker %d>", v.Int)
	case QMarkProf:
		return "#<profile-marker>"
	default:
		return fmt.Sprintf("#<%s>", v.Type)
	}
}

// Display renders v the way echo does.  Strings render raw, without quotes
// or escapes; everything else renders in its readable form.
func (v *Val) Display() string {
	if v.Type == QString {
		return v.Str
	}
	return v.String()
}

func (v *Val) renderSeq(open, close string) string {
	if len(v.Cells) == 0 {
		return open + close
	}
	var buf bytes.Buffer
	buf.WriteString(open)
	for _, cell := range v.Cells {
		buf.WriteString(" ")
		buf.WriteString(cell.String())
	}
	buf.WriteString(" ")
	buf.WriteString(close)
	return buf.String()
}
