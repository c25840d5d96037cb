// Copyright © 2024 The Quill authors

package quill

// Stack is the shared data stack threaded through every word invocation.
// The top of the stack is the last element of vals.  Depth never goes
// negative; accessors return nil instead of observing garbage and callers
// report stack-underflow errors.  Returning nil rather than a QError keeps
// underflow distinguishable from error values legitimately held on the
// stack after try delivers one to a handler.
type Stack struct {
	vals []*Val
}

// NewStack returns an empty data stack.
func NewStack() *Stack {
	return &Stack{}
}

// Depth returns the number of values on the stack.
func (s *Stack) Depth() int {
	return len(s.vals)
}

// Push places v on top of the stack.
func (s *Stack) Push(v *Val) {
	s.vals = append(s.vals, v)
}

// Pop removes and returns the top of the stack, or nil when the stack is
// empty.
func (s *Stack) Pop() *Val {
	if len(s.vals) == 0 {
		return nil
	}
	v := s.vals[len(s.vals)-1]
	s.vals[len(s.vals)-1] = nil
	s.vals = s.vals[:len(s.vals)-1]
	return v
}

// Peek returns the value at depth n without removing it (0 is the top), or
// nil when the stack is not that deep.
func (s *Stack) Peek(n int) *Val {
	if n < 0 || n >= len(s.vals) {
		return nil
	}
	return s.vals[len(s.vals)-1-n]
}

// Pick returns a copy of the value at depth n (0 is the top), or nil when
// the stack is not that deep.  The stack is not modified; the caller pushes
// the copy.
func (s *Stack) Pick(n int) *Val {
	v := s.Peek(n)
	if v == nil {
		return nil
	}
	return v.Copy()
}

// Roll removes and returns the value at depth n (0 is the top), or nil when
// the stack is not that deep.  Values above it shift down one position; the
// caller pushes the removed value so the net depth is unchanged.
func (s *Stack) Roll(n int) *Val {
	if n < 0 || n >= len(s.vals) {
		return nil
	}
	i := len(s.vals) - 1 - n
	v := s.vals[i]
	copy(s.vals[i:], s.vals[i+1:])
	s.vals[len(s.vals)-1] = nil
	s.vals = s.vals[:len(s.vals)-1]
	return v
}

// Truncate discards values until the stack depth is at most n.  It is used
// by try to restore the depth recorded when the guarded block started.
func (s *Stack) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(s.vals) {
		return
	}
	for i := n; i < len(s.vals); i++ {
		s.vals[i] = nil
	}
	s.vals = s.vals[:n]
}

// Clear discards every value on the stack.
func (s *Stack) Clear() {
	s.Truncate(0)
}

// Snapshot returns a sequence containing a copy of every stack value,
// bottom first.  The snapshot does not alias the stack spine.
func (s *Stack) Snapshot() *Val {
	cells := make([]*Val, len(s.vals))
	for i, v := range s.vals {
		cells[i] = v.Copy()
	}
	return Seq(cells)
}
