package mem

import "corral/types"

// Stack is the operand stack. It grows and shrinks at the top only;
// pop and peek on an empty stack report failure instead of defaulting.
type Stack struct {
	items []types.Value
}

// NewStack creates an empty operand stack
func NewStack() *Stack {
	return &Stack{items: make([]types.Value, 0, 64)}
}

// Push pushes a value onto the stack
func (s *Stack) Push(v types.Value) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top value. ok is false when empty.
func (s *Stack) Pop() (v types.Value, ok bool) {
	if len(s.items) == 0 {
		return types.Empty, false
	}
	v = s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Peek returns the top value without removing it. ok is false when empty.
func (s *Stack) Peek() (v types.Value, ok bool) {
	if len(s.items) == 0 {
		return types.Empty, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of values on the stack
func (s *Stack) Len() int {
	return len(s.items)
}

// Values returns the stack contents bottom to top. The slice is the
// live backing store; callers only read it (trace rendering, debug
// dumps).
func (s *Stack) Values() []types.Value {
	return s.items
}
