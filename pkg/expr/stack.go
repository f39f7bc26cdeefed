package expr

// Stack is a LIFO of operands. The zero value is ready to use.
type Stack struct {
	items []*Operand
}

// Push adds op to the top of the stack.
func (s *Stack) Push(op *Operand) {
	s.items = append(s.items, op)
}

// Pop removes and returns the top operand. It returns false on an empty stack.
func (s *Stack) Pop() (*Operand, bool) {
	if len(s.items) == 0 {
		return nil, false
	}

	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Len returns the number of operands on the stack.
func (s *Stack) Len() int {
	return len(s.items)
}

// Drain discards every operand and returns how many there were.
func (s *Stack) Drain() int {
	n := len(s.items)
	clear(s.items)
	s.items = s.items[:0]
	return n
}
