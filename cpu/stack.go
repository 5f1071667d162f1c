package cpu

import (
	"github.com/dpino/8-chip/isa"
)

const (
	STACK_LIMIT = isa.STACK_LIMIT // Maximum stack depth
)

// Stack is the call stack. Sp indexes the most recent frame; slot 0 is
// never written, so Sp == 0 means empty.
type Stack struct {
	Frame [STACK_LIMIT]uint16
	Sp    uint8
}

func (s *Stack) Push(value uint16) (err error) {
	if s.Full() {
		err = ErrStackOverflow
		return
	}
	s.Sp++
	s.Frame[s.Sp] = value
	return
}

func (s *Stack) Pop() (value uint16, err error) {
	value, ok := s.Peek()
	if !ok {
		err = ErrStackUnderflow
		return
	}
	s.Sp--
	return
}

func (s *Stack) Empty() bool {
	return s.Sp == 0
}

func (s *Stack) Full() bool {
	return int(s.Sp)+1 >= STACK_LIMIT
}

func (s *Stack) Peek() (value uint16, ok bool) {
	if s.Empty() {
		return
	}

	return s.Frame[s.Sp], true
}

func (s *Stack) Reset() {
	clear(s.Frame[:])
	s.Sp = 0
}
