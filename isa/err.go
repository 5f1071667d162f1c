package isa

import (
	"errors"

	"github.com/dpino/8-chip/translate"
)

var f = translate.From

var (
	ErrOperandCount = errors.New(f("wrong number of operands"))
	ErrOperandRange = errors.New(f("operand out of range"))
)

// ErrOperand reports which operand of a template failed to pack.
type ErrOperand struct {
	Keyword string
	Index   int
	Value   uint16
	Err     error
}

func (err *ErrOperand) Error() string {
	return f("%v operand %d (0x%x) %v", err.Keyword, err.Index+1, err.Value, err.Err)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}
