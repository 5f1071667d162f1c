package cpu

import (
	"errors"

	"github.com/dpino/8-chip/isa"
	"github.com/dpino/8-chip/translate"
)

var f = translate.From

var (
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrAddressRange   = errors.New(f("address out of range"))
	ErrOpcodeInvalid  = errors.New(f("opcode invalid"))
	ErrHalted         = errors.New(f("cpu halted"))
	ErrRomTooLarge    = errors.New(f("rom too large"))
)

// ErrFault is a machine fault. The Cpu halts on any fault.
type ErrFault struct {
	Pc   uint16   // Address of the faulting instruction.
	Word isa.Word // Faulting instruction.
	Err  error
}

func (err *ErrFault) Error() string {
	return f("0x%03x: 0x%04x %v", err.Pc, uint16(err.Word), err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
