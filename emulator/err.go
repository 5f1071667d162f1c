package emulator

import (
	"github.com/dpino/8-chip/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo  int    // Source line, or 0 for a raw ROM.
	Address uint16 // Program counter at the fault.
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("0x%03x %v", err.Address, err.Err)
	}
	return f("line %d (0x%03x) %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
