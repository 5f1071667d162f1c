package disasm

import (
	"errors"

	"github.com/dpino/8-chip/isa"
	"github.com/dpino/8-chip/translate"
)

var f = translate.From

var (
	ErrListingWrite = errors.New(f("listing write"))
)

// ErrDecode reports a word that matches no template.
type ErrDecode isa.Word

func (ed ErrDecode) Error() string {
	return f("unknown instruction 0x%04x", uint16(ed))
}

func (ed ErrDecode) Is(err error) (ok bool) {
	_, ok = err.(ErrDecode)
	return
}
