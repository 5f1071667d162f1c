package asm

import (
	"strconv"
	"strings"

	"github.com/dpino/8-chip/isa"
)

// valueOf parses an operand as hexadecimal, ignoring a register or
// immediate prefix.
func valueOf(text string) (value uint16, err error) {
	word := text
	switch {
	case strings.HasPrefix(word, "#"):
		word = word[1:]
	case strings.HasPrefix(word, "v"), strings.HasPrefix(word, "V"):
		word = word[1:]
	}
	if strings.HasPrefix(word, "0x") || strings.HasPrefix(word, "0X") {
		word = word[2:]
	}

	v64, err := strconv.ParseUint(word, 16, 16)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	value = uint16(v64)
	return
}

// Encode converts a tokenized instruction into its Word.
//
// Unknown keywords give ErrUnknownInstruction, unparsable operands
// ErrParseNumber, and the isa errors report arity and range problems.
// On error the Column of the failing token is attached via ErrSyntax.
func Encode(rec Record) (w isa.Word, err error) {
	column := func(n int) int {
		if n < len(rec.Column) {
			return rec.Column[n]
		}
		return 0
	}

	tmpl, ok := isa.Lookup(rec.Keyword)
	if !ok {
		err = ErrSyntax{Column: column(0), Err: ErrUnknownInstruction(rec.Keyword)}
		return
	}

	values := make([]uint16, len(rec.Operands))
	for n, text := range rec.Operands {
		values[n], err = valueOf(text)
		if err != nil {
			err = ErrSyntax{Column: column(n + 1), Err: err}
			return
		}
	}

	w, err = tmpl.Pack(values...)
	if err != nil {
		col := column(0)
		if opErr, ok := err.(*isa.ErrOperand); ok {
			col = column(opErr.Index + 1)
		}
		err = ErrSyntax{Column: col, Err: err}
		return
	}

	return
}
