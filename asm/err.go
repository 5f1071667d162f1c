package asm

import (
	"errors"
	"strings"

	"github.com/dpino/8-chip/translate"
)

var f = translate.From

var (
	// Tokenizer errors
	ErrKeywordInvalid = errors.New(f("keyword invalid"))
	ErrOperandTooLong = errors.New(f("operand too long"))
	ErrOperandExtra   = errors.New(f("too many operands"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrWordSyntax      = errors.New(f(".word syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrUnknownInstruction string

func (eu ErrUnknownInstruction) Error() string {
	return f("unknown instruction %v", string(eu))
}

func (eu ErrUnknownInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownInstruction)
	return
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a hexadecimal number", string(err))
}

func (err ErrParseNumber) Is(target error) (ok bool) {
	_, ok = target.(ErrParseNumber)
	return
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an assembly error in the source text.
type ErrSyntax struct {
	LineNo int    // Line number, starting at 1.
	Line   string // Line text, after expression evaluation.
	Column int    // Byte offset of the offending token.
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d:%d '%v' %v", err.LineNo, err.Column+1, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// Marker renders the line with a caret under the offending column.
func (err ErrSyntax) Marker() string {
	var pad strings.Builder
	for n, ch := range []byte(err.Line) {
		if n >= err.Column {
			break
		}
		if ch == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	return err.Line + "\n" + pad.String() + "^"
}
