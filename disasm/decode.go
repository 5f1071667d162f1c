package disasm

import (
	"fmt"
	"strings"

	"github.com/dpino/8-chip/isa"
)

// Instruction is one decoded word.
type Instruction struct {
	Address  uint16
	Word     isa.Word
	Template isa.Template // Zero if the word did not decode.
	Operands []string
	Err      error // ErrDecode if the word did not decode.
}

// render formats an operand value by its kind.
func render(kind isa.Operand, value uint16) string {
	switch kind {
	case isa.OPERAND_REGISTER:
		return fmt.Sprintf("#%x", value)
	case isa.OPERAND_ADDRESS:
		return fmt.Sprintf("0x%03x", value)
	default:
		return fmt.Sprintf("0x%02x", value)
	}
}

// Decode converts a word to its mnemonic and rendered operands.
func Decode(w isa.Word) (mnemonic string, operands []string, err error) {
	tmpl, ok := isa.Reverse(w)
	if !ok {
		err = ErrDecode(w)
		return
	}

	mnemonic = tmpl.Keyword
	kinds := tmpl.Class.Operands()
	for n, value := range tmpl.Unpack(w) {
		operands = append(operands, render(kinds[n], value))
	}

	return
}

// decode builds the Instruction for the word at addr.
func decode(addr uint16, w isa.Word) (ins Instruction) {
	ins = Instruction{Address: addr, Word: w}
	mnemonic, operands, err := Decode(w)
	if err != nil {
		ins.Err = err
		return
	}
	ins.Template, _ = isa.Lookup(mnemonic)
	ins.Operands = operands
	return
}

// Valid is true if the word decoded.
func (ins Instruction) Valid() bool {
	return ins.Err == nil
}

// IsJump is true for unconditional transfers that do not return.
func (ins Instruction) IsJump() bool {
	switch ins.Template.Keyword {
	case "JUMP", "JUMPI":
		return true
	}
	return false
}

// IsCall is true for subroutine calls.
func (ins Instruction) IsCall() bool {
	return ins.Template.Keyword == "CALL"
}

// IsReturn is true for subroutine returns.
func (ins Instruction) IsReturn() bool {
	return ins.Template.Keyword == "RET"
}

// IsSkip is true for the conditional skips.
func (ins Instruction) IsSkip() bool {
	switch ins.Template.Keyword {
	case "SKE", "SKNE", "SKRE", "JNEQ", "SKPR", "SKUP":
		return true
	}
	return false
}

// Target returns the fixed destination of a JUMP or CALL.
func (ins Instruction) Target() (addr uint16, ok bool) {
	switch ins.Template.Keyword {
	case "JUMP", "CALL":
		return ins.Word.NNN(), true
	}
	return
}

// String renders the instruction as assembly text.
// Words that did not decode render as a .word directive.
func (ins Instruction) String() string {
	if !ins.Valid() {
		return fmt.Sprintf(".word 0x%04x", ins.Word.Value())
	}
	if len(ins.Operands) == 0 {
		return ins.Template.Keyword
	}
	return ins.Template.Keyword + " " + strings.Join(ins.Operands, ", ")
}
