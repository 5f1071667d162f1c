package isa

import (
	"iter"
	"slices"
	"strings"
)

// Template is one entry of the Instruction Table.
type Template struct {
	Keyword string // Mnemonic keyword.
	Opcode  Word   // Opcode skeleton, operand fields zeroed.
	Arity   int    // Number of operands in source text.
	Class   Class  // Operand packing rule.
}

// table is the Instruction Table, in canonical order.
var table = [...]Template{
	{"SYS", 0x0000, 1, CLASS_ADDRESS},
	{"CLS", 0x00e0, 0, CLASS_NONE},
	{"RET", 0x00ee, 0, CLASS_NONE},
	{"JUMP", 0x1000, 1, CLASS_ADDRESS},
	{"CALL", 0x2000, 1, CLASS_ADDRESS},
	{"SKE", 0x3000, 2, CLASS_REG_BYTE},
	{"SKNE", 0x4000, 2, CLASS_REG_BYTE},
	{"SKRE", 0x5000, 2, CLASS_REG_REG},
	{"LOAD", 0x6000, 2, CLASS_REG_BYTE},
	{"ADD", 0x7000, 2, CLASS_REG_BYTE},
	{"MOVE", 0x8000, 2, CLASS_REG_REG},
	{"OR", 0x8001, 2, CLASS_REG_REG},
	{"AND", 0x8002, 2, CLASS_REG_REG},
	{"XOR", 0x8003, 2, CLASS_REG_REG},
	{"ADDR", 0x8004, 2, CLASS_REG_REG},
	{"SUB", 0x8005, 2, CLASS_REG_REG},
	{"SHR", 0x8006, 2, CLASS_REG_REG},
	{"SUBB", 0x8007, 2, CLASS_REG_REG},
	{"SHL", 0x800e, 2, CLASS_REG_REG},
	{"JNEQ", 0x9000, 2, CLASS_REG_REG},
	{"LOADI", 0xa000, 1, CLASS_ADDRESS},
	{"JUMPI", 0xb000, 1, CLASS_ADDRESS},
	{"RAND", 0xc000, 2, CLASS_REG_BYTE},
	{"DRAW", 0xd000, 3, CLASS_DRAW},
	{"SKPR", 0xe09e, 1, CLASS_REG},
	{"SKUP", 0xe0a1, 1, CLASS_REG},
	{"MOVED", 0xf007, 1, CLASS_REG},
	{"KEYD", 0xf00a, 1, CLASS_REG},
	{"LOADD", 0xf015, 1, CLASS_REG},
	{"LOADS", 0xf018, 1, CLASS_REG},
	{"ADDI", 0xf01e, 1, CLASS_REG},
	{"LDSPR", 0xf029, 1, CLASS_REG},
	{"BCD", 0xf033, 1, CLASS_REG},
	{"PUSH", 0xf055, 1, CLASS_REG},
	{"POP", 0xf065, 1, CLASS_REG},
}

// MaxKeyword is the length of the longest keyword in the table.
const MaxKeyword = 5

// Len returns the number of templates in the table.
func Len() int {
	return len(table)
}

// Templates iterates over the table in canonical order.
func Templates() iter.Seq[Template] {
	return slices.Values(table[:])
}

// Lookup finds the template for a keyword. Keywords are case-insensitive.
func Lookup(keyword string) (t Template, ok bool) {
	for _, entry := range table {
		if strings.EqualFold(entry.Keyword, keyword) {
			return entry, true
		}
	}
	return
}

// Normalize masks the operand fields out of a raw instruction, leaving the
// template it was packed from. The family is chosen by the top nibble, and
// for families 0x0, 0x8, 0xE and 0xF the low bits select the template.
func Normalize(w Word) Word {
	switch w.Nibble() {
	case 0x0:
		if w == 0x00e0 || w == 0x00ee {
			return w
		}
		return 0x0000
	case 0x5, 0x8, 0x9:
		return w & 0xf00f
	case 0xe, 0xf:
		return w & 0xf0ff
	}
	return w & 0xf000
}

// Reverse finds the template a raw instruction was packed from.
func Reverse(w Word) (t Template, ok bool) {
	op := Normalize(w)
	for _, entry := range table {
		if entry.Opcode == op {
			return entry, true
		}
	}
	return
}
