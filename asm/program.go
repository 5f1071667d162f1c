package asm

import (
	"iter"

	"github.com/dpino/8-chip/isa"
)

// Opcode is one assembled source line.
type Opcode struct {
	LineNo    int      // Source line number.
	Address   uint16   // Memory address of the word.
	Words     []string // Source words, after substitution.
	Word      isa.Word // Encoded instruction.
	LinkLabel string   // Label to link into the address field, if any.
}

// Program is the output of the Assembler.
type Program struct {
	Origin  uint16
	Opcodes []Opcode
}

// Debug finds the source line that produced the word at addr.
// Returns nil if no opcode covers addr.
func (prog *Program) Debug(addr uint16) *Opcode {
	for n, op := range prog.Opcodes {
		if addr == op.Address || addr == op.Address+1 {
			return &prog.Opcodes[n]
		}
	}

	return nil
}

// Binary returns the program as a big-endian instruction stream.
func (prog *Program) Binary() (bins []byte) {
	for _, w := range prog.Words() {
		pair := w.Bytes()
		bins = append(bins, pair[:]...)
	}

	return
}

// Words iterates over the program by address.
func (prog *Program) Words() iter.Seq2[uint16, isa.Word] {
	return func(yield func(addr uint16, w isa.Word) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Address, op.Word) {
				return
			}
		}
	}
}
