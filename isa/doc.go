// Package isa defines the CHIP-8 instruction set shared by the assembler,
// the disassembler and the consistency tests of the executor.
//
// The Instruction Table is an ordered, immutable catalog of every supported
// mnemonic, its opcode template (operand fields zeroed) and its operand
// arity. Each template belongs to an operand Class, which decides which
// nibbles of a Word carry which operand. Pack and Unpack apply that rule
// in both directions; Normalize masks a raw Word back to its template so
// Reverse can find the mnemonic.
package isa
