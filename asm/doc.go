// Package asm turns CHIP-8 assembly text into instruction words.
//
// A source line is
//
//	[0xADDR] [label:]... KEYWORD [op1[, op2[, op3]]] [; comment]
//
// Keywords are the mnemonics of the isa Instruction Table. Operands are
// hexadecimal, with an optional '#', 'v', 'V' or '0x' prefix, so '#a',
// 'va' and '0xa' all name register 10. A leading address column is
// ignored, which lets a disassembly listing assemble back to its ROM.
//
// Beyond single instructions the Assembler understands
//
//	.equ NAME VALUE    word-wise substitution of NAME by VALUE
//	.word VALUE        a raw 16-bit word
//	$(expr)            a compile-time expression over the integer equates
//	name:              a label, usable wherever an address is expected
package asm
