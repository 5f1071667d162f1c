// Package disasm renders CHIP-8 instruction words as assembly text.
//
// The output uses the same mnemonics and operand syntax the asm package
// reads, so a listing assembles back to the ROM it came from.
package disasm
