package isa

// Word is a single 16-bit CHIP-8 instruction.
//
// The on-disk and in-memory byte order is big-endian: HighByte first.
type Word uint16

// WordOf builds a Word from its big-endian byte pair.
func WordOf(hi, lo byte) Word {
	return Word(uint16(hi)<<8 | uint16(lo))
}

// Value returns the instruction as an integer.
func (w Word) Value() uint16 {
	return uint16(w)
}

// HighByte returns the first byte of the instruction in memory.
func (w Word) HighByte() byte {
	return byte(w >> 8)
}

// LowByte returns the second byte of the instruction in memory.
func (w Word) LowByte() byte {
	return byte(w)
}

// Bytes returns the big-endian byte pair of the instruction.
func (w Word) Bytes() [2]byte {
	return [2]byte{w.HighByte(), w.LowByte()}
}

// Nibble returns the top nibble, which selects the instruction family.
func (w Word) Nibble() uint8 {
	return uint8(w>>12) & 0xf
}

// X returns the first register field (bits 8-11).
func (w Word) X() uint8 {
	return uint8(w>>8) & 0xf
}

// Y returns the second register field (bits 4-7).
func (w Word) Y() uint8 {
	return uint8(w>>4) & 0xf
}

// N returns the low nibble.
func (w Word) N() uint8 {
	return uint8(w) & 0xf
}

// NN returns the low byte as an immediate.
func (w Word) NN() uint8 {
	return uint8(w)
}

// NNN returns the 12-bit address field.
func (w Word) NNN() uint16 {
	return uint16(w) & 0xfff
}
