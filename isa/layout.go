package isa

// Machine memory layout shared by the toolchain.
const (
	MEMORY_SIZE   = 4096  // Addressable bytes.
	PROGRAM_START = 0x200 // Load offset of a ROM, and the initial PC.
	FONT_BASE     = 0x000 // Address of the built-in hex glyphs.
	FONT_STRIDE   = 5     // Bytes per glyph.
	SCREEN_WIDTH  = 64    // Display columns.
	SCREEN_HEIGHT = 32    // Display rows.
	STACK_LIMIT   = 16    // Return address slots.
)
