package cpu

import (
	"github.com/dpino/8-chip/isa"
)

const (
	SCREEN_WIDTH  = isa.SCREEN_WIDTH
	SCREEN_HEIGHT = isa.SCREEN_HEIGHT
)

// Display is the frame buffer, one byte per pixel, row-major.
type Display struct {
	Pixel [SCREEN_WIDTH * SCREEN_HEIGHT]uint8
	Dirty bool // Set when the buffer changed since the host last drew it.
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	clear(d.Pixel[:])
	d.Dirty = true
}

// At reports whether the pixel at (x, y) is lit. Off-screen pixels are dark.
func (d *Display) At(x, y int) bool {
	if x < 0 || y < 0 || x >= SCREEN_WIDTH || y >= SCREEN_HEIGHT {
		return false
	}
	return d.Pixel[y*SCREEN_WIDTH+x] != 0
}

// Draw XORs an 8 pixel wide sprite, one byte per row, onto the buffer
// with its top left corner at (x, y). Pixels falling off the right or
// bottom edge are clipped. Returns true if any lit pixel was turned off.
func (d *Display) Draw(x, y uint8, sprite []byte) (collision bool) {
	for row, bits := range sprite {
		py := int(y) + row
		if py >= SCREEN_HEIGHT {
			break
		}
		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := int(x) + col
			if px >= SCREEN_WIDTH {
				break
			}
			pixel := &d.Pixel[py*SCREEN_WIDTH+px]
			if *pixel != 0 {
				collision = true
			}
			*pixel ^= 1
		}
	}
	d.Dirty = true
	return
}
