package io

import (
	"bufio"
	"io"

	"github.com/dpino/8-chip/cpu"
)

// Screen renders the frame buffer as text, one line per row.
type Screen struct {
	Output io.Writer
	On     byte // Lit pixel, '#' if zero.
	Off    byte // Dark pixel, '.' if zero.
}

// Render draws the display and clears its dirty flag.
func (sc *Screen) Render(display *cpu.Display) (err error) {
	on, off := sc.On, sc.Off
	if on == 0 {
		on = '#'
	}
	if off == 0 {
		off = '.'
	}

	w := bufio.NewWriter(sc.Output)
	for y := range cpu.SCREEN_HEIGHT {
		for x := range cpu.SCREEN_WIDTH {
			if display.At(x, y) {
				w.WriteByte(on)
			} else {
				w.WriteByte(off)
			}
		}
		w.WriteByte('\n')
	}

	err = w.Flush()
	if err != nil {
		return
	}

	display.Dirty = false
	return
}
