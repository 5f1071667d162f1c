package io

import (
	"io"
)

// KeySource delivers key presses to the machine, one key code 0x0-0xF
// per call. io.EOF ends the input.
type KeySource interface {
	NextKey() (code uint8, err error)
}

// Layout maps host characters to key codes.
type Layout int

const (
	LAYOUT_HEX    = Layout(0) // '0'-'9', 'a'-'f' name their own key.
	LAYOUT_QWERTY = Layout(1) // 4x4 block from '1' to 'v', as on the COSMAC VIP pad.
)

var qwerty = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// Code maps a host character to a key code.
func (l Layout) Code(ch byte) (code uint8, ok bool) {
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}

	if l == LAYOUT_QWERTY {
		code, ok = qwerty[ch]
		return
	}

	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 0xa, true
	}
	return
}

// Keypad reads key presses from a byte stream, such as a terminal.
// Bytes that name no key are skipped.
type Keypad struct {
	Input  io.Reader
	Layout Layout
}

var _ KeySource = (*Keypad)(nil)

// NextKey blocks until the next key byte, or the end of input.
func (kp *Keypad) NextKey() (code uint8, err error) {
	var one [1]byte
	for {
		var n int
		n, err = kp.Input.Read(one[:])
		if n == 1 {
			var ok bool
			code, ok = kp.Layout.Code(one[0])
			if ok {
				err = nil
				return
			}
		}
		if err != nil {
			return
		}
	}
}
