package io

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/dpino/8-chip/isa"
)

// ROM_SIZE_MAX is the largest image that fits above PROGRAM_START.
const ROM_SIZE_MAX = isa.MEMORY_SIZE - isa.PROGRAM_START

// Rom is a raw program image, big-endian words with no header.
type Rom struct {
	Data []byte
}

var _ io.ReaderFrom = (*Rom)(nil)
var _ io.WriterTo = (*Rom)(nil)

// Defines returns an iter of defines for the ROM.
func (rc *Rom) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"ROM_SIZE_MAX": fmt.Sprintf("0x%x", ROM_SIZE_MAX),
	})
}

// ReadFrom replaces the image with the contents of r.
func (rc *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	data, err := io.ReadAll(io.LimitReader(r, ROM_SIZE_MAX+1))
	n = int64(len(data))
	if err != nil {
		return
	}

	switch {
	case len(data) == 0:
		err = ErrRomEmpty
		return
	case len(data) > ROM_SIZE_MAX:
		err = ErrRomTooLarge
		return
	}

	rc.Data = data
	return
}

// WriteTo writes the image to w.
func (rc *Rom) WriteTo(w io.Writer) (n int64, err error) {
	count, err := w.Write(rc.Data)
	n = int64(count)
	return
}

// Words yields the image as instruction words. A trailing odd byte is
// not yielded.
func (rc *Rom) Words() iter.Seq[isa.Word] {
	return func(yield func(w isa.Word) bool) {
		for n := 0; n+1 < len(rc.Data); n += 2 {
			if !yield(isa.WordOf(rc.Data[n], rc.Data[n+1])) {
				return
			}
		}
	}
}

// ReadRom reads a ROM image.
func ReadRom(r io.Reader) (data []byte, err error) {
	var rom Rom
	_, err = rom.ReadFrom(r)
	if err != nil {
		return
	}
	data = rom.Data
	return
}

// WriteRom writes a ROM image.
func WriteRom(w io.Writer, data []byte) (err error) {
	if len(data) > ROM_SIZE_MAX {
		err = ErrRomTooLarge
		return
	}
	rom := Rom{Data: data}
	_, err = rom.WriteTo(w)
	return
}
