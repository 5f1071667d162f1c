package disasm

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/dpino/8-chip/isa"
)

// Disassembler writes listings of raw ROM images.
// The zero value lists from address 0x000; set Origin to the load offset.
type Disassembler struct {
	Origin uint16 // Address of the first ROM byte.
	Labels bool   // If set, JUMP and CALL targets inside the ROM get labels.
}

// Instructions iterates over the words of a ROM, by address.
// A trailing odd byte is not yielded.
func (dis Disassembler) Instructions(rom []byte) iter.Seq2[uint16, Instruction] {
	return func(yield func(addr uint16, ins Instruction) bool) {
		for n := 0; n+1 < len(rom); n += 2 {
			addr := dis.Origin + uint16(n)
			if !yield(addr, decode(addr, isa.WordOf(rom[n], rom[n+1]))) {
				return
			}
		}
	}
}

// label names an address.
func label(addr uint16) string {
	return fmt.Sprintf("L%03x", addr)
}

// targets collects the in-ROM destinations of JUMP and CALL.
func (dis Disassembler) targets(rom []byte) map[uint16]bool {
	found := map[uint16]bool{}
	end := uint32(dis.Origin) + uint32(len(rom)&^1)
	for _, ins := range dis.Instructions(rom) {
		addr, ok := ins.Target()
		if !ok || addr < dis.Origin || uint32(addr) >= end || (addr-dis.Origin)%2 != 0 {
			continue
		}
		found[addr] = true
	}
	return found
}

// Listing writes one line per word:
//
//	0xADDR  MNEMONIC OPERANDS  ; 0xOPCODE
//
// Words that do not decode are written as .word lines and counted in
// failed. A trailing odd byte is written as a comment and also counted.
func (dis Disassembler) Listing(w io.Writer, rom []byte) (failed int, err error) {
	var labels map[uint16]bool
	if dis.Labels {
		labels = dis.targets(rom)
	}

	emit := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
		if err != nil {
			err = errors.Join(ErrListingWrite, err)
		}
	}

	for addr, ins := range dis.Instructions(rom) {
		if labels[addr] {
			emit("%s:\n", label(addr))
		}
		if !ins.Valid() {
			failed++
		}
		text := ins.String()
		if target, ok := ins.Target(); ok && labels[target] {
			text = ins.Template.Keyword + " " + label(target)
		}
		emit("0x%03x  %s  ; 0x%04x\n", addr, text, ins.Word.Value())
		if err != nil {
			return
		}
	}

	if len(rom)%2 != 0 {
		failed++
		addr := dis.Origin + uint16(len(rom)-1)
		emit("; 0x%03x  odd byte 0x%02x\n", addr, rom[len(rom)-1])
	}

	return
}
