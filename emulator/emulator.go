// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/dpino/8-chip/asm"
	"github.com/dpino/8-chip/cpu"
	"github.com/dpino/8-chip/internal"
	chipio "github.com/dpino/8-chip/io"
	"github.com/dpino/8-chip/isa"
)

const (
	TIMER_HZ = 60 // Timer decrement rate.
)

var _emulator_defines = map[string]string{
	"ORIGIN":      fmt.Sprintf("0x%x", isa.PROGRAM_START),
	"FONT":        fmt.Sprintf("0x%x", isa.FONT_BASE),
	"FONT_STRIDE": fmt.Sprintf("0x%x", isa.FONT_STRIDE),
	"TIMER_HZ":    fmt.Sprintf("0x%x", TIMER_HZ),
}

// Emulator state. CPU + program listing + key input.
type Emulator struct {
	Verbose  bool             // If set, enables verbose logging.
	*cpu.Cpu                  // Reference to the CPU simulation.
	Program  *asm.Program     // Reference to the currently running program listing.
	Keys     chipio.KeySource // Key input for KEYD.
	Rom      chipio.Rom       // Raw image, used when Program is empty.

	// CyclesPerTimer is the number of instructions per timer decrement.
	// Zero leaves the timers to the host.
	CyclesPerTimer int

	cycles int
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &asm.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Rom.Defines(),
	)
}

// LoadRom sets a raw image to run instead of an assembled program.
func (emu *Emulator) LoadRom(r io.Reader) (err error) {
	_, err = emu.Rom.ReadFrom(r)
	if err != nil {
		return
	}
	emu.Program = &asm.Program{}
	return
}

// Reset the machine and load the program, or the raw image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.cycles = 0

	if emu.Program != nil && len(emu.Program.Opcodes) > 0 {
		err = emu.Cpu.LoadAt(emu.Program.Origin, emu.Program.Binary())
	} else {
		err = emu.Cpu.Load(emu.Rom.Data)
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Word returns the current instruction word.
func (emu *Emulator) Word() isa.Word {
	w, _ := emu.Cpu.Fetch()
	return w
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}
	op := emu.Program.Debug(emu.Cpu.Pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick performs a single tick of the emulator.
// When the CPU waits for a key, one key is read from Keys; the end of
// the key input ends the run.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Address: pc, Err: err}
		}
	}()

	status, err := emu.Cpu.Tick()
	if err != nil {
		return
	}

	if emu.CyclesPerTimer > 0 {
		emu.cycles++
		if emu.cycles >= emu.CyclesPerTimer {
			emu.cycles = 0
			emu.Cpu.TickTimers()
		}
	}

	if status != cpu.STATUS_NEEDS_INPUT {
		return
	}

	if emu.Keys == nil {
		done = true
		return
	}

	code, err := emu.Keys.NextKey()
	if errors.Is(err, io.EOF) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: key 0x%x", code)
	}
	emu.Cpu.KeyEvent(code)

	return
}

// Run ticks until done, an error, ctx is cancelled, or maxCycles
// instructions have run. A maxCycles of 0 means no limit.
func (emu *Emulator) Run(ctx context.Context, maxCycles int) (cycles int, err error) {
	for maxCycles == 0 || cycles < maxCycles {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}
		cycles++
		if done {
			return
		}
	}

	return
}
