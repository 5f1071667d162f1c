// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"

	"github.com/dpino/8-chip/isa"
)

const (
	MEMORY_SIZE   = isa.MEMORY_SIZE
	PROGRAM_START = isa.PROGRAM_START
	KEY_NONE      = -1 // No key observed yet.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":   fmt.Sprintf("0x%x", MEMORY_SIZE),
	"SCREEN_WIDTH":  fmt.Sprintf("0x%x", SCREEN_WIDTH),
	"SCREEN_HEIGHT": fmt.Sprintf("0x%x", SCREEN_HEIGHT),
	"STACK_LIMIT":   fmt.Sprintf("0x%x", STACK_LIMIT),
}

// Status is the execution state after a Tick.
type Status int

const (
	STATUS_RUNNING     = Status(0) // Ready for the next Tick.
	STATUS_NEEDS_INPUT = Status(1) // Waiting in KEYD for KeyEvent.
	STATUS_HALTED      = Status(2) // Stopped by a fault.
)

func (s Status) String() string {
	switch s {
	case STATUS_RUNNING:
		return "running"
	case STATUS_NEEDS_INPUT:
		return "needs-input"
	case STATUS_HALTED:
		return "halted"
	}
	return f("Status(%d)", int(s))
}

// Quirks selects behaviour that differs between CHIP-8 interpreters.
type Quirks struct {
	// ReturnPastCall makes RET resume after the CALL instead of at it.
	// CALL saves its own address, so real programs need this set.
	ReturnPastCall bool
}

// Cpu is the CHIP-8 machine state.
type Cpu struct {
	Verbose bool   // Set to enable verbose logging.
	Quirks  Quirks // Interpreter quirks.

	Memory     [MEMORY_SIZE]byte // Main memory, font included.
	V          [16]uint8         // Registers V0-VF.
	I          uint16            // Index register.
	Pc         uint16            // Program counter.
	Stack      Stack             // Call stack.
	Display    Display           // Frame buffer.
	DelayTimer uint8
	SoundTimer uint8
	Key        int // Last observed key code, or KEY_NONE.

	Rand *rand.Rand // Source for RAND; the global source if nil.

	Ticks int // Instructions executed.

	status  Status
	waiting bool  // KEYD is waiting for a key.
	waitReg uint8 // KEYD target register.
}

// NewCpu creates a reset CPU with a randomly seeded RAND source.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears memory, registers, stack, timers and the frame buffer.
// - Loads the font glyphs at FONT_BASE.
// - Sets the program counter to PROGRAM_START.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	copy(cpu.Memory[isa.FONT_BASE:], Font[:])
	clear(cpu.V[:])
	cpu.I = 0
	cpu.Pc = PROGRAM_START
	cpu.Stack.Reset()
	clear(cpu.Display.Pixel[:])
	cpu.Display.Dirty = true
	cpu.DelayTimer = 0
	cpu.SoundTimer = 0
	cpu.Key = KEY_NONE
	cpu.Ticks = 0
	cpu.status = STATUS_RUNNING
	cpu.waiting = false
}

// Load copies a ROM image to PROGRAM_START.
func (cpu *Cpu) Load(rom []byte) (err error) {
	return cpu.LoadAt(PROGRAM_START, rom)
}

// LoadAt copies data into memory at addr.
func (cpu *Cpu) LoadAt(addr uint16, data []byte) (err error) {
	if int(addr)+len(data) > MEMORY_SIZE {
		err = errors.Join(ErrRomTooLarge, ErrAddressRange)
		return
	}

	copy(cpu.Memory[addr:], data)

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes at 0x%03x", len(data), addr)
	}

	return
}

// Status returns the execution state.
func (cpu *Cpu) Status() Status {
	if cpu.status == STATUS_RUNNING && cpu.waiting {
		return STATUS_NEEDS_INPUT
	}
	return cpu.status
}

// Fetch reads the instruction at the program counter.
func (cpu *Cpu) Fetch() (w isa.Word, err error) {
	if int(cpu.Pc)+1 >= MEMORY_SIZE {
		err = ErrAddressRange
		return
	}

	w = isa.WordOf(cpu.Memory[cpu.Pc], cpu.Memory[cpu.Pc+1])
	return
}

// Tick runs one instruction.
//
// While KEYD waits, Tick returns STATUS_NEEDS_INPUT and does nothing.
// A fault halts the Cpu and is returned as *ErrFault; every later Tick
// returns STATUS_HALTED with ErrHalted.
func (cpu *Cpu) Tick() (status Status, err error) {
	switch cpu.Status() {
	case STATUS_HALTED:
		return STATUS_HALTED, ErrHalted
	case STATUS_NEEDS_INPUT:
		return STATUS_NEEDS_INPUT, nil
	}

	w, err := cpu.Fetch()
	if err != nil {
		err = &ErrFault{Pc: cpu.Pc, Word: w, Err: err}
		cpu.status = STATUS_HALTED
		return STATUS_HALTED, err
	}

	err = cpu.Execute(w)
	status = cpu.Status()
	return
}

// Execute executes a single instruction at the current program counter.
func (cpu *Cpu) Execute(w isa.Word) (err error) {
	pc := cpu.Pc

	defer func() {
		if err != nil {
			err = &ErrFault{Pc: pc, Word: w, Err: err}
			cpu.status = STATUS_HALTED
		}
	}()

	handler, err := Decode(w)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%03x: %04x %v", pc, w.Value(), handler.Name)
	}

	err = handler.Exec(cpu, w)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// KeyEvent delivers a key press. A waiting KEYD stores the key and
// completes.
func (cpu *Cpu) KeyEvent(code uint8) {
	cpu.Key = int(code)

	if cpu.waiting {
		cpu.V[cpu.waitReg] = code
		cpu.waiting = false
		cpu.Pc += 2
		if cpu.Verbose {
			log.Printf("cpu: key 0x%x to v%x", code, cpu.waitReg)
		}
	}
}

// TickTimers decrements the delay and sound timers. The host calls it
// at 60 Hz, independent of instruction rate.
func (cpu *Cpu) TickTimers() {
	if cpu.DelayTimer > 0 {
		cpu.DelayTimer--
	}
	if cpu.SoundTimer > 0 {
		cpu.SoundTimer--
	}
}

// Sounding is true while the sound timer runs.
func (cpu *Cpu) Sounding() bool {
	return cpu.SoundTimer > 0
}

// memory returns a checked slice of memory.
func (cpu *Cpu) memory(addr uint16, size int) (mem []byte, err error) {
	if int(addr)+size > MEMORY_SIZE {
		err = ErrAddressRange
		return
	}
	mem = cpu.Memory[int(addr) : int(addr)+size]
	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: 0x%03x\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: 0x%03x\n", "i", cpu.I)
	text += fmt.Sprintf("% 5s: %d\n", "sp", cpu.Stack.Sp)
	if top, ok := cpu.Stack.Peek(); ok {
		text += fmt.Sprintf("% 5s: 0x%03x\n", "stack", top)
	} else {
		text += fmt.Sprintf("% 5s: -----\n", "stack")
	}
	for n, v := range cpu.V {
		text += fmt.Sprintf("% 5s: 0x%02x\n", fmt.Sprintf("v%x", n), v)
	}
	text += fmt.Sprintf("% 5s: 0x%02x\n", "delay", cpu.DelayTimer)
	text += fmt.Sprintf("% 5s: 0x%02x\n", "sound", cpu.SoundTimer)
	text += fmt.Sprintf("% 5s: %v\n", "state", cpu.Status())

	return
}
