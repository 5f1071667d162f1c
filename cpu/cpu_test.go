package cpu

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpino/8-chip/isa"
)

// load writes words at PROGRAM_START of a fresh CPU.
func load(words ...isa.Word) (cpu *Cpu) {
	cpu = NewCpu()
	var rom []byte
	for _, w := range words {
		pair := w.Bytes()
		rom = append(rom, pair[:]...)
	}
	err := cpu.Load(rom)
	if err != nil {
		panic(err)
	}
	return
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(uint16(0x200), cpu.Pc)
	assert.Equal(uint8(0), cpu.Stack.Sp)
	assert.Equal(Font[:], cpu.Memory[isa.FONT_BASE:isa.FONT_BASE+len(Font)])
	assert.Equal(KEY_NONE, cpu.Key)
	assert.Equal(STATUS_RUNNING, cpu.Status())

	cpu.V[3] = 7
	cpu.I = 0x123
	cpu.Memory[0x300] = 0xaa
	cpu.Reset()
	assert.Equal(uint8(0), cpu.V[3])
	assert.Equal(uint16(0), cpu.I)
	assert.Equal(byte(0), cpu.Memory[0x300])
}

func TestCpu_Load(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Load([]byte{0x6a, 0x02}))
	assert.Equal(byte(0x6a), cpu.Memory[0x200])
	assert.Equal(byte(0x02), cpu.Memory[0x201])

	err := cpu.Load(make([]byte, MEMORY_SIZE-PROGRAM_START+1))
	assert.ErrorIs(err, ErrRomTooLarge)
	assert.NoError(cpu.Load(make([]byte, MEMORY_SIZE-PROGRAM_START)))
}

func TestCpu_Jump(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0x1aaa)
	status, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal(STATUS_RUNNING, status)
	assert.Equal(uint16(0xaaa), cpu.Pc)
}

func TestCpu_CallRet(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0x2aaa)
	cpu.Memory[0xaaa] = 0x00
	cpu.Memory[0xaab] = 0xee

	_, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint8(1), cpu.Stack.Sp)
	assert.Equal(uint16(0x200), cpu.Stack.Frame[1])
	assert.Equal(uint16(0xaaa), cpu.Pc)

	_, err = cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint16(0x200), cpu.Pc)
	assert.Equal(uint8(0), cpu.Stack.Sp)
}

func TestCpu_CallRet_ReturnPastCall(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0x2aaa, 0x6105)
	cpu.Quirks.ReturnPastCall = true
	cpu.Memory[0xaaa] = 0x00
	cpu.Memory[0xaab] = 0xee

	for range 3 {
		_, err := cpu.Tick()
		assert.NoError(err)
	}
	assert.Equal(uint8(5), cpu.V[1])
	assert.Equal(uint16(0x204), cpu.Pc)
}

func TestCpu_StackDiscipline(t *testing.T) {
	assert := assert.New(t)

	// Each subroutine at 0x300+2n calls the next one.
	for depth := 1; depth < STACK_LIMIT; depth++ {
		cpu := load(0x2300)
		for n := range depth - 1 {
			pair := isa.Word(0x2300 + 2*(n+1)).Bytes()
			copy(cpu.Memory[0x300+2*n:], pair[:])
		}

		for range depth {
			_, err := cpu.Tick()
			assert.NoError(err)
		}
		assert.Equal(uint8(depth), cpu.Stack.Sp)

		for range depth {
			assert.NoError(cpu.Execute(0x00ee))
		}
		assert.Equal(uint16(0x200), cpu.Pc, "depth %d", depth)
		assert.Equal(uint8(0), cpu.Stack.Sp, "depth %d", depth)
	}
}

func TestCpu_StackFaults(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0x00ee)
	status, err := cpu.Tick()
	assert.Equal(STATUS_HALTED, status)
	assert.ErrorIs(err, ErrStackUnderflow)

	// A CALL to itself recurses until the stack is full.
	cpu = load(0x2200)
	for range STACK_LIMIT - 1 {
		_, err = cpu.Tick()
		assert.NoError(err)
	}
	status, err = cpu.Tick()
	assert.Equal(STATUS_HALTED, status)
	assert.ErrorIs(err, ErrStackOverflow)
	assert.Equal(uint8(STACK_LIMIT-1), cpu.Stack.Sp)
}

func TestCpu_Halted(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0x5121, 0x6001)
	status, err := cpu.Tick()
	assert.Equal(STATUS_HALTED, status)
	assert.ErrorIs(err, ErrOpcodeInvalid)

	var fault *ErrFault
	if assert.True(errors.As(err, &fault)) {
		assert.Equal(uint16(0x200), fault.Pc)
		assert.Equal(isa.Word(0x5121), fault.Word)
	}

	status, err = cpu.Tick()
	assert.Equal(STATUS_HALTED, status)
	assert.ErrorIs(err, ErrHalted)
	assert.Equal(uint16(0x200), cpu.Pc)
	assert.Equal(uint8(0), cpu.V[0])
}

func TestCpu_FetchRange(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0x1fff)
	_, err := cpu.Tick()
	assert.NoError(err)
	status, err := cpu.Tick()
	assert.Equal(STATUS_HALTED, status)
	assert.ErrorIs(err, ErrAddressRange)
}

func TestCpu_Addr(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0x8014)
	cpu.V[0] = 0xff
	cpu.V[1] = 0xff
	_, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint8(0xfe), cpu.V[0])
	assert.Equal(uint8(1), cpu.V[0xf])
}

func TestCpu_FlagDiscipline(t *testing.T) {
	assert := assert.New(t)

	values := []uint8{0x00, 0x01, 0x7f, 0x80, 0x81, 0xfe, 0xff}
	for _, x := range values {
		for _, y := range values {
			cpu := load(0x8014, 0x8235, 0x8457, 0x8606, 0x880e)
			cpu.V[0], cpu.V[1] = x, y
			cpu.V[2], cpu.V[3] = x, y
			cpu.V[4], cpu.V[5] = x, y
			cpu.V[6] = x
			cpu.V[8] = y

			_, err := cpu.Tick()
			assert.NoError(err)
			assert.Equal(x+y, cpu.V[0])
			assert.Equal(uint16(x)+uint16(y) > 0xff, cpu.V[0xf] == 1, "ADDR %x %x", x, y)

			_, err = cpu.Tick()
			assert.NoError(err)
			assert.Equal(x-y, cpu.V[2])
			assert.Equal(x >= y, cpu.V[0xf] == 1, "SUB %x %x", x, y)

			_, err = cpu.Tick()
			assert.NoError(err)
			assert.Equal(y-x, cpu.V[4])
			assert.Equal(y >= x, cpu.V[0xf] == 1, "SUBB %x %x", x, y)

			_, err = cpu.Tick()
			assert.NoError(err)
			assert.Equal(x>>1, cpu.V[6])
			assert.Equal(x&1, cpu.V[0xf], "SHR %x", x)

			_, err = cpu.Tick()
			assert.NoError(err)
			assert.Equal(y<<1, cpu.V[8])
			assert.Equal(y>>7, cpu.V[0xf], "SHL %x", y)
		}
	}
}

func TestCpu_FlagWins(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0x8f14)
	cpu.V[0xf] = 0x10
	cpu.V[1] = 0x01
	_, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint8(0), cpu.V[0xf])
}

func TestCpu_Skips(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		word  isa.Word
		setup func(cpu *Cpu)
		taken bool
	}{
		{0x3142, func(cpu *Cpu) { cpu.V[1] = 0x42 }, true},
		{0x3142, func(cpu *Cpu) { cpu.V[1] = 0x41 }, false},
		{0x4142, func(cpu *Cpu) { cpu.V[1] = 0x41 }, true},
		{0x4142, func(cpu *Cpu) { cpu.V[1] = 0x42 }, false},
		{0x5120, func(cpu *Cpu) { cpu.V[1], cpu.V[2] = 3, 3 }, true},
		{0x5120, func(cpu *Cpu) { cpu.V[1], cpu.V[2] = 3, 4 }, false},
		{0x9120, func(cpu *Cpu) { cpu.V[1], cpu.V[2] = 3, 4 }, true},
		{0x9120, func(cpu *Cpu) { cpu.V[1], cpu.V[2] = 3, 3 }, false},
		{0xe19e, func(cpu *Cpu) { cpu.V[1] = 5; cpu.KeyEvent(5) }, true},
		{0xe19e, func(cpu *Cpu) { cpu.V[1] = 5; cpu.KeyEvent(6) }, false},
		{0xe1a1, func(cpu *Cpu) { cpu.V[1] = 5; cpu.KeyEvent(6) }, true},
		{0xe1a1, func(cpu *Cpu) { cpu.V[1] = 0 }, true},
		{0xe1a1, func(cpu *Cpu) { cpu.V[1] = 5; cpu.KeyEvent(5) }, false},
	}

	for _, entry := range table {
		cpu := load(entry.word)
		entry.setup(cpu)
		_, err := cpu.Tick()
		assert.NoError(err)
		if entry.taken {
			assert.Equal(uint16(0x204), cpu.Pc, "0x%04x", entry.word.Value())
		} else {
			assert.Equal(uint16(0x202), cpu.Pc, "0x%04x", entry.word.Value())
		}
	}
}

func TestCpu_Straight(t *testing.T) {
	assert := assert.New(t)

	// Every non-control instruction advances by one word.
	for _, w := range []isa.Word{
		0x0123, 0x00e0, 0x6a02, 0x7a01, 0x8120, 0x8121, 0x8122, 0x8123,
		0x8124, 0x8125, 0x8126, 0x8127, 0x812e, 0xa300, 0xc1ff, 0xd125,
		0xf107, 0xf115, 0xf118, 0xf11e, 0xf129, 0xf133, 0xf155, 0xf165,
	} {
		cpu := load(w)
		cpu.I = 0x300
		_, err := cpu.Tick()
		assert.NoError(err, "0x%04x", w.Value())
		assert.Equal(uint16(0x202), cpu.Pc, "0x%04x", w.Value())
	}
}

func TestCpu_Bcd(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0xf333)
	cpu.V[3] = 255
	cpu.I = 0x300
	_, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal([]byte{2, 5, 5}, cpu.Memory[0x300:0x303])
	assert.Equal(uint16(0x300), cpu.I)
}

func TestCpu_PushPop(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0xff55, 0x6000, 0x6f00, 0xff65)
	for n := range cpu.V {
		cpu.V[n] = uint8(n)
	}
	cpu.I = 0x400

	_, err := cpu.Tick()
	assert.NoError(err)
	for n := range 16 {
		assert.Equal(byte(n), cpu.Memory[0x400+n])
	}
	assert.Equal(uint16(0x400), cpu.I)

	for range 3 {
		_, err = cpu.Tick()
		assert.NoError(err)
	}
	for n := range cpu.V {
		assert.Equal(uint8(n), cpu.V[n])
	}
}

func TestCpu_MemoryRange(t *testing.T) {
	assert := assert.New(t)

	for _, w := range []isa.Word{0xf333, 0xff55, 0xff65, 0xd12f} {
		cpu := load(w)
		cpu.I = 0xffe
		status, err := cpu.Tick()
		assert.Equal(STATUS_HALTED, status, "0x%04x", w.Value())
		assert.ErrorIs(err, ErrAddressRange, "0x%04x", w.Value())
	}
}

func TestCpu_Addi(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0xf11e, 0xf11e)
	cpu.V[1] = 0x10
	cpu.I = 0xff8
	_, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint16(0x008), cpu.I)
	assert.Equal(uint8(1), cpu.V[0xf])

	_, err = cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint16(0x018), cpu.I)
	assert.Equal(uint8(0), cpu.V[0xf])
}

func TestCpu_Jumpi(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0xb300)
	cpu.V[0] = 0x12
	_, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint16(0x312), cpu.Pc)
}

func TestCpu_Rand(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0xc10f, 0xc200)
	cpu.Rand = rand.New(rand.NewPCG(1, 2))
	_, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint8(0), cpu.V[1]&0xf0)

	cpu.V[2] = 0xff
	_, err = cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint8(0), cpu.V[2])
}

func TestCpu_Draw(t *testing.T) {
	assert := assert.New(t)

	// Draw the glyph for 0 twice at (0, 2): the second erases the first.
	cpu := load(0xf229, 0xd015, 0xd015)
	cpu.V[0] = 0
	cpu.V[1] = 2
	cpu.V[2] = 0

	_, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal(Glyph(0), cpu.I)

	cpu.Display.Dirty = false
	_, err = cpu.Tick()
	assert.NoError(err)
	assert.True(cpu.Display.Dirty)
	assert.Equal(uint8(0), cpu.V[0xf])
	assert.True(cpu.Display.At(0, 2))
	assert.True(cpu.Display.At(3, 2))
	assert.False(cpu.Display.At(4, 2))
	assert.True(cpu.Display.At(0, 3))
	assert.False(cpu.Display.At(1, 3))

	_, err = cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint8(1), cpu.V[0xf])
	for y := range SCREEN_HEIGHT {
		for x := range SCREEN_WIDTH {
			assert.False(cpu.Display.At(x, y))
		}
	}
}

func TestCpu_DrawClip(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0xd012)
	cpu.I = 0x300
	cpu.Memory[0x300] = 0xff
	cpu.Memory[0x301] = 0xff
	cpu.V[0] = 60
	cpu.V[1] = 31
	_, err := cpu.Tick()
	assert.NoError(err)
	assert.True(cpu.Display.At(60, 31))
	assert.True(cpu.Display.At(63, 31))
	assert.False(cpu.Display.At(0, 31))
	assert.False(cpu.Display.At(60, 0))
	assert.False(cpu.Display.At(0, 0))
}

func TestCpu_Cls(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0x00e0)
	cpu.Display.Pixel[10] = 1
	cpu.Display.Dirty = false
	_, err := cpu.Tick()
	assert.NoError(err)
	assert.True(cpu.Display.Dirty)
	assert.False(cpu.Display.At(10, 0))
}

func TestCpu_Keyd(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0xf30a, 0x6001)
	status, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal(STATUS_NEEDS_INPUT, status)
	assert.Equal(uint16(0x200), cpu.Pc)

	status, err = cpu.Tick()
	assert.NoError(err)
	assert.Equal(STATUS_NEEDS_INPUT, status)
	assert.Equal(uint16(0x200), cpu.Pc)

	cpu.KeyEvent(0xb)
	assert.Equal(STATUS_RUNNING, cpu.Status())
	assert.Equal(uint8(0xb), cpu.V[3])
	assert.Equal(uint16(0x202), cpu.Pc)
	assert.Equal(0xb, cpu.Key)

	status, err = cpu.Tick()
	assert.NoError(err)
	assert.Equal(STATUS_RUNNING, status)
	assert.Equal(uint8(1), cpu.V[0])
}

func TestCpu_Timers(t *testing.T) {
	assert := assert.New(t)

	cpu := load(0x6102, 0xf115, 0xf118, 0xf207)
	for range 3 {
		_, err := cpu.Tick()
		assert.NoError(err)
	}
	assert.Equal(uint8(2), cpu.DelayTimer)
	assert.True(cpu.Sounding())

	cpu.TickTimers()
	_, err := cpu.Tick()
	assert.NoError(err)
	assert.Equal(uint8(1), cpu.V[2])

	cpu.TickTimers()
	cpu.TickTimers()
	assert.Equal(uint8(0), cpu.DelayTimer)
	assert.Equal(uint8(0), cpu.SoundTimer)
	assert.False(cpu.Sounding())
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.V[0xa] = 0x42
	text := cpu.String()
	assert.Contains(text, "   pc: 0x200\n")
	assert.Contains(text, "   va: 0x42\n")
	assert.Contains(text, "stack: -----\n")
	assert.Contains(text, "state: running\n")
}
