package cpu

import (
	"math/rand/v2"

	"github.com/dpino/8-chip/isa"
)

// Handler executes one instruction. Name is the mnemonic of the
// isa Instruction Table entry it implements.
type Handler struct {
	Name string
	Exec func(cpu *Cpu, w isa.Word) error
}

// Decode selects the handler for an instruction word.
func Decode(w isa.Word) (h Handler, err error) {
	switch w.Nibble() {
	case 0x0:
		switch w {
		case 0x00e0:
			return Handler{"CLS", (*Cpu).opCls}, nil
		case 0x00ee:
			return Handler{"RET", (*Cpu).opRet}, nil
		}
		return Handler{"SYS", (*Cpu).opSys}, nil
	case 0x1:
		return Handler{"JUMP", (*Cpu).opJump}, nil
	case 0x2:
		return Handler{"CALL", (*Cpu).opCall}, nil
	case 0x3:
		return Handler{"SKE", (*Cpu).opSke}, nil
	case 0x4:
		return Handler{"SKNE", (*Cpu).opSkne}, nil
	case 0x5:
		if w.N() == 0 {
			return Handler{"SKRE", (*Cpu).opSkre}, nil
		}
	case 0x6:
		return Handler{"LOAD", (*Cpu).opLoad}, nil
	case 0x7:
		return Handler{"ADD", (*Cpu).opAdd}, nil
	case 0x8:
		switch w.N() {
		case 0x0:
			return Handler{"MOVE", (*Cpu).opMove}, nil
		case 0x1:
			return Handler{"OR", (*Cpu).opOr}, nil
		case 0x2:
			return Handler{"AND", (*Cpu).opAnd}, nil
		case 0x3:
			return Handler{"XOR", (*Cpu).opXor}, nil
		case 0x4:
			return Handler{"ADDR", (*Cpu).opAddr}, nil
		case 0x5:
			return Handler{"SUB", (*Cpu).opSub}, nil
		case 0x6:
			return Handler{"SHR", (*Cpu).opShr}, nil
		case 0x7:
			return Handler{"SUBB", (*Cpu).opSubb}, nil
		case 0xe:
			return Handler{"SHL", (*Cpu).opShl}, nil
		}
	case 0x9:
		if w.N() == 0 {
			return Handler{"JNEQ", (*Cpu).opJneq}, nil
		}
	case 0xa:
		return Handler{"LOADI", (*Cpu).opLoadi}, nil
	case 0xb:
		return Handler{"JUMPI", (*Cpu).opJumpi}, nil
	case 0xc:
		return Handler{"RAND", (*Cpu).opRand}, nil
	case 0xd:
		return Handler{"DRAW", (*Cpu).opDraw}, nil
	case 0xe:
		switch w.NN() {
		case 0x9e:
			return Handler{"SKPR", (*Cpu).opSkpr}, nil
		case 0xa1:
			return Handler{"SKUP", (*Cpu).opSkup}, nil
		}
	case 0xf:
		switch w.NN() {
		case 0x07:
			return Handler{"MOVED", (*Cpu).opMoved}, nil
		case 0x0a:
			return Handler{"KEYD", (*Cpu).opKeyd}, nil
		case 0x15:
			return Handler{"LOADD", (*Cpu).opLoadd}, nil
		case 0x18:
			return Handler{"LOADS", (*Cpu).opLoads}, nil
		case 0x1e:
			return Handler{"ADDI", (*Cpu).opAddi}, nil
		case 0x29:
			return Handler{"LDSPR", (*Cpu).opLdspr}, nil
		case 0x33:
			return Handler{"BCD", (*Cpu).opBcd}, nil
		case 0x55:
			return Handler{"PUSH", (*Cpu).opPush}, nil
		case 0x65:
			return Handler{"POP", (*Cpu).opPop}, nil
		}
	}

	err = ErrOpcodeInvalid
	return
}

// next advances past the current instruction.
func (cpu *Cpu) next() error {
	cpu.Pc += 2
	return nil
}

// skip advances past the current instruction, and past the following
// one too if cond holds.
func (cpu *Cpu) skip(cond bool) error {
	cpu.Pc += 2
	if cond {
		cpu.Pc += 2
	}
	return nil
}

// setFlag writes VF. Always called after the result is stored, so the
// flag wins when the destination is VF.
func (cpu *Cpu) setFlag(flag bool) {
	if flag {
		cpu.V[0xf] = 1
	} else {
		cpu.V[0xf] = 0
	}
}

// opSys is the machine code call, which is not emulated.
func (cpu *Cpu) opSys(w isa.Word) error {
	return cpu.next()
}

func (cpu *Cpu) opCls(w isa.Word) error {
	cpu.Display.Clear()
	return cpu.next()
}

func (cpu *Cpu) opRet(w isa.Word) (err error) {
	addr, err := cpu.Stack.Pop()
	if err != nil {
		return
	}
	cpu.Pc = addr
	if cpu.Quirks.ReturnPastCall {
		cpu.Pc += 2
	}
	return
}

func (cpu *Cpu) opJump(w isa.Word) error {
	cpu.Pc = w.NNN()
	return nil
}

func (cpu *Cpu) opCall(w isa.Word) (err error) {
	err = cpu.Stack.Push(cpu.Pc)
	if err != nil {
		return
	}
	cpu.Pc = w.NNN()
	return
}

func (cpu *Cpu) opSke(w isa.Word) error {
	return cpu.skip(cpu.V[w.X()] == w.NN())
}

func (cpu *Cpu) opSkne(w isa.Word) error {
	return cpu.skip(cpu.V[w.X()] != w.NN())
}

func (cpu *Cpu) opSkre(w isa.Word) error {
	return cpu.skip(cpu.V[w.X()] == cpu.V[w.Y()])
}

func (cpu *Cpu) opJneq(w isa.Word) error {
	return cpu.skip(cpu.V[w.X()] != cpu.V[w.Y()])
}

func (cpu *Cpu) opLoad(w isa.Word) error {
	cpu.V[w.X()] = w.NN()
	return cpu.next()
}

func (cpu *Cpu) opAdd(w isa.Word) error {
	cpu.V[w.X()] += w.NN()
	return cpu.next()
}

func (cpu *Cpu) opMove(w isa.Word) error {
	cpu.V[w.X()] = cpu.V[w.Y()]
	return cpu.next()
}

func (cpu *Cpu) opOr(w isa.Word) error {
	cpu.V[w.X()] |= cpu.V[w.Y()]
	return cpu.next()
}

func (cpu *Cpu) opAnd(w isa.Word) error {
	cpu.V[w.X()] &= cpu.V[w.Y()]
	return cpu.next()
}

func (cpu *Cpu) opXor(w isa.Word) error {
	cpu.V[w.X()] ^= cpu.V[w.Y()]
	return cpu.next()
}

func (cpu *Cpu) opAddr(w isa.Word) error {
	x, y := cpu.V[w.X()], cpu.V[w.Y()]
	cpu.V[w.X()] = x + y
	cpu.setFlag(uint16(x)+uint16(y) > 0xff)
	return cpu.next()
}

func (cpu *Cpu) opSub(w isa.Word) error {
	x, y := cpu.V[w.X()], cpu.V[w.Y()]
	cpu.V[w.X()] = x - y
	cpu.setFlag(x >= y)
	return cpu.next()
}

func (cpu *Cpu) opSubb(w isa.Word) error {
	x, y := cpu.V[w.X()], cpu.V[w.Y()]
	cpu.V[w.X()] = y - x
	cpu.setFlag(y >= x)
	return cpu.next()
}

func (cpu *Cpu) opShr(w isa.Word) error {
	x := cpu.V[w.X()]
	cpu.V[w.X()] = x >> 1
	cpu.setFlag(x&0x01 != 0)
	return cpu.next()
}

func (cpu *Cpu) opShl(w isa.Word) error {
	x := cpu.V[w.X()]
	cpu.V[w.X()] = x << 1
	cpu.setFlag(x&0x80 != 0)
	return cpu.next()
}

func (cpu *Cpu) opLoadi(w isa.Word) error {
	cpu.I = w.NNN()
	return cpu.next()
}

func (cpu *Cpu) opJumpi(w isa.Word) error {
	cpu.Pc = w.NNN() + uint16(cpu.V[0])
	return nil
}

func (cpu *Cpu) opRand(w isa.Word) error {
	var value uint8
	if cpu.Rand != nil {
		value = uint8(cpu.Rand.UintN(256))
	} else {
		value = uint8(rand.UintN(256))
	}
	cpu.V[w.X()] = value & w.NN()
	return cpu.next()
}

func (cpu *Cpu) opDraw(w isa.Word) (err error) {
	sprite, err := cpu.memory(cpu.I, int(w.N()))
	if err != nil {
		return
	}
	collision := cpu.Display.Draw(cpu.V[w.X()], cpu.V[w.Y()], sprite)
	cpu.setFlag(collision)
	return cpu.next()
}

func (cpu *Cpu) opSkpr(w isa.Word) error {
	return cpu.skip(cpu.Key == int(cpu.V[w.X()]))
}

func (cpu *Cpu) opSkup(w isa.Word) error {
	return cpu.skip(cpu.Key != int(cpu.V[w.X()]))
}

func (cpu *Cpu) opMoved(w isa.Word) error {
	cpu.V[w.X()] = cpu.DelayTimer
	return cpu.next()
}

// opKeyd suspends until KeyEvent, which completes the instruction.
func (cpu *Cpu) opKeyd(w isa.Word) error {
	cpu.waiting = true
	cpu.waitReg = w.X()
	return nil
}

func (cpu *Cpu) opLoadd(w isa.Word) error {
	cpu.DelayTimer = cpu.V[w.X()]
	return cpu.next()
}

func (cpu *Cpu) opLoads(w isa.Word) error {
	cpu.SoundTimer = cpu.V[w.X()]
	return cpu.next()
}

func (cpu *Cpu) opAddi(w isa.Word) error {
	sum := cpu.I + uint16(cpu.V[w.X()])
	cpu.I = sum & 0xfff
	cpu.setFlag(sum > 0xfff)
	return cpu.next()
}

func (cpu *Cpu) opLdspr(w isa.Word) error {
	cpu.I = Glyph(cpu.V[w.X()])
	return cpu.next()
}

func (cpu *Cpu) opBcd(w isa.Word) (err error) {
	mem, err := cpu.memory(cpu.I, 3)
	if err != nil {
		return
	}
	value := cpu.V[w.X()]
	mem[0] = value / 100
	mem[1] = (value / 10) % 10
	mem[2] = value % 10
	return cpu.next()
}

func (cpu *Cpu) opPush(w isa.Word) (err error) {
	count := int(w.X()) + 1
	mem, err := cpu.memory(cpu.I, count)
	if err != nil {
		return
	}
	copy(mem, cpu.V[:count])
	return cpu.next()
}

func (cpu *Cpu) opPop(w isa.Word) (err error) {
	count := int(w.X()) + 1
	mem, err := cpu.memory(cpu.I, count)
	if err != nil {
		return
	}
	copy(cpu.V[:count], mem)
	return cpu.next()
}
