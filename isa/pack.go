package isa

// Pack folds operand values into the template's opcode according to its class.
//
//	none:     template
//	addr:     template | nnn
//	reg-byte: template | x<<8 | nn
//	reg-reg:  template | x<<8 | y<<4
//	reg:      template | x<<8
//	draw:     template | x<<8 | y<<4 | n
func (t Template) Pack(operands ...uint16) (w Word, err error) {
	kinds := t.Class.Operands()
	if len(operands) != t.Arity || len(operands) != len(kinds) {
		err = ErrOperandCount
		return
	}

	for n, value := range operands {
		if value > kinds[n].Limit() {
			err = &ErrOperand{Keyword: t.Keyword, Index: n, Value: value, Err: ErrOperandRange}
			return
		}
	}

	w = t.Opcode
	switch t.Class {
	case CLASS_ADDRESS:
		w |= Word(operands[0] & 0xfff)
	case CLASS_REG_BYTE:
		w |= Word(operands[0]<<8 | operands[1])
	case CLASS_REG_REG:
		w |= Word(operands[0]<<8 | operands[1]<<4)
	case CLASS_REG:
		w |= Word((operands[0] & 0xf) << 8)
	case CLASS_DRAW:
		w |= Word(operands[0]<<8 | operands[1]<<4 | operands[2])
	}

	// SYS 0x0e0 and SYS 0x0ee would collide with CLS and RET.
	if Normalize(w) != t.Opcode {
		err = &ErrOperand{Keyword: t.Keyword, Index: 0, Value: operands[0], Err: ErrOperandRange}
		w = 0
	}

	return
}

// Unpack extracts the operand values of a raw instruction, in source order.
// It is the inverse of Pack for any Word that normalizes to t.Opcode.
func (t Template) Unpack(w Word) (operands []uint16) {
	switch t.Class {
	case CLASS_ADDRESS:
		operands = []uint16{w.NNN()}
	case CLASS_REG_BYTE:
		operands = []uint16{uint16(w.X()), uint16(w.NN())}
	case CLASS_REG_REG:
		operands = []uint16{uint16(w.X()), uint16(w.Y())}
	case CLASS_REG:
		operands = []uint16{uint16(w.X())}
	case CLASS_DRAW:
		operands = []uint16{uint16(w.X()), uint16(w.Y()), uint16(w.N())}
	}
	return
}
