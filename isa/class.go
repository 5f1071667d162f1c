package isa

// Class is the operand packing rule shared by a group of templates.
type Class int

const (
	CLASS_NONE     = Class(0) // none
	CLASS_ADDRESS  = Class(1) // addr
	CLASS_REG_BYTE = Class(2) // reg-byte
	CLASS_REG_REG  = Class(3) // reg-reg
	CLASS_REG      = Class(4) // reg
	CLASS_DRAW     = Class(5) // draw
)

var className = [...]string{
	CLASS_NONE:     "none",
	CLASS_ADDRESS:  "addr",
	CLASS_REG_BYTE: "reg-byte",
	CLASS_REG_REG:  "reg-reg",
	CLASS_REG:      "reg",
	CLASS_DRAW:     "draw",
}

func (c Class) String() string {
	if c < 0 || int(c) >= len(className) {
		return f("Class(%d)", int(c))
	}
	return className[c]
}

// Operand is the kind of value held by one operand field.
type Operand int

const (
	OPERAND_REGISTER = Operand(0) // register index, one nibble
	OPERAND_BYTE     = Operand(1) // 8-bit immediate
	OPERAND_ADDRESS  = Operand(2) // 12-bit address
	OPERAND_NIBBLE   = Operand(3) // 4-bit immediate
)

// Limit returns the largest value the operand field can hold.
func (op Operand) Limit() uint16 {
	switch op {
	case OPERAND_BYTE:
		return 0xff
	case OPERAND_ADDRESS:
		return 0xfff
	default:
		return 0xf
	}
}

// Operands returns the kind of each operand field of the class, in source order.
func (c Class) Operands() []Operand {
	switch c {
	case CLASS_ADDRESS:
		return []Operand{OPERAND_ADDRESS}
	case CLASS_REG_BYTE:
		return []Operand{OPERAND_REGISTER, OPERAND_BYTE}
	case CLASS_REG_REG:
		return []Operand{OPERAND_REGISTER, OPERAND_REGISTER}
	case CLASS_REG:
		return []Operand{OPERAND_REGISTER}
	case CLASS_DRAW:
		return []Operand{OPERAND_REGISTER, OPERAND_REGISTER, OPERAND_NIBBLE}
	}
	return nil
}
