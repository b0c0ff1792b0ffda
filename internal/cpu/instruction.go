package cpu

import "fmt"

// Operands are the fixed bit fields of an opcode. Which of them an
// instruction uses depends on its family.
type Operands struct {
	Addr   uint16 // nnn, the low 12 bits
	X      uint8  // bits 8-11, a register index
	Y      uint8  // bits 4-7, a register index
	N      uint8  // the low nibble
	Byte   uint8  // kk, the low 8 bits
	Opcode uint16
}

// DecodeOperands splits an opcode into its bit fields.
func DecodeOperands(opcode uint16) Operands {
	return Operands{
		Addr:   opcode & 0x0FFF,
		X:      uint8(opcode>>8) & 0x0F,
		Y:      uint8(opcode>>4) & 0x0F,
		N:      uint8(opcode) & 0x0F,
		Byte:   uint8(opcode),
		Opcode: opcode,
	}
}

// layout describes how an instruction's operands are written when
// disassembled.
type layout uint8

const (
	layoutNone  layout = iota // CLS
	layoutAddr                // JP 0x228
	layoutXByte               // LD V1, 0x0C
	layoutXY                  // ADD V1, V2
	layoutXYN                 // DRW V0, V1, 0x5
	layoutIAddr               // LD I, 0x22A
	layoutIX                  // ADD I, V3
	layoutBCD                 // LD B, V3
	layoutStore               // LD [I], V3
	layoutLoad                // LD V3, [I]
)

// Instruction is a single CHIP-8 instruction.
type Instruction struct {
	name   string
	layout layout
	fn     func(*CPU, Operands) error
	// jump is set for instructions that always write PC, and so
	// never fall through to the next word.
	jump bool
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Execute executes the instruction against the CPU.
func (i Instruction) Execute(c *CPU, o Operands) error {
	return i.fn(c, o)
}

// InstructionSet holds the decode tables, indexed first by the top
// nibble of an opcode and then by its sub-opcode (see subOpcode).
var InstructionSet [16]map[uint16]Instruction

// DefineInstruction defines an instruction in the InstructionSet.
// pattern is any opcode of the instruction with the operand fields
// zeroed, e.g. 0x8004 for ADD Vx, Vy.
func DefineInstruction(pattern uint16, name string, l layout, fn func(*CPU, Operands) error) {
	family := pattern >> 12
	if InstructionSet[family] == nil {
		InstructionSet[family] = make(map[uint16]Instruction)
	}
	key := subOpcode(pattern)
	if _, exists := InstructionSet[family][key]; exists {
		panic(fmt.Sprintf("instruction %04X defined twice", pattern))
	}
	InstructionSet[family][key] = Instruction{
		name:   name,
		layout: l,
		fn:     fn,
	}
}

// defineJump defines an instruction that always transfers control,
// so it may sit in the last word of memory.
func defineJump(pattern uint16, name string, l layout, fn func(*CPU, Operands) error) {
	DefineInstruction(pattern, name, l, fn)
	i := InstructionSet[pattern>>12][subOpcode(pattern)]
	i.jump = true
	InstructionSet[pattern>>12][subOpcode(pattern)] = i
}

// subOpcode returns the part of an opcode, besides its top nibble,
// that selects the instruction within a family. Families 0 and F are
// selected by more than one nibble, 5, 8 and 9 by the low nibble and
// every other family by the top nibble alone.
func subOpcode(opcode uint16) uint16 {
	switch opcode >> 12 {
	case 0x0:
		return opcode & 0x0FFF
	case 0x5, 0x8, 0x9:
		return opcode & 0x000F
	case 0xE, 0xF:
		return opcode & 0x00FF
	default:
		return 0
	}
}

// Lookup decodes an opcode, returning false if there is no matching
// instruction.
func Lookup(opcode uint16) (Instruction, bool) {
	set := InstructionSet[opcode>>12]
	if set == nil {
		return Instruction{}, false
	}
	i, ok := set[subOpcode(opcode)]
	return i, ok
}

// Disassemble returns the mnemonic and operands of an opcode, or
// "???" if the opcode is unknown.
func Disassemble(opcode uint16) string {
	i, ok := Lookup(opcode)
	if !ok {
		return "???"
	}
	o := DecodeOperands(opcode)
	switch i.layout {
	case layoutAddr:
		return fmt.Sprintf("%s 0x%03X", i.name, o.Addr)
	case layoutXByte:
		return fmt.Sprintf("%s V%X, 0x%02X", i.name, o.X, o.Byte)
	case layoutXY:
		return fmt.Sprintf("%s V%X, V%X", i.name, o.X, o.Y)
	case layoutXYN:
		return fmt.Sprintf("%s V%X, V%X, 0x%X", i.name, o.X, o.Y, o.N)
	case layoutIAddr:
		return fmt.Sprintf("%s I, 0x%03X", i.name, o.Addr)
	case layoutIX:
		return fmt.Sprintf("%s I, V%X", i.name, o.X)
	case layoutBCD:
		return fmt.Sprintf("%s B, V%X", i.name, o.X)
	case layoutStore:
		return fmt.Sprintf("%s [I], V%X", i.name, o.X)
	case layoutLoad:
		return fmt.Sprintf("%s V%X, [I]", i.name, o.X)
	default:
		return i.name
	}
}
