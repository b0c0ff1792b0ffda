// Package cpu provides the CHIP-8 interpreter core: the register
// file and the fetch, decode and execute cycle.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/pixel8/internal/ppu"
	"github.com/thelolagemann/pixel8/internal/ram"
	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/log"
)

// Quirks toggles behaviours that differ between historical
// interpreters. The zero value matches the COSMAC VIP.
type Quirks struct {
	// ShiftUsesVX makes 8xy6 and 8xyE shift Vx in place, ignoring Vy.
	ShiftUsesVX bool
	// IncrementIOnLoadStore makes Fx55 and Fx65 leave I pointing
	// past the last register transferred.
	IncrementIOnLoadStore bool
}

// CPU represents the CHIP-8 CPU. It is responsible for executing
// instructions against memory and the framebuffer.
type CPU struct {
	// Registers contains the program counter, stack, timers and the
	// V registers.
	*Registers

	Quirks Quirks

	// Debug enables the instruction trace.
	Debug bool

	mem *ram.Memory
	fb  *ppu.Framebuffer
	log log.Logger

	// executed is called with the mnemonic of every instruction
	// executed successfully.
	executed func(name string)
}

// NewCPU creates a new CPU attached to the given memory and
// framebuffer, with a stack holding stackSize return addresses.
func NewCPU(mem *ram.Memory, fb *ppu.Framebuffer, stackSize int) *CPU {
	return &CPU{
		Registers: NewRegisters(stackSize),
		mem:       mem,
		fb:        fb,
		log:       log.NewNullLogger(),
	}
}

// SetLogger sets the logger used for the instruction trace and
// unknown opcode reports.
func (c *CPU) SetLogger(l log.Logger) {
	c.log = l
}

// OnExecute registers fn to be called after each instruction with
// its mnemonic.
func (c *CPU) OnExecute(fn func(name string)) {
	c.executed = fn
}

// Fetch returns the opcode at PC. PC is not changed.
func (c *CPU) Fetch() (uint16, error) {
	return c.mem.ReadWord(c.PC)
}

// Step fetches, decodes and executes a single instruction.
func (c *CPU) Step() error {
	opcode, err := c.Fetch()
	if err != nil {
		return &ExecError{PC: c.PC, Err: err}
	}
	return c.Execute(opcode)
}

// Execute decodes and executes opcode as though it had been fetched
// from PC.
//
// PC is advanced by 2 before the instruction runs, so jumps, calls
// and returns overwrite the advanced value and CALL pushes the
// address of the instruction after it. An unknown opcode leaves
// everything but PC untouched and returns an error wrapping
// types.ErrUnknownOpcode. Any other error leaves PC at the failing
// instruction, with no other state changed.
//
// PC never leaves memory: an instruction that would continue past
// the last word fails with types.ErrOutOfBounds.
func (c *CPU) Execute(opcode uint16) error {
	pc := c.PC
	instruction, ok := Lookup(opcode)

	if int(pc)+2 >= types.MemorySize && !(ok && instruction.jump) {
		return &ExecError{PC: pc, Opcode: opcode, Err: fmt.Errorf("%w: no instruction after 0x%03X", types.ErrOutOfBounds, pc)}
	}
	c.PC += 2

	if !ok {
		c.log.Errorf("unknown opcode %04X at 0x%04X", opcode, pc)
		return &ExecError{PC: pc, Opcode: opcode, Err: types.ErrUnknownOpcode}
	}

	if c.Debug {
		c.log.Debugf("%04X %02X %02X  %s", pc, opcode>>8, opcode&0xFF, Disassemble(opcode))
	}

	// a skip or return past the end of memory only touched registers
	saved := *c.Registers
	if err := instruction.Execute(c, DecodeOperands(opcode)); err != nil {
		c.PC = pc
		return &ExecError{PC: pc, Opcode: opcode, Err: err}
	}
	if int(c.PC) >= types.MemorySize {
		target := c.PC
		*c.Registers = saved
		c.PC = pc
		return &ExecError{PC: pc, Opcode: opcode, Err: fmt.Errorf("%w: PC 0x%04X", types.ErrOutOfBounds, target)}
	}

	if c.executed != nil {
		c.executed(instruction.Name())
	}
	return nil
}

// skipIf skips the next instruction when cond is true.
func (c *CPU) skipIf(cond bool) {
	if cond {
		c.PC += 2
	}
}

// setWithFlag writes flag to VF and then value to Vx, so that when x
// is 0xF the result of the operation is what remains in VF.
func (c *CPU) setWithFlag(x uint8, value, flag uint8) {
	c.V[types.FlagRegister] = flag
	c.V[x] = value
}

// Reset resets the registers. Memory and the framebuffer are owned
// by the caller.
func (c *CPU) Reset() {
	c.Registers.Reset()
}
