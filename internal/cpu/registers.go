package cpu

import (
	"fmt"

	"github.com/thelolagemann/pixel8/internal/types"
)

// Registers is the register file of the CHIP-8 CPU.
type Registers struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, the number of return addresses on the stack.
	SP uint8
	// I is the index register, generally used to hold memory addresses.
	I uint16

	// DelayTimer and SoundTimer count down to zero at 60Hz. They are
	// decremented by the host, never by instruction execution.
	DelayTimer uint8
	SoundTimer uint8

	// V contains the 16 general purpose registers V0-VF. VF doubles
	// as the flag register.
	V [types.RegisterCount]uint8

	// Stack holds the return addresses pushed by CALL.
	Stack []uint16
}

// NewRegisters returns a register file in its power on state with a
// stack able to hold stackSize return addresses.
func NewRegisters(stackSize int) *Registers {
	r := &Registers{
		Stack: make([]uint16, stackSize),
	}
	r.Reset()
	return r
}

// Reset sets the registers back to their power on state.
func (r *Registers) Reset() {
	r.PC = types.ProgramStart
	r.SP = 0
	r.I = 0
	r.DelayTimer = 0
	r.SoundTimer = 0
	r.V = [types.RegisterCount]uint8{}
	for i := range r.Stack {
		r.Stack[i] = 0
	}
}

// Push pushes a return address onto the stack. If the stack is full
// types.ErrStackOverflow is returned and the stack is left untouched.
func (r *Registers) Push(address uint16) error {
	if int(r.SP) >= len(r.Stack) {
		return fmt.Errorf("%w: capacity %d", types.ErrStackOverflow, len(r.Stack))
	}
	r.Stack[r.SP] = address
	r.SP++
	return nil
}

// Pop pops the most recent return address from the stack.
func (r *Registers) Pop() (uint16, error) {
	if r.SP == 0 {
		return 0, types.ErrStackUnderflow
	}
	r.SP--
	return r.Stack[r.SP], nil
}

// DecrementTimers counts both timers down by one, stopping at zero.
func (r *Registers) DecrementTimers() {
	if r.DelayTimer > 0 {
		r.DelayTimer--
	}
	if r.SoundTimer > 0 {
		r.SoundTimer--
	}
}

var _ types.Stater = (*Registers)(nil)

// Load loads the registers from the given state. The stack capacity
// is not changed; return addresses beyond it are discarded.
func (r *Registers) Load(s *types.State) {
	r.PC = s.Read16()
	r.SP = s.Read8()
	r.I = s.Read16()
	r.DelayTimer = s.Read8()
	r.SoundTimer = s.Read8()
	s.ReadData(r.V[:])

	depth := int(s.Read8())
	for i := 0; i < depth; i++ {
		addr := s.Read16()
		if i < len(r.Stack) {
			r.Stack[i] = addr
		}
	}
	if int(r.SP) > len(r.Stack) {
		r.SP = uint8(len(r.Stack))
	}
}

// Save saves the registers to the given state.
func (r *Registers) Save(s *types.State) {
	s.Write16(r.PC)
	s.Write8(r.SP)
	s.Write16(r.I)
	s.Write8(r.DelayTimer)
	s.Write8(r.SoundTimer)
	s.WriteData(r.V[:])

	s.Write8(r.SP)
	for i := 0; i < int(r.SP); i++ {
		s.Write16(r.Stack[i])
	}
}
