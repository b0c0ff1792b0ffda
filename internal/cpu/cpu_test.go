package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/pixel8/internal/ppu"
	"github.com/thelolagemann/pixel8/internal/ram"
	"github.com/thelolagemann/pixel8/internal/types"
)

// newTestCPU returns a CPU attached to fresh memory and framebuffer.
func newTestCPU() *CPU {
	return NewCPU(ram.New(), ppu.New(), types.DefaultStackSize)
}

// testInstruction runs fn against a fresh CPU for the given opcode.
func testInstruction(t *testing.T, name string, opcode uint16, fn func(t *testing.T, c *CPU, i Instruction)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		i, ok := Lookup(opcode)
		require.True(t, ok, "expected %04X to decode", opcode)
		require.Equal(t, name, Disassemble(opcode))
		fn(t, newTestCPU(), i)
	})
}

// loadProgram writes opcodes, big-endian, starting at ProgramStart.
func loadProgram(t *testing.T, c *CPU, opcodes ...uint16) {
	t.Helper()
	data := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		data = append(data, byte(op>>8), byte(op))
	}
	require.NoError(t, c.mem.WriteBlock(types.ProgramStart, data))
}
