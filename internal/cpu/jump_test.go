package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/pixel8/internal/types"
)

func TestInstruction_Jump(t *testing.T) {
	// 1nnn - JP addr
	testInstruction(t, "JP 0x345", 0x1345, func(t *testing.T, c *CPU, _ Instruction) {
		require.NoError(t, c.Execute(0x1345))
		assert.Equal(t, uint16(0x345), c.PC)
	})
	// 2nnn - CALL addr
	testInstruction(t, "CALL 0x400", 0x2400, func(t *testing.T, c *CPU, _ Instruction) {
		require.NoError(t, c.Execute(0x2400))
		assert.Equal(t, uint16(0x400), c.PC)
		assert.Equal(t, uint8(1), c.SP)
		assert.Equal(t, uint16(types.ProgramStart+2), c.Stack[0])
	})
	// 00EE - RET
	testInstruction(t, "RET", 0x00EE, func(t *testing.T, c *CPU, _ Instruction) {
		require.NoError(t, c.Push(0x260))
		require.NoError(t, c.Execute(0x00EE))
		assert.Equal(t, uint16(0x260), c.PC)
		assert.Equal(t, uint8(0), c.SP)
	})
}

func TestInstruction_CallReturnRoundTrip(t *testing.T) {
	for _, addr := range []uint16{0x000, 0x202, 0x400, 0xFFE} {
		c := newTestCPU()
		c.PC = 0x300
		require.NoError(t, c.Execute(0x2000|addr))
		after := uint16(0x302)

		require.NoError(t, c.Execute(0x00EE))
		assert.Equal(t, after, c.PC, "CALL 0x%03X", addr)
		assert.Equal(t, uint8(0), c.SP)
	}
}

func TestInstruction_CallStackOverflow(t *testing.T) {
	c := newTestCPU()
	for i := 0; i < types.DefaultStackSize; i++ {
		require.NoError(t, c.Execute(0x2300))
	}
	stack := append([]uint16(nil), c.Stack...)
	sp := c.SP
	pc := c.PC

	err := c.Execute(0x2500)
	assert.ErrorIs(t, err, types.ErrStackOverflow)
	assert.True(t, IsFatal(err))
	assert.Equal(t, sp, c.SP)
	assert.Equal(t, stack, c.Stack)
	assert.Equal(t, pc, c.PC)
}

func TestInstruction_ReturnStackUnderflow(t *testing.T) {
	c := newTestCPU()

	err := c.Execute(0x00EE)
	assert.ErrorIs(t, err, types.ErrStackUnderflow)
	assert.True(t, IsFatal(err))
	assert.Equal(t, uint16(types.ProgramStart), c.PC)
	assert.Equal(t, uint8(0), c.SP)
}

func TestInstruction_Skip(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		vx, vy uint8
		skip   bool
	}{
		{"SE V1, 0x10", 0x3110, 0x10, 0, true},
		{"SE V1, 0x10", 0x3110, 0x11, 0, false},
		{"SNE V1, 0x10", 0x4110, 0x10, 0, false},
		{"SNE V1, 0x10", 0x4110, 0x11, 0, true},
		{"SE V1, V2", 0x5120, 0x33, 0x33, true},
		{"SE V1, V2", 0x5120, 0x33, 0x34, false},
		{"SNE V1, V2", 0x9120, 0x33, 0x33, false},
		{"SNE V1, V2", 0x9120, 0x33, 0x34, true},
	}

	for _, tt := range tests {
		testInstruction(t, tt.name, tt.opcode, func(t *testing.T, c *CPU, _ Instruction) {
			c.V[1], c.V[2] = tt.vx, tt.vy
			require.NoError(t, c.Execute(tt.opcode))

			want := uint16(types.ProgramStart + 2)
			if tt.skip {
				want += 2
			}
			assert.Equal(t, want, c.PC)
		})
	}
}
