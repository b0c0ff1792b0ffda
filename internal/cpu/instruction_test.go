package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/pixel8/internal/types"
)

func TestDecodeOperands(t *testing.T) {
	o := DecodeOperands(0xD12F)
	assert.Equal(t, uint16(0x12F), o.Addr)
	assert.Equal(t, uint8(0x1), o.X)
	assert.Equal(t, uint8(0x2), o.Y)
	assert.Equal(t, uint8(0xF), o.N)
	assert.Equal(t, uint8(0x2F), o.Byte)
}

func TestLookup(t *testing.T) {
	known := []uint16{
		0x00E0, 0x00EE, 0x1228, 0x2300, 0x3A01, 0x4B02, 0x5120, 0x6A0C,
		0x7A01, 0x8120, 0x8121, 0x8122, 0x8123, 0x8124, 0x8125, 0x8126,
		0x8127, 0x812E, 0x9120, 0xA22A, 0xD015, 0xF31E, 0xF333, 0xF355,
		0xF365,
	}
	for _, op := range known {
		_, ok := Lookup(op)
		assert.True(t, ok, "expected %04X to decode", op)
	}

	unknown := []uint16{
		0x0000, 0x0123, 0x01E0, 0x00FF, 0x5121, 0x8128, 0x812F, 0x9121,
		0xB123, 0xC1FF, 0xE19E, 0xE1A1, 0xF10A, 0xF107, 0xF115, 0xF118,
		0xF129, 0xFFFF,
	}
	for _, op := range unknown {
		_, ok := Lookup(op)
		assert.False(t, ok, "expected %04X to be unknown", op)
	}
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		opcode uint16
		want   string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1228, "JP 0x228"},
		{0x2ABC, "CALL 0xABC"},
		{0x6A0C, "LD VA, 0x0C"},
		{0x8124, "ADD V1, V2"},
		{0xA22A, "LD I, 0x22A"},
		{0xD015, "DRW V0, V1, 0x5"},
		{0xF31E, "ADD I, V3"},
		{0xF333, "LD B, V3"},
		{0xF355, "LD [I], V3"},
		{0xF365, "LD V3, [I]"},
		{0xB000, "???"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Disassemble(tt.opcode))
	}
}

func TestCPU_FetchDoesNotAdvance(t *testing.T) {
	c := newTestCPU()
	loadProgram(t, c, 0xA22A)

	op, err := c.Fetch()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xA22A), op)
	assert.Equal(t, uint16(types.ProgramStart), c.PC)
}

func TestCPU_FetchOutOfBounds(t *testing.T) {
	c := newTestCPU()
	c.PC = 0x0FFF

	err := c.Step()
	assert.ErrorIs(t, err, types.ErrOutOfBounds)
	assert.True(t, IsFatal(err))
}

func TestCPU_UnknownOpcode(t *testing.T) {
	c := newTestCPU()
	c.V[3] = 7
	c.I = 0x300
	c.fb.XOR(4, 4)
	before := *c.Registers
	mem := c.mem.Bytes()
	fb := c.fb.Snapshot()

	err := c.Execute(0xE19E)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownOpcode)
	assert.False(t, IsFatal(err))

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, uint16(types.ProgramStart), execErr.PC)
	assert.Equal(t, uint16(0xE19E), execErr.Opcode)

	assert.Equal(t, before.PC+2, c.PC)
	assert.Equal(t, before.V, c.V)
	assert.Equal(t, before.I, c.I)
	assert.Equal(t, before.SP, c.SP)
	assert.Equal(t, mem, c.mem.Bytes())
	assert.Equal(t, fb, c.fb.Snapshot())
}

func TestCPU_StepRunsProgram(t *testing.T) {
	c := newTestCPU()
	// LD V0, 0x05; ADD V0, 0x03; JP 0x204
	loadProgram(t, c, 0x6005, 0x7003, 0x1204)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Step())
	}
	assert.Equal(t, uint8(0x08), c.V[0])
	assert.Equal(t, uint16(0x204), c.PC)
}

func TestCPU_OnExecute(t *testing.T) {
	c := newTestCPU()
	var names []string
	c.OnExecute(func(name string) { names = append(names, name) })

	require.NoError(t, c.Execute(0x6005))
	require.NoError(t, c.Execute(0x00E0))
	_ = c.Execute(0xB000)

	assert.Equal(t, []string{"LD", "CLS"}, names)
}

func TestCPU_EndOfMemory(t *testing.T) {
	t.Run("skip past the last word", func(t *testing.T) {
		c := newTestCPU()
		c.PC = 0xFFC
		c.V[1] = 0x10

		err := c.Execute(0x3110)
		assert.ErrorIs(t, err, types.ErrOutOfBounds)
		assert.True(t, IsFatal(err))
		assert.Equal(t, uint16(0xFFC), c.PC)
	})
	t.Run("skip not taken", func(t *testing.T) {
		c := newTestCPU()
		c.PC = 0xFFC

		require.NoError(t, c.Execute(0x3110))
		assert.Equal(t, uint16(0xFFE), c.PC)
	})
	t.Run("unknown opcode in the last word", func(t *testing.T) {
		c := newTestCPU()
		c.PC = 0xFFE

		err := c.Execute(0xE19E)
		assert.ErrorIs(t, err, types.ErrOutOfBounds)
		assert.True(t, IsFatal(err))
		assert.Equal(t, uint16(0xFFE), c.PC)
	})
	t.Run("fall through from the last word", func(t *testing.T) {
		c := newTestCPU()
		c.PC = 0xFFE

		err := c.Execute(0x6042)
		assert.ErrorIs(t, err, types.ErrOutOfBounds)
		assert.Equal(t, uint16(0xFFE), c.PC)
		assert.Equal(t, uint8(0), c.V[0])
	})
	t.Run("jump from the last word", func(t *testing.T) {
		c := newTestCPU()
		c.PC = 0xFFE

		require.NoError(t, c.Execute(0x1200))
		assert.Equal(t, uint16(0x200), c.PC)
	})
	t.Run("return past the last word", func(t *testing.T) {
		c := newTestCPU()
		c.PC = 0xFFE
		require.NoError(t, c.Execute(0x2300))
		require.Equal(t, uint16(0x1000), c.Stack[0])

		err := c.Execute(0x00EE)
		assert.ErrorIs(t, err, types.ErrOutOfBounds)
		assert.Equal(t, uint16(0x300), c.PC)
		assert.Equal(t, uint8(1), c.SP)
	})
}

func TestCPU_UnsupportedFamilies(t *testing.T) {
	for _, opcode := range []uint16{0x0123, 0xB200, 0xC1FF, 0xF107, 0xF115, 0xF118, 0xF129, 0xE1A1, 0xF10A} {
		c := newTestCPU()
		err := c.Execute(opcode)
		assert.ErrorIs(t, err, types.ErrUnknownOpcode, "%04X", opcode)
		assert.Equal(t, uint16(types.ProgramStart+2), c.PC, "%04X", opcode)
	}
}
