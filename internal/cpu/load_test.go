package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/pixel8/internal/types"
)

func TestInstruction_Load(t *testing.T) {
	// 6xkk - LD Vx, byte, for every register and a spread of values
	for x := uint16(0); x < 16; x++ {
		for _, kk := range []uint16{0x00, 0x01, 0x7F, 0x80, 0xFF} {
			c := newTestCPU()
			require.NoError(t, c.Execute(0x6000|x<<8|kk))
			assert.Equal(t, uint8(kk), c.V[x])
			assert.Equal(t, uint16(types.ProgramStart+2), c.PC)
		}
	}
	// 8xy0 - LD Vx, Vy
	testInstruction(t, "LD V3, V4", 0x8340, func(t *testing.T, c *CPU, _ Instruction) {
		c.V[4] = 0x99
		require.NoError(t, c.Execute(0x8340))
		assert.Equal(t, uint8(0x99), c.V[3])
		assert.Equal(t, uint8(0x99), c.V[4])
	})
	// Annn - LD I, addr
	testInstruction(t, "LD I, 0xABC", 0xAABC, func(t *testing.T, c *CPU, _ Instruction) {
		require.NoError(t, c.Execute(0xAABC))
		assert.Equal(t, uint16(0xABC), c.I)
	})
}

func TestInstruction_StoreBCD(t *testing.T) {
	for v := 0; v <= 255; v++ {
		c := newTestCPU()
		c.V[5] = uint8(v)
		c.I = 0x300
		require.NoError(t, c.Execute(0xF533))

		digits, err := c.mem.ReadBlock(0x300, 3)
		require.NoError(t, err)
		assert.Equal(t, []byte{uint8(v / 100), uint8(v / 10 % 10), uint8(v % 10)}, digits)
	}

	c := newTestCPU()
	c.V[0] = 249
	c.I = 0x400
	require.NoError(t, c.Execute(0xF033))
	digits, err := c.mem.ReadBlock(0x400, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 4, 9}, digits)
}

func TestInstruction_StoreBCDOutOfBounds(t *testing.T) {
	c := newTestCPU()
	c.V[0] = 123
	c.I = 0x0FFE

	err := c.Execute(0xF033)
	assert.ErrorIs(t, err, types.ErrOutOfBounds)
	assert.Equal(t, uint16(types.ProgramStart), c.PC)
	assert.Equal(t, make([]byte, types.MemorySize), c.mem.Bytes())
}

func TestInstruction_BulkRegisterTransfer(t *testing.T) {
	c := newTestCPU()
	original := [4]uint8{0x11, 0x22, 0x33, 0x44}
	copy(c.V[:4], original[:])
	c.V[4] = 0x55
	c.I = 0x500

	// Fx55 - LD [I], V3
	require.NoError(t, c.Execute(0xF355))
	stored, err := c.mem.ReadBlock(0x500, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44, 0x00}, stored)
	assert.Equal(t, uint16(0x500), c.I)

	for k := 0; k < 4; k++ {
		c.V[k] = 0
	}

	// Fx65 - LD V3, [I]
	require.NoError(t, c.Execute(0xF365))
	var got [4]uint8
	copy(got[:], c.V[:4])
	assert.Equal(t, original, got)
	assert.Equal(t, uint8(0x55), c.V[4])
}

func TestInstruction_BulkTransferIncrementQuirk(t *testing.T) {
	c := newTestCPU()
	c.Quirks.IncrementIOnLoadStore = true
	c.I = 0x500

	require.NoError(t, c.Execute(0xF255))
	assert.Equal(t, uint16(0x503), c.I)
	require.NoError(t, c.Execute(0xF065))
	assert.Equal(t, uint16(0x504), c.I)
}

func TestInstruction_BulkTransferOutOfBounds(t *testing.T) {
	c := newTestCPU()
	for k := range c.V {
		c.V[k] = 0xAA
	}
	c.I = 0x0FFC

	err := c.Execute(0xFF55)
	assert.ErrorIs(t, err, types.ErrOutOfBounds)
	assert.Equal(t, make([]byte, types.MemorySize), c.mem.Bytes())

	err = c.Execute(0xFF65)
	assert.ErrorIs(t, err, types.ErrOutOfBounds)
	assert.Equal(t, uint8(0xAA), c.V[0])
}
