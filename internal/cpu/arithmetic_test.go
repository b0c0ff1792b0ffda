package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstruction_AddImmediate(t *testing.T) {
	testInstruction(t, "ADD V2, 0x0A", 0x720A, func(t *testing.T, c *CPU, _ Instruction) {
		c.V[2] = 0xFB
		c.V[0xF] = 0x42
		require.NoError(t, c.Execute(0x720A))
		assert.Equal(t, uint8(0x05), c.V[2])
		assert.Equal(t, uint8(0x42), c.V[0xF], "VF must not be touched")
	})
}

func TestInstruction_AddRegisters(t *testing.T) {
	tests := []struct {
		vx, vy, want, flag uint8
	}{
		{1, 2, 3, 0},
		{250, 10, 4, 1},
		{0xFF, 0x01, 0x00, 1},
		{0x7F, 0x80, 0xFF, 0},
		{0xFF, 0xFF, 0xFE, 1},
	}
	for _, tt := range tests {
		testInstruction(t, "ADD V0, V1", 0x8014, func(t *testing.T, c *CPU, _ Instruction) {
			c.V[0], c.V[1] = tt.vx, tt.vy
			require.NoError(t, c.Execute(0x8014))
			assert.Equal(t, tt.want, c.V[0], "%d + %d", tt.vx, tt.vy)
			assert.Equal(t, tt.flag, c.V[0xF], "%d + %d", tt.vx, tt.vy)
		})
	}
}

func TestInstruction_AddCarryLaw(t *testing.T) {
	c := newTestCPU()
	for a := 0; a < 256; a += 7 {
		for b := 0; b < 256; b += 11 {
			c.V[3], c.V[4] = uint8(a), uint8(b)
			require.NoError(t, c.Execute(0x8344))
			assert.Equal(t, uint8((a+b)%256), c.V[3])
			assert.Equal(t, a+b > 255, c.V[0xF] == 1)
		}
	}
}

func TestInstruction_Sub(t *testing.T) {
	tests := []struct {
		vx, vy, want, flag uint8
	}{
		{10, 5, 5, 1},
		{5, 10, 251, 0},
		{7, 7, 0, 1},
		{0, 1, 0xFF, 0},
	}
	for _, tt := range tests {
		testInstruction(t, "SUB V0, V1", 0x8015, func(t *testing.T, c *CPU, _ Instruction) {
			c.V[0], c.V[1] = tt.vx, tt.vy
			require.NoError(t, c.Execute(0x8015))
			assert.Equal(t, tt.want, c.V[0])
			assert.Equal(t, tt.flag, c.V[0xF])
		})
		testInstruction(t, "SUBN V1, V0", 0x8107, func(t *testing.T, c *CPU, _ Instruction) {
			c.V[0], c.V[1] = tt.vx, tt.vy
			require.NoError(t, c.Execute(0x8107))
			assert.Equal(t, tt.want, c.V[1])
			assert.Equal(t, tt.flag, c.V[0xF])
		})
	}
}

func TestInstruction_FlagRegisterAsDestination(t *testing.T) {
	// the result is written after the flag, so it is what survives in VF
	t.Run("ADD VF, V1", func(t *testing.T) {
		c := newTestCPU()
		c.V[0xF], c.V[1] = 250, 10
		require.NoError(t, c.Execute(0x8F14))
		assert.Equal(t, uint8(4), c.V[0xF])
	})
	t.Run("SUB VF, V1", func(t *testing.T) {
		c := newTestCPU()
		c.V[0xF], c.V[1] = 5, 10
		require.NoError(t, c.Execute(0x8F15))
		assert.Equal(t, uint8(251), c.V[0xF])
	})
	t.Run("SHR VF, V1", func(t *testing.T) {
		c := newTestCPU()
		// the shifted value is written after the flag
		c.V[1] = 0x02
		require.NoError(t, c.Execute(0x8F16))
		assert.Equal(t, uint8(0x01), c.V[0xF])
	})
}

func TestInstruction_AddIndex(t *testing.T) {
	testInstruction(t, "ADD I, V3", 0xF31E, func(t *testing.T, c *CPU, _ Instruction) {
		c.I = 0x300
		c.V[3] = 0x20
		c.V[0xF] = 0x09
		require.NoError(t, c.Execute(0xF31E))
		assert.Equal(t, uint16(0x320), c.I)
		assert.Equal(t, uint8(0x09), c.V[0xF])
	})
}
