package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstruction_Logic(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		want   uint8
	}{
		{"OR V0, V1", 0x8011, 0xCC | 0xAA},
		{"AND V0, V1", 0x8012, 0xCC & 0xAA},
		{"XOR V0, V1", 0x8013, 0xCC ^ 0xAA},
	}
	for _, tt := range tests {
		testInstruction(t, tt.name, tt.opcode, func(t *testing.T, c *CPU, _ Instruction) {
			c.V[0], c.V[1] = 0xCC, 0xAA
			c.V[0xF] = 0x07
			require.NoError(t, c.Execute(tt.opcode))
			assert.Equal(t, tt.want, c.V[0])
			assert.Equal(t, uint8(0xAA), c.V[1])
			assert.Equal(t, uint8(0x07), c.V[0xF])
		})
	}
}

func TestInstruction_XORSelfClears(t *testing.T) {
	c := newTestCPU()
	c.V[6] = 0x5A
	require.NoError(t, c.Execute(0x8663))
	assert.Equal(t, uint8(0), c.V[6])
}
