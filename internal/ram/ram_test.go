package ram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/pixel8/internal/types"
)

func TestMemory_ZeroInitialised(t *testing.T) {
	m := New()
	for _, b := range m.Bytes() {
		if b != 0 {
			t.Fatalf("Expected zeroed memory, got 0x%02X", b)
		}
	}
}

func TestMemory_ReadWrite(t *testing.T) {
	m := New()
	require.NoError(t, m.Write(0x0FFF, 0xAB))

	v, err := m.Read(0x0FFF)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), v)

	// runtime code may touch the reserved area
	require.NoError(t, m.Write(0x0000, 0x12))
	v, err = m.Read(0x0000)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x12), v)
}

func TestMemory_OutOfBounds(t *testing.T) {
	m := New()

	_, err := m.Read(types.MemorySize)
	assert.ErrorIs(t, err, types.ErrOutOfBounds)

	err = m.Write(0xFFFF, 1)
	assert.ErrorIs(t, err, types.ErrOutOfBounds)

	_, err = m.ReadWord(0x0FFF)
	assert.ErrorIs(t, err, types.ErrOutOfBounds)
}

func TestMemory_ReadWord(t *testing.T) {
	m := New()
	require.NoError(t, m.WriteBlock(types.ProgramStart, []byte{0xA2, 0xF0}))

	w, err := m.ReadWord(types.ProgramStart)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xA2F0), w)

	w, err = m.ReadWord(0x0FFE)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), w)
}

func TestMemory_WriteBlock(t *testing.T) {
	tests := []struct {
		name   string
		offset uint16
		size   int
		err    bool
	}{
		{"empty", types.ProgramStart, 0, false},
		{"small program", types.ProgramStart, 132, false},
		{"fills memory", types.ProgramStart, types.MaxProgramSize, false},
		{"one byte too many", types.ProgramStart, types.MaxProgramSize + 1, true},
		{"offset at end", types.MemorySize, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			data := make([]byte, tt.size)
			for i := range data {
				data[i] = 0xFF
			}

			err := m.WriteBlock(tt.offset, data)
			if tt.err {
				assert.ErrorIs(t, err, types.ErrOutOfBounds)
				// no partial write
				assert.Equal(t, make([]byte, types.MemorySize), m.Bytes())
				return
			}
			require.NoError(t, err)
			b, err := m.ReadBlock(tt.offset, tt.size)
			require.NoError(t, err)
			assert.Equal(t, data, b)
		})
	}
}

func TestMemory_State(t *testing.T) {
	m := New()
	require.NoError(t, m.WriteBlock(0x300, []byte{1, 2, 3, 4}))

	s := types.NewState()
	m.Save(s)

	loaded, err := types.StateFromBytes(s.Bytes())
	require.NoError(t, err)
	m2 := New()
	m2.Load(loaded)
	require.NoError(t, loaded.Err())
	assert.Equal(t, m.Bytes(), m2.Bytes())
}
