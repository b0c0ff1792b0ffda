package emulator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatePath(t *testing.T) {
	assert.Equal(t, filepath.Join("roms", "pong.p8s"), StatePath(filepath.Join("roms", "pong.ch8")))
	assert.Equal(t, "tetris.p8s", StatePath("tetris.ch8.zip"))
	assert.Equal(t, "pixel8.p8s", StatePath(""))
}

func TestWriteReadState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.p8s")
	require.NoError(t, WriteState(path, []byte{1, 2, 3}))
	require.NoError(t, WriteState(path, []byte{4, 5}))

	b, err := ReadState(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5}, b)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReadState_Missing(t *testing.T) {
	_, err := ReadState(filepath.Join(t.TempDir(), "missing.p8s"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSetSpeed(t *testing.T) {
	p := SetSpeed(0x02BC)
	assert.Equal(t, CommandSetSpeed, p.Command)
	assert.Equal(t, []byte{0x02, 0xBC}, p.Data)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "Errored", Errored.String())
	assert.Equal(t, "Paused", Paused.String())
	assert.Equal(t, "Unknown", Status(42).String())
	assert.Equal(t, "CyclePalette", CommandCyclePalette.String())
}
