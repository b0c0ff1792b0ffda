package rom

import (
	"testing"

	"github.com/cespare/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/pixel8/internal/types"
)

func TestNew(t *testing.T) {
	data := []byte{0x00, 0xE0, 0x12, 0x00}
	r, err := New("roms/IBM Logo.ch8", data)
	require.NoError(t, err)

	assert.Equal(t, "IBM Logo", r.Title())
	assert.Equal(t, data, r.Data)
	assert.Equal(t, xxhash.Sum64(data), r.Checksum)
}

func TestNew_TooLarge(t *testing.T) {
	_, err := New("big.ch8", make([]byte, types.MaxProgramSize+1))
	assert.ErrorIs(t, err, types.ErrOutOfBounds)

	_, err = New("exact.ch8", make([]byte, types.MaxProgramSize))
	assert.NoError(t, err)
}

func TestTitleFromName(t *testing.T) {
	tests := map[string]string{
		"pong.ch8":             "pong",
		"/tmp/games/tetris.c8": "tetris",
		"archive.ch8.zip":      "archive",
		"":                     "Untitled",
		".ch8":                 "Untitled",
		"noext":                "noext",
	}
	for name, want := range tests {
		assert.Equal(t, want, titleFromName(name), name)
	}
}
