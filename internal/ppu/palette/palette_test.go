package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	i := Greyscale
	for n := 1; n <= len(Palettes); n++ {
		i = Next(i)
		assert.Equal(t, n%len(Palettes), i)
	}
}

func TestGetColour(t *testing.T) {
	p := Palettes[Greyscale]
	assert.Equal(t, [3]uint8{0, 0, 0}, p.GetColour(0))
	assert.Equal(t, [3]uint8{0xFF, 0xFF, 0xFF}, p.GetColour(1))
	assert.Equal(t, p.Background(), p.GetColour(0))
	assert.Equal(t, p.GetColour(1), p.GetColour(3))
}

func TestByName(t *testing.T) {
	assert.Equal(t, Amber, ByName("amber"))
	assert.Equal(t, Inverted, ByName("inverted"))
	assert.Equal(t, -1, ByName("sepia"))
}

func TestRGB(t *testing.T) {
	assert.Equal(t, [3]uint8{0x9B, 0xBC, 0x0F}, RGB(Phosphor))
}
