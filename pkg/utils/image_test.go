package utils

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameToImage(t *testing.T) {
	frame := []byte{
		0x10, 0x20, 0x30, 0xFF, 0xFF, 0xFF,
		0x00, 0x00, 0x00, 0x01, 0x02, 0x03,
	}
	img := FrameToImage(frame, 2, 2)

	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{R: 0x01, G: 0x02, B: 0x03, A: 0xFF}, img.RGBAAt(1, 1))
}

func TestScaleImage(t *testing.T) {
	img := FrameToImage([]byte{0xFF, 0x00, 0x00, 0x00, 0x00, 0xFF}, 2, 1)
	scaled := ScaleImage(img, 4)

	assert.Equal(t, 8, scaled.Bounds().Dx())
	assert.Equal(t, 4, scaled.Bounds().Dy())
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, scaled.RGBAAt(3, 3))
	assert.Equal(t, color.RGBA{B: 0xFF, A: 0xFF}, scaled.RGBAAt(4, 0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(1, -5, 10))
	assert.Equal(t, 10, Clamp(1, 50, 10))
	assert.Equal(t, 2.5, Clamp(0.0, 2.5, 4.0))
}

func TestBytes(t *testing.T) {
	assert.Equal(t, uint16(0xA22A), BytesToUint16(0xA2, 0x2A))
	assert.Equal(t, uint16(0x00E0), BytesToUint16(0x00, 0xE0))
}
