//go:build test

package utils

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadless(t *testing.T) {
	_, err := AskForFile("Select a ROM", ".")
	assert.ErrorIs(t, err, ErrHeadless)

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.ErrorIs(t, SaveImage(img), ErrHeadless)
	assert.ErrorIs(t, CopyImage(img), ErrHeadless)
}
