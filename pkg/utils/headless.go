//go:build test

package utils

import (
	"errors"
	"image"
)

// ErrHeadless is returned by the helpers that need a desktop session
// when built with the test tag.
var ErrHeadless = errors.New("utils: no desktop session")

func AskForFile(title, startingDir string) (string, error) {
	return "", ErrHeadless
}

func SaveImage(img image.Image) error {
	return ErrHeadless
}

func CopyImage(img image.Image) error {
	return ErrHeadless
}
