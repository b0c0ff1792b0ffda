//go:build !test

package utils

import (
	"image"
	"strings"

	"github.com/sqweek/dialog"
)

// AskForFile asks the user to pick a ROM.
func AskForFile(title, startingDir string) (string, error) {
	builder := dialog.File().SetStartDir(startingDir).Title(title).Filter("CHIP-8 ROM", "ch8", "c8", "zip", "gz", "7z")

	// show the dialog
	return builder.Load()
}

// SaveImage asks the user where to save img, and writes it as a PNG.
func SaveImage(img image.Image) error {
	// ask user where to save the image
	filename, err := dialog.File().Filter("PNG Image", "png").Title("Save Image").Save()
	if err != nil {
		return err
	}

	// does file have a .png extension?
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	return WritePNG(filename, img)
}
