package utils

import (
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// FrameToImage converts an RGB frame, as produced by
// ppu.Framebuffer.PrepareFrame, to an image of width x height.
func FrameToImage(frame []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height && i*3+2 < len(frame); i++ {
		img.Pix[i*4] = frame[i*3]
		img.Pix[i*4+1] = frame[i*3+1]
		img.Pix[i*4+2] = frame[i*3+2]
		img.Pix[i*4+3] = 0xFF
	}
	return img
}

// ScaleImage scales img by factor using nearest neighbour
// sampling, keeping every pixel a crisp square.
func ScaleImage(img image.Image, factor int) *image.RGBA {
	factor = Clamp(1, factor, 64)
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG writes img to filename.
func WritePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
