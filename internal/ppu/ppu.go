// Package ppu provides the CHIP-8 display: a 64x32 monochrome
// framebuffer with XOR plotting, and the conversion of that
// framebuffer into RGB frames for a display driver.
package ppu

import (
	"github.com/thelolagemann/pixel8/internal/ppu/palette"
	"github.com/thelolagemann/pixel8/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = types.ScreenWidth
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = types.ScreenHeight
	// FrameSize is the size in bytes of a prepared RGB frame.
	FrameSize = ScreenWidth * ScreenHeight * 3
)

// Framebuffer is the 32 row by 64 column pixel grid. Each cell is
// stored as a byte that is always 0 or 1.
type Framebuffer struct {
	pixels [ScreenHeight][ScreenWidth]uint8

	// dirty is set whenever a pixel changes, and cleared once the
	// frame has been handed to a display driver.
	dirty bool
}

// New returns a new, cleared Framebuffer.
func New() *Framebuffer {
	return &Framebuffer{dirty: true}
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	f.pixels = [ScreenHeight][ScreenWidth]uint8{}
	f.dirty = true
}

// XOR toggles the pixel at (row mod 32, col mod 64) and returns its
// new value. Coordinates always wrap so that negative or oversized
// values never index outside of the grid.
func (f *Framebuffer) XOR(row, col int) uint8 {
	row = wrap(row, ScreenHeight)
	col = wrap(col, ScreenWidth)
	f.pixels[row][col] ^= 1
	f.dirty = true
	return f.pixels[row][col]
}

// Pixel returns the value of the pixel at (row mod 32, col mod 64).
func (f *Framebuffer) Pixel(row, col int) uint8 {
	return f.pixels[wrap(row, ScreenHeight)][wrap(col, ScreenWidth)]
}

// Snapshot returns a copy of the grid.
func (f *Framebuffer) Snapshot() [ScreenHeight][ScreenWidth]uint8 {
	return f.pixels
}

// Dirty reports whether the framebuffer has changed since the last
// call to ClearDirty.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// ClearDirty marks the current contents as presented.
func (f *Framebuffer) ClearDirty() {
	f.dirty = false
}

// Invalidate marks the framebuffer as changed, so that it is redrawn
// even though no pixel did.
func (f *Framebuffer) Invalidate() {
	f.dirty = true
}

// PrepareFrame converts the framebuffer into an RGB frame using the
// given palette, writing into dst which must be at least FrameSize
// bytes. Rows are stored top to bottom.
func (f *Framebuffer) PrepareFrame(dst []byte, p palette.Palette) {
	i := 0
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			c := p.GetColour(f.pixels[y][x])
			dst[i], dst[i+1], dst[i+2] = c[0], c[1], c[2]
			i += 3
		}
	}
}

// Reset clears the framebuffer.
func (f *Framebuffer) Reset() {
	f.Clear()
}

var _ types.Stater = (*Framebuffer)(nil)

// Load loads the framebuffer from the given state.
func (f *Framebuffer) Load(s *types.State) {
	for y := range f.pixels {
		s.ReadData(f.pixels[y][:])
		for x := range f.pixels[y] {
			f.pixels[y][x] &= 1
		}
	}
	f.dirty = true
}

// Save saves the framebuffer to the given state.
func (f *Framebuffer) Save(s *types.State) {
	for y := range f.pixels {
		s.WriteData(f.pixels[y][:])
	}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
