// Package palette provides the colour schemes used to turn the
// monochrome framebuffer into RGB frames.
package palette

const (
	// Greyscale is the default black and white palette.
	Greyscale = iota
	// Green attempts to emulate the phosphor of the COSMAC VIP
	// monitor.
	Green
	// Amber is an amber monochrome monitor palette.
	Amber
	// Inverted draws dark pixels on a light background.
	Inverted
	// Teal is a low contrast teal on cream palette.
	Teal
)

// Palette represents a palette. A palette is an array of 2 RGB
// values, the background colour followed by the foreground colour.
type Palette struct {
	Name   string
	Colors [2][3]uint8
}

// Current is the palette selected at startup.
var Current = Greyscale

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	{Name: "greyscale", Colors: [2][3]uint8{RGB(Black), RGB(White)}},
	{Name: "green", Colors: [2][3]uint8{RGB(DarkGreen), RGB(Phosphor)}},
	{Name: "amber", Colors: [2][3]uint8{RGB(BurntUmber), RGB(AmberGlow)}},
	{Name: "inverted", Colors: [2][3]uint8{RGB(White), RGB(Black)}},
	{Name: "teal", Colors: [2][3]uint8{RGB(Conditioner), RGB(Ming)}},
}

// ByName returns the index of the palette called name, or -1.
func ByName(name string) int {
	for i, p := range Palettes {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Next returns the index of the palette after i, wrapping around
// to the first.
func Next(i int) int {
	return (i + 1) % len(Palettes)
}

// GetColour returns the colour for a pixel value.
func (p Palette) GetColour(index uint8) [3]uint8 {
	return p.Colors[index&1]
}

// Background returns the colour of an unset pixel.
func (p Palette) Background() [3]uint8 {
	return p.Colors[0]
}
