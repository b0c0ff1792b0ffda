// Package themes provides a fyne theme coloured after the active
// emulator palette.
package themes

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/thelolagemann/pixel8/internal/ppu/palette"
)

// Palette is a dark theme whose accents follow a palette.Palette.
type Palette struct {
	colors map[fyne.ThemeColorName]color.Color
}

var _ fyne.Theme = (*Palette)(nil)

// New returns a theme for p.
func New(p palette.Palette) *Palette {
	bg, fg := nrgba(p.Colors[0]), nrgba(p.Colors[1])
	return &Palette{
		colors: map[fyne.ThemeColorName]color.Color{
			theme.ColorNamePrimary:        fg,
			theme.ColorNameFocus:          fg,
			theme.ColorNameBackground:     bg,
			theme.ColorNameMenuBackground: bg,
			theme.ColorNameForeground:     fg,
		},
	}
}

func nrgba(c [3]uint8) color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
}

func (p *Palette) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := p.colors[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (p *Palette) Font(style fyne.TextStyle) fyne.Resource    { return theme.DefaultTheme().Font(style) }
func (p *Palette) Icon(name fyne.ThemeIconName) fyne.Resource { return theme.DefaultTheme().Icon(name) }
func (p *Palette) Size(name fyne.ThemeSizeName) float32       { return theme.DefaultTheme().Size(name) }
