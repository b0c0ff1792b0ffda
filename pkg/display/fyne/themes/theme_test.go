package themes

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/pixel8/internal/ppu/palette"
)

func TestNew(t *testing.T) {
	th := New(palette.Palettes[palette.Amber])

	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0xB0, A: 0xFF}, th.Color(theme.ColorNamePrimary, theme.VariantDark))
	assert.Equal(t, color.NRGBA{R: 0x1A, G: 0x0F, A: 0xFF}, th.Color(theme.ColorNameBackground, theme.VariantDark))
	assert.Equal(t, theme.DefaultTheme().Color(theme.ColorNameError, theme.VariantDark), th.Color(theme.ColorNameError, theme.VariantDark))
}
