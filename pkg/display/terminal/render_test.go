package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/display"
)

func frameWith(set func(x, y int) bool) []byte {
	f := make([]byte, types.ScreenWidth*types.ScreenHeight*3)
	for y := 0; y < types.ScreenHeight; y++ {
		for x := 0; x < types.ScreenWidth; x++ {
			if set(x, y) {
				i := (y*types.ScreenWidth + x) * 3
				f[i], f[i+1], f[i+2] = 0xFF, 0xFF, 0xFF
			}
		}
	}
	return f
}

func TestRender(t *testing.T) {
	t.Run("blank", func(t *testing.T) {
		out := string(render(frameWith(func(x, y int) bool { return false }), "title"))

		assert.True(t, strings.HasPrefix(out, cursorHome))
		assert.Equal(t, types.ScreenWidth*types.ScreenHeight/2, strings.Count(out, upperHalfBlock))
		assert.Equal(t, types.ScreenHeight/2, strings.Count(out, "\r\n"))
		// one foreground and one background colour per line
		assert.Equal(t, types.ScreenHeight/2, strings.Count(out, "\x1b[38;2;0;0;0m"))
		assert.Equal(t, types.ScreenHeight/2, strings.Count(out, "\x1b[48;2;0;0;0m"))
		assert.True(t, strings.HasSuffix(out, "title"+clearLine))
	})
	t.Run("upper and lower pixels", func(t *testing.T) {
		// only the top row lit, so the first line is white over black
		out := string(render(frameWith(func(x, y int) bool { return y == 0 }), ""))
		lines := strings.Split(out, "\r\n")

		assert.Contains(t, lines[0], "\x1b[38;2;255;255;255m\x1b[48;2;0;0;0m"+upperHalfBlock)
		assert.NotContains(t, lines[1], "255")
	})
	t.Run("colour changes only", func(t *testing.T) {
		// alternating columns force a new foreground for every cell
		out := string(render(frameWith(func(x, y int) bool { return x%2 == 0 && y == 0 }), ""))
		first := strings.Split(out, "\r\n")[0]

		assert.Equal(t, types.ScreenWidth, strings.Count(first, "\x1b[38;2;"))
		assert.Equal(t, 1, strings.Count(first, "\x1b[48;2;"))
	})
	t.Run("status truncated", func(t *testing.T) {
		out := string(render(frameWith(func(x, y int) bool { return false }), strings.Repeat("a", Columns*2)))

		assert.True(t, strings.HasSuffix(out, strings.Repeat("a", Columns)+clearLine))
		assert.False(t, strings.Contains(out, strings.Repeat("a", Columns+1)))
	})
	t.Run("short frame", func(t *testing.T) {
		assert.NotPanics(t, func() { render(nil, "") })
	})
}

func TestKeyActions(t *testing.T) {
	assert.Equal(t, display.ActionQuit, keyActions['q'])
	assert.Equal(t, display.ActionQuit, keyActions[0x03])
	assert.Equal(t, display.ActionTogglePause, keyActions['p'])
	assert.Equal(t, display.ActionStep, keyActions['n'])

	_, ok := keyActions[0x1b]
	assert.False(t, ok, "escape starts key sequences and must not quit")
}
