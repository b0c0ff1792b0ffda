package terminal

import (
	"bytes"
	"strconv"

	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/display"
)

const (
	upperHalfBlock = "▀"

	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	clearLine   = "\x1b[K"
	resetStyle  = "\x1b[0m"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Columns and Rows are the size of the terminal the screen needs,
// including the status line.
const (
	Columns = types.ScreenWidth
	Rows    = types.ScreenHeight/2 + 1
)

var keyActions = map[byte]display.Action{
	'q':  display.ActionQuit,
	0x03: display.ActionQuit, // ctrl+c
	'p':  display.ActionTogglePause,
	' ':  display.ActionTogglePause,
	'n':  display.ActionStep,
	'r':  display.ActionReset,
	'c':  display.ActionCyclePalette,
	's':  display.ActionSaveState,
	'l':  display.ActionLoadState,
	'x':  display.ActionCopyScreenshot,
}

// render draws an RGB frame as half blocks, two rows of pixels per
// line of text, followed by a status line. The foreground colour is
// the upper pixel and the background colour the lower.
func render(frame []byte, status string) []byte {
	var b bytes.Buffer
	b.Grow(Columns * Rows * 24)
	b.WriteString(cursorHome)

	var fg, bg [3]byte
	for y := 0; y < types.ScreenHeight; y += 2 {
		// colours are re-emitted at the start of each line
		first := true
		for x := 0; x < types.ScreenWidth; x++ {
			top := pixel(frame, x, y)
			bottom := pixel(frame, x, y+1)
			if first || top != fg {
				writeColour(&b, "38", top)
				fg = top
			}
			if first || bottom != bg {
				writeColour(&b, "48", bottom)
				bg = bottom
			}
			first = false
			b.WriteString(upperHalfBlock)
		}
		b.WriteString(resetStyle)
		b.WriteString("\r\n")
	}

	if len(status) > Columns {
		status = status[:Columns]
	}
	b.WriteString(status)
	b.WriteString(clearLine)
	return b.Bytes()
}

func pixel(frame []byte, x, y int) [3]byte {
	i := (y*types.ScreenWidth + x) * 3
	if i+2 >= len(frame) {
		return [3]byte{}
	}
	return [3]byte{frame[i], frame[i+1], frame[i+2]}
}

// writeColour writes a 24-bit SGR colour sequence, 38 selecting the
// foreground and 48 the background.
func writeColour(b *bytes.Buffer, layer string, c [3]byte) {
	b.WriteString("\x1b[")
	b.WriteString(layer)
	b.WriteString(";2;")
	b.WriteString(strconv.Itoa(int(c[0])))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(c[1])))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(c[2])))
	b.WriteByte('m')
}
