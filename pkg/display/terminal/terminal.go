// Package terminal provides a display driver that draws frames in
// the terminal using 24-bit colour half blocks. It needs a terminal
// of at least Columns by Rows characters.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/thelolagemann/pixel8/pkg/display"
	"github.com/thelolagemann/pixel8/pkg/display/event"
	"github.com/thelolagemann/pixel8/pkg/log"
	"golang.org/x/term"
)

func init() {
	display.Install("terminal", &terminalDriver{
		log: log.NewNullLogger(),
		in:  os.Stdin,
		out: os.Stdout,
	}, nil)
}

type terminalDriver struct {
	emu display.Emulator
	log log.Logger

	in  *os.File
	out io.Writer

	lastFrame []byte
	title     string
	status    string
}

func (t *terminalDriver) Initialize(emu display.Emulator) {
	t.emu = emu
}

// Start puts the terminal into raw mode and draws frames until the
// emulator closes its channels.
func (t *terminalDriver) Start(frames <-chan []byte, events <-chan event.Event) error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("terminal: stdin is not a terminal")
	}
	if w, h, err := term.GetSize(fd); err == nil && (w < Columns || h < Rows) {
		return fmt.Errorf("terminal: need %dx%d characters, have %dx%d", Columns, Rows, w, h)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("terminal: setting raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Fprint(t.out, resetStyle+showCursor+"\r\n")
	}()
	fmt.Fprint(t.out, hideCursor+clearScreen)

	// the read blocks until a key arrives, so the goroutine outlives
	// the driver if no key is pressed after the emulator closes
	keys := make(chan byte, 16)
	go func() {
		buf := make([]byte, 1)
		for {
			if _, err := t.in.Read(buf); err != nil {
				close(keys)
				return
			}
			keys <- buf[0]
		}
	}()

	for frames != nil || events != nil {
		select {
		case f, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			t.lastFrame = f
			t.draw()
		case e, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			t.handleEvent(e)
		case k, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if a, found := keyActions[k]; found {
				if err := display.Perform(t.emu, a, t.lastFrame); err != nil {
					t.status = err.Error()
					t.draw()
				}
			}
		}
	}

	return nil
}

func (t *terminalDriver) handleEvent(e event.Event) {
	switch e.Type {
	case event.Title:
		t.title, _ = e.Data.(string)
		t.status = ""
	case event.Halted:
		t.status = fmt.Sprintf("halted: %v", e.Data)
	case event.Sound:
		if on, _ := e.Data.(bool); on {
			t.status = "BEEP"
		} else if t.status == "BEEP" {
			t.status = ""
		}
	default:
		return
	}
	t.draw()
}

func (t *terminalDriver) draw() {
	if t.lastFrame == nil {
		return
	}
	status := t.title
	if t.status != "" {
		status += " | " + t.status
	}
	if _, err := t.out.Write(render(t.lastFrame, status)); err != nil {
		t.log.Errorf("terminal: %v", err)
	}
}

func (t *terminalDriver) Stop() error {
	return nil
}
