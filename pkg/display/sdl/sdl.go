//go:build !test

// Package sdl provides a display driver using SDL2. Each pixel of
// the framebuffer is drawn as a filled rectangle, scaled to the
// window.
package sdl

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/thelolagemann/pixel8/internal/ppu/palette"
	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/display"
	"github.com/thelolagemann/pixel8/pkg/display/event"
	"github.com/thelolagemann/pixel8/pkg/log"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// SDL requires its calls to be made from the main thread
	runtime.LockOSThread()

	driver := &sdlDriver{log: log.New()}
	display.Install("sdl", driver, []display.DriverOption{
		{
			Name:        "width",
			Default:     640,
			Value:       &driver.width,
			Type:        "int",
			Description: "The width of the window",
		},
		{
			Name:        "height",
			Default:     480,
			Value:       &driver.height,
			Type:        "int",
			Description: "The height of the window",
		},
		{
			Name:        "vsync",
			Default:     true,
			Value:       &driver.vsync,
			Type:        "bool",
			Description: "Synchronise presentation with the display refresh",
		},
	})
}

var keyActions = map[sdl.Keycode]display.Action{
	sdl.K_ESCAPE: display.ActionQuit,
	sdl.K_p:      display.ActionTogglePause,
	sdl.K_n:      display.ActionStep,
	sdl.K_r:      display.ActionReset,
	sdl.K_c:      display.ActionCyclePalette,
	sdl.K_F5:     display.ActionSaveState,
	sdl.K_F9:     display.ActionLoadState,
	sdl.K_F12:    display.ActionScreenshot,
	sdl.K_F6:     display.ActionCopyScreenshot,
}

// sdlDriver implements a display driver using an SDL renderer.
type sdlDriver struct {
	width, height int
	vsync         bool

	emu display.Emulator
	log log.Logger

	window   *sdl.Window
	renderer *sdl.Renderer

	background [3]uint8
	lastFrame  []byte
	title      string
	sounding   bool
}

func (s *sdlDriver) Initialize(emu display.Emulator) {
	s.emu = emu
	s.background = palette.Palettes[palette.Current].Background()
}

// Start starts the display driver.
func (s *sdlDriver) Start(frames <-chan []byte, events <-chan event.Event) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl: initialising: %w", err)
	}

	window, err := sdl.CreateWindow("pixel8", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, int32(s.width), int32(s.height), sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return fmt.Errorf("sdl: creating window: %w", err)
	}
	s.window = window

	flags := uint32(sdl.RENDERER_ACCELERATED)
	if s.vsync {
		flags |= sdl.RENDERER_PRESENTVSYNC
	}
	renderer, err := sdl.CreateRenderer(window, -1, flags)
	if err != nil {
		return fmt.Errorf("sdl: creating renderer: %w", err)
	}
	s.renderer = renderer
	s.updateScale()

	pollTicker := time.NewTicker(time.Millisecond * 10) // to handle input when paused
	defer pollTicker.Stop()

	for {
		select {
		case f, ok := <-frames:
			if !ok {
				return nil
			}
			s.lastFrame = f
			if err := s.draw(f); err != nil {
				return err
			}
		case e, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.handleEvent(e)
		case <-pollTicker.C:
			if quit := s.poll(); quit {
				return nil
			}
		}
	}
}

// poll handles pending window events, returning true once the
// window has been closed.
func (s *sdlDriver) poll() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch e := e.(type) {
		case *sdl.QuitEvent:
			s.emu.SendCommand(display.Close)
			return true
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				s.updateScale()
				if s.lastFrame != nil {
					s.draw(s.lastFrame)
				}
			}
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			action, ok := keyActions[e.Keysym.Sym]
			if !ok {
				continue
			}
			if err := display.Perform(s.emu, action, s.lastFrame); err != nil {
				s.log.Errorf("sdl: %v", err)
			}
			if action == display.ActionQuit {
				return true
			}
		}
	}
	return false
}

func (s *sdlDriver) handleEvent(e event.Event) {
	switch e.Type {
	case event.Title:
		s.title = e.Data.(string)
		s.setTitle()
	case event.Palette:
		s.background = e.Data.(palette.Palette).Background()
	case event.Sound:
		s.sounding = e.Data.(bool)
		s.setTitle()
	case event.Halted:
		s.title = fmt.Sprintf("halted: %v", e.Data.(error))
		s.setTitle()
	}
}

func (s *sdlDriver) setTitle() {
	title := "pixel8"
	if s.title != "" {
		title += " | " + s.title
	}
	if s.sounding {
		title += " | BEEP"
	}
	s.window.SetTitle(title)
}

// updateScale scales the renderer so that one logical unit is one
// framebuffer pixel.
func (s *sdlDriver) updateScale() {
	w, h := s.window.GetSize()
	if err := s.renderer.SetScale(float32(w)/types.ScreenWidth, float32(h)/types.ScreenHeight); err != nil {
		s.log.Errorf("sdl: scaling renderer: %v", err)
	}
}

// draw clears the window to the background colour, and fills a
// rectangle for every pixel that differs from it.
func (s *sdlDriver) draw(frame []byte) error {
	bg := s.background
	if err := s.renderer.SetDrawColor(bg[0], bg[1], bg[2], 0xFF); err != nil {
		return err
	}
	if err := s.renderer.Clear(); err != nil {
		return err
	}

	current := bg
	rect := sdl.Rect{W: 1, H: 1}
	for y := 0; y < types.ScreenHeight; y++ {
		for x := 0; x < types.ScreenWidth; x++ {
			i := (y*types.ScreenWidth + x) * 3
			c := [3]uint8{frame[i], frame[i+1], frame[i+2]}
			if c == bg {
				continue
			}
			if c != current {
				if err := s.renderer.SetDrawColor(c[0], c[1], c[2], 0xFF); err != nil {
					return err
				}
				current = c
			}
			rect.X, rect.Y = int32(x), int32(y)
			if err := s.renderer.FillRect(&rect); err != nil {
				return err
			}
		}
	}

	s.renderer.Present()
	return nil
}

// Stop stops the display driver.
func (s *sdlDriver) Stop() error {
	var errs []error
	if s.renderer != nil {
		errs = append(errs, s.renderer.Destroy())
	}
	if s.window != nil {
		errs = append(errs, s.window.Destroy())
	}
	sdl.Quit()
	return errors.Join(errs...)
}
