//go:build !test

// Package glfw provides a barebones display driver using GLFW and
// OpenGL. Frames are uploaded to a texture and blitted to the
// window, keeping the 2:1 aspect ratio of the screen.
package glfw

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/display"
	"github.com/thelolagemann/pixel8/pkg/display/event"
	"github.com/thelolagemann/pixel8/pkg/log"
)

const (
	aspectRatio = float32(types.ScreenWidth) / float32(types.ScreenHeight)
)

func init() {
	// GLFW: this is needed to arrange for main to run on main thread
	runtime.LockOSThread()

	// register display driver
	driver := &glfwDriver{log: log.New()}
	display.Install("glfw", driver, []display.DriverOption{
		{
			Name:        "fullscreen",
			Default:     false,
			Value:       &driver.fullscreen,
			Type:        "bool",
			Description: "Run in fullscreen mode",
		},
		{
			Name:        "scale",
			Default:     10.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
		{
			Name:        "maintain-aspect-ratio",
			Default:     false,
			Value:       &driver.maintainAspectRatio,
			Type:        "bool",
			Description: "Force the window to maintain the correct aspect ratio",
		},
	})
}

var keyActions = map[glfw.Key]display.Action{
	glfw.KeyEscape: display.ActionQuit,
	glfw.KeyPause:  display.ActionTogglePause,
	glfw.KeyP:      display.ActionTogglePause,
	glfw.KeyN:      display.ActionStep,
	glfw.KeyR:      display.ActionReset,
	glfw.KeyC:      display.ActionCyclePalette,
	glfw.KeyF5:     display.ActionSaveState,
	glfw.KeyF9:     display.ActionLoadState,
	glfw.KeyF12:    display.ActionScreenshot,
	glfw.KeyF6:     display.ActionCopyScreenshot,
}

// glfwDriver implements a barebones display driver using GLFW
// and the OpenGL API.
type glfwDriver struct {
	fullscreen          bool
	scale               float64
	maintainAspectRatio bool

	emu display.Emulator
	log log.Logger
	mon *glfw.Monitor

	lastFrame []byte

	windowSettings struct {
		width      int
		height     int
		xPos, yPos int
	}
}

func (g *glfwDriver) Initialize(e display.Emulator) {
	g.emu = e
}

// Start starts the display driver.
func (g *glfwDriver) Start(frames <-chan []byte, evts <-chan event.Event) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: initialising: %w", err)
	}
	g.mon = glfw.GetPrimaryMonitor()

	// create window
	window, err := glfw.CreateWindow(int(types.ScreenWidth*g.scale), int(types.ScreenHeight*g.scale), "pixel8", nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: creating window: %w", err)
	}

	if g.maintainAspectRatio {
		window.SetAspectRatio(types.ScreenWidth, types.ScreenHeight)
	}
	if g.fullscreen {
		g.enterFullscreen(window)
	}

	window.MakeContextCurrent()

	// OpenGL needs a current context to resolve its functions
	if err := gl.Init(); err != nil {
		return fmt.Errorf("glfw: initialising OpenGL: %w", err)
	}

	// initialize window settings
	g.windowSettings.width, g.windowSettings.height = window.GetSize()
	g.windowSettings.xPos, g.windowSettings.yPos = window.GetPos()

	var texture uint32
	{
		gl.GenTextures(1, &texture)

		gl.BindTexture(gl.TEXTURE_2D, texture)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		// rows of the frame are tightly packed RGB
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

		gl.BindImageTexture(0, texture, 0, false, 0, gl.WRITE_ONLY, gl.RGB8)
	}

	// setup event handling
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}

		if key == glfw.KeyF11 {
			if g.fullscreen {
				window.SetMonitor(nil, g.windowSettings.xPos, g.windowSettings.yPos, g.windowSettings.width, g.windowSettings.height, 60)
			} else {
				// store the current window settings
				g.windowSettings.width, g.windowSettings.height = window.GetSize()
				g.windowSettings.xPos, g.windowSettings.yPos = window.GetPos()
				g.enterFullscreen(window)
			}

			g.fullscreen = !g.fullscreen
			return
		}

		if a, ok := keyActions[key]; ok {
			if err := display.Perform(g.emu, a, g.lastFrame); err != nil {
				g.log.Errorf("glfw: %v", err)
			}
		}
	})
	window.SetCloseCallback(func(_ *glfw.Window) {
		g.emu.SendCommand(display.Close)
	})

	var fb uint32
	{
		gl.GenFramebuffers(1, &fb)
		gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)

		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb)
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	}

	// handle resizing
	targetWidth := int32(types.ScreenWidth * g.scale)
	targetHeight := int32(types.ScreenHeight * g.scale)
	var offsetX, offsetY int32
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
		if float32(w)/float32(h) > aspectRatio {
			targetWidth = int32(float32(h) * aspectRatio)
			targetHeight = int32(h)
		} else {
			targetWidth = int32(w)
			targetHeight = int32(float32(w) / aspectRatio)
		}

		offsetX = (int32(w) - targetWidth) / 2
		offsetY = (int32(h) - targetHeight) / 2
	})

	pollTicker := time.NewTicker(time.Millisecond * 10) // to handle input when paused
	defer pollTicker.Stop()

	// draw loop
	for {
		select {
		case f, ok := <-frames:
			if !ok {
				return nil
			}
			g.lastFrame = f
			gl.Clear(gl.COLOR_BUFFER_BIT)

			gl.BindTexture(gl.TEXTURE_2D, texture)
			gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, types.ScreenWidth, types.ScreenHeight, 0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(f))

			// frames are top row first, so flip vertically while blitting
			gl.BlitFramebuffer(0, 0, types.ScreenWidth, types.ScreenHeight, offsetX, offsetY+targetHeight, offsetX+targetWidth, offsetY, gl.COLOR_BUFFER_BIT, gl.NEAREST)

			window.SwapBuffers()
		case e, ok := <-evts:
			if !ok {
				evts = nil
				continue
			}
			switch e.Type {
			case event.Title:
				window.SetTitle(e.Data.(string))
			case event.Halted:
				window.SetTitle(fmt.Sprintf("pixel8 (halted: %v)", e.Data))
			}
		case <-pollTicker.C:
			glfw.PollEvents()
		}
	}
}

// Stop stops the display driver.
func (g *glfwDriver) Stop() error {
	glfw.Terminate()

	return nil
}

func (g *glfwDriver) enterFullscreen(window *glfw.Window) {
	if best := getBestMode(g.mon); best != nil {
		window.SetMonitor(g.mon, 0, 0, best.Width, best.Height, best.RefreshRate)
	}
}

// getBestMode returns the best video mode for the monitor by
// choosing the highest resolution that is the closest match to the
// native aspect ratio of the monitor. This should provide a
// reasonable default for most monitors.
func getBestMode(mon *glfw.Monitor) *glfw.VidMode {
	if mon == nil {
		return nil
	}
	sizeX, sizeY := mon.GetPhysicalSize()
	if sizeY == 0 {
		return mon.GetVideoMode()
	}
	monAspectRatio := float32(sizeX) / float32(sizeY)
	closestMatch := float32(-1)

	var best *glfw.VidMode
	for _, vm := range mon.GetVideoModes() {
		// skip modes that aren't 60FPS
		if vm.RefreshRate != 60 {
			continue
		}

		diff := float32(vm.Width)/float32(vm.Height) - monAspectRatio
		if diff < 0 {
			diff = -diff
		}
		if closestMatch >= 0 && diff > closestMatch {
			continue
		}

		closestMatch = diff
		best = vm
	}

	if best == nil {
		return mon.GetVideoMode()
	}
	return best
}
