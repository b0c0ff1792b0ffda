//go:build !test

// Package fyne provides a display driver using the fyne toolkit,
// with menus for the host controls and optional debug views.
package fyne

import (
	"fmt"
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/thelolagemann/pixel8/internal/ppu/palette"
	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/display"
	"github.com/thelolagemann/pixel8/pkg/display/event"
	"github.com/thelolagemann/pixel8/pkg/display/fyne/themes"
	"github.com/thelolagemann/pixel8/pkg/display/fyne/views"
	"github.com/thelolagemann/pixel8/pkg/emulator"
	"github.com/thelolagemann/pixel8/pkg/utils"
)

func init() {
	driver := &fyneDriver{}
	display.Install("fyne", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     10,
			Value:       &driver.scale,
			Type:        "int",
			Description: "Scale the window by this factor",
		},
	})
}

var keyActions = map[fyne.KeyName]display.Action{
	fyne.KeyEscape: display.ActionQuit,
	fyne.KeyP:      display.ActionTogglePause,
	fyne.KeyN:      display.ActionStep,
	fyne.KeyR:      display.ActionReset,
	fyne.KeyC:      display.ActionCyclePalette,
	fyne.KeyF5:     display.ActionSaveState,
	fyne.KeyF9:     display.ActionLoadState,
	fyne.KeyF12:    display.ActionScreenshot,
	fyne.KeyF6:     display.ActionCopyScreenshot,
}

var speeds = []uint16{350, 700, 1400, 2800}

type fyneWindow struct {
	fyne.Window
	view   View
	events chan event.Event
}

type fyneDriver struct {
	scale int

	emu    display.Emulator
	app    fyne.App
	window fyne.Window

	mu        sync.Mutex
	image     *image.RGBA
	raster    *canvas.Raster
	lastFrame []byte
	views     []*fyneWindow
	pause     *fyne.MenuItem
}

func (f *fyneDriver) Initialize(emu display.Emulator) {
	f.emu = emu
}

// Start starts the display driver. It blocks until the main window
// is closed.
func (f *fyneDriver) Start(frames <-chan []byte, events <-chan event.Event) error {
	f.app = app.New()
	f.app.Settings().SetTheme(themes.New(palette.Palettes[palette.Current]))

	f.window = f.app.NewWindow("pixel8")
	f.window.SetMaster()
	f.window.SetPadded(false)

	// create the image to draw to
	f.image = image.NewRGBA(image.Rect(0, 0, types.ScreenWidth, types.ScreenHeight))
	f.raster = canvas.NewRasterFromImage(f.image)
	f.raster.ScaleMode = canvas.ImageScalePixels
	f.raster.SetMinSize(fyne.NewSize(types.ScreenWidth, types.ScreenHeight))

	f.window.SetContent(f.raster)
	f.window.SetMainMenu(f.mainMenu())
	f.window.Resize(fyne.NewSize(float32(types.ScreenWidth*f.scale), float32(types.ScreenHeight*f.scale)))

	if desk, ok := f.window.Canvas().(desktop.Canvas); ok {
		desk.SetOnKeyDown(func(e *fyne.KeyEvent) {
			if action, ok := keyActions[e.Name]; ok {
				f.perform(action)
			}
		})
	}
	f.window.SetCloseIntercept(func() {
		f.emu.SendCommand(display.Close)
		f.window.Close()
	})

	go f.drawFrames(frames)
	go f.dispatch(events)

	f.window.ShowAndRun()
	return nil
}

// drawFrames copies each frame into the raster image, quitting the
// application once the emulator stops sending.
func (f *fyneDriver) drawFrames(frames <-chan []byte) {
	for frame := range frames {
		f.mu.Lock()
		f.lastFrame = frame
		copy(f.image.Pix, utils.FrameToImage(frame, types.ScreenWidth, types.ScreenHeight).Pix)
		f.mu.Unlock()
		f.raster.Refresh()
	}
	f.app.Quit()
}

// dispatch handles the events meant for the main window, and
// forwards the rest to any open views.
func (f *fyneDriver) dispatch(events <-chan event.Event) {
	for e := range events {
		switch e.Type {
		case event.Title:
			f.window.SetTitle("pixel8 | " + e.Data.(string))
		case event.Palette:
			f.app.Settings().SetTheme(themes.New(e.Data.(palette.Palette)))
		case event.Halted:
			dialog.ShowError(fmt.Errorf("emulation halted: %w", e.Data.(error)), f.window)
		}

		f.mu.Lock()
		for _, w := range f.views {
			select {
			case w.events <- e:
			default:
			}
		}
		f.mu.Unlock()
	}
}

func (f *fyneDriver) perform(action display.Action) {
	f.mu.Lock()
	frame := f.lastFrame
	f.mu.Unlock()

	if err := display.Perform(f.emu, action, frame); err != nil {
		dialog.ShowError(err, f.window)
	}
	if action == display.ActionQuit {
		f.window.Close()
	}
	if f.pause != nil {
		f.pause.Checked = f.emu.Status() == emulator.Paused
	}
}

func (f *fyneDriver) openROM() {
	path, err := utils.AskForFile("Open ROM", ".")
	if err != nil {
		return // user cancelled
	}
	rom, err := utils.LoadFile(path)
	if err != nil {
		dialog.ShowError(err, f.window)
		return
	}
	if resp := f.emu.SendCommand(emulator.CommandPacket{Command: emulator.CommandLoadROM, Data: rom}); resp.Error != nil {
		dialog.ShowError(resp.Error, f.window)
		return
	}
	display.StatePath = emulator.StatePath(path)
}

func (f *fyneDriver) mainMenu() *fyne.MainMenu {
	action := func(a display.Action) func() {
		return func() { f.perform(a) }
	}

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open ROM", f.openROM),
		fyne.NewMenuItemSeparator(),
		NewCustomizedMenuItem("Save State", action(display.ActionSaveState), WithShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyF5})),
		NewCustomizedMenuItem("Load State", action(display.ActionLoadState), WithShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyF9})),
	)

	f.pause = NewCustomizedMenuItem("Pause", nil, Checked(false, func(bool) {
		display.TogglePause(f.emu)
	}))
	speed := fyne.NewMenuItem("Speed", nil)
	speed.ChildMenu = fyne.NewMenu("")
	for _, ips := range speeds {
		ips := ips
		speed.ChildMenu.Items = append(speed.ChildMenu.Items, fyne.NewMenuItem(fmt.Sprintf("%d IPS", ips), func() {
			f.emu.SendCommand(emulator.SetSpeed(ips))
		}))
	}
	emuMenu := fyne.NewMenu("Emulation",
		f.pause,
		NewCustomizedMenuItem("Step", action(display.ActionStep), WithShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyN})),
		NewCustomizedMenuItem("Reset", action(display.ActionReset), WithShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR})),
		fyne.NewMenuItemSeparator(),
		speed,
	)

	videoMenu := fyne.NewMenu("Video",
		NewCustomizedMenuItem("Cycle Palette", action(display.ActionCyclePalette), WithShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyC})),
		fyne.NewMenuItemSeparator(),
		NewCustomizedMenuItem("Take Screenshot", action(display.ActionScreenshot), WithShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyF12})),
		NewCustomizedMenuItem("Copy Screenshot", action(display.ActionCopyScreenshot), WithShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyF6})),
	)

	debugMenu := fyne.NewMenu("Debug",
		fyne.NewMenuItem("Performance", func() {
			f.openWindowIfNotOpen(&views.Performance{})
		}),
	)

	return fyne.NewMainMenu(fileMenu, emuMenu, videoMenu, debugMenu)
}

func (f *fyneDriver) openWindowIfNotOpen(view View) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.views {
		if w.view.Title() == view.Title() {
			w.RequestFocus()
			return
		}
	}

	w := &fyneWindow{
		Window: f.app.NewWindow(view.Title()),
		view:   view,
		events: make(chan event.Event, 60),
	}
	w.SetOnClosed(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		// remove the window from the list of windows
		for i, win := range f.views {
			if win == w {
				f.views = append(f.views[:i], f.views[i+1:]...)
				break
			}
		}
		close(w.events)
	})
	f.views = append(f.views, w)

	if err := view.Run(w, w.events); err != nil {
		dialog.ShowError(err, f.window)
		return
	}
	w.Show()
}

// Stop stops the display driver.
func (f *fyneDriver) Stop() error {
	if f.app != nil {
		f.app.Quit()
	}
	return nil
}
