package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/thelolagemann/pixel8/internal/chip8"
	"github.com/thelolagemann/pixel8/internal/cpu"
	"github.com/thelolagemann/pixel8/internal/ppu/palette"
	"github.com/thelolagemann/pixel8/internal/rom"
	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/display"
	"github.com/thelolagemann/pixel8/pkg/display/event"
	_ "github.com/thelolagemann/pixel8/pkg/display/fyne"
	_ "github.com/thelolagemann/pixel8/pkg/display/glfw"
	_ "github.com/thelolagemann/pixel8/pkg/display/sdl"
	_ "github.com/thelolagemann/pixel8/pkg/display/terminal"
	_ "github.com/thelolagemann/pixel8/pkg/display/web"
	"github.com/thelolagemann/pixel8/pkg/emulator"
	"github.com/thelolagemann/pixel8/pkg/log"
	"github.com/thelolagemann/pixel8/pkg/profile"
	"github.com/thelolagemann/pixel8/pkg/utils"
)

var (
	_ display.Emulator = &chip8.Chip8{}
)

func main() {
	var logger = log.New()

	if len(display.InstalledDrivers) == 0 {
		logger.Fatal("No display drivers installed. Please compile with at least one display driver")
	}

	romFile := flag.String("rom", "", "The rom file to load")
	state := flag.String("state", "", "The state file to load")
	displayDriver := flag.String("driver", "auto", "The display driver to use. Can be auto, fyne, glfw, sdl, terminal or web")
	speed := flag.Float64("speed", chip8.DefaultSpeed, "The number of instructions to execute per second")
	debug := flag.Bool("debug", false, "Log every executed instruction")
	stack := flag.Int("stack", types.DefaultStackSize, "The number of return addresses the call stack holds")
	profilePath := flag.String("profile", "", "Write an instruction histogram to this PNG file on exit")
	paletteName := flag.String("palette", palette.Palettes[palette.Current].Name, "The colour palette to start with")
	shiftQuirk := flag.Bool("quirk-shift-vx", false, "Shift Vx in place, ignoring Vy")
	incrementQuirk := flag.Bool("quirk-increment-i", false, "Leave I past the last register after Fx55 and Fx65")
	pprof := flag.String("pprof", "", "Serve pprof on this address, e.g. localhost:6060")

	display.RegisterFlags()
	flag.Parse()

	if *pprof != "" {
		go func() {
			if err := http.ListenAndServe(*pprof, nil); err != nil {
				logger.Errorf("pprof: %v", err)
			}
		}()
	}

	if *romFile == "" {
		f, err := utils.AskForFile("Select a ROM", ".")
		if err != nil {
			logger.Fatal(fmt.Sprintf("no rom given: %v", err))
		}
		*romFile = f
	}

	data, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal(err.Error())
	}
	r, err := rom.New(*romFile, data)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading %s: %v", *romFile, err))
	}
	logger.Infof("loaded %s", r)

	idx := palette.ByName(*paletteName)
	if idx == -1 {
		logger.Fatal(fmt.Sprintf("unknown palette %q", *paletteName))
	}
	palette.Current = idx

	opts := []chip8.Opt{
		chip8.Speed(*speed),
		chip8.WithStackSize(*stack),
		chip8.WithPalette(idx),
		chip8.WithQuirks(cpu.Quirks{
			ShiftUsesVX:           *shiftQuirk,
			IncrementIOnLoadStore: *incrementQuirk,
		}),
	}
	if *debug {
		opts = append(opts, chip8.WithLogger(logger), chip8.Debug())
	}

	var profiler *profile.Profiler
	if *profilePath != "" {
		profiler = profile.New()
		opts = append(opts, chip8.WithProfiler(profiler))
	}

	display.StatePath = emulator.StatePath(*romFile)
	if *state != "" {
		b, err := emulator.ReadState(*state)
		if err != nil {
			logger.Fatal(err.Error())
		}
		opts = append(opts, chip8.WithState(b))
		display.StatePath = *state
	}

	c, err := chip8.New(r, opts...)
	if err != nil {
		logger.Fatal(err.Error())
	}

	driver := display.GetDriver(*displayDriver)

	// check to make sure the driver is valid
	if driver == nil {
		logger.Fatal("invalid display driver")
	}

	// attach the machine to the driver
	driver.Initialize(c)

	// create framebuffer
	fb := make(chan []byte, 60)
	events := make(chan event.Event, 60)

	// start the machine in a goroutine
	halted := make(chan error, 1)
	go func() { halted <- c.Start(fb, events) }()

	if err := driver.Start(fb, events); err != nil {
		logger.Errorf("display: %v", err)
	}
	c.SendCommand(display.Close)
	if err := driver.Stop(); err != nil {
		logger.Errorf("display: stopping: %v", err)
	}

	haltErr := <-halted
	if profiler != nil {
		if err := profiler.Save(*profilePath); err != nil {
			logger.Errorf("profile: %v", err)
		} else {
			logger.Infof("wrote instruction profile to %s", *profilePath)
		}
	}

	if haltErr != nil {
		logger.Fatal(haltErr.Error())
	}
}
