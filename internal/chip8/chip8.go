// Package chip8 provides an emulation of the CHIP-8 virtual machine.
// It composes memory, the framebuffer and the CPU, and drives them
// from a single goroutine.
package chip8

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/thelolagemann/pixel8/internal/cpu"
	"github.com/thelolagemann/pixel8/internal/ppu"
	"github.com/thelolagemann/pixel8/internal/ppu/palette"
	"github.com/thelolagemann/pixel8/internal/ram"
	"github.com/thelolagemann/pixel8/internal/rom"
	"github.com/thelolagemann/pixel8/internal/timer"
	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/display/event"
	"github.com/thelolagemann/pixel8/pkg/emulator"
	"github.com/thelolagemann/pixel8/pkg/log"
	"github.com/thelolagemann/pixel8/pkg/profile"
)

const (
	// DefaultSpeed is the default number of instructions executed
	// per second.
	DefaultSpeed = 700
	// FrameRate is the number of frames sent to the display per
	// second.
	FrameRate = types.TimerFrequency
)

// Chip8 represents a CHIP-8 machine. It contains all the components
// of the machine and is the main entry point for the emulator.
type Chip8 struct {
	CPU         *cpu.CPU
	Memory      *ram.Memory
	Framebuffer *ppu.Framebuffer
	Timer       *timer.Controller

	ROM *rom.ROM

	log.Logger

	profiler *profile.Profiler
	palette  int
	speed    float64
	budget   float64 // fractional instructions carried between frames
	sounding bool

	instructions uint64

	commands chan command
	done     chan struct{}

	mu     sync.Mutex
	status emulator.Status

	initErr error
}

type command struct {
	packet   emulator.CommandPacket
	response chan emulator.ResponsePacket
}

// New returns a new Chip8 with r loaded at types.ProgramStart. r may
// be nil, in which case memory is left empty until LoadROM is called.
func New(r *rom.ROM, opts ...Opt) (*Chip8, error) {
	mem := ram.New()
	fb := ppu.New()
	c := &Chip8{
		CPU:         cpu.NewCPU(mem, fb, types.DefaultStackSize),
		Memory:      mem,
		Framebuffer: fb,
		Logger:      log.NewNullLogger(),
		palette:     palette.Current,
		speed:       DefaultSpeed,
		commands:    make(chan command),
		done:        make(chan struct{}),
	}
	c.Timer = timer.NewController(c.CPU)

	if r != nil {
		if err := c.LoadROM(r); err != nil {
			return nil, err
		}
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.initErr != nil {
		return nil, c.initErr
	}

	c.CPU.SetLogger(c.Logger)
	if c.profiler != nil {
		c.CPU.OnExecute(c.profiler.Record)
	}

	return c, nil
}

// LoadROM resets the machine and copies r into memory at
// types.ProgramStart.
func (c *Chip8) LoadROM(r *rom.ROM) error {
	c.reset()
	if err := c.Memory.WriteBlock(types.ProgramStart, r.Data); err != nil {
		return fmt.Errorf("loading %s: %w", r.Title(), err)
	}
	c.ROM = r
	c.Infof("loaded %s", r)
	return nil
}

// reset returns every component to its power on state. Memory is
// cleared, so the ROM must be reloaded.
func (c *Chip8) reset() {
	c.CPU.Reset()
	c.Memory.Reset()
	c.Framebuffer.Reset()
	c.Timer.Reset()
	c.budget = 0
}

// Reset resets the machine and reloads the current ROM.
func (c *Chip8) Reset() error {
	if c.ROM == nil {
		c.reset()
		return nil
	}
	return c.LoadROM(c.ROM)
}

// Step executes a single instruction. Unknown opcodes are reported
// by the CPU and otherwise ignored, any other error is returned.
func (c *Chip8) Step() error {
	err := c.CPU.Step()
	if err != nil && cpu.IsFatal(err) {
		return err
	}
	c.instructions++
	return nil
}

func (c *Chip8) instructionCount() int {
	return int(c.instructions)
}

// RunFrame executes the instructions due in one frame at the current
// speed.
func (c *Chip8) RunFrame() error {
	c.budget += c.Speed() / FrameRate
	for ; c.budget >= 1; c.budget-- {
		if err := c.Step(); err != nil {
			c.budget = 0
			return err
		}
	}
	return nil
}

// Frame returns the framebuffer as an RGB frame in the current
// palette.
func (c *Chip8) Frame() []byte {
	frame := make([]byte, ppu.FrameSize)
	c.Framebuffer.PrepareFrame(frame, palette.Palettes[c.palette])
	return frame
}

// Start starts the emulation loop, sending frames and events to a
// display driver. Frames are only sent when the framebuffer has
// changed, and dropped if the driver is not keeping up.
//
// Start returns nil once closed through CommandClose, or the error
// that halted the CPU. frames and events are closed on return.
func (c *Chip8) Start(frames chan<- []byte, events chan<- event.Event) error {
	defer close(c.done)
	defer close(frames)
	defer close(events)

	c.sendEvent(events, event.Palette, palette.Palettes[c.palette])
	if c.ROM != nil {
		c.sendEvent(events, event.Title, c.ROM.Title())
	}

	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	last := time.Now()
	second := last
	frameCount, executed := 0, c.instructionCount()

	for {
		select {
		case cmd := <-c.commands:
			resp := c.handleCommand(cmd.packet, events)
			cmd.response <- resp
			if cmd.packet.Command == emulator.CommandClose {
				c.setStatus(emulator.Halted)
				c.sendEvent(events, event.Quit, nil)
				return nil
			}
		case now := <-ticker.C:
			if c.Status() != emulator.Running {
				// paused, but palette changes and single steps
				// still need drawing
				last = now
				c.sendFrame(frames)
				continue
			}

			start := time.Now()
			if err := c.RunFrame(); err != nil {
				c.Errorf("halted: %v", err)
				c.setStatus(emulator.Errored)
				c.sendFrame(frames)
				c.sendEvent(events, event.Halted, err)
				if err := c.drain(events, err); err != nil {
					return err
				}
				last = time.Now()
				continue
			}
			c.Timer.Advance(now.Sub(last))
			last = now
			c.updateSound(events)

			c.sendFrame(frames)
			frameCount++

			if now.Sub(second) >= time.Second {
				c.sendEvent(events, event.FrameTime, time.Since(start))
				c.sendEvent(events, event.Title, c.title(frameCount, c.instructionCount()-executed))
				frameCount, executed, second = 0, c.instructionCount(), now
			}
		}
	}
}

// drain keeps answering commands after a fatal error, so that the
// machine can still be inspected or saved until closed. It returns
// nil once a reset or load succeeds, and the machine runs again.
func (c *Chip8) drain(events chan<- event.Event, halt error) error {
	for cmd := range c.commands {
		switch cmd.packet.Command {
		case emulator.CommandSaveState, emulator.CommandClose, emulator.CommandCyclePalette:
			cmd.response <- c.handleCommand(cmd.packet, events)
		case emulator.CommandReset, emulator.CommandLoadROM, emulator.CommandLoadState:
			resp := c.handleCommand(cmd.packet, events)
			cmd.response <- resp
			if resp.Error == nil {
				c.setStatus(emulator.Running)
				return nil
			}
		default:
			cmd.response <- emulator.ResponsePacket{Command: cmd.packet.Command, Error: halt}
		}
		if cmd.packet.Command == emulator.CommandClose {
			c.sendEvent(events, event.Quit, nil)
			return halt
		}
	}
	return halt
}

// SendCommand sends a command packet to the emulator, and waits for
// its response. Once the emulator has stopped, every command is
// answered with emulator.ErrClosed.
func (c *Chip8) SendCommand(packet emulator.CommandPacket) emulator.ResponsePacket {
	cmd := command{packet: packet, response: make(chan emulator.ResponsePacket, 1)}
	select {
	case c.commands <- cmd:
		return <-cmd.response
	case <-c.done:
		return emulator.ResponsePacket{Command: packet.Command, Error: emulator.ErrClosed}
	}
}

func (c *Chip8) handleCommand(p emulator.CommandPacket, events chan<- event.Event) emulator.ResponsePacket {
	resp := emulator.ResponsePacket{Command: p.Command}

	switch p.Command {
	case emulator.CommandPause:
		c.setStatus(emulator.Paused)
	case emulator.CommandResume:
		c.setStatus(emulator.Running)
	case emulator.CommandClose:
		// handled by the caller
	case emulator.CommandReset:
		resp.Error = c.Reset()
	case emulator.CommandLoadROM:
		r, err := rom.New("", p.Data)
		if err == nil {
			err = c.LoadROM(r)
		}
		resp.Error = err
	case emulator.CommandSaveState:
		resp.Data = c.Save()
	case emulator.CommandLoadState:
		resp.Error = c.Load(p.Data)
	case emulator.CommandSetSpeed:
		if len(p.Data) != 2 {
			resp.Error = fmt.Errorf("speed: expected 2 bytes, got %d", len(p.Data))
			break
		}
		c.SetSpeed(float64(uint16(p.Data[0])<<8 | uint16(p.Data[1])))
	case emulator.CommandStep:
		if c.Status() != emulator.Paused {
			resp.Error = errors.New("step: emulator is not paused")
			break
		}
		resp.Error = c.Step()
	case emulator.CommandCyclePalette:
		c.palette = palette.Next(c.palette)
		c.sendEvent(events, event.Palette, palette.Palettes[c.palette])
		c.Framebuffer.Invalidate()
	default:
		resp.Error = emulator.ErrUnknownCommand
	}

	if resp.Error != nil {
		c.Errorf("%s: %v", p.Command, resp.Error)
	}
	return resp
}

// Save returns a save state of the machine.
func (c *Chip8) Save() []byte {
	s := types.NewState()
	c.CPU.Registers.Save(s)
	c.Memory.Save(s)
	c.Framebuffer.Save(s)
	return s.Bytes()
}

// Load restores a save state produced by Save. The machine is left
// untouched if the state is invalid.
func (c *Chip8) Load(b []byte) error {
	s, err := types.StateFromBytes(b)
	if err != nil {
		return err
	}

	regs := cpu.NewRegisters(len(c.CPU.Stack))
	mem := ram.New()
	fb := ppu.New()
	regs.Load(s)
	mem.Load(s)
	fb.Load(s)
	if err := s.Err(); err != nil {
		return err
	}

	*c.CPU.Registers = *regs
	*c.Memory = *mem
	*c.Framebuffer = *fb
	c.Timer.Reset()
	return nil
}

// Speed returns the speed of the emulator in instructions per second.
func (c *Chip8) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// SetSpeed sets the number of instructions executed per second.
func (c *Chip8) SetSpeed(ips float64) {
	c.mu.Lock()
	c.speed = ips
	c.mu.Unlock()
}

// Status returns the status of the emulator.
func (c *Chip8) Status() emulator.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Chip8) setStatus(s emulator.Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// Profiler returns the attached profiler, or nil.
func (c *Chip8) Profiler() *profile.Profiler {
	return c.profiler
}

func (c *Chip8) sendFrame(frames chan<- []byte) {
	if !c.Framebuffer.Dirty() {
		return
	}
	// a dropped frame stays dirty, and is retried next tick
	select {
	case frames <- c.Frame():
		c.Framebuffer.ClearDirty()
	default:
	}
}

func (c *Chip8) sendEvent(events chan<- event.Event, t event.Type, data interface{}) {
	select {
	case events <- event.Event{Type: t, Data: data}:
	default:
	}
}

// updateSound notifies the driver when the sound timer starts or
// stops counting.
func (c *Chip8) updateSound(events chan<- event.Event) {
	sounding := c.CPU.SoundTimer > 0
	if sounding != c.sounding {
		c.sounding = sounding
		c.sendEvent(events, event.Sound, sounding)
	}
}

func (c *Chip8) title(fps, ips int) string {
	name := "pixel8"
	if c.ROM != nil {
		name = c.ROM.Title()
	}
	return fmt.Sprintf("%s | FPS: %d | IPS: %d", name, fps, ips)
}
