package chip8

import (
	"github.com/thelolagemann/pixel8/internal/cpu"
	"github.com/thelolagemann/pixel8/internal/ppu/palette"
	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/log"
	"github.com/thelolagemann/pixel8/pkg/profile"
	"github.com/thelolagemann/pixel8/pkg/utils"
)

// Opt is a function that modifies a Chip8
// instance.
type Opt func(c *Chip8)

// Debug enables the instruction trace, logged at debug level.
func Debug() Opt {
	return func(c *Chip8) {
		c.CPU.Debug = true
	}
}

func WithLogger(log log.Logger) Opt {
	return func(c *Chip8) {
		c.Logger = log
	}
}

// Speed sets the number of instructions executed per second.
func Speed(ips float64) Opt {
	return func(c *Chip8) {
		c.speed = utils.Clamp(1, ips, 1_000_000)
	}
}

// WithStackSize sets the number of return addresses the call stack
// can hold. Sizes below types.DefaultStackSize are raised to it.
// Other registers, and return addresses that still fit, are kept.
func WithStackSize(n int) Opt {
	return func(c *Chip8) {
		n = utils.Clamp(types.DefaultStackSize, n, 0xFF)
		stack := make([]uint16, n)
		copy(stack, c.CPU.Stack)
		c.CPU.Stack = stack
		if int(c.CPU.SP) > n {
			c.CPU.SP = uint8(n)
		}
	}
}

func WithQuirks(q cpu.Quirks) Opt {
	return func(c *Chip8) {
		c.CPU.Quirks = q
	}
}

// WithPalette selects the palette frames are prepared with.
func WithPalette(index int) Opt {
	return func(c *Chip8) {
		if index >= 0 && index < len(palette.Palettes) {
			c.palette = index
		}
	}
}

// WithState restores a save state produced by Chip8.Save.
func WithState(b []byte) Opt {
	return func(c *Chip8) {
		if err := c.Load(b); err != nil {
			c.initErr = err
		}
	}
}

// WithProfiler counts every executed instruction in p.
func WithProfiler(p *profile.Profiler) Opt {
	return func(c *Chip8) {
		c.profiler = p
	}
}
