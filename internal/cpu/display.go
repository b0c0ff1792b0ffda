package cpu

import (
	"github.com/thelolagemann/pixel8/internal/types"
)

func init() {
	// 00E0 - CLS
	DefineInstruction(0x00E0, "CLS", layoutNone, func(c *CPU, _ Operands) error {
		c.fb.Clear()
		return nil
	})
	// Dxyn - DRW Vx, Vy, nibble
	DefineInstruction(0xD000, "DRW", layoutXYN, func(c *CPU, o Operands) error {
		sprite, err := c.mem.ReadBlock(c.I, int(o.N))
		if err != nil {
			return err
		}
		c.V[types.FlagRegister] = c.draw(int(c.V[o.X]), int(c.V[o.Y]), sprite)
		return nil
	})
}

// draw XORs sprite onto the framebuffer with its top left corner at
// (x, y), one byte per row, most significant bit leftmost. Pixels
// that fall off an edge wrap around to the opposite one. It returns
// 1 if any set pixel was turned off.
func (c *CPU) draw(x, y int, sprite []byte) uint8 {
	var collision uint8
	for row, b := range sprite {
		for bit := 0; bit < 8; bit++ {
			if b&(types.Bit7>>bit) == 0 {
				continue
			}
			if c.fb.XOR(y+row, x+bit) == 0 {
				collision = 1
			}
		}
	}
	return collision
}
