package cpu

func init() {
	// 7xkk - ADD Vx, byte
	DefineInstruction(0x7000, "ADD", layoutXByte, func(c *CPU, o Operands) error {
		c.V[o.X] += o.Byte
		return nil
	})
	// 8xy4 - ADD Vx, Vy
	DefineInstruction(0x8004, "ADD", layoutXY, func(c *CPU, o Operands) error {
		sum := uint16(c.V[o.X]) + uint16(c.V[o.Y])
		var carry uint8
		if sum > 0xFF {
			carry = 1
		}
		c.setWithFlag(o.X, uint8(sum), carry)
		return nil
	})
	// 8xy5 - SUB Vx, Vy
	DefineInstruction(0x8005, "SUB", layoutXY, func(c *CPU, o Operands) error {
		vx, vy := c.V[o.X], c.V[o.Y]
		c.setWithFlag(o.X, vx-vy, noBorrow(vx, vy))
		return nil
	})
	// 8xy7 - SUBN Vx, Vy
	DefineInstruction(0x8007, "SUBN", layoutXY, func(c *CPU, o Operands) error {
		vx, vy := c.V[o.X], c.V[o.Y]
		c.setWithFlag(o.X, vy-vx, noBorrow(vy, vx))
		return nil
	})
	// Fx1E - ADD I, Vx
	DefineInstruction(0xF01E, "ADD", layoutIX, func(c *CPU, o Operands) error {
		c.I += uint16(c.V[o.X])
		return nil
	})
}

// noBorrow returns 1 if a-b does not underflow.
func noBorrow(a, b uint8) uint8 {
	if a >= b {
		return 1
	}
	return 0
}
