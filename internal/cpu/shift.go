package cpu

func init() {
	// 8xy6 - SHR Vx, Vy
	DefineInstruction(0x8006, "SHR", layoutXY, func(c *CPU, o Operands) error {
		v := c.shiftSource(o)
		c.setWithFlag(o.X, v>>1, v&0x01)
		return nil
	})
	// 8xyE - SHL Vx, Vy
	DefineInstruction(0x800E, "SHL", layoutXY, func(c *CPU, o Operands) error {
		v := c.shiftSource(o)
		c.setWithFlag(o.X, v<<1, v>>7)
		return nil
	})
}

// shiftSource returns the value a shift operates on, Vy unless the
// ShiftUsesVX quirk is enabled.
func (c *CPU) shiftSource(o Operands) uint8 {
	if c.Quirks.ShiftUsesVX {
		return c.V[o.X]
	}
	return c.V[o.Y]
}
