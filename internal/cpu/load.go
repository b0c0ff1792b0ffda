package cpu

func init() {
	// 6xkk - LD Vx, byte
	DefineInstruction(0x6000, "LD", layoutXByte, func(c *CPU, o Operands) error {
		c.V[o.X] = o.Byte
		return nil
	})
	// 8xy0 - LD Vx, Vy
	DefineInstruction(0x8000, "LD", layoutXY, func(c *CPU, o Operands) error {
		c.V[o.X] = c.V[o.Y]
		return nil
	})
	// Annn - LD I, addr
	DefineInstruction(0xA000, "LD", layoutIAddr, func(c *CPU, o Operands) error {
		c.I = o.Addr
		return nil
	})
	// Fx33 - LD B, Vx
	DefineInstruction(0xF033, "LD", layoutBCD, func(c *CPU, o Operands) error {
		if err := c.mem.CheckRange(c.I, 3); err != nil {
			return err
		}
		v := c.V[o.X]
		digits := [3]uint8{v / 100, v / 10 % 10, v % 10}
		for k, d := range digits {
			if err := c.mem.Write(c.I+uint16(k), d); err != nil {
				return err
			}
		}
		return nil
	})
	// Fx55 - LD [I], Vx
	DefineInstruction(0xF055, "LD", layoutStore, func(c *CPU, o Operands) error {
		n := int(o.X) + 1
		if err := c.mem.CheckRange(c.I, n); err != nil {
			return err
		}
		for k := 0; k < n; k++ {
			if err := c.mem.Write(c.I+uint16(k), c.V[k]); err != nil {
				return err
			}
		}
		if c.Quirks.IncrementIOnLoadStore {
			c.I += uint16(n)
		}
		return nil
	})
	// Fx65 - LD Vx, [I]
	DefineInstruction(0xF065, "LD", layoutLoad, func(c *CPU, o Operands) error {
		n := int(o.X) + 1
		values, err := c.mem.ReadBlock(c.I, n)
		if err != nil {
			return err
		}
		copy(c.V[:n], values)
		if c.Quirks.IncrementIOnLoadStore {
			c.I += uint16(n)
		}
		return nil
	})
}
