package cpu

func init() {
	// 00EE - RET
	defineJump(0x00EE, "RET", layoutNone, func(c *CPU, _ Operands) error {
		addr, err := c.Pop()
		if err != nil {
			return err
		}
		c.PC = addr
		return nil
	})
	// 1nnn - JP addr
	defineJump(0x1000, "JP", layoutAddr, func(c *CPU, o Operands) error {
		c.PC = o.Addr
		return nil
	})
	// 2nnn - CALL addr
	defineJump(0x2000, "CALL", layoutAddr, func(c *CPU, o Operands) error {
		if err := c.Push(c.PC); err != nil {
			return err
		}
		c.PC = o.Addr
		return nil
	})
	// 3xkk - SE Vx, byte
	DefineInstruction(0x3000, "SE", layoutXByte, func(c *CPU, o Operands) error {
		c.skipIf(c.V[o.X] == o.Byte)
		return nil
	})
	// 4xkk - SNE Vx, byte
	DefineInstruction(0x4000, "SNE", layoutXByte, func(c *CPU, o Operands) error {
		c.skipIf(c.V[o.X] != o.Byte)
		return nil
	})
	// 5xy0 - SE Vx, Vy
	DefineInstruction(0x5000, "SE", layoutXY, func(c *CPU, o Operands) error {
		c.skipIf(c.V[o.X] == c.V[o.Y])
		return nil
	})
	// 9xy0 - SNE Vx, Vy
	DefineInstruction(0x9000, "SNE", layoutXY, func(c *CPU, o Operands) error {
		c.skipIf(c.V[o.X] != c.V[o.Y])
		return nil
	})
}
