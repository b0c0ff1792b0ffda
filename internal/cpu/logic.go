package cpu

func init() {
	// 8xy1 - OR Vx, Vy
	DefineInstruction(0x8001, "OR", layoutXY, func(c *CPU, o Operands) error {
		c.V[o.X] |= c.V[o.Y]
		return nil
	})
	// 8xy2 - AND Vx, Vy
	DefineInstruction(0x8002, "AND", layoutXY, func(c *CPU, o Operands) error {
		c.V[o.X] &= c.V[o.Y]
		return nil
	})
	// 8xy3 - XOR Vx, Vy
	DefineInstruction(0x8003, "XOR", layoutXY, func(c *CPU, o Operands) error {
		c.V[o.X] ^= c.V[o.Y]
		return nil
	})
}
