package palette

const (
	White       = 0xFFFFFF
	Black       = 0x000000
	DarkGreen   = 0x0F380F
	Phosphor    = 0x9BBC0F
	AmberGlow   = 0xFFB000
	BurntUmber  = 0x1A0F00
	Conditioner = 0xFFFFCE
	Ming        = 0x42737B
)

// RGB splits a 0xRRGGBB colour into its components.
func RGB(hex uint32) [3]uint8 {
	return [3]uint8{uint8(hex >> 16), uint8(hex >> 8), uint8(hex)}
}
