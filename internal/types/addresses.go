package types

// CHIP-8 memory map:
//
//	0x000-0x1FF: reserved for the interpreter (font data historically)
//	0x200-0xFFF: program image and work RAM
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000
	// ProgramStart is the address the program image is loaded at,
	// and the initial value of the program counter.
	ProgramStart = 0x200
	// MaxProgramSize is the largest program image that fits
	// between ProgramStart and the end of memory.
	MaxProgramSize = MemorySize - ProgramStart
)

const (
	// ScreenWidth is the number of columns in the framebuffer.
	ScreenWidth = 64
	// ScreenHeight is the number of rows in the framebuffer.
	ScreenHeight = 32
)

const (
	// RegisterCount is the number of general purpose V registers.
	RegisterCount = 16
	// FlagRegister is the index of VF, used for carry, borrow
	// and collision results.
	FlagRegister = 0xF
	// DefaultStackSize is the number of return addresses the
	// call stack holds unless configured otherwise.
	DefaultStackSize = 16
	// TimerFrequency is the rate, in Hz, the delay and sound
	// timers count down at.
	TimerFrequency = 60
)
