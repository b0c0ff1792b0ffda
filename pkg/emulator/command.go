package emulator

import "errors"

// CommandPacket is a command packet that is sent to the
// emulator to control it.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// Command is a command that is sent to the emulator to
// control it.
type Command int

// ResponsePacket is a response packet that is sent
// from the emulator to the client.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}

const (
	// CommandPause pauses the emulator.
	CommandPause Command = iota
	// CommandResume resumes the emulator.
	CommandResume
	// CommandClose closes the emulator.
	CommandClose
	// CommandReset resets the emulator and reloads the current ROM.
	CommandReset
	// CommandLoadROM loads the ROM in Data into the emulator.
	CommandLoadROM
	// CommandSaveState responds with a save state in Data.
	CommandSaveState
	// CommandLoadState loads the save state in Data.
	CommandLoadState
	// CommandSetSpeed sets the speed of the emulator, in
	// instructions per second, encoded big endian in Data.
	CommandSetSpeed
	// CommandStep executes a single instruction while paused.
	CommandStep
	// CommandCyclePalette selects the next palette.
	CommandCyclePalette
)

// ErrClosed is returned in a ResponsePacket when the emulator has
// stopped running.
var ErrClosed = errors.New("emulator closed")

// ErrUnknownCommand is returned in a ResponsePacket for a command
// the emulator does not handle.
var ErrUnknownCommand = errors.New("unknown command")

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "Pause"
	case CommandResume:
		return "Resume"
	case CommandClose:
		return "Close"
	case CommandReset:
		return "Reset"
	case CommandLoadROM:
		return "LoadROM"
	case CommandSaveState:
		return "SaveState"
	case CommandLoadState:
		return "LoadState"
	case CommandSetSpeed:
		return "SetSpeed"
	case CommandStep:
		return "Step"
	case CommandCyclePalette:
		return "CyclePalette"
	default:
		return "Unknown"
	}
}

// SetSpeed returns a CommandSetSpeed packet for the given number
// of instructions per second.
func SetSpeed(ips uint16) CommandPacket {
	return CommandPacket{Command: CommandSetSpeed, Data: []byte{byte(ips >> 8), byte(ips)}}
}
