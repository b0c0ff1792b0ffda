package web

// Event is a hub setting changed by a client. Setting messages are
// prefixed with SystemMessage.
type Event = uint8

const (
	_ Event = iota
	Compression
	CompressionLevel
	FrameSkipping
	FrameCaching
	RegisterUsername
	KeepAlive = 254
	Closing   = 255
)

// PlayerEvent is an emulator control sent by a client. Control
// messages are prefixed with PlayerMessage.
type PlayerEvent = uint8

const (
	PausePlay PlayerEvent = iota
	Step
	Reset
	CyclePalette
	SaveState
	LoadState
)

// message prefixes sent by clients
const (
	PlayerMessage = 9
	SystemMessage = 10
)

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	Frame Type = iota
	FrameSkip
	ClientInfo
	FrameCache
	FrameCacheSync
	FrameSync
	ClientListSync
	ClientClosing
	ServerInfo
	PlayerInfo
	EmulatorInfo
)

// EmulatorInfo subtypes, carried in the second byte.
const (
	InfoTitle uint8 = iota
	InfoHalted
	InfoSound
	InfoFrameTime
)
