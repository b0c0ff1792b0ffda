// Package event defines the various event types that can
// be sent to a display.Driver. This package is separate from
// the display package to avoid circular dependencies.
package event

// Type defines the various event types
// that can be sent to a display.Driver. The event type
// indicates to the display.Driver what action should be
// taken.
type Type int

const (
	// Quit is sent when the emulator has stopped, indicating
	// that the display.Driver should close.
	Quit Type = iota
	// FrameTime is periodically sent to the display.Driver
	// to indicate the average time between frames.
	FrameTime
	// Title is sent to the display.Driver to change the
	// title of the window. This can be used to display
	// custom information in the title bar, such as the
	// current game, or FPS.
	Title
	// Palette is sent when the palette changes. Data holds
	// the new palette.Palette.
	Palette
	// Halted is sent when the CPU stops on a fatal error.
	// Data holds the error.
	Halted
	// Sound is sent when the sound timer starts or stops
	// counting. Data holds a bool, true while it is non zero.
	Sound
)

// Event is the data structure that is sent to the display.Driver
// to indicate an event has occurred. Data may or may not
// contain any data, depending on the event type.
type Event struct {
	// Type is the type of event
	Type Type
	// Data is the data of the event
	Data interface{}
}
