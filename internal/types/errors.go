package types

import "errors"

var (
	// ErrOutOfBounds is returned when an address falls outside of
	// memory.
	ErrOutOfBounds = errors.New("address out of bounds")
	// ErrStackOverflow is returned by CALL when the stack is full.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned by RET when the stack is empty.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrUnknownOpcode is reported when an opcode has no decode
	// entry. It is not fatal, execution continues at PC+2.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrFileNotFound is returned when a ROM file is absent or
	// unreadable.
	ErrFileNotFound = errors.New("file not found")
	// ErrTruncatedRead is returned when fewer bytes were read from
	// a ROM file than its reported size.
	ErrTruncatedRead = errors.New("truncated read")
	// ErrInvalidState is returned when a save state is too short
	// or was not produced by this emulator.
	ErrInvalidState = errors.New("invalid save state")
)
