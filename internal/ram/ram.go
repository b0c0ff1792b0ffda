// Package ram provides the CHIP-8 main memory.
package ram

import (
	"fmt"

	"github.com/thelolagemann/pixel8/internal/types"
)

// Memory is the 4KB byte store of the machine. Every access is
// bounds checked; an address outside of [0, types.MemorySize)
// results in types.ErrOutOfBounds rather than touching
// neighbouring data.
type Memory struct {
	data [types.MemorySize]uint8
}

// New returns a new zero initialised Memory.
func New() *Memory {
	return &Memory{}
}

// Read returns the value at the given address.
func (m *Memory) Read(address uint16) (uint8, error) {
	if int(address) >= len(m.data) {
		return 0, outOfBounds(address, 1)
	}
	return m.data[address], nil
}

// Write writes the value to the given address.
func (m *Memory) Write(address uint16, value uint8) error {
	if int(address) >= len(m.data) {
		return outOfBounds(address, 1)
	}
	m.data[address] = value
	return nil
}

// ReadWord returns the big-endian 16-bit value at address, with
// the byte at address as the high byte.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	if int(address)+1 >= len(m.data) {
		return 0, outOfBounds(address, 2)
	}
	return uint16(m.data[address])<<8 | uint16(m.data[address+1]), nil
}

// WriteBlock copies data into memory starting at offset. Nothing
// is written if the block would extend past the end of memory.
func (m *Memory) WriteBlock(offset uint16, data []byte) error {
	if int(offset)+len(data) > len(m.data) {
		return outOfBounds(offset, len(data))
	}
	copy(m.data[offset:], data)
	return nil
}

// ReadBlock copies n bytes starting at offset.
func (m *Memory) ReadBlock(offset uint16, n int) ([]byte, error) {
	if n < 0 || int(offset)+n > len(m.data) {
		return nil, outOfBounds(offset, n)
	}
	b := make([]byte, n)
	copy(b, m.data[offset:])
	return b, nil
}

// CheckRange reports types.ErrOutOfBounds if any of the n bytes
// starting at offset are outside of memory.
func (m *Memory) CheckRange(offset uint16, n int) error {
	if int(offset)+n > len(m.data) {
		return outOfBounds(offset, n)
	}
	return nil
}

// Bytes returns a copy of the entire memory.
func (m *Memory) Bytes() []byte {
	b := make([]byte, len(m.data))
	copy(b, m.data[:])
	return b
}

// Reset zeroes the memory.
func (m *Memory) Reset() {
	m.data = [types.MemorySize]uint8{}
}

var _ types.Stater = (*Memory)(nil)

// Load loads the memory from the given state.
func (m *Memory) Load(s *types.State) {
	s.ReadData(m.data[:])
}

// Save saves the memory to the given state.
func (m *Memory) Save(s *types.State) {
	s.WriteData(m.data[:])
}

func outOfBounds(address uint16, n int) error {
	return fmt.Errorf("%w: 0x%04X+%d", types.ErrOutOfBounds, address, n)
}
