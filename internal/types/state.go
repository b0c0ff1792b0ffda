package types

// stateMagic prefixes every serialized state so that stale or
// foreign files are rejected before any component reads from them.
var stateMagic = []byte{'P', '8', 'S', 1}

// State represents the machine state. This is used to
// save and load states between runs.
type State struct {
	raw           []byte // raw state data (for serialization)
	readPosition  int    // current read position
	writePosition int    // current write position
	short         bool   // a read went past the end of raw
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	s := &State{
		raw: make([]byte, 0, MemorySize+ScreenWidth*ScreenHeight+256),
	}
	s.WriteData(stateMagic)
	return s
}

// StateFromBytes creates a new state from the given bytes,
// returning ErrInvalidState if the header does not match.
func StateFromBytes(raw []byte) (*State, error) {
	if len(raw) < len(stateMagic) {
		return nil, ErrInvalidState
	}
	for i, b := range stateMagic {
		if raw[i] != b {
			return nil, ErrInvalidState
		}
	}
	return &State{
		raw:          raw,
		readPosition: len(stateMagic),
	}, nil
}

// Err returns ErrInvalidState if any read ran past the end
// of the state data.
func (s *State) Err() error {
	if s.short {
		return ErrInvalidState
	}
	return nil
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
	s.writePosition++
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
	s.writePosition += 2
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
	s.writePosition++
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
	s.writePosition += len(data)
}

// available reports whether n more bytes can be read.
func (s *State) available(n int) bool {
	if s.readPosition+n > len(s.raw) {
		s.short = true
		return false
	}
	return true
}

func (s *State) Read8() uint8 {
	if !s.available(1) {
		return 0
	}
	value := s.raw[s.readPosition]
	s.readPosition++
	return value
}

func (s *State) Read16() uint16 {
	if !s.available(2) {
		return 0
	}
	value := uint16(s.raw[s.readPosition]) | uint16(s.raw[s.readPosition+1])<<8
	s.readPosition += 2
	return value
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	if !s.available(len(p)) {
		return
	}
	copy(p, s.raw[s.readPosition:])
	s.readPosition += len(p)
}

func (s *State) Bytes() []byte {
	return s.raw
}
