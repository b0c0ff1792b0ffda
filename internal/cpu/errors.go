package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/pixel8/internal/types"
)

// ExecError describes an instruction that could not be executed.
type ExecError struct {
	// PC is the address of the instruction.
	PC uint16
	// Opcode is the raw opcode, 0 if it could not be fetched.
	Opcode uint16
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("0x%04X: %04X: %v", e.PC, e.Opcode, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err should stop the machine. Unknown
// opcodes are skipped over, anything else leaves the machine in a
// state it cannot continue from.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, types.ErrUnknownOpcode)
}
