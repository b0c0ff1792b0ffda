// Command pixel8dis prints a disassembly listing of a CHIP-8 ROM,
// one instruction per line in the same columns as the emulator's
// instruction trace.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/thelolagemann/pixel8/internal/cpu"
	"github.com/thelolagemann/pixel8/internal/types"
	"github.com/thelolagemann/pixel8/pkg/log"
	"github.com/thelolagemann/pixel8/pkg/utils"
)

func main() {
	logger := log.New()

	romFile := flag.String("rom", "", "The rom file to disassemble")
	origin := flag.Int("origin", types.ProgramStart, "The address the rom is loaded at")
	flag.Parse()

	if *romFile == "" && flag.NArg() > 0 {
		*romFile = flag.Arg(0)
	}
	if *romFile == "" {
		logger.Fatal("usage: pixel8dis [-origin addr] rom")
	}

	data, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal(err.Error())
	}

	out := bufio.NewWriter(os.Stdout)
	if err := listing(out, data, uint16(*origin)); err != nil {
		logger.Fatal(err.Error())
	}
	if err := out.Flush(); err != nil {
		logger.Fatal(err.Error())
	}
}

// listing writes one line per opcode in program, which is assumed
// to start at origin. A trailing odd byte is listed as data.
func listing(w io.Writer, program []byte, origin uint16) error {
	for i := 0; i < len(program); i += 2 {
		addr := origin + uint16(i)
		if i+1 == len(program) {
			if _, err := fmt.Fprintf(w, "%04X %02X     DB 0x%02X\n", addr, program[i], program[i]); err != nil {
				return err
			}
			break
		}

		opcode := utils.BytesToUint16(program[i], program[i+1])
		if _, err := fmt.Fprintf(w, "%04X %02X %02X  %s\n", addr, program[i], program[i+1], cpu.Disassemble(opcode)); err != nil {
			return err
		}
	}
	return nil
}
