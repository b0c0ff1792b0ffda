// Package rom describes a CHIP-8 program image. CHIP-8 programs carry
// no header, so a ROM is identified by its file name and a checksum
// of its contents.
package rom

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/pixel8/internal/types"
)

// ROM is a program image ready to be loaded at types.ProgramStart.
type ROM struct {
	Data     []byte
	Checksum uint64

	title string
}

// New returns a ROM for data. name is usually the path the data was
// loaded from and is used to derive the title.
func New(name string, data []byte) (*ROM, error) {
	if len(data) > types.MaxProgramSize {
		return nil, fmt.Errorf("%w: program is %d bytes, at most %d fit", types.ErrOutOfBounds, len(data), types.MaxProgramSize)
	}
	return &ROM{
		Data:     data,
		Checksum: xxhash.Sum64(data),
		title:    titleFromName(name),
	}, nil
}

// Title returns the ROM title.
func (r *ROM) Title() string {
	return r.title
}

// String implements fmt.Stringer.
func (r *ROM) String() string {
	return fmt.Sprintf("%s (%d bytes, %016x)", r.title, len(r.Data), r.Checksum)
}

func titleFromName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return "Untitled"
	}
	for ext := filepath.Ext(base); ext != ""; ext = filepath.Ext(base) {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		return "Untitled"
	}
	return base
}
