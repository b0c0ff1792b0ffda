package emulator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StateExtension is the file extension used for save states.
const StateExtension = ".p8s"

// StatePath returns the save state path for the ROM loaded from
// romPath, next to the ROM.
func StatePath(romPath string) string {
	dir, base := filepath.Split(romPath)
	for ext := filepath.Ext(base); ext != ""; ext = filepath.Ext(base) {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		base = "pixel8"
	}
	return filepath.Join(dir, base+StateExtension)
}

// WriteState writes a save state to path, replacing it atomically
// by writing to a temporary file first.
func WriteState(path string, b []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadState reads the save state at path.
func ReadState(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading state %s: %w", path, err)
	}
	return b, nil
}
