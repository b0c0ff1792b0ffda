package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/thelolagemann/pixel8/internal/types"
)

// LoadFile loads the given file and performs decompression if necessary.
//
// types.ErrFileNotFound is returned if the file cannot be opened, and
// types.ErrTruncatedRead if fewer bytes could be read than the file
// reports as its size.
func LoadFile(filename string) ([]byte, error) {
	// open the file
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrFileNotFound, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrFileNotFound, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", types.ErrFileNotFound, filename)
	}

	data, err := readFull(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return decompress(filename, data)
}

// readFull reads exactly size bytes from r, returning
// types.ErrTruncatedRead if r ends early.
func readFull(r io.Reader, size int64) ([]byte, error) {
	data := make([]byte, size)
	n, err := io.ReadFull(r, data)
	if err != nil {
		return nil, fmt.Errorf("%w: read %d of %d bytes", types.ErrTruncatedRead, n, size)
	}
	return data, nil
}

// decompress extracts the first file of an archive, based on the
// extension of filename. Anything else is returned as is. Archives
// holding more than types.MaxProgramSize bytes fail with
// types.ErrOutOfBounds.
func decompress(filename string, data []byte) ([]byte, error) {
	var decoder io.Reader
	var err error
	r := bytes.NewReader(data)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		decoder, err = gzip.NewReader(r)
	case ".zip":
		zipReader, zerr := zip.NewReader(r, int64(len(data)))
		if zerr != nil {
			return nil, zerr
		}
		if len(zipReader.File) == 0 {
			return nil, fmt.Errorf("%w: %s is an empty archive", types.ErrFileNotFound, filename)
		}

		// read the first file in the zip file
		decoder, err = zipReader.File[0].Open()
	case ".7z":
		szReader, serr := sevenzip.NewReader(r, int64(len(data)))
		if serr != nil {
			return nil, serr
		}
		if len(szReader.File) == 0 {
			return nil, fmt.Errorf("%w: %s is an empty archive", types.ErrFileNotFound, filename)
		}

		// read the first file in the archive
		decoder, err = szReader.File[0].Open()
	default:
		// return the data as is
		return data, nil
	}

	if err != nil {
		return nil, err
	}
	if c, ok := decoder.(io.Closer); ok {
		defer c.Close()
	}

	// read at most one byte more than a program can be
	out, err := io.ReadAll(io.LimitReader(decoder, types.MaxProgramSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > types.MaxProgramSize {
		return nil, fmt.Errorf("%w: %s decompresses to more than %d bytes", types.ErrOutOfBounds, filename, types.MaxProgramSize)
	}
	return out, nil
}
