// Package rom reads program images from disk for the interpreter.
package rom

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gochip8/pkg/cpu"
)

var ErrTooLarge = errors.New("rom too large")

// ROM is a program image together with where it came from.
type ROM struct {
	// Path is the absolute path of the file, empty for images read from a stream.
	Path string
	// Dir is the directory containing Path. Frontends write screenshots and
	// recordings next to the ROM by default.
	Dir string
	// Name is the file name without extension.
	Name string
	Data []byte
}

// Load reads the ROM at path. Relative paths are resolved against the
// working directory.
func Load(path string) (*ROM, error) {
	fullPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving rom path: %w", err)
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("opening rom: %w", err)
	}
	defer f.Close()

	r, err := Read(f, baseName(fullPath))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fullPath, err)
	}
	r.Path = fullPath
	r.Dir = filepath.Dir(fullPath)
	return r, nil
}

// Read consumes an image from r. It stops one byte past the size limit so an
// oversized stream is rejected without reading all of it.
func Read(r io.Reader, name string) (*ROM, error) {
	data, err := io.ReadAll(io.LimitReader(r, cpu.MaxROMSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > cpu.MaxROMSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, cpu.MaxROMSize)
	}
	return &ROM{Name: name, Data: data}, nil
}

// OutputPath returns the path of a file named after the ROM with the given
// extension, placed next to it.
func (r *ROM) OutputPath(ext string) string {
	name := r.Name
	if name == "" {
		name = "chip8"
	}
	return filepath.Join(r.Dir, name+ext)
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
