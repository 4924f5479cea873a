// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// ErrEmptyProgram is returned for program files without content.
var ErrEmptyProgram = errors.New("program is empty")

// knownExtensions are the file extensions commonly used for program images.
var knownExtensions = []string{".ch8", ".c8", ".rom", ".bin"}

// Loader handles loading program images from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new program loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads and validates the program image of the input file.
// Program images are raw instruction bytes without any header.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(knownExtensions, ext) {
		l.logger.Warn("Unknown program file extension, loading as raw program image",
			log.String("file", path))
	}

	// read one byte more than fits to detect oversized programs without reading huge files
	data, err := io.ReadAll(io.LimitReader(file, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	return l.LoadFromBytes(data)
}

// LoadFromBytes validates a program image that is already in memory.
func (l *Loader) LoadFromBytes(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyProgram
	}
	if len(data) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: maximum is %d bytes", chip8.ErrProgramTooLarge, chip8.MaxProgramSize)
	}
	if len(data)%chip8.InstructionSize != 0 {
		l.logger.Debug("Program size is not a multiple of the instruction size",
			log.Int("size", len(data)))
	}
	return data, nil
}
