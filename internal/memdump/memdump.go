// Package memdump writes the state of a machine as a Graphviz graph.
package memdump

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/retroenv/chip8vm/internal/chip8"
)

// State is the part of the machine state that is included in a dump.
type State struct {
	Registers chip8.Snapshot
	Display   []string // display rows, set pixels as '#'
}

// NewState collects the dump state of a machine.
func NewState(m *chip8.Machine) *State {
	frame := strings.TrimSuffix(m.Display.String(), "\n")
	return &State{
		Registers: m.Snapshot(),
		Display:   strings.Split(frame, "\n"),
	}
}

// Write writes the Graphviz graph of the machine state to w.
func Write(w io.Writer, m *chip8.Machine) {
	memviz.Map(w, NewState(m))
}

// WriteFile writes the Graphviz graph of the machine state to a new file.
func WriteFile(path string, m *chip8.Machine) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating memory dump file %s: %w", path, err)
	}

	Write(file, m)
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing memory dump file %s: %w", path, err)
	}
	return nil
}
