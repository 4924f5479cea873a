// Package host defines the frontends a machine can run in.
package host

import (
	"context"
	"errors"

	"github.com/retroenv/chip8vm/internal/chip8"
)

// Kind names a host implementation.
type Kind string

// Supported hosts.
const (
	Auto     Kind = "auto"
	Headless Kind = "headless"
	Terminal Kind = "terminal"
	Window   Kind = "window"
)

// Host connects a machine to its display, input and audio devices and
// controls the lifetime of a run.
type Host interface {
	// Kind returns the kind of the host.
	Kind() Kind

	// Peripherals returns the display, input and audio collaborators of the host.
	Peripherals() chip8.Peripherals

	// Run executes the emulation function and returns its error. Hosts that need
	// the calling goroutine for their event loop run the emulation in the background
	// and cancel its context when the user quits.
	Run(ctx context.Context, emulate func(ctx context.Context) error) error

	// Close releases the devices of the host.
	Close() error
}

// ErrUnavailable is returned when a host can not be used in the current environment.
var ErrUnavailable = errors.New("host not available")

// Observer is implemented by hosts that show the execution state of the clock.
type Observer interface {
	Observe(clock *chip8.Clock)
}
