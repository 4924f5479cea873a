// Package headless implements a host without any devices. Input can be scripted
// and the last rendered frame is written as text when the host is closed.
package headless

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/retrogolib/log"
)

// DefaultHoldPolls is the number of input polls a scripted key stays pressed,
// followed by the same number of polls with all keys released.
const DefaultHoldPolls = 8

// Options configures a headless host.
type Options struct {
	Frame     io.Writer // receives the final frame on close, optional
	Keys      []uint8   // scripted key presses in order
	HoldPolls int       // polls per scripted key press and release
}

// Host is a host without devices.
type Host struct {
	logger *log.Logger
	opts   Options

	frame    chip8.Display
	rendered int
	polls    int
}

// New returns a new headless host.
func New(logger *log.Logger, opts Options) *Host {
	if opts.HoldPolls <= 0 {
		opts.HoldPolls = DefaultHoldPolls
	}
	return &Host{
		logger: logger,
		opts:   opts,
	}
}

// Kind returns host.Headless.
func (h *Host) Kind() host.Kind {
	return host.Headless
}

// Peripherals returns the headless display and the scripted input. The host has no audio.
func (h *Host) Peripherals() chip8.Peripherals {
	return chip8.Peripherals{
		Display: h,
		Input:   h,
	}
}

// Run executes the emulation on the calling goroutine.
func (h *Host) Run(ctx context.Context, emulate func(ctx context.Context) error) error {
	return emulate(ctx)
}

// Render keeps a copy of the display.
func (h *Host) Render(display *chip8.Display) error {
	h.frame = *display
	h.rendered++
	return nil
}

// Poll presses the scripted keys in sequence. Every key is held for HoldPolls
// polls and then released for the same number of polls.
func (h *Host) Poll(keys *chip8.Keypad) error {
	keys.Reset()

	step := h.polls / h.opts.HoldPolls
	h.polls++
	if step%2 != 0 {
		return nil
	}
	index := step / 2
	if index < len(h.opts.Keys) {
		keys[h.opts.Keys[index]&0xF] = true
	}
	return nil
}

// Frame returns the last rendered frame.
func (h *Host) Frame() chip8.Display {
	return h.frame
}

// Close writes the last rendered frame to the frame writer.
func (h *Host) Close() error {
	h.logger.Debug("Headless host closed", log.Int("frames", h.rendered))
	if h.opts.Frame == nil {
		return nil
	}
	if _, err := io.WriteString(h.opts.Frame, h.frame.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// ParseKeys parses a comma separated list of hexadecimal keypad keys.
func ParseKeys(s string) ([]uint8, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	keys := make([]uint8, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		key, err := strconv.ParseUint(part, 16, 8)
		if err != nil || key >= chip8.KeyCount {
			return nil, fmt.Errorf("invalid key '%s': expected a hex digit 0-F", part)
		}
		keys = append(keys, uint8(key))
	}
	return keys, nil
}
