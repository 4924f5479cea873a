// Package app provides the main application helpers for the virtual machine.
package app

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/host/headless"
	"github.com/retroenv/chip8vm/internal/host/terminal"
	"github.com/retroenv/chip8vm/internal/host/window"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/sound"
	"github.com/retroenv/retrogolib/log"
)

// PrintInfo prints the information about the input file and the run settings.
func PrintInfo(logger *log.Logger, opts options.Program, kind host.Kind, size int, seed uint64) {
	if opts.Quiet {
		return
	}

	rate := "unthrottled"
	if opts.Rate > 0 {
		rate = fmt.Sprintf("%d/s", opts.Rate)
	}

	logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("host", string(kind)),
		log.String("rate", rate),
	)
	logger.Debug("Random source", log.String("seed", fmt.Sprintf("%d", seed)))
}

// HostResources are the resources a host can use besides the options.
type HostResources struct {
	Frame  io.Writer     // final frame output of the headless host
	Sample *sound.Sample // beep sound of the window host, a square wave if nil
}

// InitializeHost creates the chosen host.
func InitializeHost(logger *log.Logger, opts options.Program, kind host.Kind, res HostResources) (host.Host, error) {
	switch kind {
	case host.Headless:
		keys, err := headless.ParseKeys(opts.Keys)
		if err != nil {
			return nil, fmt.Errorf("parsing scripted keys: %w", err)
		}
		return headless.New(logger, headless.Options{
			Frame: res.Frame,
			Keys:  keys,
		}), nil

	case host.Terminal:
		h, err := terminal.New(logger)
		if err != nil {
			return nil, fmt.Errorf("creating terminal host: %w", err)
		}
		return h, nil

	case host.Window:
		h, err := window.New(logger, window.Options{
			Title:  "chip8vm - " + filepath.Base(opts.Input),
			Scale:  opts.Scale,
			Sample: res.Sample,
		})
		if err != nil {
			return nil, fmt.Errorf("creating window host: %w", err)
		}
		return h, nil

	default:
		return nil, fmt.Errorf("unsupported host '%s'", kind)
	}
}
