// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/limiter"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateClockConfig returns the clock settings for the given program options.
func CreateClockConfig(opts options.Program) chip8.Config {
	return chip8.Config{
		MaxCycles: opts.Cycles,
		Trace:     opts.Trace,
	}
}

// CreatePacer returns the pacer that limits execution to the configured
// instruction rate. A rate of 0 returns nil, which runs the machine unthrottled.
func CreatePacer(opts options.Program) chip8.Pacer {
	if opts.Rate <= 0 {
		return nil
	}
	return limiter.New(opts.Rate)
}
