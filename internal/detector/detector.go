// Package detector handles host detection.
package detector

import (
	"os"
	"runtime"

	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Environment describes the parts of the process environment that select a host.
type Environment struct {
	GOOS       string
	Getenv     func(key string) string
	IsTerminal func() bool // stdin and stdout are connected to a terminal
}

// Detector handles host detection from options and the process environment.
type Detector struct {
	logger *log.Logger
	env    Environment
}

// New creates a new host detector for the current process.
func New(logger *log.Logger) *Detector {
	return NewWithEnvironment(logger, Environment{
		GOOS:       runtime.GOOS,
		Getenv:     os.Getenv,
		IsTerminal: stdioIsTerminal,
	})
}

// NewWithEnvironment creates a new host detector for the given environment.
func NewWithEnvironment(logger *log.Logger, env Environment) *Detector {
	return &Detector{
		logger: logger,
		env:    env,
	}
}

// Detect determines the host from options or the environment.
// It first checks if a host is explicitly specified in options, otherwise
// unattended runs use the headless host, a desktop session uses a window and
// an interactive terminal uses the terminal host.
func (d *Detector) Detect(opts options.Program) host.Kind {
	kind := host.Kind(opts.Host)
	if kind != "" && kind != host.Auto {
		return kind
	}

	kind = d.detectFromEnvironment(opts)
	d.logger.Debug("Auto-detected host",
		log.String("host", string(kind)),
		log.String("os", d.env.GOOS))
	return kind
}

func (d *Detector) detectFromEnvironment(opts options.Program) host.Kind {
	switch {
	case opts.Batch != "", opts.Output != "", opts.Keys != "":
		return host.Headless
	case d.hasDesktop():
		return host.Window
	case d.env.IsTerminal != nil && d.env.IsTerminal():
		return host.Terminal
	default:
		return host.Headless
	}
}

// hasDesktop returns whether windows can be opened.
func (d *Detector) hasDesktop() bool {
	switch d.env.GOOS {
	case "windows", "darwin":
		return true
	case "js", "android", "ios":
		return false
	}
	return d.env.Getenv("DISPLAY") != "" || d.env.Getenv("WAYLAND_DISPLAY") != ""
}

func stdioIsTerminal() bool {
	return isCharDevice(os.Stdin) && isCharDevice(os.Stdout)
}

func isCharDevice(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
