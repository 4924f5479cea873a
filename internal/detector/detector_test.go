package detector

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		opts     options.Program
		goos     string
		env      map[string]string
		terminal bool
		wantHost host.Kind
	}{
		{
			name:     "explicit terminal host",
			opts:     options.Program{Flags: options.Flags{Host: "terminal"}},
			goos:     "linux",
			env:      map[string]string{"DISPLAY": ":0"},
			wantHost: host.Terminal,
		},
		{
			name:     "explicit headless host",
			opts:     options.Program{Flags: options.Flags{Host: "headless"}},
			goos:     "windows",
			wantHost: host.Headless,
		},
		{
			name:     "x11 session",
			goos:     "linux",
			env:      map[string]string{"DISPLAY": ":0"},
			terminal: true,
			wantHost: host.Window,
		},
		{
			name:     "wayland session",
			goos:     "freebsd",
			env:      map[string]string{"WAYLAND_DISPLAY": "wayland-0"},
			wantHost: host.Window,
		},
		{
			name:     "windows desktop",
			opts:     options.Program{Flags: options.Flags{Host: "auto"}},
			goos:     "windows",
			wantHost: host.Window,
		},
		{
			name:     "ssh session",
			goos:     "linux",
			terminal: true,
			wantHost: host.Terminal,
		},
		{
			name:     "no terminal",
			goos:     "linux",
			wantHost: host.Headless,
		},
		{
			name:     "batch run",
			opts:     options.Program{Parameters: options.Parameters{Batch: "*.ch8"}},
			goos:     "darwin",
			terminal: true,
			wantHost: host.Headless,
		},
		{
			name:     "frame output",
			opts:     options.Program{Parameters: options.Parameters{Output: "frame.txt"}},
			goos:     "linux",
			env:      map[string]string{"DISPLAY": ":0"},
			wantHost: host.Headless,
		},
		{
			name:     "scripted keys",
			opts:     options.Program{MachineFlags: options.MachineFlags{Keys: "5"}},
			goos:     "linux",
			terminal: true,
			wantHost: host.Headless,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewWithEnvironment(log.NewTestLogger(t), Environment{
				GOOS:       tt.goos,
				Getenv:     func(key string) string { return tt.env[key] },
				IsTerminal: func() bool { return tt.terminal },
			})

			assert.Equal(t, tt.wantHost, d.Detect(tt.opts))
		})
	}
}

func TestNew(t *testing.T) {
	d := New(log.NewTestLogger(t))
	assert.NotNil(t, d.env.Getenv)
	assert.NotNil(t, d.env.IsTerminal)
	assert.NotEmpty(t, d.env.GOOS)
}
