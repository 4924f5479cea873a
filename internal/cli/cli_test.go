package cli

import (
	"errors"
	"flag"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func parseArgs(t *testing.T, args ...string) (options.Program, error) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = append([]string{"prog"}, args...)
	return ParseFlags()
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts options.Program)
	}{
		{
			name: "defaults",
			args: []string{"pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "pong.ch8", opts.Input)
				assert.Equal(t, "auto", opts.Host)
				assert.Equal(t, options.DefaultRate, opts.Rate)
				assert.Equal(t, options.DefaultScale, opts.Scale)
				assert.Equal(t, uint64(0), opts.Cycles)
			},
		},
		{
			name: "input flag",
			args: []string{"-i", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "pong.ch8", opts.Input)
			},
		},
		{
			name: "machine flags",
			args: []string{"-rate", "0", "-cycles", "1000", "-timeout", "2s", "-seed", "42", "test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, 0, opts.Rate)
				assert.Equal(t, uint64(1000), opts.Cycles)
				assert.Equal(t, 2*time.Second, opts.Timeout)
				assert.Equal(t, uint64(42), opts.Seed)
			},
		},
		{
			name: "host is case insensitive",
			args: []string{"-host", "Headless", "test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "headless", opts.Host)
			},
		},
		{
			name: "output files",
			args: []string{"-wav", "beep.wav", "-memviz", "state.dot", "-keys", "1,F", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "beep.wav", opts.Wav)
				assert.Equal(t, "state.dot", opts.MemViz)
				assert.Equal(t, "1,F", opts.Keys)
			},
		},
		{
			name: "batch without positional argument",
			args: []string{"-batch", "*.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "*.ch8", opts.Batch)
				assert.Equal(t, "", opts.Input)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs(t, tt.args...)
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		usage   bool
		message string
	}{
		{
			name:  "no program file",
			args:  nil,
			usage: true,
		},
		{
			name:    "flag after program file",
			args:    []string{"test.ch8", "-debug"},
			usage:   true,
			message: "found after program file",
		},
		{
			name:    "unknown host",
			args:    []string{"-host", "browser", "test.ch8"},
			message: "unsupported host: browser",
		},
		{
			name:    "batch in window",
			args:    []string{"-host", "window", "-batch", "*.ch8"},
			message: "does not support batch processing",
		},
		{
			name:    "negative rate",
			args:    []string{"-rate", "-1", "test.ch8"},
			message: "invalid instruction rate",
		},
		{
			name:    "zero scale",
			args:    []string{"-scale", "0", "test.ch8"},
			message: "invalid window scale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, tt.args...)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
			if tt.message != "" {
				assert.ErrorContains(t, err, tt.message)
			}
		})
	}
}

func TestValidateArgs(t *testing.T) {
	assert.NoError(t, validateArgs([]string{"test.ch8"}))
	assert.Error(t, validateArgs([]string{"test.ch8", "-q"}))
}

func TestReadOptionFlags(t *testing.T) {
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	opts := options.NewProgram()
	readOptionFlags(flags, &opts)

	var names []string
	flags.VisitAll(func(f *flag.Flag) {
		names = append(names, f.Name)
	})
	slices.Sort(names)

	expected := []string{"batch", "beep", "cycles", "debug", "host", "i", "keys", "memviz",
		"o", "q", "rate", "scale", "seed", "statsview", "timeout", "trace", "wav"}
	assert.True(t, slices.Equal(expected, names))
	assert.True(t, flags.Lookup("listing") == nil)
}
