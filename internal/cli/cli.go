// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.NewProgram()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Host = strings.ToLower(opts.Host)
	if opts.Host == "" {
		opts.Host = string(host.Auto)
	}

	validHosts := []string{string(host.Auto), string(host.Headless), string(host.Terminal), string(host.Window)}
	if !slices.Contains(validHosts, opts.Host) {
		return fmt.Errorf("unsupported host: %s. Valid options: %s",
			opts.Host, strings.Join(validHosts, ", "))
	}

	if opts.Batch != "" && opts.Host == string(host.Window) {
		return errors.New("the window host does not support batch processing")
	}

	if opts.Rate < 0 {
		return fmt.Errorf("invalid instruction rate %d: must not be negative", opts.Rate)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("invalid window scale %d: must be at least 1", opts.Scale)
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s: must not be negative", opts.Timeout)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program file")
	flags.StringVar(&opts.Output, "o", "", "name of the file to write the final display frame to, printed on console if no name given (headless host)")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically name the frame output files, for example *.ch8")
	flags.StringVar(&opts.Wav, "wav", "", "record the beeper output to the given .wav file")
	flags.StringVar(&opts.Beep, "beep", "", "use the given .wav or .mp3 file as beep sample instead of a square wave")
	flags.StringVar(&opts.MemViz, "memviz", "", "write a Graphviz dump of the machine state to the given file on exit")
	flags.StringVar(&opts.Host, "host", options.DefaultHost, "host to run the machine in (auto/headless/terminal/window)")
	flags.StringVar(&opts.Keys, "keys", "", "comma separated hex keys to press in sequence in the headless host, for example 5,A,F")
	flags.IntVar(&opts.Rate, "rate", options.DefaultRate, "instructions per second, 0 runs unthrottled")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after executing this many instructions, 0 for no limit")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "stop after the given duration, for example 10s")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a time based seed")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window pixels per display pixel")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.StatsView, "statsview", false, "launch the runtime statistics web view, requires the statsview build tag")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
