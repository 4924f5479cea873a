// Package options contains the program options.
package options

import "time"

// Defaults of the machine related options.
const (
	DefaultRate  = 700 // instructions per second
	DefaultScale = 10  // window pixels per display pixel
	DefaultHost  = "auto"
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input program file"`
	Output string `flag:"o" usage:"output file for the final display frame (headless host)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ch8)"`
	Wav    string `flag:"wav" usage:"record the beeper to a .wav file"`
	Beep   string `flag:"beep" usage:"beep sample file (.wav or .mp3)"`
	MemViz string `flag:"memviz" usage:"write a Graphviz dump of the machine state on exit"`
}

// Flags contains behavior options.
type Flags struct {
	Host      string `flag:"host" usage:"host: auto, headless, terminal, window" default:"auto"`
	Trace     bool   `flag:"trace" usage:"log every executed instruction"`
	StatsView bool   `flag:"statsview" usage:"launch the runtime statistics web view"`
	Debug     bool   `flag:"debug" usage:"enable debug logging"`
	Quiet     bool   `flag:"q" usage:"quiet mode"`
}

// MachineFlags contains execution options.
type MachineFlags struct {
	Rate    int           `flag:"rate" usage:"instructions per second, 0 for unthrottled" default:"700"`
	Cycles  uint64        `flag:"cycles" usage:"stop after this many instructions, 0 for no limit"`
	Timeout time.Duration `flag:"timeout" usage:"stop after this duration, 0 for no limit"`
	Seed    uint64        `flag:"seed" usage:"random seed, 0 for a time based seed"`
	Scale   int           `flag:"scale" usage:"window scale factor" default:"10"`
	Keys    string        `flag:"keys" usage:"scripted key presses for the headless host (e.g. 5,A,F)"`
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
	MachineFlags
}

// NewProgram returns a new options instance with default options.
func NewProgram() Program {
	return Program{
		Flags: Flags{
			Host: DefaultHost,
		},
		MachineFlags: MachineFlags{
			Rate:  DefaultRate,
			Scale: DefaultScale,
		},
	}
}
