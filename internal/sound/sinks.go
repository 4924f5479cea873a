package sound

import "github.com/retroenv/chip8vm/internal/chip8"

// Sinks forwards the beeper state to multiple audio sinks.
type Sinks []chip8.AudioSink

// Beep forwards the beeper state to all sinks.
func (s Sinks) Beep(active bool) {
	for _, sink := range s {
		sink.Beep(active)
	}
}
