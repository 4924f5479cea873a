package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/log"
)

// fixedRandom always returns the same byte.
type fixedRandom uint8

func (r fixedRandom) Byte() uint8 {
	return uint8(r)
}

// mockDisplay records the rendered frames.
type mockDisplay struct {
	frames []Display
}

func (d *mockDisplay) Render(display *Display) error {
	d.frames = append(d.frames, *display)
	return nil
}

// mockInput returns scripted keypad states, one per poll. The last state
// is repeated once the script is exhausted.
type mockInput struct {
	states []Keypad
	polls  int
}

func (i *mockInput) Poll(keys *Keypad) error {
	if len(i.states) > 0 {
		idx := min(i.polls, len(i.states)-1)
		*keys = i.states[idx]
	}
	i.polls++
	return nil
}

// mockAudio records the beep states.
type mockAudio struct {
	states []bool
}

func (a *mockAudio) Beep(active bool) {
	a.states = append(a.states, active)
}

// countingPacer counts the pacing calls.
type countingPacer struct {
	waits int
}

func (p *countingPacer) Wait() {
	p.waits++
}

// newTestMachine returns a machine with the given instruction words loaded at ProgramStart.
func newTestMachine(t *testing.T, words ...uint16) *Machine {
	t.Helper()
	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	m := New(fixedRandom(0xFF))
	if err := m.LoadProgram(program); err != nil {
		t.Fatalf("loading program: %v", err)
	}
	return m
}

func newTestClock(t *testing.T, m *Machine, peripherals Peripherals) *Clock {
	t.Helper()
	return NewClock(log.NewTestLogger(t), m, peripherals, Config{})
}
