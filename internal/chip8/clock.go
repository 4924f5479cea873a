package chip8

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// DefaultKeyPollInterval is the interval at which the input source is polled
// while the machine waits for a key.
const DefaultKeyPollInterval = 10 * time.Millisecond

// State is the execution state of a clock.
type State uint8

// Clock states. StateHalted is terminal.
const (
	StateRunning State = iota
	StateWaitingKey
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateWaitingKey:
		return "waiting for key"
	case StateHalted:
		return "halted"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// StopReason describes why a run ended without a fatal error.
type StopReason uint8

// Reasons for a run to stop.
const (
	StopHalt       StopReason = iota // halt sentinel instruction
	StopCycleLimit                   // configured instruction limit reached
	StopCanceled                     // context canceled or timed out
	StopFatal                        // fatal machine error
)

func (r StopReason) String() string {
	switch r {
	case StopHalt:
		return "halt instruction"
	case StopCycleLimit:
		return "instruction limit reached"
	case StopCanceled:
		return "canceled"
	case StopFatal:
		return "fatal error"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// Result summarizes a finished run.
type Result struct {
	Reason StopReason
	Cycles uint64 // number of executed instructions
}

// Config controls the behavior of a clock.
type Config struct {
	MaxCycles       uint64        // stop after this many instructions, 0 for no limit
	KeyPollInterval time.Duration // input polling interval during key waits
	Trace           bool          // log every executed instruction at debug level
}

// Clock drives the fetch, decode and execute cycle of a machine.
type Clock struct {
	logger      *log.Logger
	machine     *Machine
	peripherals Peripherals
	cfg         Config

	state  atomic.Uint32 // State, read concurrently by hosts
	cycles uint64
	err    error // fatal error that halted the clock
}

// NewClock returns a clock that owns the given machine.
func NewClock(logger *log.Logger, machine *Machine, peripherals Peripherals, cfg Config) *Clock {
	if cfg.KeyPollInterval <= 0 {
		cfg.KeyPollInterval = DefaultKeyPollInterval
	}
	return &Clock{
		logger:      logger,
		machine:     machine,
		peripherals: peripherals.withDefaults(),
		cfg:         cfg,
	}
}

// State returns the current execution state. It is safe for concurrent use.
func (c *Clock) State() State {
	return State(c.state.Load())
}

func (c *Clock) setState(state State) {
	c.state.Store(uint32(state))
}

// Cycles returns the number of executed instructions.
func (c *Clock) Cycles() uint64 {
	return c.cycles
}

// Run executes instructions until the halt sentinel, a fatal error, the instruction
// limit or the cancellation of the context. Cancellation is checked between
// instructions and returns the context error together with the result.
func (c *Clock) Run(ctx context.Context) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return c.result(StopCanceled), fmt.Errorf("running machine: %w", err)
		}

		switch c.State() {
		case StateHalted:
			if c.err != nil {
				return c.result(StopFatal), c.err
			}
			return c.result(StopHalt), nil

		case StateWaitingKey:
			if err := c.sleep(ctx, c.cfg.KeyPollInterval); err != nil {
				return c.result(StopCanceled), fmt.Errorf("waiting for key: %w", err)
			}

		case StateRunning:
			if c.cfg.MaxCycles > 0 && c.cycles >= c.cfg.MaxCycles {
				return c.result(StopCycleLimit), nil
			}
		}

		if err := c.Step(); err != nil {
			return c.result(StopFatal), err
		}

		if c.State() == StateRunning {
			c.peripherals.Pacer.Wait()
		}
	}
}

// Step advances the state machine by one unit without any pacing delay.
// When running, one instruction is executed. When waiting for a key, the input
// is polled once and the wait ends if a key is pressed. A halted clock does nothing.
// After a fatal error the clock is halted and every further call returns that error.
func (c *Clock) Step() error {
	if c.err != nil {
		return c.err
	}

	var err error
	switch c.State() {
	case StateRunning:
		err = c.executeNext()
	case StateWaitingKey:
		err = c.pollWait()
	}
	if err != nil {
		c.err = err
		c.setState(StateHalted)
	}
	return err
}

func (c *Clock) executeNext() error {
	m := c.machine
	if err := c.peripherals.Input.Poll(&m.Keys); err != nil {
		return fmt.Errorf("polling input: %w", err)
	}

	address := m.PC
	word, err := m.fetch()
	if err != nil {
		return err
	}
	if word == 0x0000 {
		c.setState(StateHalted)
		c.logger.Debug("Halt instruction reached", log.Hex("pc", address))
		return nil
	}

	ins := Decode(word)
	if c.cfg.Trace {
		c.logger.Debug("Executing",
			log.Hex("pc", address),
			log.Hex("opcode", word),
			log.String("instruction", ins.String()))
	}

	if err := m.Execute(ins); err != nil {
		return &ExecutionError{Address: address, Instruction: ins, Err: err}
	}
	if err := c.renderIfChanged(); err != nil {
		return err
	}

	if m.Waiting() && !m.resolveWait() {
		c.setState(StateWaitingKey)
		return nil
	}
	c.completeInstruction()
	return nil
}

// pollWait refreshes the keypad while the machine waits for a key. Timers are
// suspended during the wait and advance once when the instruction completes.
func (c *Clock) pollWait() error {
	m := c.machine
	if err := c.peripherals.Input.Poll(&m.Keys); err != nil {
		return fmt.Errorf("polling input: %w", err)
	}
	if !m.resolveWait() {
		return nil
	}
	c.setState(StateRunning)
	c.completeInstruction()
	return nil
}

// completeInstruction advances the timers and reports the sound state.
func (c *Clock) completeInstruction() {
	c.machine.tickTimers()
	c.peripherals.Audio.Beep(c.machine.SoundActive())
	c.cycles++
}

func (c *Clock) renderIfChanged() error {
	m := c.machine
	if !m.displayChanged {
		return nil
	}
	m.displayChanged = false
	if err := c.peripherals.Display.Render(&m.Display); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}
	return nil
}

func (c *Clock) result(reason StopReason) Result {
	return Result{
		Reason: reason,
		Cycles: c.cycles,
	}
}

// sleep waits for the given duration or until the context is done.
func (c *Clock) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
