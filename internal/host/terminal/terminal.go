//go:build linux || darwin || freebsd || netbsd || openbsd

package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pkg/term"
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/retrogolib/log"
)

const (
	ttyPath     = "/dev/tty"
	readTimeout = 100 * time.Millisecond
	bell        = "\a"
)

// device is the subset of *term.Term used by the host.
type device interface {
	io.ReadWriter
	Restore() error
	Close() error
}

// Host runs the machine in the controlling terminal.
type Host struct {
	logger *log.Logger
	tty    device

	input chan []byte
	quit  chan struct{}
	stop  chan struct{}
	done  chan struct{}

	quitOnce sync.Once
	keys     *keyState
	beeping  bool
	sb       strings.Builder
}

// New puts the terminal into raw mode and starts reading key presses.
func New(logger *log.Logger) (host.Host, error) {
	tty, err := term.Open(ttyPath, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("%w: opening terminal: %w", host.ErrUnavailable, err)
	}
	if err := tty.SetReadTimeout(readTimeout); err != nil {
		_ = tty.Restore()
		_ = tty.Close()
		return nil, fmt.Errorf("setting terminal read timeout: %w", err)
	}

	h, err := newHost(logger, tty)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// newHost starts reading key presses from the terminal and clears the screen.
// The read loop runs before the first write so that Close can always stop it.
func newHost(logger *log.Logger, tty device) (*Host, error) {
	h := &Host{
		logger: logger,
		tty:    tty,
		input:  make(chan []byte, 64),
		quit:   make(chan struct{}),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		keys:   newKeyState(DefaultKeyHold),
	}
	go h.readLoop()

	if _, err := io.WriteString(tty, ansiClear+ansiHideCursor); err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("writing to terminal: %w", err)
	}
	return h, nil
}

// Kind returns host.Terminal.
func (h *Host) Kind() host.Kind {
	return host.Terminal
}

// Peripherals returns the terminal display, keyboard and bell.
func (h *Host) Peripherals() chip8.Peripherals {
	return chip8.Peripherals{
		Display: h,
		Input:   h,
		Audio:   h,
	}
}

// Run executes the emulation until it ends or the user presses Esc.
func (h *Host) Run(ctx context.Context, emulate func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-h.quit:
			h.logger.Debug("Quit key pressed")
			cancel()
		case <-ctx.Done():
		}
	}()

	return emulate(ctx)
}

// Render draws the display.
func (h *Host) Render(display *chip8.Display) error {
	h.sb.Reset()
	renderFrame(&h.sb, display)
	if _, err := io.WriteString(h.tty, h.sb.String()); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// Poll applies the key presses received since the last poll.
func (h *Host) Poll(keys *chip8.Keypad) error {
	for drained := false; !drained; {
		select {
		case input := <-h.input:
			h.keys.press(input)
		default:
			drained = true
		}
	}
	h.keys.apply(keys)
	return nil
}

// Beep rings the terminal bell when the beeper turns on.
func (h *Host) Beep(active bool) {
	if active && !h.beeping {
		_, _ = io.WriteString(h.tty, bell)
	}
	h.beeping = active
}

// Close stops reading key presses and restores the terminal state.
func (h *Host) Close() error {
	select {
	case <-h.stop:
		return nil
	default:
	}
	close(h.stop)
	<-h.done

	_, _ = io.WriteString(h.tty, ansiShowCursor+"\r\n")
	errRestore := h.tty.Restore()
	errClose := h.tty.Close()
	if err := errors.Join(errRestore, errClose); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// readLoop forwards received characters until the host is closed. The read
// timeout of the terminal bounds the delay to notice the close.
func (h *Host) readLoop() {
	defer close(h.done)

	buf := make([]byte, 32)
	for {
		select {
		case <-h.stop:
			return
		default:
		}

		n, err := h.tty.Read(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			h.logger.Error("Reading from terminal failed", log.Err(err))
			h.requestQuit()
			return
		}
		if n == 0 {
			continue
		}

		input := make([]byte, n)
		copy(input, buf[:n])
		if isQuit(input) {
			h.requestQuit()
			continue
		}

		select {
		case h.input <- input:
		default: // emulation is not polling, drop the input
		}
	}
}

func (h *Host) requestQuit() {
	h.quitOnce.Do(func() { close(h.quit) })
}
