//go:build linux || darwin || freebsd || netbsd || openbsd

package terminal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

var errWrite = errors.New("write failed")

type fakeTTY struct {
	input chan []byte

	mu       sync.Mutex
	output   strings.Builder
	failing  bool
	restored bool
	closed   bool
}

func newFakeTTY(failing bool) *fakeTTY {
	return &fakeTTY{
		input:   make(chan []byte, 4),
		failing: failing,
	}
}

func (f *fakeTTY) Read(p []byte) (int, error) {
	select {
	case data := <-f.input:
		return copy(p, data), nil
	case <-time.After(time.Millisecond):
		return 0, nil
	}
}

func (f *fakeTTY) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return 0, errWrite
	}
	return f.output.Write(p)
}

func (f *fakeTTY) Restore() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restored = true
	return nil
}

func (f *fakeTTY) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeTTY) state() (string, bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.output.String(), f.restored, f.closed
}

func TestNewHostWriteFailureRestoresTerminal(t *testing.T) {
	tty := newFakeTTY(true)

	type result struct {
		h   *Host
		err error
	}
	results := make(chan result, 1)
	go func() {
		h, err := newHost(log.NewTestLogger(t), tty)
		results <- result{h, err}
	}()

	select {
	case res := <-results:
		assert.True(t, res.h == nil)
		assert.ErrorContains(t, res.err, "writing to terminal")
	case <-time.After(2 * time.Second):
		t.Fatal("creating the host did not return after a failed write")
	}

	_, restored, closed := tty.state()
	assert.True(t, restored)
	assert.True(t, closed)
}

func TestHostPollAndClose(t *testing.T) {
	tty := newFakeTTY(false)
	h, err := newHost(log.NewTestLogger(t), tty)
	assert.NoError(t, err)

	tty.input <- []byte("q")

	var keys chip8.Keypad
	deadline := time.Now().Add(2 * time.Second)
	for !keys[0x4] && time.Now().Before(deadline) {
		assert.NoError(t, h.Poll(&keys))
		time.Sleep(time.Millisecond)
	}
	assert.True(t, keys[0x4])

	assert.NoError(t, h.Close())
	assert.NoError(t, h.Close())

	output, restored, closed := tty.state()
	assert.True(t, strings.HasPrefix(output, ansiClear+ansiHideCursor))
	assert.True(t, strings.HasSuffix(output, ansiShowCursor+"\r\n"))
	assert.True(t, restored)
	assert.True(t, closed)
}

func TestHostRunQuitsOnEscape(t *testing.T) {
	tty := newFakeTTY(false)
	h, err := newHost(log.NewTestLogger(t), tty)
	assert.NoError(t, err)
	defer func() { _ = h.Close() }()

	tty.input <- []byte{keyEscape}

	err = h.Run(context.Background(), func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
			return nil
		}
	})
	assert.True(t, errors.Is(err, context.Canceled))
}
