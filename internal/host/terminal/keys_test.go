package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		input byte
		key   uint8
		ok    bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'Q', 0x4, true},
		{'f', 0xE, true},
		{'x', 0x0, true},
		{'V', 0xF, true},
		{'5', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			key, ok := mapKey(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestKeyMapCoversKeypad(t *testing.T) {
	var seen chip8.Keypad
	for _, key := range keyMap {
		seen[key] = true
	}
	for key := range seen {
		assert.True(t, seen[key])
	}
}

func TestKeyStateHold(t *testing.T) {
	now := time.Unix(1000, 0)
	k := newKeyState(100 * time.Millisecond)
	k.now = func() time.Time { return now }

	var keys chip8.Keypad
	k.apply(&keys)
	_, ok := keys.FirstPressed()
	assert.False(t, ok)

	k.press([]byte("wz9"))
	k.apply(&keys)
	assert.True(t, keys[0x5])
	assert.True(t, keys[0xA])
	assert.False(t, keys[0x9])

	now = now.Add(60 * time.Millisecond)
	k.press([]byte("w"))
	now = now.Add(60 * time.Millisecond)
	k.apply(&keys)
	assert.True(t, keys[0x5])
	assert.False(t, keys[0xA])

	now = now.Add(time.Second)
	k.apply(&keys)
	assert.False(t, keys[0x5])
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit([]byte{0x1b}))
	assert.True(t, isQuit([]byte{'w', 0x03}))
	assert.False(t, isQuit([]byte("\x1b[A")))
	assert.False(t, isQuit([]byte("qwer")))
}

func TestRenderFrame(t *testing.T) {
	var d chip8.Display
	d[0][0] = true
	d[1][0] = true
	d[0][1] = true
	d[1][2] = true

	var sb strings.Builder
	renderFrame(&sb, &d)
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, ansiHome))
	lines := strings.Split(strings.TrimPrefix(out, ansiHome), "\r\n")
	assert.Len(t, lines, chip8.DisplayHeight/2+1)
	assert.True(t, strings.HasPrefix(lines[0], "█▀▄ "))
	assert.Equal(t, strings.Repeat(" ", chip8.DisplayWidth), lines[1])
}
