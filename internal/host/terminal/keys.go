package terminal

import (
	"time"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/set"
)

// DefaultKeyHold is the duration a key counts as pressed after its last
// character was received. Terminals only report key presses, repeated
// characters of a held key keep it pressed.
const DefaultKeyHold = 150 * time.Millisecond

const (
	keyEscape = 0x1b
	keyCtrlC  = 0x03
)

// keyMap maps the left hand block of a QWERTY keyboard to the hexadecimal keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keyMap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// mapKey returns the keypad key for a received character.
func mapKey(b byte) (uint8, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := keyMap[b]
	return key, ok
}

// keyState emulates held keys from a stream of key press characters.
type keyState struct {
	hold      time.Duration
	lastPress [chip8.KeyCount]time.Time
	now       func() time.Time
}

func newKeyState(hold time.Duration) *keyState {
	return &keyState{
		hold: hold,
		now:  time.Now,
	}
}

// press marks all mapped keys of the received characters as pressed.
func (k *keyState) press(input []byte) {
	pressed := set.New[uint8]()
	for _, b := range input {
		if key, ok := mapKey(b); ok {
			pressed.Add(key)
		}
	}

	now := k.now()
	for key := range uint8(chip8.KeyCount) {
		if pressed.Contains(key) {
			k.lastPress[key] = now
		}
	}
}

// apply writes the keys that are still held to the keypad.
func (k *keyState) apply(keys *chip8.Keypad) {
	now := k.now()
	for key, last := range k.lastPress {
		keys[key] = !last.IsZero() && now.Sub(last) < k.hold
	}
}

// isQuit returns whether the input contains Ctrl+C or a single Esc that is not
// the start of an escape sequence.
func isQuit(input []byte) bool {
	for i, b := range input {
		if b == keyCtrlC {
			return true
		}
		if b == keyEscape && i == len(input)-1 {
			return true
		}
	}
	return false
}
