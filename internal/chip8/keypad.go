package chip8

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

// Keypad holds the pressed state of the 16 keys 0x0-0xF.
type Keypad [KeyCount]bool

// Pressed returns whether the given key is pressed, the key is masked to 0-15.
func (k *Keypad) Pressed(key uint8) bool {
	return k[key&0xF]
}

// FirstPressed returns the lowest pressed key.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for i, pressed := range k {
		if pressed {
			return uint8(i), true
		}
	}
	return 0, false
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	*k = Keypad{}
}
