// Package terminal implements a host that runs the machine in the controlling
// terminal. The display is drawn with block characters, the keypad is mapped to
// the left hand block of the keyboard and the beeper rings the terminal bell.
// Esc or Ctrl+C quits.
//
// Terminals report key presses but no key releases, a key counts as held for
// DefaultKeyHold after its last character was received.
package terminal
