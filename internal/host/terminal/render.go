package terminal

import (
	"strings"

	"github.com/retroenv/chip8vm/internal/chip8"
)

const (
	ansiHome       = "\x1b[H"
	ansiClear      = "\x1b[2J"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
)

// renderFrame draws the display with half block characters, every text line
// shows two display rows. Lines end with CR LF as output post processing is
// disabled in raw mode.
func renderFrame(sb *strings.Builder, d *chip8.Display) {
	sb.WriteString(ansiHome)
	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := range chip8.DisplayWidth {
			top := d[y][x]
			bottom := d[y+1][x]
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
}
