package chip8

import "strings"

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome bitmap, indexed by row and then column.
type Display [DisplayHeight][DisplayWidth]bool

// Clear unsets all pixels.
func (d *Display) Clear() {
	*d = Display{}
}

// Pixel returns whether the pixel at the given column and row is set.
// Coordinates wrap around the display edges.
func (d *Display) Pixel(x, y int) bool {
	return d[y%DisplayHeight][x%DisplayWidth]
}

// DrawSprite XORs the sprite rows onto the display with the top left corner at x, y.
// Each row byte holds 8 pixels, the most significant bit is the leftmost pixel.
// Both coordinates wrap independently for every pixel. The returned value reports
// whether any pixel was erased by the XOR.
func (d *Display) DrawSprite(x, y uint8, rows []byte) bool {
	var collision bool
	for row, bits := range rows {
		py := (int(y) + row) % DisplayHeight
		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := (int(x) + col) % DisplayWidth
			if d[py][px] {
				collision = true
			}
			d[py][px] = !d[py][px]
		}
	}
	return collision
}

// String renders the display as text lines, set pixels as '#' and unset pixels as '.'.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow(DisplayHeight * (DisplayWidth + 1))
	for _, row := range d {
		for _, set := range row {
			if set {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
