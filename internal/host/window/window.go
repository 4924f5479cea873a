// Package window implements a host that runs the machine in a desktop window.
// The display is scaled to the window, the keypad is mapped to the keyboard
// and the beeper plays a square wave or a sample. The window stays open after
// the machine halted until it is closed or Esc is pressed.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/chip8vm/internal/host"
	"github.com/retroenv/chip8vm/internal/sound"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"
)

var (
	colorOn     = color.RGBA{R: 0xE0, G: 0xF0, B: 0xD0, A: 0xFF}
	colorOff    = color.RGBA{R: 0x10, G: 0x18, B: 0x10, A: 0xFF}
	colorStatus = color.RGBA{R: 0xFF, G: 0xC0, B: 0x00, A: 0xFF}
)

// keyMap maps the left hand block of a QWERTY keyboard to the hexadecimal keypad.
var keyMap = [chip8.KeyCount]ebiten.Key{
	0x1: ebiten.KeyDigit1, 0x2: ebiten.KeyDigit2, 0x3: ebiten.KeyDigit3, 0xC: ebiten.KeyDigit4,
	0x4: ebiten.KeyQ, 0x5: ebiten.KeyW, 0x6: ebiten.KeyE, 0xD: ebiten.KeyR,
	0x7: ebiten.KeyA, 0x8: ebiten.KeyS, 0x9: ebiten.KeyD, 0xE: ebiten.KeyF,
	0xA: ebiten.KeyZ, 0x0: ebiten.KeyX, 0xB: ebiten.KeyC, 0xF: ebiten.KeyV,
}

// Options configures a window host.
type Options struct {
	Title  string
	Scale  int
	Sample *sound.Sample // beep sound, a square wave if nil
}

// Host runs the machine in a window. Rendering and input handling happen on
// the goroutine that calls Run, the emulation runs in the background.
type Host struct {
	logger *log.Logger
	opts   Options

	mu     sync.Mutex
	frame  chip8.Display
	keys   chip8.Keypad
	result error // error of the finished emulation
	ended  bool

	clock  atomic.Pointer[chip8.Clock]
	ctx    context.Context
	stream *sound.Stream
	player *audio.Player
	image  *ebiten.Image
	pixels []byte
}

// New creates the window host and starts the audio output.
func New(logger *log.Logger, opts Options) (*Host, error) {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	sample := opts.Sample
	if sample == nil {
		sample = sound.NewSquareWave(sound.SampleRate, sound.DefaultFrequency, sound.DefaultVolume)
	}

	h := &Host{
		logger: logger,
		opts:   opts,
		stream: sound.NewStream(sample.Resample(sound.SampleRate)),
		image:  ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight),
		pixels: make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4),
	}

	player, err := audio.NewContext(sound.SampleRate).NewPlayer(h.stream)
	if err != nil {
		return nil, fmt.Errorf("creating audio player: %w", err)
	}
	h.player = player
	h.player.Play()
	return h, nil
}

// Kind returns host.Window.
func (h *Host) Kind() host.Kind {
	return host.Window
}

// Peripherals returns the window display, keyboard and speaker.
func (h *Host) Peripherals() chip8.Peripherals {
	return chip8.Peripherals{
		Display: h,
		Input:   h,
		Audio:   h.stream,
	}
}

// Observe shows the execution state of the clock in the window.
func (h *Host) Observe(clock *chip8.Clock) {
	h.clock.Store(clock)
}

// Run executes the emulation in the background and runs the window event loop
// until the window is closed. Closing the window cancels the emulation.
func (h *Host) Run(ctx context.Context, emulate func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	h.ctx = ctx

	errCh := make(chan error, 1)
	go func() {
		err := emulate(ctx)
		h.mu.Lock()
		h.ended = true
		h.result = err
		h.mu.Unlock()
		h.stream.Beep(false)
		errCh <- err
	}()

	ebiten.SetWindowSize(chip8.DisplayWidth*h.opts.Scale, chip8.DisplayHeight*h.opts.Scale)
	ebiten.SetWindowTitle(h.opts.Title)
	runErr := ebiten.RunGame(h)

	cancel()
	err := <-errCh
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		return fmt.Errorf("running window: %w", runErr)
	}
	return err
}

// Render copies the display for the next drawn frame.
func (h *Host) Render(display *chip8.Display) error {
	h.mu.Lock()
	h.frame = *display
	h.mu.Unlock()
	return nil
}

// Poll returns the keys pressed at the last window update.
func (h *Host) Poll(keys *chip8.Keypad) error {
	h.mu.Lock()
	*keys = h.keys
	h.mu.Unlock()
	return nil
}

// Close stops the audio output.
func (h *Host) Close() error {
	if err := h.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}

// Update reads the keyboard, it is called by the window event loop.
func (h *Host) Update() error {
	if h.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var keys chip8.Keypad
	for key, ebitenKey := range keyMap {
		keys[key] = ebiten.IsKeyPressed(ebitenKey)
	}

	h.mu.Lock()
	h.keys = keys
	h.mu.Unlock()
	return nil
}

// Draw draws the display and the status overlay.
func (h *Host) Draw(screen *ebiten.Image) {
	h.mu.Lock()
	framePixels(&h.frame, h.pixels)
	status := h.status()
	h.mu.Unlock()

	h.image.WritePixels(h.pixels)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(h.opts.Scale), float64(h.opts.Scale))
	screen.DrawImage(h.image, op)

	if status != "" {
		text.Draw(screen, status, basicfont.Face7x13, 4, 14, colorStatus)
	}
}

// Layout returns the fixed window size.
func (h *Host) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth * h.opts.Scale, chip8.DisplayHeight * h.opts.Scale
}

// status returns the overlay text, the lock must be held.
func (h *Host) status() string {
	switch {
	case h.ended && h.result != nil:
		return "ERROR: " + h.result.Error()
	case h.ended:
		return "HALTED"
	}
	if clock := h.clock.Load(); clock != nil && clock.State() == chip8.StateWaitingKey {
		return "WAITING FOR KEY"
	}
	return ""
}

// framePixels converts the display to RGBA pixels.
func framePixels(d *chip8.Display, pixels []byte) {
	i := 0
	for _, row := range d {
		for _, set := range row {
			c := colorOff
			if set {
				c = colorOn
			}
			pixels[i] = c.R
			pixels[i+1] = c.G
			pixels[i+2] = c.B
			pixels[i+3] = c.A
			i += 4
		}
	}
}

var _ host.Observer = (*Host)(nil)
