package chip8

// DisplaySink receives the complete display after every instruction that changed it.
// The display must not be retained after Render returns.
type DisplaySink interface {
	Render(display *Display) error
}

// InputSource refreshes the keypad state. It is polled before every instruction
// fetch and repeatedly while the machine waits for a key.
type InputSource interface {
	Poll(keys *Keypad) error
}

// AudioSink is informed after every executed instruction whether the beeper
// should sound.
type AudioSink interface {
	Beep(active bool)
}

// Pacer delays execution between instructions to reach the target instruction rate.
type Pacer interface {
	Wait()
}

// Peripherals bundles the collaborators of a clock. Nil fields are replaced
// with implementations that do nothing.
type Peripherals struct {
	Display DisplaySink
	Input   InputSource
	Audio   AudioSink
	Pacer   Pacer
}

type nopPeripheral struct{}

func (nopPeripheral) Render(*Display) error { return nil }
func (nopPeripheral) Poll(*Keypad) error    { return nil }
func (nopPeripheral) Beep(bool)             {}
func (nopPeripheral) Wait()                 {}

func (p Peripherals) withDefaults() Peripherals {
	if p.Display == nil {
		p.Display = nopPeripheral{}
	}
	if p.Input == nil {
		p.Input = nopPeripheral{}
	}
	if p.Audio == nil {
		p.Audio = nopPeripheral{}
	}
	if p.Pacer == nil {
		p.Pacer = nopPeripheral{}
	}
	return p
}
