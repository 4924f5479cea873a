package chip8

import (
	"fmt"
)

// CHIP-8 memory layout and machine dimensions.
const (
	// MemorySize is the size of the addressable memory (4KB).
	MemorySize = 0x1000

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = MemorySize - 1

	// ProgramStart is the memory address where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// RegisterCount is the number of general-purpose V registers.
	RegisterCount = 16

	// FlagRegister is the index of VF, the implicit carry/borrow/collision output.
	FlagRegister = 0xF

	// StackSize is the maximum number of nested subroutine calls.
	StackSize = 16

	// InstructionSize is the size of every instruction in bytes.
	InstructionSize = 2
)

// RandomSource provides the random bytes used by the RND instruction.
type RandomSource interface {
	Byte() uint8
}

// Machine contains the complete state of a CHIP-8 virtual machine.
// It is owned by a single Clock and must not be shared between goroutines.
type Machine struct {
	PC uint16               // program counter
	I  uint16               // index register
	V  [RegisterCount]uint8 // general-purpose registers, VF is the flag register

	Stack [StackSize]uint16 // return addresses
	SP    uint8             // number of used stack entries

	DelayTimer uint8
	SoundTimer uint8

	Memory  [MemorySize]byte
	Keys    Keypad
	Display Display

	rnd RandomSource

	displayChanged bool  // set by CLS and DRW, consumed by the clock
	waitRegister   uint8 // destination register of a pending key wait
	waiting        bool  // LD Vx, K has been executed and no key was stored yet
}

// New returns a new machine with all state zeroed except the program counter,
// which points to ProgramStart. The random source is used by the RND instruction
// and must not be nil.
func New(rnd RandomSource) *Machine {
	return &Machine{
		PC:  ProgramStart,
		rnd: rnd,
	}
}

// LoadProgram copies the program image verbatim into memory starting at ProgramStart.
func (m *Machine) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(m.Memory[ProgramStart:], program)
	return nil
}

// SoundActive returns whether the sound timer is nonzero and the beeper should sound.
func (m *Machine) SoundActive() bool {
	return m.SoundTimer > 0
}

// Waiting returns whether the machine is suspended by a key wait instruction.
func (m *Machine) Waiting() bool {
	return m.waiting
}

// fetch reads the big-endian instruction word at PC and advances PC to the next instruction.
func (m *Machine) fetch() (uint16, error) {
	pc := m.PC
	if int(pc)+1 > MaxAddress {
		return 0, fmt.Errorf("%w: fetching instruction at $%04X", ErrOutOfBounds, pc)
	}
	m.PC += InstructionSize
	return uint16(m.Memory[pc])<<8 | uint16(m.Memory[pc+1]), nil
}

// checkRange verifies that length bytes starting at address are inside memory.
func checkRange(address uint16, length int) error {
	if int(address)+length > MemorySize {
		return fmt.Errorf("%w: accessing %d bytes at $%04X", ErrOutOfBounds, length, address)
	}
	return nil
}

// tickTimers decrements both timers if they are nonzero.
func (m *Machine) tickTimers() {
	if m.DelayTimer > 0 {
		m.DelayTimer--
	}
	if m.SoundTimer > 0 {
		m.SoundTimer--
	}
}

// Snapshot contains the register state of a machine, used for diagnostics.
type Snapshot struct {
	PC         uint16
	I          uint16
	SP         uint8
	V          [RegisterCount]uint8
	Stack      []uint16
	DelayTimer uint8
	SoundTimer uint8
}

// Snapshot returns a copy of the register state including the used stack entries.
func (m *Machine) Snapshot() Snapshot {
	stack := make([]uint16, m.SP)
	copy(stack, m.Stack[:m.SP])
	return Snapshot{
		PC:         m.PC,
		I:          m.I,
		SP:         m.SP,
		V:          m.V,
		Stack:      stack,
		DelayTimer: m.DelayTimer,
		SoundTimer: m.SoundTimer,
	}
}

// String returns a single line description of the register state.
func (s Snapshot) String() string {
	return fmt.Sprintf("PC=$%04X I=$%04X SP=%d DT=%d ST=%d V=% X",
		s.PC, s.I, s.SP, s.DelayTimer, s.SoundTimer, s.V[:])
}
