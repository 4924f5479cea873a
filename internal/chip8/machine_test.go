package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	m := New(fixedRandom(0))

	assert.Equal(t, uint16(ProgramStart), m.PC)
	assert.Equal(t, uint16(0), m.I)
	assert.Equal(t, uint8(0), m.SP)
	assert.Equal(t, [RegisterCount]uint8{}, m.V)
	assert.False(t, m.SoundActive())
	assert.False(t, m.Waiting())
}

func TestLoadProgram(t *testing.T) {
	t.Run("program copied to program start", func(t *testing.T) {
		m := New(fixedRandom(0))
		assert.NoError(t, m.LoadProgram([]byte{0x12, 0x34, 0x56}))
		assert.Equal(t, byte(0x12), m.Memory[ProgramStart])
		assert.Equal(t, byte(0x34), m.Memory[ProgramStart+1])
		assert.Equal(t, byte(0x56), m.Memory[ProgramStart+2])
		assert.Equal(t, byte(0x00), m.Memory[ProgramStart-1])
	})

	t.Run("maximum size fits", func(t *testing.T) {
		m := New(fixedRandom(0))
		program := make([]byte, MaxProgramSize)
		program[len(program)-1] = 0xAB
		assert.NoError(t, m.LoadProgram(program))
		assert.Equal(t, byte(0xAB), m.Memory[MaxAddress])
	})

	t.Run("oversize program is rejected", func(t *testing.T) {
		m := New(fixedRandom(0))
		err := m.LoadProgram(make([]byte, MaxProgramSize+1))
		assert.True(t, errors.Is(err, ErrProgramTooLarge))
	})
}

func TestFetch(t *testing.T) {
	m := newTestMachine(t, 0xA123)

	word, err := m.fetch()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xA123), word)
	assert.Equal(t, uint16(ProgramStart+2), m.PC)

	m.PC = MaxAddress
	_, err = m.fetch()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestTickTimers(t *testing.T) {
	m := New(fixedRandom(0))
	m.DelayTimer = 2
	m.SoundTimer = 1

	m.tickTimers()
	assert.Equal(t, uint8(1), m.DelayTimer)
	assert.Equal(t, uint8(0), m.SoundTimer)

	m.tickTimers()
	m.tickTimers()
	assert.Equal(t, uint8(0), m.DelayTimer)
	assert.Equal(t, uint8(0), m.SoundTimer)
}

func TestSnapshot(t *testing.T) {
	m := New(fixedRandom(0))
	m.V[3] = 0x42
	m.Stack[0] = 0x202
	m.SP = 1

	s := m.Snapshot()
	assert.Equal(t, uint8(0x42), s.V[3])
	assert.Equal(t, 1, len(s.Stack))
	assert.Equal(t, uint16(0x202), s.Stack[0])
	assert.Contains(t, s.String(), "PC=$0200")

	// the snapshot is a copy
	m.V[3] = 0
	assert.Equal(t, uint8(0x42), s.V[3])
}
