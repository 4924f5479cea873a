package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestLoad(t *testing.T) {
	t.Run("load program file", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.ch8", []byte{0x12, 0x34, 0x56, 0x78})

		loader := New(log.NewTestLogger(t))
		data, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, data, 4)
		assert.Equal(t, byte(0x12), data[0])
		assert.Equal(t, byte(0x78), data[3])
	})

	t.Run("load file with unknown extension", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.xyz", []byte{0x00, 0xE0})

		loader := New(log.NewTestLogger(t))
		data, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, data, 2)
	})

	t.Run("load largest program", func(t *testing.T) {
		tmpFile := createTempFile(t, "large.ch8", make([]byte, chip8.MaxProgramSize))

		loader := New(log.NewTestLogger(t))
		data, err := loader.Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, data, chip8.MaxProgramSize)
	})

	t.Run("error on oversized program", func(t *testing.T) {
		tmpFile := createTempFile(t, "huge.ch8", make([]byte, chip8.MaxProgramSize+100))

		loader := New(log.NewTestLogger(t))
		_, err := loader.Load(tmpFile)
		assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, "empty.ch8", nil)

		loader := New(log.NewTestLogger(t))
		_, err := loader.Load(tmpFile)
		assert.True(t, errors.Is(err, ErrEmptyProgram))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New(log.NewTestLogger(t))
		_, err := loader.Load("/nonexistent/file.ch8")
		assert.ErrorContains(t, err, "opening file")
	})
}

func TestLoadFromBytes(t *testing.T) {
	loader := New(log.NewTestLogger(t))

	data, err := loader.LoadFromBytes([]byte{0x00, 0xE0, 0x00})
	assert.NoError(t, err)
	assert.Len(t, data, 3)

	_, err = loader.LoadFromBytes(nil)
	assert.True(t, errors.Is(err, ErrEmptyProgram))

	_, err = loader.LoadFromBytes(make([]byte, chip8.MaxProgramSize+1))
	assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
