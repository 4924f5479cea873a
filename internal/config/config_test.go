package config

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/limiter"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateClockConfig(t *testing.T) {
	opts := options.NewProgram()
	opts.Cycles = 500
	opts.Trace = true

	cfg := CreateClockConfig(opts)
	assert.Equal(t, uint64(500), cfg.MaxCycles)
	assert.True(t, cfg.Trace)
}

func TestCreatePacer(t *testing.T) {
	opts := options.NewProgram()
	pacer := CreatePacer(opts)
	lim, ok := pacer.(*limiter.Limiter)
	assert.True(t, ok)
	assert.Equal(t, options.DefaultRate, lim.Rate())

	opts.Rate = 0
	assert.Nil(t, CreatePacer(opts))
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
