package config

import (
	"errors"
	"testing"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/retroenv/retrogolib/assert"
)

func TestValidate(t *testing.T) {
	opts := Default()
	opts.Program = "pong.ch8"
	opts.Mode = "xochip"
	opts.Pacing = "cycle"

	rt, err := opts.Validate()
	assert.NoError(t, err)
	assert.Equal(t, internal.ModeXOChip, rt.Mode)
	assert.Equal(t, internal.PacingCycle, rt.Pacing)
	assert.Equal(t, "pong.ch8", rt.Program)
	assert.Equal(t, 12, rt.IPF)
	assert.Equal(t, FrontendSDL, rt.Frontend)
	assert.Equal(t, 20, rt.Scale)
}

func TestValidateCopiesFlags(t *testing.T) {
	opts := Default()
	opts.Program = "pong.ch8"
	opts.Frontend = FrontendEbiten
	opts.Mute, opts.Debug, opts.Quiet, opts.Trace = true, true, true, true

	rt, err := opts.Validate()
	assert.NoError(t, err)
	assert.Equal(t, FrontendEbiten, rt.Frontend)
	assert.Equal(t, internal.PacingFrame, rt.Pacing)
	assert.True(t, rt.Mute)
	assert.True(t, rt.Debug)
	assert.True(t, rt.Quiet)
	assert.True(t, rt.Trace)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"mode", func(o *Options) { o.Mode = "megachip" }},
		{"pacing", func(o *Options) { o.Pacing = "vsync" }},
		{"frontend", func(o *Options) { o.Frontend = "opengl" }},
		{"ipf", func(o *Options) { o.IPF = 0 }},
		{"scale", func(o *Options) { o.Scale = -1 }},
		{"program", func(o *Options) { o.Program = "" }},
		{"ebiten cycle pacing", func(o *Options) {
			o.Frontend = FrontendEbiten
			o.Pacing = "cycle"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			opts.Program = "pong.ch8"
			tt.modify(&opts)
			_, err := opts.Validate()
			assert.Error(t, err)
		})
	}
}

func TestValidateInvalidModeIsTyped(t *testing.T) {
	opts := Default()
	opts.Program = "pong.ch8"
	opts.Mode = "chip-48"
	_, err := opts.Validate()
	assert.True(t, errors.Is(err, internal.ErrInvalidMode))
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
