package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/config"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func execute(t *testing.T, args ...string) (config.Runtime, bool, error) {
	t.Helper()

	var got config.Runtime
	called := false
	cmd := NewRootCommand("1.2.3", func(_ context.Context, logger *log.Logger, rt config.Runtime) error {
		assert.NotNil(t, logger)
		got = rt
		called = true
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())
	return got, called, err
}

func TestDefaults(t *testing.T) {
	rt, called, err := execute(t, "game.ch8")
	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "game.ch8", rt.Program)
	assert.Equal(t, internal.ModeChip8, rt.Mode)
	assert.Equal(t, internal.PacingFrame, rt.Pacing)
	assert.Equal(t, config.FrontendSDL, rt.Frontend)
	assert.Equal(t, internal.InstructionsPerFrame, rt.IPF)
	assert.False(t, rt.Mute)
}

func TestFlags(t *testing.T) {
	rt, called, err := execute(t,
		"--mode", "xo-chip", "--frontend", "term", "--ipf", "30",
		"--pacing", "cycle", "--scale", "4", "--mute", "--trace", "game.ch8")
	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, internal.ModeXOChip, rt.Mode)
	assert.Equal(t, internal.PacingCycle, rt.Pacing)
	assert.Equal(t, config.FrontendTerm, rt.Frontend)
	assert.Equal(t, 30, rt.IPF)
	assert.Equal(t, 4, rt.Scale)
	assert.True(t, rt.Mute)
	assert.True(t, rt.Trace)
}

func TestInvalidInvocations(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing program", nil},
		{"two programs", []string{"a.ch8", "b.ch8"}},
		{"unknown flag", []string{"--turbo", "a.ch8"}},
		{"bad ipf", []string{"--ipf", "0", "a.ch8"}},
		{"bad frontend", []string{"--frontend", "x11", "a.ch8"}},
		{"ebiten with cycle pacing", []string{"--frontend", "ebiten", "--pacing", "cycle", "a.ch8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, called, err := execute(t, tt.args...)
			assert.Error(t, err)
			assert.False(t, called)
		})
	}
}

func TestInvalidModeIsFatal(t *testing.T) {
	_, called, err := execute(t, "--mode", "megachip", "a.ch8")
	assert.False(t, called)
	assert.True(t, errors.Is(err, internal.ErrInvalidMode))
}

func TestVersion(t *testing.T) {
	cmd := NewRootCommand("1.2.3", func(context.Context, *log.Logger, config.Runtime) error {
		t.Fatal("runner must not be called")
		return nil
	})
	out := &bytes.Buffer{}
	cmd.SetArgs([]string{"--version"})
	cmd.SetOut(out)

	assert.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.2.3")
}

func TestEmulateMissingProgram(t *testing.T) {
	rt, err := config.Options{
		Program:  "does-not-exist.ch8",
		Mode:     "chip8",
		Frontend: config.FrontendTerm,
		IPF:      1,
		Pacing:   "frame",
		Scale:    1,
		Mute:     true,
	}.Validate()
	assert.NoError(t, err)

	err = Emulate(context.Background(), log.NewTestLogger(t), rt)
	assert.True(t, errors.Is(err, internal.ErrLoad))
}

func TestAlreadyLogged(t *testing.T) {
	fault := &internal.ExecError{PC: 0x200, Opcode: 0x00EE, Fetched: true, Err: internal.ErrStackUnderflow}
	assert.True(t, AlreadyLogged(fault))
	assert.True(t, AlreadyLogged(fmt.Errorf("running: %w", fault)))

	assert.False(t, AlreadyLogged(internal.ErrLoad))
	assert.False(t, AlreadyLogged(errors.New("creating window")))
}
