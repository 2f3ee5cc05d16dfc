// Package ebiten is the Ebitengine window frontend of the VM.
// Ebitengine paces the loop, one VM frame runs per tick.
package ebiten

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/pkg/screen"
)

var (
	litColor   = [4]byte{0x9F, 0xA8, 0xDA, 0xFF}
	unlitColor = [4]byte{0x1A, 0x23, 0x7E, 0xFF}
)

// keymap maps the QWERTY block 1234/QWER/ASDF/ZXCV onto the CHIP-8 keypad
var keymap = map[ebiten.Key]uint8{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// Framer runs one VM frame
type Framer interface {
	Frame() error
}

// Frontend implements the Display and Input capabilities on top of Ebitengine
type Frontend struct {
	title string
	scale int

	fb   screen.Framebuffer
	keys internal.KeySet
}

// New returns a frontend whose window shows every CHIP-8 pixel as scale x scale pixels
func New(title string, scale int) *Frontend {
	return &Frontend{
		title: title,
		scale: scale,
	}
}

// Clear turns off all pixels
func (f *Frontend) Clear() {
	f.fb.Clear()
}

// Draw XORs a sprite into the framebuffer
func (f *Frontend) Draw(flips *screen.Pixels) bool {
	return f.fb.Draw(flips)
}

// PressedKeys returns the keys sampled at the start of the current tick
func (f *Frontend) PressedKeys() internal.KeySet {
	return f.keys
}

// Run opens the window and blocks until it is closed, ctx is cancelled or a frame fails.
func (f *Frontend) Run(ctx context.Context, framer Framer) error {
	ebiten.SetWindowSize(screen.Width*f.scale, screen.Height*f.scale)
	ebiten.SetWindowTitle(f.title)
	ebiten.SetTPS(60)

	g := &game{
		ctx:      ctx,
		frontend: f,
		framer:   framer,
		rgba:     make([]byte, screen.Width*screen.Height*4),
	}
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return g.err
}

func (f *Frontend) pollKeys() {
	var keys internal.KeySet
	for key, code := range keymap {
		if ebiten.IsKeyPressed(key) {
			keys = keys.With(code)
		}
	}
	f.keys = keys
}

type game struct {
	ctx      context.Context
	frontend *Frontend
	framer   Framer
	err      error

	image *ebiten.Image
	rgba  []byte
}

func (g *game) Update() error {
	if err := g.ctx.Err(); err != nil {
		g.err = err
		return ebiten.Termination
	}

	g.frontend.pollKeys()
	if err := g.framer.Frame(); err != nil {
		if !errors.Is(err, internal.ErrStopped) {
			g.err = err
		}
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(dst *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(screen.Width, screen.Height)
		g.frontend.fb.TakeDirty()
		fillRGBA(g.rgba, g.frontend.fb.Pixels())
		g.image.WritePixels(g.rgba)
	} else if g.frontend.fb.TakeDirty() {
		fillRGBA(g.rgba, g.frontend.fb.Pixels())
		g.image.WritePixels(g.rgba)
	}
	dst.DrawImage(g.image, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return screen.Width, screen.Height
}

// fillRGBA renders pixels into an RGBA buffer of screen.Width*screen.Height*4 bytes
func fillRGBA(dst []byte, pixels screen.Pixels) {
	for y := range pixels {
		for x, lit := range pixels[y] {
			color := unlitColor
			if lit {
				color = litColor
			}
			copy(dst[(y*screen.Width+x)*4:], color[:])
		}
	}
}
