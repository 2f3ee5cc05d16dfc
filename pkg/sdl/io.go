// Package sdl is the SDL2 window frontend of the VM
package sdl

import (
	"fmt"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/pkg/screen"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// IO is the input/output abstraction layer for the VM.
// It implements the Display, Presenter and Input capabilities.
type IO struct {
	window    *sdl.Window
	surface   *sdl.Surface
	pixelSize int32

	fb   screen.Framebuffer
	keys internal.KeySet
	quit bool
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(pixelSize int) *IO {
	return &IO{
		pixelSize: int32(pixelSize),
	}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		screen.Width*io.pixelSize, screen.Height*io.pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		io.Destroy()
		return fmt.Errorf("getting window surface: %w", err)
	}
	return io.redraw()
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		_ = io.window.Destroy()
		io.window = nil
	}
	sdl.Quit()
}

// Clear the framebuffer, the window follows on the next Present
func (io *IO) Clear() {
	io.fb.Clear()
}

// Draw XORs a sprite into the framebuffer
func (io *IO) Draw(flips *screen.Pixels) bool {
	return io.fb.Draw(flips)
}

// PressedKeys handles pending window events and returns the keypad keys currently held down
func (io *IO) PressedKeys() internal.KeySet {
	io.pumpEvents()
	return io.keys
}

// Present handles pending window events and redraws the window if the framebuffer changed.
// It returns internal.ErrStopped once the window was closed.
func (io *IO) Present() error {
	io.pumpEvents()
	if io.quit {
		return internal.ErrStopped
	}

	if io.window == nil || !io.fb.TakeDirty() {
		return nil
	}
	return io.redraw()
}

func (io *IO) pumpEvents() {
	if io.window == nil {
		return
	}
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		io.handleEvent(event)
	}
}

func (io *IO) handleEvent(event sdl.Event) {
	switch t := event.(type) {
	case *sdl.KeyboardEvent:
		code, ok := keymap(t.Keysym.Scancode)
		if !ok {
			return
		}
		switch t.GetType() {
		case sdl.KEYDOWN:
			io.keys = io.keys.With(code)
		case sdl.KEYUP:
			io.keys = io.keys.Without(code)
		}
	case *sdl.QuitEvent:
		io.quit = true
	}
}

// Draws the current framebuffer on screen
func (io *IO) redraw() error {
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return fmt.Errorf("filling window: %w", err)
	}
	for h := int32(0); h < screen.Height; h++ {
		for w := int32(0); w < screen.Width; w++ {
			if !io.fb.Lit(int(w), int(h)) {
				continue
			}
			rect := &sdl.Rect{X: w * io.pixelSize, Y: h * io.pixelSize, W: io.pixelSize, H: io.pixelSize}
			if err := io.surface.FillRect(rect, spriteColor); err != nil {
				return fmt.Errorf("drawing pixel: %w", err)
			}
		}
	}
	if err := io.window.UpdateSurface(); err != nil {
		return fmt.Errorf("updating window: %w", err)
	}
	return nil
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
var scancodes = map[sdl.Scancode]uint8{
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_V: 0xF,
}

func keymap(code sdl.Scancode) (uint8, bool) {
	key, ok := scancodes[code]
	return key, ok
}
