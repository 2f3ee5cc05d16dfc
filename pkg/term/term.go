// Package term is a text terminal frontend of the VM. It renders the
// display with half block characters and reads the keypad from raw stdin.
package term

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/pkg/screen"
	"golang.org/x/term"
)

// HoldDuration is how long a key counts as pressed after its last byte.
// Terminals only report key repeats, never releases.
const HoldDuration = 150 * time.Millisecond

const (
	ctrlC = 0x03

	cursorHome = "\x1b[H"
	clearAll   = "\x1b[2J"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

var keymap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Terminal implements the Display, Presenter and Input capabilities on a text terminal.
type Terminal struct {
	in  io.Reader
	out io.Writer
	now func() time.Time

	fd       int
	oldState *term.State

	mu      sync.Mutex
	pressed [16]time.Time
	quit    bool

	fb     screen.Framebuffer
	render bytes.Buffer
}

// New returns a terminal frontend reading keys from in and rendering to out.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  in,
		out: out,
		now: time.Now,
		fd:  -1,
	}
}

// Start switches a terminal input into raw mode and begins reading keys.
func (t *Terminal) Start() error {
	if f, ok := t.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		state, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("setting raw mode: %w", err)
		}
		t.oldState = state
	}

	if _, err := io.WriteString(t.out, clearAll+hideCursor); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}

	go t.readKeys()
	return nil
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	_, _ = io.WriteString(t.out, showCursor+"\r\n")
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

func (t *Terminal) readKeys() {
	buf := make([]byte, 16)
	for {
		n, err := t.in.Read(buf)
		for _, b := range buf[:n] {
			t.handleByte(b)
		}
		if err != nil {
			return
		}
	}
}

func (t *Terminal) handleByte(b byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if b == ctrlC {
		t.quit = true
		return
	}
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	if key, ok := keymap[b]; ok {
		t.pressed[key] = t.now()
	}
}

// Clear turns off all pixels
func (t *Terminal) Clear() {
	t.fb.Clear()
}

// Draw XORs a sprite into the framebuffer
func (t *Terminal) Draw(flips *screen.Pixels) bool {
	return t.fb.Draw(flips)
}

// PressedKeys returns the keys seen within the last HoldDuration
func (t *Terminal) PressedKeys() internal.KeySet {
	t.mu.Lock()
	defer t.mu.Unlock()

	var keys internal.KeySet
	now := t.now()
	for key, at := range t.pressed {
		if !at.IsZero() && now.Sub(at) < HoldDuration {
			keys = keys.With(uint8(key))
		}
	}
	return keys
}

// Present returns internal.ErrStopped after Ctrl-C and otherwise renders the
// framebuffer if it changed.
func (t *Terminal) Present() error {
	t.mu.Lock()
	quit := t.quit
	t.mu.Unlock()
	if quit {
		return internal.ErrStopped
	}

	if !t.fb.TakeDirty() {
		return nil
	}
	t.renderFrame()
	if _, err := t.out.Write(t.render.Bytes()); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// renderFrame packs two pixel rows into every text row.
func (t *Terminal) renderFrame() {
	t.render.Reset()
	t.render.WriteString(cursorHome)

	for y := 0; y < screen.Height; y += 2 {
		for x := 0; x < screen.Width; x++ {
			upper := t.fb.Lit(x, y)
			lower := t.fb.Lit(x, y+1)
			switch {
			case upper && lower:
				t.render.WriteString("█")
			case upper:
				t.render.WriteString("▀")
			case lower:
				t.render.WriteString("▄")
			default:
				t.render.WriteByte(' ')
			}
		}
		t.render.WriteString("\r\n")
	}
}
