// Package screen holds the host side shadow of the CHIP-8 display.
package screen

// Display dimensions in pixels
const (
	Width  = 64
	Height = 32
)

// Pixels is a full screen grid indexed as [row][column].
// The interpreter fills one with the pixels a sprite flips and hands it to the display.
type Pixels [Height][Width]bool

// Framebuffer is the XOR target every frontend draws into
type Framebuffer struct {
	pixels Pixels
	dirty  bool
}

// Clear turns every pixel off
func (fb *Framebuffer) Clear() {
	fb.pixels = Pixels{}
	fb.dirty = true
}

// Draw XORs flips into the framebuffer and reports whether any lit pixel was turned off.
func (fb *Framebuffer) Draw(flips *Pixels) bool {
	collision := false
	for y := range flips {
		for x, flip := range flips[y] {
			if !flip {
				continue
			}
			if fb.pixels[y][x] {
				collision = true
			}
			fb.pixels[y][x] = !fb.pixels[y][x]
		}
	}
	fb.dirty = true
	return collision
}

// Lit returns whether the pixel at column x, row y is on
func (fb *Framebuffer) Lit(x, y int) bool {
	return fb.pixels[y][x]
}

// Pixels returns a copy of the current framebuffer
func (fb *Framebuffer) Pixels() Pixels {
	return fb.pixels
}

// TakeDirty reports whether the framebuffer changed since the last call and resets the flag.
func (fb *Framebuffer) TakeDirty() bool {
	dirty := fb.dirty
	fb.dirty = false
	return dirty
}
