package screen

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFramebufferDraw(t *testing.T) {
	var fb Framebuffer
	var flips Pixels
	flips[0][0] = true
	flips[31][63] = true

	assert.False(t, fb.Draw(&flips))
	assert.True(t, fb.Lit(0, 0))
	assert.True(t, fb.Lit(63, 31))
	assert.False(t, fb.Lit(1, 0))

	assert.True(t, fb.Draw(&flips))
	assert.Equal(t, Pixels{}, fb.Pixels())
}

func TestFramebufferPartialCollision(t *testing.T) {
	var fb Framebuffer
	var first, second Pixels
	first[5][5] = true
	second[5][6] = true

	assert.False(t, fb.Draw(&first))
	assert.False(t, fb.Draw(&second))
	second[5][5] = true
	assert.True(t, fb.Draw(&second))
	assert.False(t, fb.Lit(5, 5))
	assert.False(t, fb.Lit(6, 5))
}

func TestFramebufferClearAndDirty(t *testing.T) {
	var fb Framebuffer
	assert.False(t, fb.TakeDirty())

	var flips Pixels
	flips[2][3] = true
	fb.Draw(&flips)
	assert.True(t, fb.TakeDirty())
	assert.False(t, fb.TakeDirty())

	fb.Clear()
	assert.True(t, fb.TakeDirty())
	assert.False(t, fb.Lit(3, 2))
}
