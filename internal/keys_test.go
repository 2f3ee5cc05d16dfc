package internal

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeySet(t *testing.T) {
	var keys KeySet
	_, ok := keys.First()
	assert.False(t, ok)

	keys = keys.With(0xC).With(0x3)
	assert.True(t, keys.Has(0xC))
	assert.True(t, keys.Has(0x3))
	assert.False(t, keys.Has(0x0))

	first, ok := keys.First()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x3), first)

	keys = keys.Without(0x3)
	first, _ = keys.First()
	assert.Equal(t, uint8(0xC), first)
	assert.Equal(t, keys, keys.Without(0x3))

	// only the low nibble names a key
	assert.True(t, keys.Has(0x1C))
}

func TestWaitKeyRewindsWhileNoKey(t *testing.T) {
	rig := newRig(t, ModeChip8, 0xF5, 0x0A)
	rig.vm.delayTimer = 10

	for frame := 0; frame < 5; frame++ {
		rig.steps(t, 3)
		assert.Equal(t, uint16(pcStartAddr), rig.vm.PC())
		rig.vm.UpdateTimers()
	}
	assert.Equal(t, uint8(5), rig.vm.DelayTimer())
	assert.False(t, rig.vm.latch.held)
	assert.Equal(t, 15, rig.input.polls)
}

func TestWaitKeyPressAndRelease(t *testing.T) {
	rig := newRig(t, ModeChip8, 0xF5, 0x0A, 0x60, 0x01)

	rig.input.keys = KeySet(0).With(0x9).With(0xB)
	rig.steps(t, 1)
	assert.Equal(t, uint16(pcStartAddr), rig.vm.PC())
	assert.True(t, rig.vm.latch.held)
	assert.Equal(t, uint8(0x9), rig.vm.latch.key)

	// still held, a second key joining does not change the latch
	rig.input.keys = rig.input.keys.With(0x1)
	rig.steps(t, 1)
	assert.Equal(t, uint16(pcStartAddr), rig.vm.PC())
	assert.Equal(t, uint8(0x9), rig.vm.latch.key)

	// releasing another key keeps waiting
	rig.input.keys = rig.input.keys.Without(0xB)
	rig.steps(t, 1)
	assert.Equal(t, uint16(pcStartAddr), rig.vm.PC())

	rig.input.keys = KeySet(0).With(0x1)
	rig.steps(t, 1)
	assert.Equal(t, uint8(0x9), rig.vm.V(5))
	assert.Equal(t, uint16(pcStartAddr+2), rig.vm.PC())
	assert.False(t, rig.vm.latch.held)

	rig.steps(t, 1)
	assert.Equal(t, uint8(1), rig.vm.V(0))
	assert.Equal(t, uint16(pcStartAddr+4), rig.vm.PC())
}
