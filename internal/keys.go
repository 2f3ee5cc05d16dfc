package internal

import "math/bits"

// KeySet holds logical keypad keys 0x0-0xF as individual bits.
// So when 0 is pushed in the keypad, the 0'th bit will be set and so on.
type KeySet uint16

// Has returns whether key is in the set
func (k KeySet) Has(key uint8) bool {
	mask := KeySet(1) << (key & 0x0F)
	return k&mask == mask
}

// With returns the set with key added
func (k KeySet) With(key uint8) KeySet {
	return k | KeySet(1)<<(key&0x0F)
}

// Without returns the set with key removed
func (k KeySet) Without(key uint8) KeySet {
	return k &^ (KeySet(1) << (key & 0x0F))
}

// First returns the lowest key in the set
func (k KeySet) First() (uint8, bool) {
	if k == 0 {
		return 0, false
	}
	return uint8(bits.TrailingZeros16(uint16(k))), true
}

// keyLatch remembers the key FX0A saw pressed until it is released
type keyLatch struct {
	key  uint8
	held bool
}

func (l *keyLatch) hold(key uint8) {
	l.key = key
	l.held = true
}

func (l *keyLatch) release() {
	*l = keyLatch{}
}
