package internal

import (
	"testing"
	"time"

	"github.com/mnafees/chopper/v2/pkg/screen"
	"github.com/retroenv/retrogolib/assert"
)

type fakeDisplay struct {
	screen.Framebuffer
	clears   int
	draws    int
	presents int
	stopAt   int // Present returns ErrStopped on this call, 0 disables
}

func (d *fakeDisplay) Clear() {
	d.clears++
	d.Framebuffer.Clear()
}

func (d *fakeDisplay) Draw(flips *screen.Pixels) bool {
	d.draws++
	return d.Framebuffer.Draw(flips)
}

func (d *fakeDisplay) Present() error {
	d.presents++
	if d.stopAt != 0 && d.presents >= d.stopAt {
		return ErrStopped
	}
	return nil
}

type fakeAudio struct {
	beeping bool
	starts  int
	stops   int
}

func (a *fakeAudio) StartBeep() {
	a.beeping = true
	a.starts++
}

func (a *fakeAudio) StopBeep() {
	a.beeping = false
	a.stops++
}

type fakeInput struct {
	keys  KeySet
	polls int
}

func (i *fakeInput) PressedKeys() KeySet {
	i.polls++
	return i.keys
}

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
	tick   time.Duration // added to now on every Now call
}

func (c *fakeClock) Now() time.Time {
	now := c.now
	c.now = c.now.Add(c.tick)
	return now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

type testRig struct {
	vm      *C8VM
	display *fakeDisplay
	audio   *fakeAudio
	input   *fakeInput
}

func newRig(t *testing.T, mode Mode, program ...byte) *testRig {
	t.Helper()
	rig := &testRig{
		display: &fakeDisplay{},
		audio:   &fakeAudio{},
		input:   &fakeInput{},
	}
	rig.vm = NewC8VM(mode, Devices{
		Display: rig.display,
		Audio:   rig.audio,
		Input:   rig.input,
	}, WithRandom(func() uint8 { return 0xA5 }))
	assert.NoError(t, rig.vm.LoadProgram(program))
	return rig
}

// steps executes n instructions and fails the test on any error
func (r *testRig) steps(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		assert.NoError(t, r.vm.Step())
	}
}

// exec runs a single instruction word placed at the program counter
func (r *testRig) exec(t *testing.T, word uint16) error {
	t.Helper()
	pc := r.vm.pc
	r.vm.memory[pc] = uint8(word >> 8)
	r.vm.memory[pc+1] = uint8(word)
	return r.vm.Step()
}
