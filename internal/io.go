package internal

import "github.com/mnafees/chopper/v2/pkg/screen"

// Display receives the screen operations of the VM
type Display interface {
	Clear()
	// Draw XORs flips into the host framebuffer and reports whether a lit pixel went dark
	Draw(flips *screen.Pixels) bool
}

// Presenter is implemented by displays that flush to a window once per frame.
// Returning ErrStopped ends the run loop without error.
type Presenter interface {
	Present() error
}

// Audio switches the buzzer, both calls must be idempotent
type Audio interface {
	StartBeep()
	StopBeep()
}

// Input polls the keypad
type Input interface {
	PressedKeys() KeySet
}

// Devices bundles the host capabilities. Nil members are replaced by no-ops.
type Devices struct {
	Display Display
	Audio   Audio
	Input   Input
}

type nopDevice struct {
	fb screen.Framebuffer
}

func (d *nopDevice) Clear() { d.fb.Clear() }
func (d *nopDevice) Draw(flips *screen.Pixels) bool { return d.fb.Draw(flips) }
func (d *nopDevice) StartBeep() {}
func (d *nopDevice) StopBeep() {}
func (d *nopDevice) PressedKeys() KeySet { return 0 }

func (d Devices) withDefaults() Devices {
	nop := &nopDevice{}
	if d.Display == nil {
		d.Display = nop
	}
	if d.Audio == nil {
		d.Audio = nop
	}
	if d.Input == nil {
		d.Input = nop
	}
	return d
}
