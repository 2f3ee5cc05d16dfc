// Package beep plays the CHIP-8 buzzer tone through the system audio device.
package beep

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Tone defaults
const (
	SampleRate = 44100
	Frequency  = 440
	Volume     = 0.2
)

// Beeper switches a square wave on and off
type Beeper struct {
	ctx    *oto.Context
	player *oto.Player

	mutex   sync.Mutex
	playing bool
}

// New opens the audio device. Only one Beeper can exist per process.
func New() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	return &Beeper{
		ctx:    ctx,
		player: ctx.NewPlayer(NewSquareWave(SampleRate, Frequency, Volume)),
	}, nil
}

// StartBeep starts the tone if it is not already playing
func (b *Beeper) StartBeep() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if !b.playing {
		b.player.Play()
		b.playing = true
	}
}

// StopBeep silences the tone if it is playing
func (b *Beeper) StopBeep() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.playing {
		b.player.Pause()
		b.playing = false
	}
}

// Close releases the player
func (b *Beeper) Close() error {
	b.StopBeep()
	return b.player.Close()
}

// SquareWave is an endless mono float32 little endian square wave
type SquareWave struct {
	period    int
	amplitude float32
	pos       int
}

// NewSquareWave returns a square wave of freq Hz at sampleRate
func NewSquareWave(sampleRate, freq int, amplitude float32) *SquareWave {
	period := sampleRate / freq
	if period < 2 {
		period = 2
	}
	return &SquareWave{
		period:    period,
		amplitude: amplitude,
	}
}

// Read fills p with whole samples, a trailing partial sample is left untouched.
func (w *SquareWave) Read(p []byte) (int, error) {
	n := len(p) / 4 * 4
	for i := 0; i < n; i += 4 {
		sample := w.amplitude
		if w.pos >= w.period/2 {
			sample = -w.amplitude
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(sample))
		w.pos = (w.pos + 1) % w.period
	}
	return n, nil
}
