package peripherals

import (
	"encoding/binary"
	"sync/atomic"

	"gochip8/pkg/cpu"
)

const (
	BuzzerPeripheralType = "Buzzer"

	// DefaultToneHz is the pitch of the buzzer square wave.
	DefaultToneHz = 440
	// DefaultSampleRate is the PCM rate used when none is configured.
	DefaultSampleRate = 44100

	amplitude = 0x1800
)

// Buzzer is a square wave generator gated by the sound timer. Frame is called
// from the emulation goroutine while Read is called from the audio backend,
// so the gate is atomic. Read itself must not be called concurrently.
type Buzzer struct {
	sampleRate int
	period     float64
	phase      float64
	active     atomic.Bool
}

func NewBuzzer(sampleRate int, toneHz float64) *Buzzer {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if toneHz <= 0 {
		toneHz = DefaultToneHz
	}
	return &Buzzer{
		sampleRate: sampleRate,
		period:     float64(sampleRate) / toneHz,
	}
}

func (b *Buzzer) Type() string { return BuzzerPeripheralType }

func (b *Buzzer) SampleRate() int { return b.sampleRate }

// Frame opens the gate while the sound timer is non-zero.
func (b *Buzzer) Frame(m *cpu.Machine) error {
	b.SetActive(m.SoundActive())
	return nil
}

func (b *Buzzer) SetActive(on bool) { b.active.Store(on) }

func (b *Buzzer) Active() bool { return b.active.Load() }

// Sample returns the next mono sample. The wave restarts from its rising
// edge every time the gate opens.
func (b *Buzzer) Sample() int16 {
	if !b.active.Load() {
		b.phase = 0
		return 0
	}
	s := int16(amplitude)
	if b.phase >= b.period/2 {
		s = -amplitude
	}
	b.phase++
	if b.phase >= b.period {
		b.phase -= b.period
	}
	return s
}

// Read fills p with 16-bit little-endian stereo frames. Only whole frames are
// written, so n is always a multiple of four.
func (b *Buzzer) Read(p []byte) (int, error) {
	n := len(p) &^ 3
	for i := 0; i < n; i += 4 {
		s := uint16(b.Sample())
		binary.LittleEndian.PutUint16(p[i:], s)
		binary.LittleEndian.PutUint16(p[i+2:], s)
	}
	return n, nil
}
