package peripherals

import (
	"encoding/binary"
	"testing"

	"gochip8/pkg/cpu"

	"github.com/retroenv/retrogolib/assert"
)

// soundingMachine returns a machine whose sound timer has been set to 5.
func soundingMachine(t *testing.T) *cpu.Machine {
	t.Helper()
	m := cpu.New()
	assert.NoError(t, m.Load([]byte{0x60, 0x05, 0xF0, 0x18}))
	assert.NoError(t, m.Step())
	assert.NoError(t, m.Step())
	return m
}

func TestBuzzerSilentWhenInactive(t *testing.T) {
	b := NewBuzzer(8000, 1000)
	for i := 0; i < 100; i++ {
		assert.Equal(t, int16(0), b.Sample())
	}
}

func TestBuzzerSquareWave(t *testing.T) {
	// 8 samples per period: 4 high, 4 low.
	b := NewBuzzer(8000, 1000)
	b.SetActive(true)

	for period := 0; period < 3; period++ {
		for i := 0; i < 4; i++ {
			assert.Equal(t, int16(amplitude), b.Sample())
		}
		for i := 0; i < 4; i++ {
			assert.Equal(t, int16(-amplitude), b.Sample())
		}
	}

	// Closing and reopening the gate restarts on the rising edge.
	b.Sample()
	b.SetActive(false)
	assert.Equal(t, int16(0), b.Sample())
	b.SetActive(true)
	assert.Equal(t, int16(amplitude), b.Sample())
}

func TestBuzzerReadStereo(t *testing.T) {
	b := NewBuzzer(8000, 1000)
	b.SetActive(true)

	p := make([]byte, 18)
	n, err := b.Read(p)
	assert.NoError(t, err)
	assert.Equal(t, 16, n)

	for i := 0; i < n; i += 4 {
		left := int16(binary.LittleEndian.Uint16(p[i:]))
		right := int16(binary.LittleEndian.Uint16(p[i+2:]))
		assert.Equal(t, left, right)
		assert.Equal(t, int16(amplitude), left)
	}
}

func TestBuzzerFollowsSoundTimer(t *testing.T) {
	m := soundingMachine(t)
	b := NewBuzzer(0, 0)
	assert.Equal(t, DefaultSampleRate, b.SampleRate())
	assert.Equal(t, BuzzerPeripheralType, b.Type())

	assert.NoError(t, b.Frame(m))
	assert.True(t, b.Active())

	for i := 0; i < 5; i++ {
		m.Tick()
	}
	assert.NoError(t, b.Frame(m))
	assert.False(t, b.Active())
}
