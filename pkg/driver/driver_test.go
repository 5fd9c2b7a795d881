package driver

import (
	"context"
	"errors"
	"testing"

	"gochip8/pkg/cpu"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// quietLogger only reports errors so test output stays readable.
func quietLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ErrorLevel
	return log.NewWithConfig(cfg)
}

func newEmulator(t *testing.T, cfg Config, rom ...byte) *Emulator {
	t.Helper()
	m := cpu.New()
	assert.NoError(t, m.Load(rom))
	e, err := New(m, cfg, quietLogger())
	assert.NoError(t, err)
	return e
}

// selfJump is a ROM that loops on its first instruction.
var selfJump = []byte{0x12, 0x00}

type countingPeripheral struct {
	frames int
	err    error
}

func (p *countingPeripheral) Type() string { return "Counter" }

func (p *countingPeripheral) Frame(*cpu.Machine) error {
	p.frames++
	return p.err
}

func TestConfigValidation(t *testing.T) {
	m := cpu.New()
	logger := quietLogger()

	for _, cfg := range []Config{
		{InstructionsPerFrame: 0, FrameRate: 60},
		{InstructionsPerFrame: 9, FrameRate: 0},
		{InstructionsPerFrame: 9, FrameRate: 60, KeyHold: -1},
	} {
		_, err := New(m, cfg, logger)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	}

	_, err := New(m, DefaultConfig(), logger)
	assert.NoError(t, err)
}

func TestFrameRunsStepsAndTick(t *testing.T) {
	// LD V0, 10; LD DT, V0; JP 0x204
	e := newEmulator(t, DefaultConfig(), 0x60, 0x0A, 0xF0, 0x15, 0x12, 0x04)
	p := &countingPeripheral{}
	e.Attach(p)

	assert.NoError(t, e.Frame())
	e.View(func(m *cpu.Machine) {
		assert.Equal(t, uint64(DefaultInstructionsPerFrame), m.Cycles())
		assert.Equal(t, byte(9), m.DelayTimer())
	})
	assert.Equal(t, 1, p.frames)
	assert.Equal(t, uint64(1), e.Frames())

	assert.NoError(t, e.Frame())
	e.View(func(m *cpu.Machine) {
		assert.Equal(t, byte(8), m.DelayTimer())
	})
	assert.Equal(t, 2, p.frames)
}

func TestFrameStopsOnMachineError(t *testing.T) {
	e := newEmulator(t, DefaultConfig(), 0xFF, 0xFF)
	err := e.Frame()
	assert.True(t, errors.Is(err, cpu.ErrUnsupportedInstruction))

	// The machine stays halted.
	assert.True(t, errors.Is(e.Frame(), cpu.ErrUnsupportedInstruction))
	assert.Equal(t, uint64(0), e.Frames())
}

func TestFramePeripheralError(t *testing.T) {
	e := newEmulator(t, DefaultConfig(), selfJump...)
	boom := errors.New("boom")
	e.Attach(&countingPeripheral{err: boom})
	assert.True(t, errors.Is(e.Frame(), boom))
}

func TestTapKeyReleasesAfterHold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeyHold = 3
	e := newEmulator(t, cfg, selfJump...)

	assert.NoError(t, e.TapKey(0x5))
	for i := 0; i < 2; i++ {
		assert.NoError(t, e.Frame())
		e.View(func(m *cpu.Machine) { assert.True(t, m.Keypad().State(0x5)) })
	}
	assert.NoError(t, e.Frame())
	e.View(func(m *cpu.Machine) { assert.False(t, m.Keypad().State(0x5)) })
}

func TestSetKeyCancelsHold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeyHold = 1
	e := newEmulator(t, cfg, selfJump...)

	assert.NoError(t, e.TapKey(0x2))
	assert.NoError(t, e.SetKey(0x2, true))
	assert.NoError(t, e.Frame())
	e.View(func(m *cpu.Machine) { assert.True(t, m.Keypad().State(0x2)) })

	assert.NoError(t, e.SetKey(0x2, false))
	e.View(func(m *cpu.Machine) { assert.False(t, m.Keypad().State(0x2)) })
}

func TestInvalidKey(t *testing.T) {
	e := newEmulator(t, DefaultConfig(), selfJump...)
	assert.True(t, errors.Is(e.SetKey(16, true), cpu.ErrInvalidKey))
	assert.True(t, errors.Is(e.TapKey(0xFF), cpu.ErrInvalidKey))
}

func TestKeyResumesWaitingMachine(t *testing.T) {
	// LD V1, K; JP 0x202
	e := newEmulator(t, DefaultConfig(), 0xF1, 0x0A, 0x12, 0x02)
	assert.NoError(t, e.Frame())
	e.View(func(m *cpu.Machine) { assert.Equal(t, cpu.StateWaitingForKey, m.State()) })

	assert.NoError(t, e.TapKey(0xB))
	assert.NoError(t, e.Frame())
	e.View(func(m *cpu.Machine) {
		assert.Equal(t, cpu.StateRunning, m.State())
		assert.Equal(t, byte(0xB), m.V(1))
	})
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = 1000
	e := newEmulator(t, cfg, selfJump...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rendered := 0
	err := e.Run(ctx, func(m *cpu.Machine) error {
		rendered++
		if rendered == 3 {
			cancel()
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, rendered)
	assert.Equal(t, uint64(3), e.Frames())
}

func TestRunReturnsFrameError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = 1000
	e := newEmulator(t, cfg, 0x00, 0xEE) // RET with an empty stack

	err := e.Run(context.Background(), nil)
	assert.True(t, errors.Is(err, cpu.ErrStackUnderflow))
}

func TestRunReturnsRenderError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = 1000
	e := newEmulator(t, cfg, selfJump...)

	boom := errors.New("window closed")
	err := e.Run(context.Background(), func(*cpu.Machine) error { return boom })
	assert.True(t, errors.Is(err, boom))
}

func TestReset(t *testing.T) {
	e := newEmulator(t, DefaultConfig(), selfJump...)
	assert.NoError(t, e.TapKey(0x1))
	assert.NoError(t, e.Frame())
	e.Reset()
	e.View(func(m *cpu.Machine) {
		assert.Equal(t, uint64(0), m.Cycles())
		assert.False(t, m.Keypad().State(0x1))
	})
}
