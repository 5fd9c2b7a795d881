// Package driver paces a machine in real time: every frame runs a fixed
// number of instructions, ticks the timers once and then notifies the
// attached peripherals.
package driver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gochip8/pkg/cpu"
	"gochip8/pkg/peripherals"

	"github.com/retroenv/retrogolib/log"
)

const (
	DefaultInstructionsPerFrame = 9
	DefaultFrameRate            = 60
)

var ErrInvalidConfig = errors.New("invalid driver configuration")

type Config struct {
	// InstructionsPerFrame is the number of Step calls per Tick. The
	// effective clock rate is InstructionsPerFrame * FrameRate.
	InstructionsPerFrame int
	// FrameRate is the timer rate in Hz. It is 60 on real hardware.
	FrameRate int
	// KeyHold is the number of frames a key pressed with TapKey stays held.
	KeyHold int
}

func DefaultConfig() Config {
	return Config{
		InstructionsPerFrame: DefaultInstructionsPerFrame,
		FrameRate:            DefaultFrameRate,
		KeyHold:              6,
	}
}

func (c Config) validate() error {
	if c.InstructionsPerFrame <= 0 {
		return fmt.Errorf("%w: instructions per frame must be positive, got %d", ErrInvalidConfig, c.InstructionsPerFrame)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate must be positive, got %d", ErrInvalidConfig, c.FrameRate)
	}
	if c.KeyHold < 0 {
		return fmt.Errorf("%w: key hold must not be negative, got %d", ErrInvalidConfig, c.KeyHold)
	}
	return nil
}

// Emulator owns a machine and serializes every access to it. Input sources
// may call SetKey and TapKey from any goroutine.
type Emulator struct {
	mu          sync.Mutex
	m           *cpu.Machine
	cfg         Config
	logger      *log.Logger
	peripherals []peripherals.Peripheral
	holds       [cpu.KeyCount]int
	frames      uint64
}

func New(m *cpu.Machine, cfg Config, logger *log.Logger) (*Emulator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Emulator{
		m:      m,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Attach adds a peripheral that is called after every frame.
func (e *Emulator) Attach(p peripherals.Peripheral) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.peripherals = append(e.peripherals, p)
	e.logger.Debug("Peripheral attached", log.String("type", p.Type()))
}

// SetKey reports a key transition. A key set here cancels any pending
// TapKey release for it.
func (e *Emulator) SetKey(key uint8, pressed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.m.Keypad().SetState(key, pressed); err != nil {
		return err
	}
	e.holds[key] = 0
	return nil
}

// TapKey presses key and releases it after KeyHold frames. It is meant for
// input sources that only report presses, such as terminals. Tapping a key
// that is still held extends the hold.
func (e *Emulator) TapKey(key uint8) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.m.Keypad().SetState(key, true); err != nil {
		return err
	}
	e.holds[key] = max(e.cfg.KeyHold, 1)
	return nil
}

// View calls fn with the machine while holding the lock. Renderers use it
// to read the display between frames.
func (e *Emulator) View(fn func(m *cpu.Machine)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.m)
}

func (e *Emulator) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// Reset restarts the loaded program and releases all keys.
func (e *Emulator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.m.Reset()
	e.holds = [cpu.KeyCount]int{}
	e.logger.Info("Machine reset")
}

// Frame runs one frame: InstructionsPerFrame steps, one timer tick, expiry of
// tapped keys, then the peripherals.
func (e *Emulator) Frame() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := 0; i < e.cfg.InstructionsPerFrame; i++ {
		if err := e.m.Step(); err != nil {
			return fmt.Errorf("frame %d: %w", e.frames, err)
		}
	}
	e.m.Tick()

	for key := range e.holds {
		if e.holds[key] == 0 {
			continue
		}
		e.holds[key]--
		if e.holds[key] == 0 {
			_ = e.m.Keypad().SetState(uint8(key), false)
		}
	}

	for _, p := range e.peripherals {
		if err := p.Frame(e.m); err != nil {
			return fmt.Errorf("peripheral %s: %w", p.Type(), err)
		}
	}

	e.frames++
	return nil
}

// RenderFunc is called after every frame with the machine locked.
type RenderFunc func(m *cpu.Machine) error

// Run executes frames at FrameRate until ctx is cancelled or a frame fails.
// Cancellation is a normal stop and returns nil.
func (e *Emulator) Run(ctx context.Context, render RenderFunc) error {
	interval := time.Second / time.Duration(e.cfg.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.logger.Info("Starting emulation",
		log.Int("instructions_per_frame", e.cfg.InstructionsPerFrame),
		log.Int("frame_rate", e.cfg.FrameRate))

	for {
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			e.logger.Debug("Emulation stopped", log.Int("frames", int(e.Frames())))
			return nil
		}

		if err := e.Frame(); err != nil {
			e.logger.Error("Machine halted", err)
			return err
		}
		if render == nil {
			continue
		}

		var err error
		e.View(func(m *cpu.Machine) { err = render(m) })
		if err != nil {
			return fmt.Errorf("rendering: %w", err)
		}
	}
}
