package cpu

import (
	"fmt"
	"math/rand/v2"
)

const (
	// StackDepth is the number of return addresses the call stack can hold.
	StackDepth = 16

	flagReg = 0xF
)

// State is the execution state of a Machine.
type State uint8

const (
	// StateRunning fetches and executes one instruction per Step.
	StateRunning State = iota
	// StateWaitingForKey is entered by Fx0A and left on the first keypad
	// change that leaves a key held.
	StateWaitingForKey
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateWaitingForKey:
		return "waiting for key"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Machine is the interpreter. It owns memory, display, keypad and both
// timers; the host drives it by calling Step at the CPU clock rate and Tick
// at 60 Hz.
type Machine struct {
	mem     Memory
	display *Display
	keypad  Keypad
	delay   Timer
	sound   Timer

	v     [16]byte
	i     uint16
	pc    uint16
	sp    uint8
	stack [StackDepth]uint16

	state   State
	waitReg uint8

	quirks Quirks
	rng    *rand.Rand
	rom    []byte
	cycles uint64
	fault  error
}

// Option configures a Machine in New.
type Option func(*Machine)

// WithQuirks selects the compatibility behaviour. The default is QuirksModern.
func WithQuirks(q Quirks) Option {
	return func(m *Machine) { m.quirks = q }
}

// WithRand sets the random source used by Cxkk.
func WithRand(r *rand.Rand) Option {
	return func(m *Machine) { m.rng = r }
}

// WithDisplaySize overrides the 64x32 framebuffer size. A non-positive
// dimension keeps the default size.
func WithDisplaySize(w, h int) Option {
	return func(m *Machine) {
		if w <= 0 || h <= 0 {
			w, h = DisplayWidth, DisplayHeight
		}
		m.display = NewDisplay(w, h)
	}
}

// New creates a machine with the font installed and PC at ProgramStart.
func New(opts ...Option) *Machine {
	m := &Machine{
		quirks: QuirksModern,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.display == nil {
		m.display = NewDisplay(DisplayWidth, DisplayHeight)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	m.Reset()
	return m
}

// Load installs rom at ProgramStart and resets the machine. The machine keeps
// its own copy of the image, so the caller may reuse rom afterwards.
func (m *Machine) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	m.rom = append(m.rom[:0], rom...)
	m.Reset()
	return nil
}

// Reset restores the power-on state and reinstalls the font and the last
// loaded ROM.
func (m *Machine) Reset() {
	m.mem.clear()
	m.mem.Load(0, font[:])
	m.mem.Load(ProgramStart, m.rom)
	m.display.Clear()
	m.keypad.reset()
	m.delay.Reload(0)
	m.sound.Reload(0)

	m.v = [16]byte{}
	m.i = 0
	m.pc = ProgramStart
	m.sp = 0
	m.stack = [StackDepth]uint16{}
	m.state = StateRunning
	m.waitReg = 0
	m.cycles = 0
	m.fault = nil
}

// Tick decrements both timers. It is independent of Step and meant to be
// called at a fixed 60 Hz.
func (m *Machine) Tick() {
	m.delay.Tick()
	m.sound.Tick()
}

// Step executes one instruction, or polls the keypad while waiting for Fx0A.
// Errors are fatal: once Step has failed it keeps returning the same error
// until Reset or Load.
func (m *Machine) Step() error {
	if m.fault != nil {
		return m.fault
	}

	if m.state == StateWaitingForKey {
		if m.keypad.HasChanged() {
			if key, ok := m.keypad.Pressed(); ok {
				m.v[m.waitReg] = key
				m.state = StateRunning
			}
		}
		return nil
	}

	addr := m.pc
	word := uint16(m.mem.Read(addr))<<8 | uint16(m.mem.Read(addr+1))
	m.pc = (m.pc + 2) & addrMask

	if err := m.execute(addr, Decode(word)); err != nil {
		m.fault = err
		return err
	}
	m.cycles++
	return nil
}

func (m *Machine) skip() {
	m.pc = (m.pc + 2) & addrMask
}

func (m *Machine) execute(addr uint16, in Instruction) error {
	vx := m.v[in.X]
	vy := m.v[in.Y]

	switch in.Op {
	case OpCLS:
		m.display.Clear()

	case OpRET:
		if m.sp == 0 {
			return fmt.Errorf("%w at 0x%03X", ErrStackUnderflow, addr)
		}
		m.pc = m.stack[m.sp-1]
		m.sp--

	case OpJP:
		m.pc = in.NNN

	case OpCALL:
		if int(m.sp) >= StackDepth {
			return fmt.Errorf("%w at 0x%03X", ErrStackOverflow, addr)
		}
		m.sp++
		m.stack[m.sp-1] = m.pc
		m.pc = in.NNN

	case OpSEImm:
		if vx == in.KK {
			m.skip()
		}

	case OpSNEImm:
		if vx != in.KK {
			m.skip()
		}

	case OpSEReg:
		if vx == vy {
			m.skip()
		}

	case OpSNEReg:
		if vx != vy {
			m.skip()
		}

	case OpLDImm:
		m.v[in.X] = in.KK

	case OpADDImm:
		m.v[in.X] = vx + in.KK

	case OpLDReg:
		m.v[in.X] = vy

	case OpOR:
		m.v[in.X] = vx | vy
		m.resetFlagForLogic()

	case OpAND:
		m.v[in.X] = vx & vy
		m.resetFlagForLogic()

	case OpXOR:
		m.v[in.X] = vx ^ vy
		m.resetFlagForLogic()

	case OpADDReg:
		sum := uint16(vx) + uint16(vy)
		m.v[in.X] = byte(sum)
		m.v[flagReg] = byte(sum >> 8)

	case OpSUB:
		m.v[in.X] = vx - vy
		m.v[flagReg] = boolToByte(vx >= vy)

	case OpSUBN:
		m.v[in.X] = vy - vx
		m.v[flagReg] = boolToByte(vy >= vx)

	case OpSHR:
		src := m.shiftSource(vx, vy)
		m.v[in.X] = src >> 1
		m.v[flagReg] = src & 0x01

	case OpSHL:
		src := m.shiftSource(vx, vy)
		m.v[in.X] = src << 1
		m.v[flagReg] = src >> 7

	case OpLDI:
		m.i = in.NNN

	case OpJPV0:
		m.pc = (in.NNN + uint16(m.v[0])) & addrMask

	case OpRND:
		m.v[in.X] = byte(m.rng.Uint32()) & in.KK

	case OpDRW:
		m.v[flagReg] = boolToByte(m.drawSprite(vx, vy, in.N))

	case OpSKP:
		if m.keypad.State(vx) {
			m.skip()
		}

	case OpSKNP:
		if !m.keypad.State(vx) {
			m.skip()
		}

	case OpLDVxDT:
		m.v[in.X] = m.delay.Value()

	case OpLDKey:
		// Drop any edge from before this instruction: a key already held
		// when Fx0A runs must be released and pressed again.
		m.keypad.HasChanged()
		m.state = StateWaitingForKey
		m.waitReg = in.X

	case OpLDDTVx:
		m.delay.Reload(vx)

	case OpLDSTVx:
		m.sound.Reload(vx)

	case OpADDI:
		m.i += uint16(vx)
		if m.quirks.IndexOverflowFlag {
			m.v[flagReg] = boolToByte(m.i > addrMask)
		}

	case OpLDF:
		m.i = uint16(vx) * FontGlyphSize

	case OpLDB:
		m.mem.Write(m.i, vx/100)
		m.mem.Write(m.i+1, (vx/10)%10)
		m.mem.Write(m.i+2, vx%10)

	case OpStore:
		for r := uint16(0); r <= uint16(in.X); r++ {
			m.mem.Write(m.i+r, m.v[r])
		}
		if m.quirks.LoadStoreIncrementsI {
			m.i += uint16(in.X) + 1
		}

	case OpLoad:
		for r := uint16(0); r <= uint16(in.X); r++ {
			m.v[r] = m.mem.Read(m.i + r)
		}
		if m.quirks.LoadStoreIncrementsI {
			m.i += uint16(in.X) + 1
		}

	default:
		return &UnsupportedInstructionError{PC: addr, Word: in.Word}
	}

	return nil
}

// drawSprite XORs n rows from memory at I onto the display with the top-left
// corner at (vx, vy) reduced modulo the screen size. It reports whether any
// lit pixel was turned off.
func (m *Machine) drawSprite(vx, vy byte, n uint8) bool {
	w, h := m.display.Size()
	ox := int(vx) % w
	oy := int(vy) % h

	collision := false
	for row := 0; row < int(n); row++ {
		py := oy + row
		if m.quirks.ClipSprites && py >= h {
			break
		}
		bits := m.mem.Read(m.i + uint16(row))
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := ox + col
			if m.quirks.ClipSprites && px >= w {
				continue
			}
			if m.display.Write(px, py, true) {
				collision = true
			}
		}
	}
	return collision
}

func (m *Machine) shiftSource(vx, vy byte) byte {
	if m.quirks.ShiftUsesVY {
		return vy
	}
	return vx
}

func (m *Machine) resetFlagForLogic() {
	if m.quirks.LogicResetsVF {
		m.v[flagReg] = 0
	}
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
