package cpu

// V returns general purpose register Vx.
func (m *Machine) V(x uint8) byte { return m.v[x&0x0F] }

// Index returns the I register.
func (m *Machine) Index() uint16 { return m.i }

func (m *Machine) PC() uint16 { return m.pc }

// SP returns the number of return addresses on the call stack.
func (m *Machine) SP() uint8 { return m.sp }

func (m *Machine) State() State { return m.state }

func (m *Machine) DelayTimer() byte { return m.delay.Value() }

func (m *Machine) SoundTimer() byte { return m.sound.Value() }

// SoundActive reports whether the buzzer should be sounding.
func (m *Machine) SoundActive() bool { return m.sound.IsActive() }

// Cycles returns the number of instructions executed since the last reset.
func (m *Machine) Cycles() uint64 { return m.cycles }

// Err returns the fatal error that stopped the machine, if any.
func (m *Machine) Err() error { return m.fault }

func (m *Machine) Quirks() Quirks { return m.quirks }

// Display gives renderers access to the framebuffer. Renderers only read it;
// the machine is the sole writer.
func (m *Machine) Display() *Display { return m.display }

// Keypad is where the input source reports key transitions.
func (m *Machine) Keypad() *Keypad { return &m.keypad }

// ReadMemory returns the byte at addr.
func (m *Machine) ReadMemory(addr uint16) byte { return m.mem.Read(addr) }

// Memory returns a copy of the address space.
func (m *Machine) Memory() []byte { return m.mem.Snapshot() }
