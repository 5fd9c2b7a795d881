package cpu

const (
	// MemorySize is the number of addressable bytes.
	MemorySize = 0x1000
	// ProgramStart is where ROM images are loaded and where execution begins.
	ProgramStart = 0x200
	// MaxROMSize is the largest ROM image that fits between ProgramStart and
	// the end of memory.
	MaxROMSize = MemorySize - ProgramStart

	addrMask = MemorySize - 1
)

// Memory is the flat 4 KiB address space. Every address is reduced modulo
// MemorySize, so a 16-bit computed address can never index outside of it.
type Memory struct {
	cells [MemorySize]byte
}

func (m *Memory) Read(addr uint16) byte {
	return m.cells[addr&addrMask]
}

func (m *Memory) Write(addr uint16, val byte) {
	m.cells[addr&addrMask] = val
}

// Load copies data into memory starting at offset.
func (m *Memory) Load(offset uint16, data []byte) {
	for i, b := range data {
		m.Write(offset+uint16(i), b)
	}
}

// Snapshot returns a copy of the whole address space.
func (m *Memory) Snapshot() []byte {
	out := make([]byte, MemorySize)
	copy(out, m.cells[:])
	return out
}

func (m *Memory) clear() {
	m.cells = [MemorySize]byte{}
}
