package vm

import "encoding/binary"

// Memory is the machine's single linear byte buffer (§3). All
// addresses are absolute byte offsets in [0, Len()).
type Memory struct {
	buf []byte
}

// NewMemory allocates a zero-initialized buffer of the given size.
func NewMemory(size uint64) *Memory {
	return &Memory{buf: make([]byte, size)}
}

// Len returns the current size of the buffer.
func (m *Memory) Len() uint64 { return uint64(len(m.buf)) }

func (m *Memory) bounds(addr uint64, width int) error {
	if width < 0 {
		return &MemoryFault{Addr: addr, Width: width}
	}
	end := addr + uint64(width)
	if end < addr || end > m.Len() {
		return &MemoryFault{Addr: addr, Width: width}
	}
	return nil
}

// Read returns width bytes starting at addr.
func (m *Memory) Read(addr uint64, width int) ([]byte, error) {
	if err := m.bounds(addr, width); err != nil {
		return nil, err
	}
	out := make([]byte, width)
	copy(out, m.buf[addr:addr+uint64(width)])
	return out, nil
}

// ReadUint64 reads width bytes and zero-extends them to 64 bits.
func (m *Memory) ReadUint64(addr uint64, width int) (uint64, error) {
	b, err := m.Read(addr, width)
	if err != nil {
		return 0, err
	}
	var buf [8]byte
	copy(buf[:width], b)
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Write copies data into the buffer starting at addr.
func (m *Memory) Write(addr uint64, data []byte) error {
	if err := m.bounds(addr, len(data)); err != nil {
		return err
	}
	copy(m.buf[addr:addr+uint64(len(data))], data)
	return nil
}

// WriteUint64 writes the low width bytes of v, little-endian, at addr.
func (m *Memory) WriteUint64(addr uint64, width int, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return m.Write(addr, buf[:width])
}

// Grow enlarges the buffer to n bytes if it is currently smaller,
// preserving every previously stored byte and zero-filling the rest.
// It is a no-op if n <= Len().
func (m *Memory) Grow(n uint64) {
	if n <= m.Len() {
		return
	}
	grown := make([]byte, n)
	copy(grown, m.buf)
	m.buf = grown
}

// Reset zeroes every byte in the buffer.
func (m *Memory) Reset() {
	for i := range m.buf {
		m.buf[i] = 0
	}
}

// Bytes exposes the raw backing slice, mainly for diagnostics
// (Machine.Snapshot, disassembly). Callers must not retain it across
// a Grow, which reallocates the buffer.
func (m *Memory) Bytes() []byte { return m.buf }
