package vm

import "encoding/binary"

// Stack Engine (§4.3). The stack lives in [executable_size, SP) of the
// machine's memory; SP always points at the first free byte above the
// stack top. Underflow is not checked here — it surfaces as a
// MemoryFault from the read/write that crosses below 0 or above
// len(M), exactly as §4.3 specifies.

func (m *Machine) stackPush(data []byte) error {
	sp, err := m.sp()
	if err != nil {
		return err
	}
	if err := m.mem.Write(sp, data); err != nil {
		return err
	}
	return m.setSP(sp + uint64(len(data)))
}

// stackPush8 is a convenience used by the call/return protocol, which
// always pushes 8-byte (saved FP / return address) quantities.
func (m *Machine) stackPush8(v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return m.stackPush(buf[:])
}

func (m *Machine) stackPeek(width int) ([]byte, error) {
	sp, err := m.sp()
	if err != nil {
		return nil, err
	}
	addr := sp - uint64(width)
	return m.mem.Read(addr, width)
}

func (m *Machine) stackPop(width int) ([]byte, error) {
	sp, err := m.sp()
	if err != nil {
		return nil, err
	}
	addr := sp - uint64(width)
	data, err := m.mem.Read(addr, width)
	if err != nil {
		return nil, err
	}
	if err := m.setSP(addr); err != nil {
		return nil, err
	}
	return data, nil
}

func (m *Machine) stackPopUint64(width int) (uint64, error) {
	b, err := m.stackPop(width)
	if err != nil {
		return 0, err
	}
	var buf [8]byte
	copy(buf[:width], b)
	return binary.LittleEndian.Uint64(buf[:]), nil
}
