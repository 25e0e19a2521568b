package vm

import "encoding/binary"

// decodeLength computes the total byte length of the instruction at
// ip (§4.4). For LOADI and PUSH this requires reading the embedded
// u32 size field from the instruction stream; every other opcode is a
// static table lookup. Unknown opcodes are not an error here — the
// decoder returns a length of 1 and lets Execute raise
// InvalidInstruction, per §4.4: "the decoder itself only computes
// length ... execution is what validates the opcode."
func (m *Machine) decodeLength(ip uint64) (int, error) {
	opByte, err := m.mem.Read(ip, 1)
	if err != nil {
		return 0, err
	}
	op := Opcode(opByte[0])

	switch op {
	case OpLoadi:
		sizeBytes, err := m.mem.Read(ip+2, 4)
		if err != nil {
			return 0, err
		}
		size := binary.LittleEndian.Uint32(sizeBytes)
		return loadiFixedHeader + int(size), nil
	case OpPush:
		sizeBytes, err := m.mem.Read(ip+1, 4)
		if err != nil {
			return 0, err
		}
		size := binary.LittleEndian.Uint32(sizeBytes)
		return pushFixedHeader + int(size), nil
	default:
		if length, ok := instructionLength[op]; ok {
			return length, nil
		}
		return 1, nil
	}
}
