package vm

import "encoding/binary"

// Named register codes. The numeric layout is part of the ABI (§6) and
// must stay stable across releases.
const (
	RegR0 uint8 = iota
	RegR1
	RegR2
	RegR3
	RegR4
	RegR5
	RegR6
	RegR7
	RegR8
	RegR9
	RegAX    // return value
	RegIP    // instruction pointer
	RegSP    // stack pointer
	RegFP    // frame pointer
	RegFLAGS // status bits
	RegRUN   // machine-running flag
	RegEXT   // exit code
)

// numRegisters is the size of the register bank: codes 0..63, the low
// six bits of a register operand byte.
const numRegisters = 64

// FlagZero is the sole flag observed by conditional branches (§3).
const FlagZero uint8 = 1 << 0

// Reg is the decoded form of a register operand byte: a code in
// [0, 63] plus the byte-width requested for this access. The source
// packs both into one byte; Reg is the small helper type §9 asks for
// instead of scattering the bit fiddling.
type Reg struct {
	Code  uint8
	Width uint8
}

// DecodeReg unpacks a register operand byte into its code and width.
// Layout: <width:2><code:6>, width selector doubles from 1 to 8.
func DecodeReg(b byte) Reg {
	sel := b >> 6
	return Reg{Code: b & 0x3F, Width: 1 << sel}
}

// Encode packs a Reg back into its single-byte operand form. Width
// must be one of {1, 2, 4, 8}; Encode panics on any other width since
// it is only ever called with statically-known widths from this
// package (e.g. building named-register operands).
func (r Reg) Encode() byte {
	var sel uint8
	switch r.Width {
	case 1:
		sel = 0
	case 2:
		sel = 1
	case 4:
		sel = 2
	case 8:
		sel = 3
	default:
		panic("gvm64: invalid register width")
	}
	return sel<<6 | (r.Code & 0x3F)
}

// reg8 builds the register operand gvm64 uses internally for the
// named special registers, which are always addressed at their full
// width.
func reg8(code uint8) Reg { return Reg{Code: code, Width: 8} }

// RegisterFile is a fixed bank of 64 8-byte slots (§4.1). Every read
// or write goes through a Reg so that narrow accesses zero-extend (on
// read) or zero-fill-then-truncate (on write) exactly as spec'd.
type RegisterFile struct {
	slots [numRegisters][8]byte
}

func validateRegCode(code uint8) error {
	if int(code) >= numRegisters {
		return &RegisterFault{Code: code}
	}
	return nil
}

// Write clears the whole 8-byte slot, then copies at most Width bytes
// from data into it. Excess source bytes are truncated, and no high
// bits of the previous value survive a narrow write.
func (rf *RegisterFile) Write(r Reg, data []byte) error {
	if err := validateRegCode(r.Code); err != nil {
		return err
	}
	slot := &rf.slots[r.Code]
	for i := range slot {
		slot[i] = 0
	}
	n := len(data)
	if n > int(r.Width) {
		n = int(r.Width)
	}
	copy(slot[:r.Width], data[:n])
	return nil
}

// WriteUint64 reinterprets v's low Width bytes as little-endian and
// writes them as Write would.
func (rf *RegisterFile) WriteUint64(r Reg, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return rf.Write(r, buf[:r.Width])
}

// Read returns the Width raw bytes of the register's slot.
func (rf *RegisterFile) Read(r Reg) ([]byte, error) {
	if err := validateRegCode(r.Code); err != nil {
		return nil, err
	}
	out := make([]byte, r.Width)
	copy(out, rf.slots[r.Code][:r.Width])
	return out, nil
}

// ReadUint64 reads Width bytes and zero-extends them to 64 bits.
func (rf *RegisterFile) ReadUint64(r Reg) (uint64, error) {
	if err := validateRegCode(r.Code); err != nil {
		return 0, err
	}
	var buf [8]byte
	copy(buf[:r.Width], rf.slots[r.Code][:r.Width])
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadInt64 reads Width bytes, zero-extends them like ReadUint64, then
// reinterprets the result as a signed value. The register-supplied
// frame offsets of LOADR and LOADSR are read this way.
func (rf *RegisterFile) ReadInt64(r Reg) (int64, error) {
	u, err := rf.ReadUint64(r)
	return int64(u), err
}
