package vm

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fault taxonomy of §7. Callers should compare
// against these with errors.Is rather than the concrete fault types,
// which only exist to carry the offending address/register/opcode.
var (
	ErrOutOfMemory         = errors.New("gvm64: image larger than memory")
	ErrIllegalMemoryAccess = errors.New("gvm64: illegal memory access")
	ErrInvalidRegister     = errors.New("gvm64: invalid register")
	ErrBadRegisterAccess   = errors.New("gvm64: bad register access")
	ErrInvalidInstruction  = errors.New("gvm64: invalid instruction")
	ErrInvalidSyscall      = errors.New("gvm64: invalid syscall")
)

// MemoryFault carries the offending address and the instruction pointer
// at the time of fault, per §7's "carries offending address and current
// IP" requirement for IllegalMemoryAccess.
type MemoryFault struct {
	Addr  uint64
	Width int
	IP    uint64
}

func (f *MemoryFault) Error() string {
	return fmt.Sprintf("illegal memory access at addr=0x%x width=%d (ip=0x%x)", f.Addr, f.Width, f.IP)
}

func (f *MemoryFault) Unwrap() error { return ErrIllegalMemoryAccess }

// RegisterFault carries the offending register code and the IP at the
// time of fault.
type RegisterFault struct {
	Code uint8
	IP   uint64
}

func (f *RegisterFault) Error() string {
	return fmt.Sprintf("invalid register code=%d (ip=0x%x)", f.Code, f.IP)
}

func (f *RegisterFault) Unwrap() error { return ErrInvalidRegister }

// InstructionFault carries the unrecognised opcode byte and the IP it
// was fetched from.
type InstructionFault struct {
	Opcode byte
	IP     uint64
}

func (f *InstructionFault) Error() string {
	return fmt.Sprintf("invalid instruction opcode=0x%02x (ip=0x%x)", f.Opcode, f.IP)
}

func (f *InstructionFault) Unwrap() error { return ErrInvalidInstruction }

// SyscallFault carries the unrecognised syscall id and the IP of the
// SYSCALL instruction that popped it.
type SyscallFault struct {
	ID uint16
	IP uint64
}

func (f *SyscallFault) Error() string {
	return fmt.Sprintf("invalid syscall id=%d (ip=0x%x)", f.ID, f.IP)
}

func (f *SyscallFault) Unwrap() error { return ErrInvalidSyscall }

// stampFaultIP fills in the IP field of a MemoryFault or RegisterFault
// with the instruction that triggered it. Memory and RegisterFile have
// no notion of IP themselves, so the caller stamps it on the way out,
// the same way doSyscall sets IP directly when it builds SyscallFault.
func stampFaultIP(err error, ip uint64) error {
	switch f := err.(type) {
	case *MemoryFault:
		f.IP = ip
	case *RegisterFault:
		f.IP = ip
	}
	return err
}
