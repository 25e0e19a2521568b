package vm

// SyscallID is the 16-bit selector popped from the stack by SYSCALL
// (§4.7). Numbering is stable ABI (§6).
type SyscallID uint16

const (
	SyscallExit     SyscallID = 0
	SyscallDebugger SyscallID = 1
	SyscallGrow     SyscallID = 2
)

// doSyscall implements the SYSCALL router (§4.7): pop a 16-bit id,
// then dispatch.
func (m *Machine) doSyscall(ip uint64) error {
	rawID, err := m.stackPopUint64(2)
	if err != nil {
		return err
	}
	id := SyscallID(rawID)

	switch id {
	case SyscallExit:
		code, err := m.stackPop(1)
		if err != nil {
			return err
		}
		if err := m.regs.Write(Reg{Code: RegR0, Width: 1}, code); err != nil {
			return err
		}
		if err := m.regs.WriteUint64(reg8(RegEXT), uint64(code[0])); err != nil {
			return err
		}
		return m.setRunning(false)

	case SyscallDebugger:
		arg, err := m.stackPopUint64(8)
		if err != nil {
			return err
		}
		if m.debugHook != nil {
			m.debugHook(arg)
		}
		return nil

	case SyscallGrow:
		m.Grow(m.mem.Len() * 2)
		return nil

	default:
		return &SyscallFault{ID: uint16(id), IP: ip}
	}
}
