package vm

// Execute dispatches a single decoded opcode (§4.5). ip is the address
// of the opcode byte itself; every operand offset below is measured
// from ip, matching the byte layouts fixed in opcodes.go.
//
// Execute never advances IP on its own behalf except for the control
// flow opcodes (JMP family, CALL family, RET), which write IP
// directly. Cycle relies on that: "IP unchanged ⇒ advance" (§4.8).
//
// Any MemoryFault/RegisterFault raised while decoding operands or
// touching memory/registers is stamped with ip before it reaches the
// caller, mirroring InstructionFault and SyscallFault, which already
// carry it at construction.
func (m *Machine) Execute(op Opcode, ip uint64) (err error) {
	defer func() {
		err = stampFaultIP(err, ip)
	}()
	switch op {
	case OpNop:
		return nil

	case OpMov:
		t, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		s, err := m.fetchReg(ip, 2)
		if err != nil {
			return err
		}
		src, err := m.regs.Read(s)
		if err != nil {
			return err
		}
		return m.regs.Write(t, src)

	case OpLoadi:
		t, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		size, err := m.fetchU32(ip, 2)
		if err != nil {
			return err
		}
		value, err := m.fetchBytes(ip, loadiFixedHeader, int(size))
		if err != nil {
			return err
		}
		return m.regs.Write(t, value)

	case OpRst:
		t, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		return m.regs.Write(t, nil)

	case OpPush:
		size, err := m.fetchU32(ip, 1)
		if err != nil {
			return err
		}
		value, err := m.fetchBytes(ip, pushFixedHeader, int(size))
		if err != nil {
			return err
		}
		return m.stackPush(value)

	case OpRpush:
		s, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		src, err := m.regs.Read(s)
		if err != nil {
			return err
		}
		return m.stackPush(src)

	case OpRpop:
		t, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		size, err := m.fetchU32(ip, 2)
		if err != nil {
			return err
		}
		data, err := m.stackPop(int(size))
		if err != nil {
			return err
		}
		return m.regs.Write(t, data)

	case OpLoad:
		t, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		size, err := m.fetchU32(ip, 2)
		if err != nil {
			return err
		}
		off, err := m.fetchI64(ip, 6)
		if err != nil {
			return err
		}
		return m.frameLoad(t, int(size), off)

	case OpLoadr:
		t, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		size, err := m.fetchU32(ip, 2)
		if err != nil {
			return err
		}
		offReg, err := m.fetchReg(ip, 6)
		if err != nil {
			return err
		}
		off, err := m.regs.ReadInt64(offReg)
		if err != nil {
			return err
		}
		return m.frameLoad(t, int(size), off)

	case OpLoads:
		size, err := m.fetchU32(ip, 1)
		if err != nil {
			return err
		}
		off, err := m.fetchI64(ip, 5)
		if err != nil {
			return err
		}
		return m.frameLoadStack(int(size), off)

	case OpLoadsr:
		size, err := m.fetchU32(ip, 1)
		if err != nil {
			return err
		}
		offReg, err := m.fetchReg(ip, 5)
		if err != nil {
			return err
		}
		off, err := m.regs.ReadInt64(offReg)
		if err != nil {
			return err
		}
		return m.frameLoadStack(int(size), off)

	case OpStore:
		off, err := m.fetchI64(ip, 1)
		if err != nil {
			return err
		}
		s, err := m.fetchReg(ip, 9)
		if err != nil {
			return err
		}
		src, err := m.regs.Read(s)
		if err != nil {
			return err
		}
		fp, err := m.fp()
		if err != nil {
			return err
		}
		return m.mem.Write(uint64(int64(fp)+off), src)

	case OpRead:
		t, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		s, err := m.fetchReg(ip, 2)
		if err != nil {
			return err
		}
		addr, err := m.regs.ReadUint64(s)
		if err != nil {
			return err
		}
		data, err := m.mem.Read(addr, int(t.Width))
		if err != nil {
			return err
		}
		return m.regs.Write(t, data)

	case OpReadc:
		t, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		addr, err := m.fetchU64(ip, 2)
		if err != nil {
			return err
		}
		data, err := m.mem.Read(addr, int(t.Width))
		if err != nil {
			return err
		}
		return m.regs.Write(t, data)

	case OpReads:
		size, err := m.fetchU32(ip, 1)
		if err != nil {
			return err
		}
		s, err := m.fetchReg(ip, 5)
		if err != nil {
			return err
		}
		addr, err := m.regs.ReadUint64(s)
		if err != nil {
			return err
		}
		data, err := m.mem.Read(addr, int(size))
		if err != nil {
			return err
		}
		return m.stackPush(data)

	case OpReadcs:
		size, err := m.fetchU32(ip, 1)
		if err != nil {
			return err
		}
		addr, err := m.fetchU64(ip, 5)
		if err != nil {
			return err
		}
		data, err := m.mem.Read(addr, int(size))
		if err != nil {
			return err
		}
		return m.stackPush(data)

	case OpWrite:
		t, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		s, err := m.fetchReg(ip, 2)
		if err != nil {
			return err
		}
		addr, err := m.regs.ReadUint64(t)
		if err != nil {
			return err
		}
		src, err := m.regs.Read(s)
		if err != nil {
			return err
		}
		return m.mem.Write(addr, src)

	case OpWritec:
		addr, err := m.fetchU64(ip, 1)
		if err != nil {
			return err
		}
		s, err := m.fetchReg(ip, 9)
		if err != nil {
			return err
		}
		src, err := m.regs.Read(s)
		if err != nil {
			return err
		}
		return m.mem.Write(addr, src)

	case OpWrites:
		t, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		size, err := m.fetchU32(ip, 2)
		if err != nil {
			return err
		}
		addr, err := m.regs.ReadUint64(t)
		if err != nil {
			return err
		}
		data, err := m.stackPop(int(size))
		if err != nil {
			return err
		}
		return m.mem.Write(addr, data)

	case OpWritecs:
		addr, err := m.fetchU64(ip, 1)
		if err != nil {
			return err
		}
		size, err := m.fetchU32(ip, 9)
		if err != nil {
			return err
		}
		data, err := m.stackPop(int(size))
		if err != nil {
			return err
		}
		return m.mem.Write(addr, data)

	case OpCopy:
		t, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		size, err := m.fetchU32(ip, 2)
		if err != nil {
			return err
		}
		s, err := m.fetchReg(ip, 6)
		if err != nil {
			return err
		}
		dst, err := m.regs.ReadUint64(t)
		if err != nil {
			return err
		}
		src, err := m.regs.ReadUint64(s)
		if err != nil {
			return err
		}
		data, err := m.mem.Read(src, int(size))
		if err != nil {
			return err
		}
		return m.mem.Write(dst, data)

	case OpCopyc:
		dst, err := m.fetchU64(ip, 1)
		if err != nil {
			return err
		}
		size, err := m.fetchU32(ip, 9)
		if err != nil {
			return err
		}
		src, err := m.fetchU64(ip, 13)
		if err != nil {
			return err
		}
		data, err := m.mem.Read(src, int(size))
		if err != nil {
			return err
		}
		return m.mem.Write(dst, data)

	case OpJmp:
		addr, err := m.fetchU64(ip, 1)
		if err != nil {
			return err
		}
		return m.setIP(addr)

	case OpJmpr:
		r, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		addr, err := m.regs.ReadUint64(r)
		if err != nil {
			return err
		}
		return m.setIP(addr)

	case OpJz:
		addr, err := m.fetchU64(ip, 1)
		if err != nil {
			return err
		}
		flags, err := m.flags()
		if err != nil {
			return err
		}
		if flags&FlagZero != 0 {
			return m.setIP(addr)
		}
		return nil

	case OpJzr:
		r, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		flags, err := m.flags()
		if err != nil {
			return err
		}
		if flags&FlagZero != 0 {
			addr, err := m.regs.ReadUint64(r)
			if err != nil {
				return err
			}
			return m.setIP(addr)
		}
		return nil

	case OpCall:
		addr, err := m.fetchU64(ip, 1)
		if err != nil {
			return err
		}
		return m.doCall(addr, ip+uint64(instructionLength[OpCall]))

	case OpCallr:
		r, err := m.fetchReg(ip, 1)
		if err != nil {
			return err
		}
		addr, err := m.regs.ReadUint64(r)
		if err != nil {
			return err
		}
		return m.doCall(addr, ip+uint64(instructionLength[OpCallr]))

	case OpRet:
		return m.doReturn()

	case OpSyscall:
		return m.doSyscall(ip)

	default:
		return &InstructionFault{Opcode: byte(op), IP: ip}
	}
}

// frameLoad implements LOAD/LOADR: reg_write(t, mem_read(FP+off, sz)).
func (m *Machine) frameLoad(t Reg, size int, off int64) error {
	fp, err := m.fp()
	if err != nil {
		return err
	}
	data, err := m.mem.Read(uint64(int64(fp)+off), size)
	if err != nil {
		return err
	}
	return m.regs.Write(t, data)
}

// frameLoadStack implements LOADS/LOADSR: push sz bytes from FP+off.
func (m *Machine) frameLoadStack(size int, off int64) error {
	fp, err := m.fp()
	if err != nil {
		return err
	}
	data, err := m.mem.Read(uint64(int64(fp)+off), size)
	if err != nil {
		return err
	}
	return m.stackPush(data)
}
