package vm

import "encoding/binary"

func regByte(code uint8, width uint8) byte {
	return Reg{Code: code, Width: width}.Encode()
}

func u32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func u64le(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func i64le(v int64) []byte {
	return u64le(uint64(v))
}

// asm is a tiny byte-level assembler helper for tests: each call
// appends one instruction's raw bytes.
type asm struct {
	buf []byte
}

func (a *asm) b(bs ...byte) *asm {
	a.buf = append(a.buf, bs...)
	return a
}

func (a *asm) bytes(bs []byte) *asm {
	a.buf = append(a.buf, bs...)
	return a
}

func (a *asm) nop() *asm { return a.b(byte(OpNop)) }

func (a *asm) mov(t, s Reg) *asm {
	return a.b(byte(OpMov), t.Encode(), s.Encode())
}

func (a *asm) loadi(t Reg, value []byte) *asm {
	a.b(byte(OpLoadi), t.Encode())
	a.bytes(u32le(uint32(len(value))))
	return a.bytes(value)
}

func (a *asm) rst(t Reg) *asm { return a.b(byte(OpRst), t.Encode()) }

func (a *asm) push(value []byte) *asm {
	a.b(byte(OpPush))
	a.bytes(u32le(uint32(len(value))))
	return a.bytes(value)
}

func (a *asm) rpush(s Reg) *asm { return a.b(byte(OpRpush), s.Encode()) }

func (a *asm) rpop(t Reg, size uint32) *asm {
	a.b(byte(OpRpop), t.Encode())
	return a.bytes(u32le(size))
}

func (a *asm) load(t Reg, size uint32, off int64) *asm {
	a.b(byte(OpLoad), t.Encode())
	a.bytes(u32le(size))
	return a.bytes(i64le(off))
}

func (a *asm) store(off int64, s Reg) *asm {
	a.b(byte(OpStore))
	a.bytes(i64le(off))
	return a.b(s.Encode())
}

func (a *asm) readc(t Reg, addr uint64) *asm {
	a.b(byte(OpReadc), t.Encode())
	return a.bytes(u64le(addr))
}

func (a *asm) loadr(t Reg, size uint32, offReg Reg) *asm {
	a.b(byte(OpLoadr), t.Encode())
	a.bytes(u32le(size))
	return a.b(offReg.Encode())
}

func (a *asm) loads(size uint32, off int64) *asm {
	a.b(byte(OpLoads))
	a.bytes(u32le(size))
	return a.bytes(i64le(off))
}

func (a *asm) loadsr(size uint32, offReg Reg) *asm {
	a.b(byte(OpLoadsr))
	a.bytes(u32le(size))
	return a.b(offReg.Encode())
}

func (a *asm) reads(size uint32, s Reg) *asm {
	a.b(byte(OpReads))
	a.bytes(u32le(size))
	return a.b(s.Encode())
}

func (a *asm) readcs(size uint32, addr uint64) *asm {
	a.b(byte(OpReadcs))
	a.bytes(u32le(size))
	return a.bytes(u64le(addr))
}

func (a *asm) write(t, s Reg) *asm {
	return a.b(byte(OpWrite), t.Encode(), s.Encode())
}

func (a *asm) writec(addr uint64, s Reg) *asm {
	a.b(byte(OpWritec))
	a.bytes(u64le(addr))
	return a.b(s.Encode())
}

func (a *asm) writes(t Reg, size uint32) *asm {
	a.b(byte(OpWrites), t.Encode())
	return a.bytes(u32le(size))
}

func (a *asm) writecs(addr uint64, size uint32) *asm {
	a.b(byte(OpWritecs))
	a.bytes(u64le(addr))
	return a.bytes(u32le(size))
}

func (a *asm) copy(t Reg, size uint32, s Reg) *asm {
	a.b(byte(OpCopy), t.Encode())
	a.bytes(u32le(size))
	return a.b(s.Encode())
}

func (a *asm) copyc(dst uint64, size uint32, src uint64) *asm {
	a.b(byte(OpCopyc))
	a.bytes(u64le(dst))
	a.bytes(u32le(size))
	return a.bytes(u64le(src))
}

func (a *asm) jmp(addr uint64) *asm {
	a.b(byte(OpJmp))
	return a.bytes(u64le(addr))
}

func (a *asm) jmpr(r Reg) *asm { return a.b(byte(OpJmpr), r.Encode()) }

func (a *asm) jz(addr uint64) *asm {
	a.b(byte(OpJz))
	return a.bytes(u64le(addr))
}

func (a *asm) jzr(r Reg) *asm { return a.b(byte(OpJzr), r.Encode()) }

func (a *asm) call(addr uint64) *asm {
	a.b(byte(OpCall))
	return a.bytes(u64le(addr))
}

func (a *asm) callr(r Reg) *asm { return a.b(byte(OpCallr), r.Encode()) }

func (a *asm) ret() *asm { return a.b(byte(OpRet)) }

func (a *asm) syscall() *asm { return a.b(byte(OpSyscall)) }

func u16le(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// syscallExit assembles the stack setup + SYSCALL for EXIT code.
func (a *asm) syscallExit(code byte) *asm {
	a.push([]byte{code})
	a.push(u16le(uint16(SyscallExit)))
	return a.syscall()
}

// syscallDebugger assembles the stack setup + SYSCALL for DEBUGGER arg.
func (a *asm) syscallDebugger(arg uint64) *asm {
	a.push(u64le(arg))
	a.push(u16le(uint16(SyscallDebugger)))
	return a.syscall()
}

// syscallGrow assembles the stack setup + SYSCALL for GROW.
func (a *asm) syscallGrow() *asm {
	a.push(u16le(uint16(SyscallGrow)))
	return a.syscall()
}

func newTestMachine(t interface {
	Fatalf(format string, args ...any)
}, memSize uint64, image []byte) *Machine {
	m := NewMachine(memSize)
	if err := m.Flash(image); err != nil {
		t.Fatalf("flash failed: %v", err)
	}
	return m
}
