package vm

import "testing"

// TestFrameRelativeStoreLoad encodes spec scenario 3: a caller pushes an
// 8-byte argument and its 4-byte argument_bytecount, CALLs a function
// that reads the argument via a frame-relative LOAD, then RETs. No
// magic addresses: the CALL target and expected post-RET SP are both
// derived from the lengths of the assembled pieces, mirroring how the
// image itself is built.
func TestFrameRelativeStoreLoad(t *testing.T) {
	pushArgs := (&asm{}).push(u64le(42))
	pushArgc := (&asm{}).push(u32le(8))
	epilogue := (&asm{}).syscallExit(0)

	prologueLen := len(pushArgs.buf) + len(pushArgc.buf)
	callLen := instructionLength[OpCall]
	funcAddr := uint64(prologueLen + callLen + len(epilogue.buf))

	full := &asm{}
	full.push(u64le(42))
	full.push(u32le(8))
	full.call(funcAddr)
	full.syscallExit(0)
	full.load(Reg{Code: RegR0, Width: 8}, 8, -12)
	full.ret()

	m := newTestMachine(t, 512, full.buf)
	execSize := m.ExecutableSize()

	// push args, push argc, call, load, ret
	if err := m.CycleN(5); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	got, err := m.Registers().ReadUint64(Reg{Code: RegR0, Width: 8})
	if err != nil {
		t.Fatalf("read R0: %v", err)
	}
	if got != 42 {
		t.Fatalf("R0 = %d, want 42", got)
	}

	if m.SP() != execSize {
		t.Fatalf("SP after RET = %d, want %d (pre-call SP, argc+bytecount consumed)", m.SP(), execSize)
	}
	if m.FP() != execSize {
		t.Fatalf("FP after RET = %d, want %d (restored to caller's frame)", m.FP(), execSize)
	}
}
