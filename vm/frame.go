package vm

// Frame layout constants, relative to FP (§4.6):
//
//	[FP - 4 - N, FP - 4)   arguments (N = argument_bytecount)
//	[FP - 4, FP)           argument_bytecount (u32)
//	[FP, FP + 8)           saved FP (u64)
//	[FP + 8, FP + 16)      return address (u64)
//	[FP + 16, ...)         callee locals / inner pushes
const (
	frameArgcOffset   = -4
	frameSavedFPOff   = 0
	frameRetAddrOff   = 8
	frameLocalsOffset = 16
)

// doCall implements the CALL/CALLR prologue (§4.6). returnAddr is the
// address of the byte immediately following the CALL/CALLR instruction,
// computed by the caller from the decoder's length for that instruction
// (§9's resolution of the return-address Open Question: length(CALL),
// not the length of whatever sits at the call target).
func (m *Machine) doCall(target, returnAddr uint64) error {
	frameBase, err := m.sp()
	if err != nil {
		return err
	}

	savedFP, err := m.fp()
	if err != nil {
		return err
	}
	if err := m.stackPush8(savedFP); err != nil {
		return err
	}
	if err := m.stackPush8(returnAddr); err != nil {
		return err
	}

	if err := m.setFP(frameBase); err != nil {
		return err
	}
	return m.setIP(target)
}

// doReturn implements the RET epilogue (§4.6).
func (m *Machine) doReturn() error {
	fp, err := m.fp()
	if err != nil {
		return err
	}

	savedFP, err := m.mem.ReadUint64(fp+frameSavedFPOff, 8)
	if err != nil {
		return err
	}
	retAddr, err := m.mem.ReadUint64(fp+frameRetAddrOff, 8)
	if err != nil {
		return err
	}
	argc, err := m.mem.ReadUint64(uint64(int64(fp)+frameArgcOffset), 4)
	if err != nil {
		return err
	}

	newSP := uint64(int64(fp) + frameArgcOffset - int64(argc))
	if err := m.setSP(newSP); err != nil {
		return err
	}
	if err := m.setFP(savedFP); err != nil {
		return err
	}
	return m.setIP(retAddr)
}
