package vm

import (
	"github.com/google/uuid"

	"gvm64/diag"
)

// DebuggerHook is invoked synchronously by the DEBUGGER syscall
// (§4.7, §5: "single synchronous upcall point"). It runs on the VM's
// own goroutine and must return before the next fetch.
type DebuggerHook func(arg uint64)

// Machine is a single owned aggregate of register file, memory and
// debugger hook (§9: "there is no process-wide singleton"). Multiple
// independent Machines may coexist.
type Machine struct {
	id uuid.UUID

	regs RegisterFile
	mem  *Memory

	execSize uint64 // executable_size, set by Flash

	debugHook   DebuggerHook
	breakpoints map[uint64]struct{}

	log diag.Logger
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithLogger attaches a structured logger used for trace/fault
// diagnostics. The zero value is diag.Nop(), matching the teacher's
// "silent unless asked" debug posture.
func WithLogger(l diag.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// WithDebuggerHook registers the handler invoked by SYSCALL DEBUGGER.
func WithDebuggerHook(h DebuggerHook) Option {
	return func(m *Machine) { m.debugHook = h }
}

// NewMachine allocates a Machine with a linear memory of memSize
// bytes. The machine is not runnable until Flash loads an image.
func NewMachine(memSize uint64, opts ...Option) *Machine {
	m := &Machine{
		id:          uuid.New(),
		mem:         NewMemory(memSize),
		breakpoints: make(map[uint64]struct{}),
		log:         diag.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID returns the machine's unique identifier, stamped at construction
// so a host running several machines (§5) can tell their log lines
// apart.
func (m *Machine) ID() uuid.UUID { return m.id }

// Memory exposes the machine's linear memory for embedding hosts that
// need to inspect it directly (e.g. a loader seeding data segments
// per the load table of §6).
func (m *Machine) Memory() *Memory { return m.mem }

// Flash copies image into memory starting at address 0, zeroes the
// remainder, and resets SP/FP to the end of the image (§6). It is
// atomic: either the whole image lands and SP/FP/IP reset, or nothing
// about the machine's state changes.
func (m *Machine) Flash(image []byte) error {
	if uint64(len(image)) > m.mem.Len() {
		return ErrOutOfMemory
	}

	m.mem.Reset()
	if err := m.mem.Write(0, image); err != nil {
		// Unreachable given the length check above, but keeps Flash
		// honest about never leaving partial state on error.
		return err
	}

	m.execSize = uint64(len(image))
	if err := m.setSP(m.execSize); err != nil {
		return err
	}
	if err := m.setFP(m.execSize); err != nil {
		return err
	}
	if err := m.setIP(0); err != nil {
		return err
	}
	if err := m.regs.WriteUint64(reg8(RegRUN), 0); err != nil {
		return err
	}
	return m.regs.WriteUint64(reg8(RegEXT), 0)
}

// Grow enlarges the machine's memory (§4.2, §4.7 GROW syscall).
func (m *Machine) Grow(n uint64) { m.mem.Grow(n) }

// ExecutableSize returns the length of the most recently flashed
// image.
func (m *Machine) ExecutableSize() uint64 { return m.execSize }

// --- named special-register accessors -------------------------------

func (m *Machine) ip() (uint64, error)       { return m.regs.ReadUint64(reg8(RegIP)) }
func (m *Machine) setIP(v uint64) error      { return m.regs.WriteUint64(reg8(RegIP), v) }
func (m *Machine) sp() (uint64, error)       { return m.regs.ReadUint64(reg8(RegSP)) }
func (m *Machine) setSP(v uint64) error      { return m.regs.WriteUint64(reg8(RegSP), v) }
func (m *Machine) fp() (uint64, error)       { return m.regs.ReadUint64(reg8(RegFP)) }
func (m *Machine) setFP(v uint64) error      { return m.regs.WriteUint64(reg8(RegFP), v) }
func (m *Machine) flags() (uint8, error) {
	v, err := m.regs.ReadUint64(reg8(RegFLAGS))
	return uint8(v), err
}
func (m *Machine) setFlags(v uint8) error { return m.regs.WriteUint64(reg8(RegFLAGS), uint64(v)) }

func (m *Machine) running() (bool, error) {
	v, err := m.regs.ReadUint64(reg8(RegRUN))
	return v != 0, err
}

func (m *Machine) setRunning(v bool) error {
	var u uint64
	if v {
		u = 1
	}
	return m.regs.WriteUint64(reg8(RegRUN), u)
}

// Registers exposes the raw register file for tests, diagnostics and
// Snapshot. General code should prefer the typed accessors above and
// the opcode-level Reg decoded from the instruction stream.
func (m *Machine) Registers() *RegisterFile { return &m.regs }

// IP, SP, FP and Flags are read-only public views of machine state,
// useful to an embedding host or debugger shell without granting it
// direct register-file access.
func (m *Machine) IP() uint64 { v, _ := m.ip(); return v }
func (m *Machine) SP() uint64 { v, _ := m.sp(); return v }
func (m *Machine) FP() uint64 { v, _ := m.fp(); return v }
func (m *Machine) Flags() uint8 { v, _ := m.flags(); return v }
func (m *Machine) Running() bool { v, _ := m.running(); return v }
func (m *Machine) ExitCode() uint8 {
	v, _ := m.regs.ReadUint64(reg8(RegEXT))
	return uint8(v)
}
