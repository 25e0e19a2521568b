package vm

// Opcode identifies a single-byte instruction (§4.4). Operand layout
// per opcode is specified in §4.5.
type Opcode byte

const (
	OpNop Opcode = 0x00

	OpMov   Opcode = 0x01
	OpLoadi Opcode = 0x02
	OpRst   Opcode = 0x03
	OpPush  Opcode = 0x04
	OpRpush Opcode = 0x05
	OpRpop  Opcode = 0x06

	OpLoad   Opcode = 0x10
	OpLoadr  Opcode = 0x11
	OpLoads  Opcode = 0x12
	OpLoadsr Opcode = 0x13
	OpStore  Opcode = 0x14

	OpRead    Opcode = 0x20
	OpReadc   Opcode = 0x21
	OpReads   Opcode = 0x22
	OpReadcs  Opcode = 0x23
	OpWrite   Opcode = 0x24
	OpWritec  Opcode = 0x25
	OpWrites  Opcode = 0x26
	OpWritecs Opcode = 0x27
	OpCopy    Opcode = 0x28
	OpCopyc   Opcode = 0x29

	OpJmp   Opcode = 0x30
	OpJmpr  Opcode = 0x31
	OpJz    Opcode = 0x32
	OpJzr   Opcode = 0x33
	OpCall  Opcode = 0x34
	OpCallr Opcode = 0x35
	OpRet   Opcode = 0x36

	OpSyscall Opcode = 0x40
)

var opcodeNames = map[Opcode]string{
	OpNop:     "nop",
	OpMov:     "mov",
	OpLoadi:   "loadi",
	OpRst:     "rst",
	OpPush:    "push",
	OpRpush:   "rpush",
	OpRpop:    "rpop",
	OpLoad:    "load",
	OpLoadr:   "loadr",
	OpLoads:   "loads",
	OpLoadsr:  "loadsr",
	OpStore:   "store",
	OpRead:    "read",
	OpReadc:   "readc",
	OpReads:   "reads",
	OpReadcs:  "readcs",
	OpWrite:   "write",
	OpWritec:  "writec",
	OpWrites:  "writes",
	OpWritecs: "writecs",
	OpCopy:    "copy",
	OpCopyc:   "copyc",
	OpJmp:     "jmp",
	OpJmpr:    "jmpr",
	OpJz:      "jz",
	OpJzr:     "jzr",
	OpCall:    "call",
	OpCallr:   "callr",
	OpRet:     "ret",
	OpSyscall: "syscall",
}

// String renders the opcode's mnemonic, or "?unknown?" for anything
// that doesn't decode to a known instruction.
func (o Opcode) String() string {
	if s, ok := opcodeNames[o]; ok {
		return s
	}
	return "?unknown?"
}

// instructionLength is the fixed-length table of §4.4. loadiFixedHeader
// and pushFixedHeader below handle the two variable-length exceptions,
// which are not in this table.
var instructionLength = map[Opcode]int{
	OpNop:     1,
	OpMov:     3,  // opcode + reg + reg
	OpRst:     2,  // opcode + reg
	OpRpush:   2,  // opcode + reg
	OpRpop:    6,  // opcode + reg + u32 size
	OpLoad:    14, // opcode + reg + u32 size + i64 offset
	OpLoadr:   7,  // opcode + reg + u32 size + reg
	OpLoads:   13, // opcode + u32 size + i64 offset
	OpLoadsr:  6,  // opcode + u32 size + reg
	OpStore:   10, // opcode + i64 offset + reg
	OpRead:    3,  // opcode + reg + reg
	OpReadc:   10, // opcode + reg + u64 addr
	OpReads:   6,  // opcode + u32 size + reg
	OpReadcs:  13, // opcode + u32 size + u64 addr
	OpWrite:   3,  // opcode + reg + reg
	OpWritec:  10, // opcode + u64 addr + reg
	OpWrites:  6,  // opcode + reg + u32 size
	OpWritecs: 13, // opcode + u64 addr + u32 size
	OpCopy:    7,  // opcode + reg + u32 size + reg
	OpCopyc:   21, // opcode + u64 + u32 size + u64
	OpJmp:     9,  // opcode + u64 addr
	OpJmpr:    2,  // opcode + reg
	OpJz:      9,  // opcode + u64 addr
	OpJzr:     2,  // opcode + reg
	OpCall:    9,  // opcode + u64 addr
	OpCallr:   2,  // opcode + reg
	OpRet:     1,
	OpSyscall: 1,
}

// loadiFixedHeader is the byte count of LOADI before its size-prefixed
// payload: opcode + reg + u32 size.
const loadiFixedHeader = 1 + 1 + 4

// pushFixedHeader is the byte count of PUSH before its size-prefixed
// payload: opcode + u32 size.
const pushFixedHeader = 1 + 4
