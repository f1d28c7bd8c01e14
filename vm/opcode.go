package vm

// ---------------------------------------------------------------------------
// Opcode definitions
// ---------------------------------------------------------------------------

// Opcode identifies an instruction family, decoded once from the first
// character of an instruction line. The enumeration is closed: the two
// remaining hex digits, 'E' and 'F', are not assigned and dispatching
// one is an execution error. (They cannot be rejected at decode time
// because continuation lines may lexically begin with any hex digit;
// which lines sit in instruction position is only known during
// execution.)
type Opcode byte

const (
	OpWrite8     Opcode = '0' // fixed 1-byte write
	OpWrite16    Opcode = '1' // fixed 2-byte write
	OpWrite32    Opcode = '2' // fixed 4-byte write
	OpAdjust     Opcode = '3' // add/sub with wraparound, widths 1/2/4/8
	OpFill       Opcode = '4' // repeated fill, one continuation line
	OpCopy       Opcode = '5' // block copy, two-line form
	OpMega       Opcode = '6' // pointer/value-register mega code
	OpClamp      Opcode = '7' // write clamped no-less-than / no-more-than
	OpSearchFwd  Opcode = '8' // forward pattern search, sets pointer
	OpPointerSet Opcode = '9' // pointer and end-pointer manipulation
	OpRawWrite   Opcode = 'A' // raw multi-word write from continuations
	OpSearchBack Opcode = 'B' // backward pattern search, sets pointer
	OpSearchAddr Opcode = 'C' // search for bytes already at an address
	OpSkip       Opcode = 'D' // conditional forward skip
)

func (op Opcode) String() string {
	switch op {
	case OpWrite8:
		return "write8"
	case OpWrite16:
		return "write16"
	case OpWrite32:
		return "write32"
	case OpAdjust:
		return "adjust"
	case OpFill:
		return "fill"
	case OpCopy:
		return "copy"
	case OpMega:
		return "mega"
	case OpClamp:
		return "clamp"
	case OpSearchFwd:
		return "search-forward"
	case OpPointerSet:
		return "pointer-set"
	case OpRawWrite:
		return "raw-write"
	case OpSearchBack:
		return "search-backward"
	case OpSearchAddr:
		return "search-address"
	case OpSkip:
		return "skip"
	}
	return "unknown"
}

// nibble converts a validated uppercase hex character to its value.
func nibble(c byte) int {
	if c >= '0' && c <= '9' {
		return int(c - '0')
	}
	return int(c-'A') + 10
}
