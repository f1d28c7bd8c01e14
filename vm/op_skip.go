package vm

import (
	"github.com/chazu/quickcode/pkg/code"
	"github.com/chazu/quickcode/pkg/hexfield"
)

// ---------------------------------------------------------------------------
// Conditional skip (opcode D)
// ---------------------------------------------------------------------------

// opSkip handles the test-and-skip command.
//
//	DBYYYYYY CCZDXXXX
//
// The 1- or 2-byte value at address Y (Z selects the width) is compared
// against the literal X with the operator D (0 ==, 1 !=, 2 >, 3 <).
// When the comparison fails, the next CC lines are skipped without
// being executed; all skipped lines must exist. Operators above 3
// always pass.
func (e *Engine) opSkip(ln code.Line) error {
	addr := e.offset(ln, ln.Flag() == '8')
	skip := int(uintField(ln, 9, 11))
	wide := ln[11] != '1'
	op := ln[12]
	val := uintField(ln, 13, 17)

	width := int64(2)
	if !wide {
		width = 1
		val &= 0xFF
	}
	src, err := e.buf.readUint(addr, width, hexfield.Little)
	if err != nil {
		return e.errf("%v", err)
	}

	hold := true
	switch op {
	case '0':
		hold = src == val
	case '1':
		hold = src != val
	case '2':
		hold = src > val
	case '3':
		hold = src < val
	}
	if hold {
		return nil
	}

	if e.pc+skip >= len(e.prog) {
		return e.errf("skip of %d lines runs past the end of the code", skip)
	}
	e.pc += skip
	return nil
}
