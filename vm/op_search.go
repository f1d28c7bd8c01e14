package vm

import (
	"github.com/chazu/quickcode/pkg/code"
	"github.com/chazu/quickcode/pkg/hexfield"
)

// ---------------------------------------------------------------------------
// Search opcodes (8, B, C) and the dependent-skip rule
// ---------------------------------------------------------------------------

// opSearchForward handles the forward byte search.
//
//	8TZZXXXX YYYYYYYY
//	YYYYYYYY YYYYYYYY   (pattern continuations as the length requires)
//
// ZZ is the occurrence to find (0 means 1), XXXX the pattern length in
// bytes. The scan starts at the pointer when T=8, else at 0, and the
// matching offset becomes the pointer. A failed search zeroes the
// pointer and skips the dependent block.
func (e *Engine) opSearchForward(ln code.Line) error {
	count := searchCount(ln)
	pattern, err := e.searchPattern(ln)
	if err != nil {
		return err
	}

	start := int64(0)
	if ln.Flag() == '8' {
		start = e.pointer
	}
	if start < 0 {
		return e.errf("negative search start %d", start)
	}

	e.setSearchResult(searchForward(e.buf, int64(len(e.buf)), start, pattern, count))
	return nil
}

// opSearchBackward handles the backward byte search.
//
//	BTCCYYYY XXXXXXXX
//
// Like the forward search but scanning down from the pointer (T=8) or
// from the end pointer, which defaults to the last image offset when
// unset — and the default is stored, so later backward searches reuse
// it.
func (e *Engine) opSearchBackward(ln code.Line) error {
	count := searchCount(ln)
	pattern, err := e.searchPattern(ln)
	if err != nil {
		return err
	}

	if e.endPointer == 0 && len(e.buf) > 0 {
		e.endPointer = uint64(len(e.buf)) - 1
	}
	start := int64(e.endPointer)
	if ln.Flag() == '8' {
		start = e.pointer
	}
	if start < 0 {
		return e.errf("negative search start %d", start)
	}

	e.setSearchResult(searchBackward(e.buf, start, pattern, count))
	return nil
}

// opSearchAddress handles the address-based search.
//
//	CBFFYYYY XXXXXXXX
//
// The pattern is not supplied literally: it is the YYYY bytes already
// in the image at address X. Subtype bit 2 searches the range below the
// address (0x0 up to it) instead of forward from it; bit 3 makes the
// address pointer-relative. The pattern is snapshotted before the scan.
func (e *Engine) opSearchAddress(ln code.Line) error {
	sub := nibble(ln.Flag())
	if sub&3 != 0 {
		return e.errf("unknown address-search subtype %X", sub)
	}
	count := searchCount(ln)
	length := int64(uintField(ln, 4, 8))

	addr := int64(value(ln))
	if sub&8 != 0 {
		addr += e.pointer
	}

	pattern, err := e.buf.slice(addr, length)
	if err != nil {
		return e.errf("%v", err)
	}

	var result int64
	if sub&4 != 0 {
		result = searchForward(e.buf, addr+length, 0, pattern, count)
	} else {
		result = searchForward(e.buf, int64(len(e.buf)), addr+length, pattern, count)
	}
	e.setSearchResult(result)
	return nil
}

// searchCount reads the occurrence field; 0 means first occurrence.
func searchCount(ln code.Line) int {
	count := int(uintField(ln, 2, 4))
	if count == 0 {
		count = 1
	}
	return count
}

// searchPattern assembles the literal search pattern for opcodes 8 and
// B: the length field names the byte count, the instruction's value
// word supplies the first four bytes, and continuation lines supply two
// words each. Words are packed most-significant-byte first — the
// pattern reads as written in the code text.
func (e *Engine) searchPattern(ln code.Line) ([]byte, error) {
	length := int64(uintField(ln, 4, 8))
	if length == 0 {
		return nil, nil
	}

	padded := (length + 3) &^ 3
	find := make([]byte, padded)
	hexfield.Put(find[0:4], uintField(ln, 9, 17), hexfield.Big)

	for i := int64(4); i < length; i += 8 {
		cont, err := e.nextLine()
		if err != nil {
			return nil, err
		}
		hexfield.Put(find[i:i+4], uintField(cont, 0, 8), hexfield.Big)
		if i+4 < length {
			hexfield.Put(find[i+4:i+8], uintField(cont, 9, 17), hexfield.Big)
		}
	}
	return find[:length], nil
}

// setSearchResult commits a search result into the pointer. A failed
// search zeroes the pointer and skips the block of instructions that
// depend on it.
func (e *Engine) setSearchResult(result int64) {
	if result < 0 {
		e.pointer = 0
		e.dependentSkip()
		return
	}
	e.pointer = result
}

// dependentSkip advances past the contiguous run of lines that depend
// on the now-undefined pointer after a failed search. Execution resumes
// at the next search line (opcode 8, B or C) whose addressing nibble
// has the pointer bit clear — the next search that re-anchors the
// pointer absolutely — or at the end of the program. Skipped lines are
// skipped as raw lines, which also disposes of their continuations.
func (e *Engine) dependentSkip() {
	for e.pc+1 < len(e.prog) {
		next := e.prog[e.pc+1]
		op := Opcode(next.Opcode())
		if (op == OpSearchFwd || op == OpSearchBack || op == OpSearchAddr) && nibble(next.Flag())&8 == 0 {
			return
		}
		e.pc++
	}
}
