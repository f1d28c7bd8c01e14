// Package vm interprets Save Wizard quick codes against an in-memory
// save image.
//
// The engine is a small virtual machine: a program counter over the
// decoded instruction lines, three registers (a relocation pointer, an
// end-of-range pointer for backward searches, and a transient value
// register used by the mega opcode), and one handler per opcode family.
// Multi-line opcodes consume their continuation lines by advancing the
// program counter themselves, so the fetch-execute loop stays a single
// linear pass. Control never moves backward: the skip opcode and the
// failed-search recovery only ever move the counter forward.
package vm

import (
	"github.com/chazu/quickcode/pkg/code"
	"github.com/chazu/quickcode/pkg/hexfield"
)

// ---------------------------------------------------------------------------
// Engine: registers and the fetch-execute loop
// ---------------------------------------------------------------------------

// Engine executes one program against one save image. All interpreter
// state lives here, never in package globals, so independent runs can
// execute concurrently.
type Engine struct {
	buf  buffer
	prog code.Program

	pc  int       // program counter
	cur code.Line // instruction currently executing, for error reports

	pointer       int64  // relocation base for offset-from-pointer addressing
	endPointer    uint64 // backward-search start bound, 0 = unset
	valueRegister uint32 // mega opcode scratch
}

// NewEngine prepares an engine over buf and prog. The engine owns buf
// until Run returns; it is mutated in place.
func NewEngine(buf []byte, prog code.Program) *Engine {
	return &Engine{buf: buf, prog: prog}
}

// Run executes a parsed program against buf, mutating it in place.
func Run(buf []byte, prog code.Program) error {
	return NewEngine(buf, prog).Run()
}

// Run executes the program to completion. On error the buffer may have
// been mutated up to the failing instruction; callers must not persist
// it.
func (e *Engine) Run() error {
	for e.pc = 0; e.pc < len(e.prog); e.pc++ {
		e.cur = e.prog[e.pc]
		if err := e.exec(e.cur); err != nil {
			return err
		}
	}
	return nil
}

// Pointer returns the relocation pointer register.
func (e *Engine) Pointer() int64 { return e.pointer }

// EndPointer returns the end-of-range pointer register.
func (e *Engine) EndPointer() uint64 { return e.endPointer }

// ValueRegister returns the mega opcode's value register.
func (e *Engine) ValueRegister() uint32 { return e.valueRegister }

// exec dispatches one instruction line.
func (e *Engine) exec(ln code.Line) error {
	switch Opcode(ln.Opcode()) {
	case OpWrite8, OpWrite16, OpWrite32:
		return e.opWrite(ln)
	case OpAdjust:
		return e.opAdjust(ln)
	case OpFill:
		return e.opFill(ln)
	case OpCopy:
		return e.opCopy(ln)
	case OpMega:
		return e.opMega(ln)
	case OpClamp:
		return e.opClamp(ln)
	case OpSearchFwd:
		return e.opSearchForward(ln)
	case OpPointerSet:
		return e.opPointerSet(ln)
	case OpRawWrite:
		return e.opRawWrite(ln)
	case OpSearchBack:
		return e.opSearchBackward(ln)
	case OpSearchAddr:
		return e.opSearchAddress(ln)
	case OpSkip:
		return e.opSkip(ln)
	}
	return e.errf("unsupported opcode %q", ln.Opcode())
}

// ---------------------------------------------------------------------------
// Operand helpers
// ---------------------------------------------------------------------------

// nextLine consumes the following line as an operand continuation.
func (e *Engine) nextLine() (code.Line, error) {
	if e.pc+1 >= len(e.prog) {
		return "", e.errf("missing continuation line")
	}
	e.pc++
	return e.prog[e.pc], nil
}

// uintField parses a hex field of a validated line. The decoder has
// already checked every character, so failure here is a programming
// error, not user input.
func uintField(ln code.Line, from, to int) uint64 {
	v, err := hexfield.Uint(ln.Field(from, to))
	if err != nil {
		panic("vm: field of validated line failed to parse: " + string(ln))
	}
	return v
}

// offset decodes the 6-digit offset field and applies the relocation
// pointer when the instruction's addressing mode asks for it. All
// arithmetic is 64-bit signed; the buffer bounds check is the only
// range enforcement.
func (e *Engine) offset(ln code.Line, pointerRelative bool) int64 {
	off := int64(uintField(ln, 2, 8))
	if pointerRelative {
		off += e.pointer
	}
	return off
}

// value decodes the 8-digit value word as written (most significant
// digit first).
func value(ln code.Line) uint32 {
	return uint32(uintField(ln, 9, 17))
}
