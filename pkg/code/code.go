// Package code lexes quick code text into instruction lines.
//
// A quick code is a string of whitespace-separated hexadecimal tokens.
// Tokens pair up two at a time into instruction lines of exactly 17
// characters: eight hex digits, a space, eight hex digits. The first
// character of the left group is the opcode; the remaining characters
// are opcode-specific fields read by position. The decoder validates
// lexical shape only — operand semantics belong to the interpreter.
package code

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCode indicates quick code text that fails lexical
// validation: an odd token count or a malformed line.
var ErrInvalidCode = errors.New("invalid code")

// LineLen is the exact length of an instruction line.
const LineLen = 17

// Line is a single validated instruction line. It is immutable; fields
// are read as character substrings because position is load-bearing
// (leading zeros included).
type Line string

// Opcode returns the opcode character, the first character of the left
// group.
func (l Line) Opcode() byte {
	return l[0]
}

// Flag returns the addressing-mode/subtype character at position 1.
func (l Line) Flag() byte {
	return l[1]
}

// Field returns the substring [from:to) of the line. Callers index
// into the full 17-character line, space included, mirroring how the
// code format is documented.
func (l Line) Field(from, to int) string {
	return string(l[from:to])
}

// Right returns the right 8-character group, the value word.
func (l Line) Right() string {
	return string(l[9:17])
}

// Program is an ordered sequence of instruction lines; insertion order
// is execution order.
type Program []Line

// Parse splits raw quick code text into a validated Program. Tokens are
// paired consecutively; an odd token count or any line failing the
// 17-character shape is an ErrInvalidCode.
func Parse(text string) (Program, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 || len(tokens)%2 != 0 {
		return nil, ErrInvalidCode
	}

	prog := make(Program, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		line := tokens[i] + " " + tokens[i+1]
		if !validLine(line) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCode, line)
		}
		// Lines are normalized to upper case so that every later field
		// read is a plain character comparison.
		prog = append(prog, Line(strings.ToUpper(line)))
	}
	return prog, nil
}

// validLine reports whether line matches ^[0-9A-Fa-f]{8} [0-9A-Fa-f]{8}$.
func validLine(line string) bool {
	if len(line) != LineLen || line[8] != ' ' {
		return false
	}
	for i, c := range []byte(line) {
		if i == 8 {
			continue
		}
		if !isHex(c) {
			return false
		}
	}
	return true
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'F' || c >= 'a' && c <= 'f'
}
