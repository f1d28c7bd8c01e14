package vm

import (
	"fmt"

	"github.com/chazu/quickcode/pkg/code"
)

// ---------------------------------------------------------------------------
// Execution errors
// ---------------------------------------------------------------------------

// CodeError is the single execution-error category: the code could not
// be applied. Address-range violations, unknown subtype digits and
// missing continuation lines all collapse into it; the message carries
// the detail and the instruction line that failed.
type CodeError struct {
	Line code.Line // the instruction being executed when the run failed
	Msg  string
}

func (e *CodeError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("cannot apply code: %s", e.Msg)
	}
	return fmt.Sprintf("cannot apply code %q: %s", string(e.Line), e.Msg)
}

// errf builds a CodeError for the instruction currently executing.
func (e *Engine) errf(format string, args ...interface{}) error {
	return &CodeError{Line: e.cur, Msg: fmt.Sprintf(format, args...)}
}
