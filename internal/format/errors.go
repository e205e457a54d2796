package format

import (
	"fmt"

	"silica/internal/diag"
	"silica/internal/source"
)

// Error is a formatter precondition violation: the AST or comment stream
// breaks an invariant the renderer relies on. Layout infeasibility is never
// an error; the printer just takes the break alternative.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Msg, e.Span)
}

func (p *printer) errf(code diag.Code, sp source.Span, format string, args ...any) {
	if p.firstErr != nil {
		return
	}
	p.firstErr = &Error{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}
