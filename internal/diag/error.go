package diag

import (
	"errors"
	"fmt"

	"ember/internal/source"
)

// Классы ошибок компиляции; проверяются через errors.Is.
var (
	ErrLexical    = errors.New("lexical error")
	ErrParse      = errors.New("parse error")
	ErrEmptyInput = errors.New("empty input")
	ErrType       = errors.New("type error")
	ErrInternal   = errors.New("internal compiler error")
)

// Error is the fail-fast form of a diagnostic: the single error that aborted
// a compilation, with its position already resolved.
type Error struct {
	Diagnostic
	Pos source.LineCol
}

// Errorf builds an Error for a span in f. f may be nil when no file is at hand.
func Errorf(f *source.File, code Code, sp source.Span, format string, args ...any) *Error {
	e := &Error{Diagnostic: NewError(code, sp, fmt.Sprintf(format, args...))}
	if f != nil {
		e.Pos = f.Position(sp.Start)
	}
	return e
}

// Error renders "line:col: message", or just the message when the position is unknown.
func (e *Error) Error() string {
	if e.Pos.IsZero() {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Message)
}

// Unwrap exposes the taxonomy sentinel for errors.Is.
func (e *Error) Unwrap() error {
	return e.Code.Class()
}

// AsError extracts the *Error from err, if there is one.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
