package rst

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel wrapped by all parse errors.
var ErrParse = errors.New("parse error")

// ParseError reports a problem at a specific source line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// parseErrorf builds a ParseError for the given 1-based line.
func parseErrorf(line int, format string, args ...any) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
