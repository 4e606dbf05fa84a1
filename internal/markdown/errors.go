package markdown

import (
	"errors"
	"fmt"
)

// ErrEOF is the cause of errors produced when a Cursor runs out of nodes.
var ErrEOF = errors.New("unexpected end of document")

// Position is a location in the source document. Line and Column are
// 1-based; Column counts runes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Error is the single error kind reported while reading a recipe document.
// Pos is nil when the failure has no source location (numeric failures,
// free-standing grammar checks). Err holds the underlying cause, if any.
type Error struct {
	Msg string
	Pos *Position
	Err error
}

func (e *Error) Error() string {
	msg := e.Msg
	switch {
	case msg == "" && e.Err != nil:
		msg = e.Err.Error()
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	if e.Pos != nil {
		msg += " @ " + e.Pos.String()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an Error without a position.
func Errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around cause. An empty format keeps only the cause's
// message.
func Wrap(cause error, format string, args ...any) *Error {
	msg := ""
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Msg: msg, Err: cause}
}

// At attaches pos to err. An *Error that already has a position is returned
// as is; any other error is wrapped.
func At(err error, pos *Position) error {
	if err == nil || pos == nil {
		return err
	}
	if e, ok := err.(*Error); ok {
		if e.Pos != nil {
			return e
		}
		cp := *e
		cp.Pos = pos
		return &cp
	}
	return &Error{Err: err, Pos: pos}
}
