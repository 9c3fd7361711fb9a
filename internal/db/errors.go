package db

import "errors"

// ErrUnexpectedReply is returned when a store answers with a shape the caller cannot decode.
var ErrUnexpectedReply = errors.New("db: unexpected reply")

// Op names used for error context.
const (
	OpPing   = "PING"
	OpWindow = "EVALSHA fixed_window"
	OpQuery  = "SELECT"
	OpScan   = "SCAN ROW"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
