package db

import "errors"

// Sentinel errors for store operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
)

// Op names reported in Error for diagnostics and metrics.
const (
	OpPing        = "ping"
	OpCreateIndex = "create_index"
	OpIndexExists = "index_exists"
	OpIndex       = "index"
	OpSearch      = "search"
	OpAggregate   = "aggregate"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
