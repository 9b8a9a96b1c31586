package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrNoRecords   = errors.New("no records to preview (check --source and --filter)")
)
