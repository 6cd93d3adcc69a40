package db

// Op constants name the storage operation for error context.
const (
	OpCount      = "COUNT"
	OpSelect     = "SELECT"
	OpClasses    = "CLASSES"
	OpCategories = "CATEGORIES"
	OpDistinct   = "DISTINCT"
	OpPing       = "PING"
	OpConn       = "CONN"
	OpSchema     = "SCHEMA"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
