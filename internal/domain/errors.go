package domain

import "errors"

var (
	// ErrInvalidQuery signals that the text-search engine rejected the full-text syntax.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrStorageUnavailable signals that no storage connection could be acquired.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrSchemaMismatch signals that the corpus database lacks a required table.
	ErrSchemaMismatch = errors.New("schema mismatch")
)
