package wordcount

import "errors"

// Error kinds returned by CountWords. Callers test them with errors.Is; the
// underlying cause stays reachable through the wrap chain.
var (
	// ErrNotFound: the path does not name an existing regular file.
	ErrNotFound = errors.New("file not found")

	// ErrIOFailure: the file exists but could not be opened, read or decoded.
	ErrIOFailure = errors.New("error reading file")
)
