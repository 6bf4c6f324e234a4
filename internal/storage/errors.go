package storage

import "errors"

var (
	// ErrMissingCollection is returned by ValidatePresence when a collection
	// was not loaded into the dataset.
	ErrMissingCollection = errors.New("collection data is not available in storage")

	// ErrCorruptFile is returned when a backing file exists but does not hold
	// the collection's JSON shape.
	ErrCorruptFile = errors.New("corrupt collection file")
)
