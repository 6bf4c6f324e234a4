package services

import (
	"errors"
	"fmt"
)

// Rejections. The user has already been told and the log written when one of
// these is returned; nothing was mutated or persisted.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("book not available")
	ErrNotBorrowed  = errors.New("book not borrowed by member")
)

// ErrInvalidSearchField is a caller bug, not a user mistake.
var ErrInvalidSearchField = errors.New("invalid search field")

// IsRejection reports whether err is an ordinary, already reported outcome
// the caller can continue from.
func IsRejection(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrNotBorrowed)
}

func rejection(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}
