// Package errs holds the error kinds shared by the tree engines, the
// dictionary facade and the sequence primitive. Callers match them with
// errors.Is; wrapped variants carry context.
package errs

import "errors"

var (
	// ErrKeyCollision is returned by insert when the key is already present.
	ErrKeyCollision = errors.New("key already exists")

	// ErrAbsentKey is returned by get when the key is not in the container.
	ErrAbsentKey = errors.New("absent key")

	// ErrInvalidIterator signals construction of an iterator with an
	// out-of-range state tag.
	ErrInvalidIterator = errors.New("invalid iterator state")

	// ErrIndexOutOfBounds signals indexing a sequence outside [0, size).
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrInvalidInput signals facade-level argument validation failure.
	ErrInvalidInput = errors.New("invalid input")
)
