package util

import "cmp"

// Comparable defines the total order required of tree keys. Compare returns
// a negative value when the receiver sorts before other, zero when they are
// equal and a positive value otherwise.
type Comparable[T any] interface {
	Compare(other T) int
}

// Int is a ready-made Comparable key over int.
type Int int

func (a Int) Compare(b Int) int { return cmp.Compare(a, b) }

// Uint64 is a ready-made Comparable key over uint64.
type Uint64 uint64

func (a Uint64) Compare(b Uint64) int { return cmp.Compare(a, b) }

// String is a ready-made Comparable key over string.
type String string

func (a String) Compare(b String) int { return cmp.Compare(a, b) }
