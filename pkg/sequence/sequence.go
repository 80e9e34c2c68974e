// Package sequence implements the dynamic ordered array the tree nodes are
// built from. Indexing outside [0, len) panics with
// errs.ErrIndexOutOfBounds; structural operations never reorder elements.
package sequence

import (
	"fmt"

	"treedict/pkg/errs"
)

type Sequence[T any] struct {
	items []T
}

func New[T any](capacity int) *Sequence[T] {
	return &Sequence[T]{items: make([]T, 0, capacity)}
}

func From[T any](items ...T) *Sequence[T] {
	s := New[T](len(items))
	s.items = append(s.items, items...)
	return s
}

func (s *Sequence[T]) Len() int {
	return len(s.items)
}

func (s *Sequence[T]) Empty() bool {
	return len(s.items) == 0
}

func (s *Sequence[T]) Get(index int) T {
	s.checkBounds(index)
	return s.items[index]
}

func (s *Sequence[T]) Last() T {
	return s.Get(len(s.items) - 1)
}

func (s *Sequence[T]) Set(index int, val T) {
	s.checkBounds(index)
	s.items[index] = val
}

func (s *Sequence[T]) Append(val T) {
	s.items = append(s.items, val)
}

func (s *Sequence[T]) Prepend(val T) {
	s.InsertAt(0, val)
}

// InsertAt shifts items[index:] right by one and places val at index.
// index == Len() appends.
func (s *Sequence[T]) InsertAt(index int, val T) {
	if index != len(s.items) {
		s.checkBounds(index)
	}
	var zero T
	s.items = append(s.items, zero)
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = val
}

// RemoveAt deletes and returns the item at index, pulling the tail left.
func (s *Sequence[T]) RemoveAt(index int) T {
	s.checkBounds(index)
	val := s.items[index]
	copy(s.items[index:], s.items[index+1:])
	var zero T
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return val
}

func (s *Sequence[T]) Pop() T {
	return s.RemoveAt(len(s.items) - 1)
}

func (s *Sequence[T]) Swap(i, j int) {
	s.checkBounds(i)
	s.checkBounds(j)
	s.items[i], s.items[j] = s.items[j], s.items[i]
}

// SubArray returns a copy of items[from:to].
func (s *Sequence[T]) SubArray(from, to int) *Sequence[T] {
	if from < 0 || from > to || to > len(s.items) {
		panic(fmt.Errorf("%w: [%d:%d], len %d", errs.ErrIndexOutOfBounds, from, to, len(s.items)))
	}
	sub := New[T](to - from)
	sub.items = append(sub.items, s.items[from:to]...)
	return sub
}

// Truncate drops items[index:].
func (s *Sequence[T]) Truncate(index int) {
	if index < 0 || index > len(s.items) {
		panic(fmt.Errorf("%w: %d, len %d", errs.ErrIndexOutOfBounds, index, len(s.items)))
	}
	var zero T
	for i := index; i < len(s.items); i++ {
		s.items[i] = zero
	}
	s.items = s.items[:index]
}

// Concat appends all of other's items.
func (s *Sequence[T]) Concat(other *Sequence[T]) {
	s.items = append(s.items, other.items...)
}

// Map applies fn to every item in place.
func (s *Sequence[T]) Map(fn func(T) T) {
	for i := range s.items {
		s.items[i] = fn(s.items[i])
	}
}

func (s *Sequence[T]) Clone() *Sequence[T] {
	return s.SubArray(0, len(s.items))
}

func (s *Sequence[T]) checkBounds(index int) {
	if index < 0 || index >= len(s.items) {
		panic(fmt.Errorf("%w: %d, len %d", errs.ErrIndexOutOfBounds, index, len(s.items)))
	}
}
