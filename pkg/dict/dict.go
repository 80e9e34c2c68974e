// Package dict presents a uniform dictionary surface over any ordered
// associative engine. The two tree engines of this repository satisfy
// Engine out of the box; callers that only care about the contract never
// see which one backs them.
package dict

import (
	"fmt"

	"treedict/pkg/bptree"
	"treedict/pkg/btree"
	"treedict/pkg/errs"
	"treedict/pkg/pair"
	"treedict/pkg/util"
)

// Iterator is the uniform bidirectional iterator exposed by the facade.
// It starts one-before-first; Next moves it onto the first record.
type Iterator[K, V any] interface {
	Next() bool
	Prev() bool
	Begin()
	End()
	First() bool
	Last() bool
	Key() K
	Value() V
}

// Engine is the associative contract a container must satisfy to back a
// Dict.
type Engine[K util.Comparable[K], V any] interface {
	Insert(key K, value V) error
	Remove(key K)
	Get(key K) (V, error)
	Contains(key K) bool
	Size() int
	Empty() bool
	Iterator() Iterator[K, V]
}

// Dict adapts an engine to the dictionary surface consumed by the VFS.
type Dict[K util.Comparable[K], V any] struct {
	engine Engine[K, V]
}

// From wraps an existing engine. A nil engine fails with
// errs.ErrInvalidInput.
func From[K util.Comparable[K], V any](engine Engine[K, V]) (*Dict[K, V], error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: nil engine", errs.ErrInvalidInput)
	}
	return &Dict[K, V]{engine: engine}, nil
}

// NewBTree returns a dictionary backed by a B-Tree engine.
func NewBTree[K util.Comparable[K], V any](opts *btree.Options) *Dict[K, V] {
	return &Dict[K, V]{engine: btreeEngine[K, V]{btree.New[K, V](opts)}}
}

// NewBPlusTree returns a dictionary backed by a B+Tree engine.
func NewBPlusTree[K util.Comparable[K], V any](opts *bptree.Options) *Dict[K, V] {
	return &Dict[K, V]{engine: bptreeEngine[K, V]{bptree.New[K, V](opts)}}
}

func (d *Dict[K, V]) Add(key K, value V) error {
	return d.engine.Insert(key, value)
}

func (d *Dict[K, V]) AddPair(p pair.Pair[K, V]) error {
	return d.engine.Insert(p.First, p.Second)
}

func (d *Dict[K, V]) Remove(key K) {
	d.engine.Remove(key)
}

func (d *Dict[K, V]) Get(key K) (V, error) {
	return d.engine.Get(key)
}

func (d *Dict[K, V]) Contains(key K) bool {
	return d.engine.Contains(key)
}

func (d *Dict[K, V]) Size() int {
	return d.engine.Size()
}

func (d *Dict[K, V]) Empty() bool {
	return d.engine.Empty()
}

func (d *Dict[K, V]) Iterator() Iterator[K, V] {
	return d.engine.Iterator()
}

// btreeEngine narrows *btree.Tree's concrete iterator to the facade's
// interface type.
type btreeEngine[K util.Comparable[K], V any] struct {
	*btree.Tree[K, V]
}

func (e btreeEngine[K, V]) Iterator() Iterator[K, V] {
	return e.Tree.Iterator()
}

type bptreeEngine[K util.Comparable[K], V any] struct {
	*bptree.Tree[K, V]
}

func (e bptreeEngine[K, V]) Iterator() Iterator[K, V] {
	return e.Tree.Iterator()
}
