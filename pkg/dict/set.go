package dict

import (
	"treedict/pkg/bptree"
	"treedict/pkg/btree"
	"treedict/pkg/util"
)

// Set is the key-only specialisation of the dictionary: each element is
// stored under itself and iteration yields keys.
type Set[K util.Comparable[K]] struct {
	dict *Dict[K, K]
}

// NewBTreeSet returns a set backed by a B-Tree engine.
func NewBTreeSet[K util.Comparable[K]](opts *btree.Options) *Set[K] {
	return &Set[K]{dict: NewBTree[K, K](opts)}
}

// NewBPlusTreeSet returns a set backed by a B+Tree engine.
func NewBPlusTreeSet[K util.Comparable[K]](opts *bptree.Options) *Set[K] {
	return &Set[K]{dict: NewBPlusTree[K, K](opts)}
}

func (s *Set[K]) Add(key K) error {
	return s.dict.Add(key, key)
}

func (s *Set[K]) Remove(key K) {
	s.dict.Remove(key)
}

func (s *Set[K]) Contains(key K) bool {
	return s.dict.Contains(key)
}

func (s *Set[K]) Size() int {
	return s.dict.Size()
}

func (s *Set[K]) Empty() bool {
	return s.dict.Empty()
}

func (s *Set[K]) Iterator() *SetIterator[K] {
	return &SetIterator[K]{inner: s.dict.Iterator()}
}

// SetIterator dereferences to the element itself rather than a value slot.
type SetIterator[K util.Comparable[K]] struct {
	inner Iterator[K, K]
}

func (it *SetIterator[K]) Next() bool  { return it.inner.Next() }
func (it *SetIterator[K]) Prev() bool  { return it.inner.Prev() }
func (it *SetIterator[K]) Begin()      { it.inner.Begin() }
func (it *SetIterator[K]) End()        { it.inner.End() }
func (it *SetIterator[K]) First() bool { return it.inner.First() }
func (it *SetIterator[K]) Last() bool  { return it.inner.Last() }
func (it *SetIterator[K]) Key() K      { return it.inner.Key() }
