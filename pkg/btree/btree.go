// Package btree implements an in-memory B-Tree of arbitrary degree keyed by
// any type with a total order. Records live at every level. Insertion splits
// full nodes on the way down; removal rotates or merges minimal nodes on the
// way down, so both run in a single descent.
package btree

import (
	"fmt"

	"treedict/pkg/errs"
	"treedict/pkg/pair"
	"treedict/pkg/util"
)

const DefaultDegree = 32

// Options tells the tree how to configure itself.
type Options struct {
	// Degree is the minimum-occupancy parameter t: every non-root node
	// holds between t-1 and 2t-1 records. Must be at least 2.
	Degree int
}

// Tree owns the root node and tracks the record count. Not safe for
// concurrent use.
type Tree[K util.Comparable[K], V any] struct {
	root   *node[K, V]
	size   int
	degree int
}

func New[K util.Comparable[K], V any](opts *Options) *Tree[K, V] {
	degree := DefaultDegree
	if opts != nil && opts.Degree != 0 {
		if opts.Degree < 2 {
			panic(fmt.Errorf("%w: degree %d", errs.ErrInvalidInput, opts.Degree))
		}
		degree = opts.Degree
	}
	return &Tree[K, V]{
		root:   newNode[K, V](degree),
		degree: degree,
	}
}

func (t *Tree[K, V]) Size() int {
	return t.size
}

func (t *Tree[K, V]) Empty() bool {
	return t.size == 0
}

func (t *Tree[K, V]) Degree() int {
	return t.degree
}

// Height returns the number of edges from the root to any leaf.
func (t *Tree[K, V]) Height() int {
	height := 0
	for n := t.root; !n.isLeaf(); n = n.ithChild(0) {
		height++
	}
	return height
}

// Insert adds a record. Inserting a key that is already present fails with
// errs.ErrKeyCollision and leaves the tree unchanged.
func (t *Tree[K, V]) Insert(key K, value V) error {
	if t.root.isFull(t.degree) {
		t.splitRoot()
	}

	n := t.root
	for {
		i, found := n.searchRecords(key)
		if found {
			return fmt.Errorf("%w: %v", errs.ErrKeyCollision, key)
		}
		if n.isLeaf() {
			n.records.InsertAt(i, pair.New(key, value))
			t.size++
			return nil
		}

		child := n.ithChild(i)
		if child.isFull(t.degree) {
			t.splitChild(n, i)
			// The promoted median landed at slot i; re-decide direction.
			switch c := key.Compare(n.ithKey(i)); {
			case c == 0:
				return fmt.Errorf("%w: %v", errs.ErrKeyCollision, key)
			case c > 0:
				child = n.ithChild(i + 1)
			default:
				child = n.ithChild(i)
			}
		}
		n = child
	}
}

// Remove deletes the record with the given key. Removing an absent key is a
// no-op.
func (t *Tree[K, V]) Remove(key K) {
	if t.removeFrom(t.root, key) {
		t.size--
	}
	if t.root.hasNoRecords() && !t.root.isLeaf() {
		root := t.root.ithChild(0)
		root.parent = nil
		t.root = root
	}
}

// Find returns an iterator positioned at the record with the given key, or
// an at-end iterator when the key is absent.
func (t *Tree[K, V]) Find(key K) *Iterator[K, V] {
	n := t.root
	for {
		i, found := n.searchRecords(key)
		if found {
			return newIterator(t, n, i, between)
		}
		if n.isLeaf() {
			return t.IteratorAtEnd()
		}
		n = n.ithChild(i)
	}
}

// Get returns the value stored under key, or errs.ErrAbsentKey.
func (t *Tree[K, V]) Get(key K) (V, error) {
	it := t.Find(key)
	if it.AtEnd() {
		var zero V
		return zero, fmt.Errorf("%w: %v", errs.ErrAbsentKey, key)
	}
	return it.Value(), nil
}

func (t *Tree[K, V]) Contains(key K) bool {
	return !t.Find(key).AtEnd()
}

// splitRoot grows the tree by one level: a fresh root adopts the old one as
// its single child and splits it.
func (t *Tree[K, V]) splitRoot() {
	root := newNode[K, V](t.degree)
	t.root.parent = root
	root.children.Append(t.root)
	t.root = root
	t.splitChild(root, 0)
}

// splitChild partitions the full child at slot i around its median record,
// promoting the median into n and hanging a new right sibling at slot i+1.
func (t *Tree[K, V]) splitChild(n *node[K, V], i int) {
	child := n.ithChild(i)
	mid := t.degree - 1
	median := child.records.Get(mid)

	right := newNode[K, V](t.degree)
	right.parent = n
	right.records = child.records.SubArray(mid+1, child.records.Len())
	if !child.isLeaf() {
		right.children = child.children.SubArray(t.degree, child.children.Len())
		right.children.Map(func(c *node[K, V]) *node[K, V] {
			c.parent = right
			return c
		})
		child.children.Truncate(t.degree)
	}
	child.records.Truncate(mid)

	n.records.InsertAt(i, median)
	n.children.InsertAt(i+1, right)
}

// removeFrom deletes key from the subtree rooted at n and reports whether a
// record was removed. Except for the root, n is guaranteed to hold more
// than degree-1 records on entry.
func (t *Tree[K, V]) removeFrom(n *node[K, V], key K) bool {
	i, found := n.searchRecords(key)
	if n.isLeaf() {
		if !found {
			return false
		}
		n.records.RemoveAt(i)
		return true
	}

	if found {
		// The key sits in an interior slot: replace it in place with its
		// in-order predecessor or successor, whichever subtree can spare a
		// record; merge through the slot when neither can.
		left, right := n.ithChild(i), n.ithChild(i+1)
		switch {
		case !left.hasMinRecords(t.degree):
			n.records.Set(i, t.removeMax(left))
			return true
		case !right.hasMinRecords(t.degree):
			n.records.Set(i, t.removeMin(right))
			return true
		default:
			t.mergeChildren(n, i)
			return t.removeFrom(left, key)
		}
	}

	child := n.ithChild(i)
	if child.hasMinRecords(t.degree) {
		child = t.growChild(n, i)
	}
	return t.removeFrom(child, key)
}

// removeMax deletes and returns the largest record of the subtree rooted at
// n, keeping every visited node above the minimum on the way down.
func (t *Tree[K, V]) removeMax(n *node[K, V]) pair.Pair[K, V] {
	for !n.isLeaf() {
		i := n.childCount() - 1
		child := n.ithChild(i)
		if child.hasMinRecords(t.degree) {
			child = t.growChild(n, i)
		}
		n = child
	}
	return n.records.Pop()
}

// removeMin deletes and returns the smallest record of the subtree rooted
// at n.
func (t *Tree[K, V]) removeMin(n *node[K, V]) pair.Pair[K, V] {
	for !n.isLeaf() {
		child := n.ithChild(0)
		if child.hasMinRecords(t.degree) {
			child = t.growChild(n, 0)
		}
		n = child
	}
	return n.records.RemoveAt(0)
}

// growChild brings the minimal child at slot i above degree-1 records by
// rotating a record through the parent from a sibling with spare capacity,
// or by merging with an adjacent sibling. Returns the node that now covers
// the child's key range.
func (t *Tree[K, V]) growChild(n *node[K, V], i int) *node[K, V] {
	child := n.ithChild(i)

	if i > 0 && !n.ithChild(i-1).hasMinRecords(t.degree) {
		// Rotate right: the separator moves down, the left sibling's last
		// record moves up.
		left := n.ithChild(i - 1)
		child.records.Prepend(n.records.Get(i - 1))
		n.records.Set(i-1, left.records.Pop())
		if !left.isLeaf() {
			moved := left.children.Pop()
			moved.parent = child
			child.children.Prepend(moved)
		}
		return child
	}

	if i < n.recordCount() && !n.ithChild(i+1).hasMinRecords(t.degree) {
		// Rotate left: the separator moves down, the right sibling's first
		// record moves up.
		right := n.ithChild(i + 1)
		child.records.Append(n.records.Get(i))
		n.records.Set(i, right.records.RemoveAt(0))
		if !right.isLeaf() {
			moved := right.children.RemoveAt(0)
			moved.parent = child
			child.children.Append(moved)
		}
		return child
	}

	if i > 0 {
		t.mergeChildren(n, i-1)
		return n.ithChild(i - 1)
	}
	t.mergeChildren(n, i)
	return child
}

// mergeChildren folds the separator at slot i and the child at slot i+1
// into the child at slot i.
func (t *Tree[K, V]) mergeChildren(n *node[K, V], i int) {
	left, right := n.ithChild(i), n.ithChild(i+1)
	left.records.Append(n.records.RemoveAt(i))
	left.records.Concat(right.records)
	if !right.isLeaf() {
		right.children.Map(func(c *node[K, V]) *node[K, V] {
			c.parent = left
			return c
		})
		left.children.Concat(right.children)
	}
	n.children.RemoveAt(i + 1)
}
