// Package bptree implements an in-memory B+Tree of arbitrary degree.
// Interior nodes carry separator keys only; every record lives in a leaf,
// and the leaves form a doubly-linked list in key order, which makes
// in-order iteration a linear walk. A separator always equals the smallest
// key of the subtree on its right, and lookups for a key equal to a
// separator continue into that right subtree.
package bptree

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
	// holds between t-1 and 2t-1 keys. Must be at least 2.
	Degree int
}

// Tree owns the root node and tracks the record count. The empty tree is a
// single empty leaf. Not safe for concurrent use.
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
		root:   newLeaf[K, V](degree),
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

// Height returns the number of edges from the root to the leaf level.
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
	for !n.isLeaf() {
		i := n.childIndex(key)
		child := n.ithChild(i)
		if child.isFull(t.degree) {
			t.splitChild(n, i)
			if key.Compare(n.keys.Get(i)) >= 0 {
				child = n.ithChild(i + 1)
			} else {
				child = n.ithChild(i)
			}
		}
		n = child
	}

	i, found := n.searchRecords(key)
	if found {
		return fmt.Errorf("%w: %v", errs.ErrKeyCollision, key)
	}
	n.records.InsertAt(i, pair.New(key, value))
	t.size++
	return nil
}

// Remove deletes the record with the given key. Removing an absent key is a
// no-op.
func (t *Tree[K, V]) Remove(key K) {
	n := t.root
	for !n.isLeaf() {
		i := n.childIndex(key)
		child := n.ithChild(i)
		if child.isLeaf() {
			t.removeFromLeaf(n, i, key)
			t.collapseRoot()
			return
		}
		if child.hasMinKeys(t.degree) {
			child = t.growChild(n, i)
		}
		n = child
	}

	// The root itself is the only leaf.
	if i, found := n.searchRecords(key); found {
		n.records.RemoveAt(i)
		t.size--
	}
	t.collapseRoot()
}

// Find returns an iterator positioned at the record with the given key, or
// an at-end iterator when the key is absent. The descent always reaches a
// leaf, even when an interior separator equals the key.
func (t *Tree[K, V]) Find(key K) *Iterator[K, V] {
	n := t.root
	for !n.isLeaf() {
		n = n.kthChild(key)
	}
	i, found := n.searchRecords(key)
	if !found {
		return t.IteratorAtEnd()
	}
	return newIterator(t, n, i, between)
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

// firstLeaf returns the head of the leaf chain.
func (t *Tree[K, V]) firstLeaf() *node[K, V] {
	n := t.root
	for !n.isLeaf() {
		n = n.ithChild(0)
	}
	return n
}

// lastLeaf returns the tail of the leaf chain.
func (t *Tree[K, V]) lastLeaf() *node[K, V] {
	n := t.root
	for !n.isLeaf() {
		n = n.ithChild(n.childCount() - 1)
	}
	return n
}

func (t *Tree[K, V]) splitRoot() {
	root := newInterior[K, V](t.degree)
	t.root.parent = root
	root.children.Append(t.root)
	t.root = root
	t.splitChild(root, 0)
}

// splitChild partitions the full child at slot i. A leaf keeps its lower
// half and hands records [n/2, n) to a new right sibling; the sibling's
// smallest key is copied up as the separator and the leaf chain is relinked
// around the new sibling. An interior node behaves like a B-Tree split: the
// median separator moves up and is kept by neither half.
func (t *Tree[K, V]) splitChild(n *node[K, V], i int) {
	child := n.ithChild(i)

	var right *node[K, V]
	var separator K
	if child.isLeaf() {
		mid := child.records.Len() / 2
		right = newLeaf[K, V](t.degree)
		right.records = child.records.SubArray(mid, child.records.Len())
		child.records.Truncate(mid)
		separator = right.minKey()

		right.right = child.right
		right.left = child
		if child.right != nil {
			child.right.left = right
		}
		child.right = right
	} else {
		mid := child.keys.Len() / 2
		right = newInterior[K, V](t.degree)
		separator = child.keys.Get(mid)
		right.keys = child.keys.SubArray(mid+1, child.keys.Len())
		right.children = child.children.SubArray(mid+1, child.children.Len())
		right.children.Map(func(c *node[K, V]) *node[K, V] {
			c.parent = right
			return c
		})
		child.keys.Truncate(mid)
		child.children.Truncate(mid + 1)
	}

	right.parent = n
	n.keys.InsertAt(i, separator)
	n.children.InsertAt(i+1, right)
}

// removeFromLeaf deletes key from the leaf at slot i of parent, then
// restores the occupancy bound by rotating from or merging with an
// immediate sibling under the same parent. The parent holds more than
// degree-1 keys on entry (or is the root), so pulling a separator out of it
// is always safe.
func (t *Tree[K, V]) removeFromLeaf(parent *node[K, V], i int, key K) {
	leaf := parent.ithChild(i)
	j, found := leaf.searchRecords(key)
	if !found {
		return
	}
	leaf.records.RemoveAt(j)
	t.size--
	removedMin := j == 0

	if leaf.records.Len() < t.degree-1 {
		leaf = t.rebalanceLeaf(parent, i)
	}
	if removedMin && !leaf.records.Empty() {
		t.refreshSeparator(leaf)
	}
}

// rebalanceLeaf restores the bound for the underfull leaf at slot i and
// returns the surviving leaf that covers its key range.
func (t *Tree[K, V]) rebalanceLeaf(parent *node[K, V], i int) *node[K, V] {
	leaf := parent.ithChild(i)

	if i > 0 && parent.ithChild(i-1).records.Len() > t.degree-1 {
		// Borrow from the left: its largest record becomes this leaf's new
		// minimum and therefore the separator between the two.
		left := parent.ithChild(i - 1)
		leaf.records.Prepend(left.records.Pop())
		parent.keys.Set(i-1, leaf.minKey())
		return leaf
	}

	if i < parent.childCount()-1 && parent.ithChild(i+1).records.Len() > t.degree-1 {
		// Borrow from the right and refresh its separator to its new
		// minimum.
		right := parent.ithChild(i + 1)
		leaf.records.Append(right.records.RemoveAt(0))
		parent.keys.Set(i, right.minKey())
		return leaf
	}

	if i > 0 {
		t.mergeLeaves(parent, i-1)
		return parent.ithChild(i - 1)
	}
	t.mergeLeaves(parent, i)
	return leaf
}

// mergeLeaves folds the leaf at slot i+1 into the leaf at slot i, splicing
// the sibling chain and dropping the separator between them.
func (t *Tree[K, V]) mergeLeaves(parent *node[K, V], i int) {
	left, right := parent.ithChild(i), parent.ithChild(i+1)
	left.records.Concat(right.records)
	left.right = right.right
	if right.right != nil {
		right.right.left = left
	}
	parent.keys.RemoveAt(i)
	parent.children.RemoveAt(i + 1)
}

// refreshSeparator rewrites the separator that named the old minimum of
// leaf's range: the nearest ancestor slot where the leaf's subtree is not
// the leftmost child.
func (t *Tree[K, V]) refreshSeparator(leaf *node[K, V]) {
	min := leaf.minKey()
	for n := leaf; n.parent != nil; n = n.parent {
		idx := n.indexInParent()
		if idx > 0 {
			n.parent.keys.Set(idx-1, min)
			return
		}
	}
}

// growChild brings the minimal interior child at slot i above degree-1 keys
// by rotating through the parent or merging with an adjacent sibling.
// Returns the node that now covers the child's key range.
func (t *Tree[K, V]) growChild(n *node[K, V], i int) *node[K, V] {
	child := n.ithChild(i)

	if i > 0 && n.ithChild(i-1).keys.Len() > t.degree-1 {
		// Rotate right: the separator moves down in front of the child's
		// keys, the left sibling's last child moves over, and the left
		// sibling's last separator moves up.
		left := n.ithChild(i - 1)
		child.keys.Prepend(n.keys.Get(i - 1))
		moved := left.children.Pop()
		moved.parent = child
		child.children.Prepend(moved)
		n.keys.Set(i-1, left.keys.Pop())
		return child
	}

	if i < n.childCount()-1 && n.ithChild(i+1).keys.Len() > t.degree-1 {
		// Rotate left, symmetrically.
		right := n.ithChild(i + 1)
		child.keys.Append(n.keys.Get(i))
		moved := right.children.RemoveAt(0)
		moved.parent = child
		child.children.Append(moved)
		n.keys.Set(i, right.keys.RemoveAt(0))
		return child
	}

	if i > 0 {
		t.mergeInterior(n, i-1)
		return n.ithChild(i - 1)
	}
	t.mergeInterior(n, i)
	return child
}

// mergeInterior folds the separator at slot i and the interior child at
// slot i+1 into the child at slot i.
func (t *Tree[K, V]) mergeInterior(n *node[K, V], i int) {
	left, right := n.ithChild(i), n.ithChild(i+1)
	left.keys.Append(n.keys.RemoveAt(i))
	left.keys.Concat(right.keys)
	right.children.Map(func(c *node[K, V]) *node[K, V] {
		c.parent = left
		return c
	})
	left.children.Concat(right.children)
	n.children.RemoveAt(i + 1)
}

// collapseRoot demotes the single remaining child when a merge drained the
// root of its separators.
func (t *Tree[K, V]) collapseRoot() {
	if !t.root.isLeaf() && t.root.hasNoKeys() {
		root := t.root.ithChild(0)
		root.parent = nil
		t.root = root
	}
}
