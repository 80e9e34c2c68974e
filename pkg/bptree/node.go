package bptree

import (
	"treedict/pkg/pair"
	"treedict/pkg/sequence"
	"treedict/pkg/util"
)

// node is either an interior node (separator keys plus children) or a leaf
// (records plus sibling links). parent, left and right are observing
// references; ownership runs strictly parent to child.
type node[K util.Comparable[K], V any] struct {
	parent   *node[K, V]
	keys     *sequence.Sequence[K]
	children *sequence.Sequence[*node[K, V]]

	records *sequence.Sequence[pair.Pair[K, V]]
	left    *node[K, V]
	right   *node[K, V]
}

func newLeaf[K util.Comparable[K], V any](degree int) *node[K, V] {
	return &node[K, V]{
		keys:     sequence.New[K](0),
		children: sequence.New[*node[K, V]](0),
		records:  sequence.New[pair.Pair[K, V]](2*degree - 1),
	}
}

func newInterior[K util.Comparable[K], V any](degree int) *node[K, V] {
	return &node[K, V]{
		keys:     sequence.New[K](2*degree - 1),
		children: sequence.New[*node[K, V]](2 * degree),
		records:  sequence.New[pair.Pair[K, V]](0),
	}
}

func (n *node[K, V]) isLeaf() bool {
	return n.children.Empty()
}

// keyCount is the number of records for a leaf and the number of separator
// keys for an interior node.
func (n *node[K, V]) keyCount() int {
	if n.isLeaf() {
		return n.records.Len()
	}
	return n.keys.Len()
}

func (n *node[K, V]) isFull(degree int) bool {
	return n.keyCount() == 2*degree-1
}

func (n *node[K, V]) hasNoKeys() bool {
	return n.keyCount() == 0
}

func (n *node[K, V]) hasMinKeys(degree int) bool {
	return n.keyCount() == degree-1
}

func (n *node[K, V]) canAddKey(degree int) bool {
	return n.keyCount() < 2*degree-1
}

func (n *node[K, V]) childCount() int {
	return n.children.Len()
}

func (n *node[K, V]) minKey() K {
	return n.ithKey(0)
}

func (n *node[K, V]) maxKey() K {
	return n.ithKey(n.keyCount() - 1)
}

func (n *node[K, V]) midKey() K {
	return n.ithKey(n.keyCount() / 2)
}

func (n *node[K, V]) ithKey(index int) K {
	if n.isLeaf() {
		return n.records.Get(index).First
	}
	return n.keys.Get(index)
}

func (n *node[K, V]) ithChild(index int) *node[K, V] {
	return n.children.Get(index)
}

func (n *node[K, V]) kthChild(key K) *node[K, V] {
	return n.children.Get(n.childIndex(key))
}

// childIndex returns the slot of the child whose subtree contains key.
// A key equal to a separator belongs to the subtree on the separator's
// right, so the slot is the number of separators less than or equal to key.
func (n *node[K, V]) childIndex(key K) int {
	lo, hi := 0, n.keys.Len()
	for lo < hi {
		mid := (lo + hi) / 2
		if key.Compare(n.keys.Get(mid)) >= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// searchRecords binary-searches a leaf's records for key.
func (n *node[K, V]) searchRecords(key K) (int, bool) {
	lo, hi := 0, n.records.Len()
	for lo < hi {
		mid := (lo + hi) / 2
		switch c := key.Compare(n.records.Get(mid).First); {
		case c > 0:
			lo = mid + 1
		case c < 0:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}

func (n *node[K, V]) indexInParent() int {
	for i := 0; i < n.parent.children.Len(); i++ {
		if n.parent.children.Get(i) == n {
			return i
		}
	}
	panic("bptree: node detached from parent")
}
