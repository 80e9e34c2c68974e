package btree

import (
	"treedict/pkg/pair"
	"treedict/pkg/sequence"
	"treedict/pkg/util"
)

// node holds records at every level. children.Len() == records.Len()+1 for
// interior nodes. parent is an observing back-reference; the root's parent
// is nil.
type node[K util.Comparable[K], V any] struct {
	parent   *node[K, V]
	records  *sequence.Sequence[pair.Pair[K, V]]
	children *sequence.Sequence[*node[K, V]]
}

func newNode[K util.Comparable[K], V any](degree int) *node[K, V] {
	return &node[K, V]{
		records:  sequence.New[pair.Pair[K, V]](2*degree - 1),
		children: sequence.New[*node[K, V]](0),
	}
}

func (n *node[K, V]) isLeaf() bool {
	return n.children.Empty()
}

func (n *node[K, V]) isFull(degree int) bool {
	return n.records.Len() == 2*degree-1
}

func (n *node[K, V]) hasNoRecords() bool {
	return n.records.Empty()
}

func (n *node[K, V]) hasMinRecords(degree int) bool {
	return n.records.Len() == degree-1
}

func (n *node[K, V]) canAddRecord(degree int) bool {
	return n.records.Len() < 2*degree-1
}

func (n *node[K, V]) recordCount() int {
	return n.records.Len()
}

func (n *node[K, V]) childCount() int {
	return n.children.Len()
}

func (n *node[K, V]) minKey() K {
	return n.records.Get(0).First
}

func (n *node[K, V]) maxKey() K {
	return n.records.Last().First
}

func (n *node[K, V]) midKey() K {
	return n.ithKey(n.records.Len() / 2)
}

func (n *node[K, V]) ithKey(index int) K {
	return n.records.Get(index).First
}

func (n *node[K, V]) ithChild(index int) *node[K, V] {
	return n.children.Get(index)
}

func (n *node[K, V]) kthChild(key K) *node[K, V] {
	return n.children.Get(n.childIndex(key))
}

// searchRecords returns the index of key among the node's records and
// whether it is present. When absent, the index is the insertion slot,
// which by the separator property is also the child the key belongs to.
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

// childIndex returns the slot in [0, recordCount] of the child whose
// subtree may contain key. An empty node yields 0.
func (n *node[K, V]) childIndex(key K) int {
	i, _ := n.searchRecords(key)
	return i
}

// indexInParent locates n in its parent's child sequence. Child fanout is
// bounded by 2*degree, so a linear scan suffices.
func (n *node[K, V]) indexInParent() int {
	for i := 0; i < n.parent.children.Len(); i++ {
		if n.parent.children.Get(i) == n {
			return i
		}
	}
	panic("btree: node detached from parent")
}
