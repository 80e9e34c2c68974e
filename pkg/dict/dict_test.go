package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treedict/pkg/bptree"
	"treedict/pkg/btree"
	"treedict/pkg/errs"
	"treedict/pkg/pair"
	"treedict/pkg/util"
)

func dicts() map[string]*Dict[util.String, int] {
	return map[string]*Dict[util.String, int]{
		"btree":     NewBTree[util.String, int](&btree.Options{Degree: 2}),
		"bplustree": NewBPlusTree[util.String, int](&bptree.Options{Degree: 2}),
	}
}

func TestFromRejectsNilEngine(t *testing.T) {
	_, err := From[util.Int, int](nil)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestDictContract(t *testing.T) {
	for name, d := range dicts() {
		t.Run(name, func(t *testing.T) {
			assert.True(t, d.Empty())

			require.NoError(t, d.Add("one", 1))
			require.NoError(t, d.AddPair(pair.New(util.String("two"), 2)))
			require.NoError(t, d.Add("three", 3))

			assert.Equal(t, 3, d.Size())
			assert.True(t, d.Contains("two"))

			v, err := d.Get("three")
			require.NoError(t, err)
			assert.Equal(t, 3, v)

			_, err = d.Get("four")
			assert.ErrorIs(t, err, errs.ErrAbsentKey)

			assert.ErrorIs(t, d.Add("one", 11), errs.ErrKeyCollision)

			d.Remove("two")
			assert.False(t, d.Contains("two"))
			d.Remove("two") // no-op
			assert.Equal(t, 2, d.Size())
		})
	}
}

func TestDictIterationInKeyOrder(t *testing.T) {
	for name, d := range dicts() {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"pear", "apple", "fig", "banana"} {
				require.NoError(t, d.Add(util.String(k), len(k)))
			}

			keys := []string{}
			for it := d.Iterator(); it.Next(); {
				keys = append(keys, string(it.Key()))
				assert.Equal(t, len(it.Key()), it.Value())
			}
			assert.Equal(t, []string{"apple", "banana", "fig", "pear"}, keys)

			// Backwards from the end sentinel.
			it := d.Iterator()
			it.End()
			back := []string{}
			for it.Prev() {
				back = append(back, string(it.Key()))
			}
			assert.Equal(t, []string{"pear", "fig", "banana", "apple"}, back)
		})
	}
}

func TestSetYieldsKeys(t *testing.T) {
	sets := map[string]*Set[util.Int]{
		"btree":     NewBTreeSet[util.Int](&btree.Options{Degree: 2}),
		"bplustree": NewBPlusTreeSet[util.Int](&bptree.Options{Degree: 2}),
	}
	for name, s := range sets {
		t.Run(name, func(t *testing.T) {
			for _, k := range []int{3, 1, 2} {
				require.NoError(t, s.Add(util.Int(k)))
			}
			assert.ErrorIs(t, s.Add(2), errs.ErrKeyCollision)
			assert.Equal(t, 3, s.Size())
			assert.True(t, s.Contains(1))

			keys := []int{}
			for it := s.Iterator(); it.Next(); {
				keys = append(keys, int(it.Key()))
			}
			assert.Equal(t, []int{1, 2, 3}, keys)

			s.Remove(1)
			assert.False(t, s.Contains(1))
			assert.Equal(t, 2, s.Size())
		})
	}
}
