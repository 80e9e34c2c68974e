package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treedict/pkg/errs"
)

func TestAppendPrepend(t *testing.T) {
	s := New[int](0)
	assert.True(t, s.Empty())

	s.Append(2)
	s.Append(3)
	s.Prepend(1)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 1, s.Get(0))
	assert.Equal(t, 2, s.Get(1))
	assert.Equal(t, 3, s.Last())
}

func TestInsertRemoveAt(t *testing.T) {
	s := From(1, 2, 4)
	s.InsertAt(2, 3)
	assert.Equal(t, []int{1, 2, 3, 4}, items(s))

	s.InsertAt(4, 5) // insert at Len appends
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items(s))

	assert.Equal(t, 3, s.RemoveAt(2))
	assert.Equal(t, []int{1, 2, 4, 5}, items(s))

	assert.Equal(t, 5, s.Pop())
	assert.Equal(t, []int{1, 2, 4}, items(s))
}

func TestSetSwap(t *testing.T) {
	s := From(1, 2, 3)
	s.Set(1, 20)
	s.Swap(0, 2)
	assert.Equal(t, []int{3, 20, 1}, items(s))
}

func TestSubArrayIsACopy(t *testing.T) {
	s := From(1, 2, 3, 4, 5)
	sub := s.SubArray(1, 4)
	assert.Equal(t, []int{2, 3, 4}, items(sub))

	sub.Set(0, 99)
	assert.Equal(t, 2, s.Get(1))
}

func TestTruncateConcat(t *testing.T) {
	s := From(1, 2, 3, 4)
	s.Truncate(2)
	assert.Equal(t, []int{1, 2}, items(s))

	s.Concat(From(5, 6))
	assert.Equal(t, []int{1, 2, 5, 6}, items(s))
}

func TestMap(t *testing.T) {
	s := From(1, 2, 3)
	s.Map(func(v int) int { return v * 10 })
	assert.Equal(t, []int{10, 20, 30}, items(s))
}

func TestClone(t *testing.T) {
	s := From(1, 2)
	c := s.Clone()
	c.Append(3)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 3, c.Len())
}

func TestOutOfBoundsPanics(t *testing.T) {
	s := From(1, 2, 3)

	for _, fn := range []func(){
		func() { s.Get(3) },
		func() { s.Get(-1) },
		func() { s.Set(5, 0) },
		func() { s.RemoveAt(3) },
		func() { s.InsertAt(5, 0) },
		func() { s.SubArray(2, 1) },
		func() { New[int](0).Pop() },
	} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "expected a bounds panic")
				err, ok := r.(error)
				require.True(t, ok)
				assert.ErrorIs(t, err, errs.ErrIndexOutOfBounds)
			}()
			fn()
		}()
	}
}

func items(s *Sequence[int]) []int {
	out := make([]int, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		out = append(out, s.Get(i))
	}
	return out
}
