package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushPop(t *testing.T) {
	s := New[string](0)
	assert.True(t, s.Empty())

	s.Push("a")
	s.Push("b")
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, "b", s.Top())

	assert.Equal(t, "b", s.Pop())
	assert.Equal(t, "a", s.Pop())
	assert.True(t, s.Empty())
}

func TestItemsBottomUp(t *testing.T) {
	s := New[int](4)
	s.Push(1)
	s.Push(2)
	s.Push(3)
	assert.Equal(t, []int{1, 2, 3}, s.Items())
}

func TestEmptyPanics(t *testing.T) {
	s := New[int](0)
	assert.PanicsWithError(t, ErrEmptyStack.Error(), func() { s.Pop() })
	assert.PanicsWithError(t, ErrEmptyStack.Error(), func() { s.Top() })
}
