package tlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRing(n int) (*Ring, []Link) {
	const head = 100
	links := make([]Link, head+1)
	return New(links, head), links
}

func TestEmptyRing(t *testing.T) {
	r, _ := newTestRing(4)
	assert.True(t, r.Empty())
	assert.Equal(t, r.Head, r.Front())
}

func TestPushFrontOrder(t *testing.T) {
	r, _ := newTestRing(4)
	r.PushFront(2)
	r.PushFront(1)
	r.PushFront(0)

	var order []int
	r.Do(func(n int) { order = append(order, n) })
	require.Equal(t, []int{0, 1, 2}, order)
}

func TestPushBackOrder(t *testing.T) {
	r, _ := newTestRing(4)
	r.PushBack(0)
	r.PushBack(1)
	r.PushBack(2)

	var order []int
	r.Do(func(n int) { order = append(order, n) })
	require.Equal(t, []int{0, 1, 2}, order)
}

func TestRemoveMiddle(t *testing.T) {
	r, _ := newTestRing(4)
	r.PushBack(0)
	r.PushBack(1)
	r.PushBack(2)

	r.Remove(1)

	var order []int
	r.Do(func(n int) { order = append(order, n) })
	require.Equal(t, []int{0, 2}, order)
}

func TestRemoveLastLeavesEmpty(t *testing.T) {
	r, _ := newTestRing(4)
	r.PushBack(0)
	r.Remove(0)
	assert.True(t, r.Empty())
}

func TestInsertAfterHeadIsPushFront(t *testing.T) {
	r, _ := newTestRing(4)
	r.PushBack(0)
	r.InsertAfter(1, r.Head)

	var order []int
	r.Do(func(n int) { order = append(order, n) })
	require.Equal(t, []int{1, 0}, order)
}

func TestRemoveZeroesLink(t *testing.T) {
	r, links := newTestRing(4)
	r.PushBack(3)
	r.Remove(3)
	assert.Equal(t, Link{}, links[3])
}
