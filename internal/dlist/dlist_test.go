package dlist

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

// slots backs a handful of Link-sized "blocks" so tests can push/pop/remove
// without a real arena behind them.
func newSlots(n int) []Link {
	return make([]Link, n)
}

func ptr(slots []Link, i int) unsafe.Pointer {
	return unsafe.Pointer(&slots[i])
}

func TestEmptyHead(t *testing.T) {
	var head Link
	InitHead(&head)
	assert.True(t, Empty(&head), "fresh head reports non-empty")
	assert.Nil(t, PopBack(&head), "PopBack on empty head returned non-nil")
}

func TestPushPopLIFO(t *testing.T) {
	var head Link
	InitHead(&head)
	slots := newSlots(3)

	PushBack(&head, ptr(slots, 0))
	PushBack(&head, ptr(slots, 1))
	PushBack(&head, ptr(slots, 2))

	assert.False(t, Empty(&head), "head reports empty after pushes")

	// LIFO by address: releases push to the back, allocations pop from
	// the back, so the last pushed entry pops first.
	assert.Equal(t, ptr(slots, 2), PopBack(&head), "pop 1")
	assert.Equal(t, ptr(slots, 1), PopBack(&head), "pop 2")
	assert.Equal(t, ptr(slots, 0), PopBack(&head), "pop 3")
	assert.True(t, Empty(&head), "head not empty after popping every entry")
}

func TestRemoveFromMiddle(t *testing.T) {
	var head Link
	InitHead(&head)
	slots := newSlots(3)

	PushBack(&head, ptr(slots, 0))
	PushBack(&head, ptr(slots, 1))
	PushBack(&head, ptr(slots, 2))

	// Remove the middle entry without referencing head at all.
	Remove(ptr(slots, 1))

	assert.Equal(t, ptr(slots, 2), PopBack(&head), "pop 1 after remove")
	assert.Equal(t, ptr(slots, 0), PopBack(&head), "pop 2 after remove")
	assert.True(t, Empty(&head), "head not empty after draining")
}

func TestRemoveOnlyEntry(t *testing.T) {
	var head Link
	InitHead(&head)
	slots := newSlots(1)

	PushBack(&head, ptr(slots, 0))
	Remove(ptr(slots, 0))

	assert.True(t, Empty(&head), "head not empty after removing its only entry")
}
