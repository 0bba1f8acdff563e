package splitbits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAllClear(t *testing.T) {
	a := New(17)
	require.Equal(t, 17, a.Len())
	for i := 0; i < a.Len(); i++ {
		assert.False(t, a.Get(i), "bit %d set on fresh array", i)
	}
}

func TestFlipParentAndReadTogglesOnce(t *testing.T) {
	a := New(8)

	// Children of node 0 are 1 and 2; flipping via either should affect
	// the same parent bit (index 0).
	require.True(t, a.FlipParentAndRead(1), "first flip via child 1")
	assert.True(t, a.Get(0), "parent bit not set after flip via child 1")

	require.False(t, a.FlipParentAndRead(2), "flip via sibling child 2 should clear")
	assert.False(t, a.Get(0), "parent bit still set after clearing flip")
}

func TestFlipParentAndReadIndependentParents(t *testing.T) {
	a := New(8)

	// node 1's children are 3,4 (parent index 1); node 2's children are
	// 5,6 (parent index 2). Flipping one must not disturb the other.
	a.FlipParentAndRead(3)
	assert.False(t, a.Get(2), "flipping child of node 1 touched node 2's bit")
	assert.True(t, a.Get(1), "flipping child of node 1 did not set node 1's bit")
}
