package buddy

import (
	"unsafe"

	"github.com/heapbuddy/buddy/internal/dlist"
)

// bucketTable holds one free-list head per size class. A node is on
// bucket b's list iff it is UNUSED and its size class is b. Releases push
// to the back and allocations pop from the back: this LIFO-by-address
// discipline means an allocation immediately following a release of the
// same size tends to reuse the same address.
type bucketTable struct {
	heads []dlist.Link
}

func newBucketTable(n int) *bucketTable {
	t := &bucketTable{heads: make([]dlist.Link, n)}
	for i := range t.heads {
		dlist.InitHead(&t.heads[i])
	}
	return t
}

func (t *bucketTable) pushBack(bucket int, entry unsafe.Pointer) {
	dlist.PushBack(&t.heads[bucket], entry)
}

func (t *bucketTable) popBack(bucket int) unsafe.Pointer {
	return dlist.PopBack(&t.heads[bucket])
}

func (t *bucketTable) empty(bucket int) bool {
	return dlist.Empty(&t.heads[bucket])
}
