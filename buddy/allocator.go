// Package buddy implements a buddy memory allocator over a single
// contiguous virtual address range, with a bucketed binary-tree free-space
// tracker and lazy commitment of backing memory.
//
// The arena is ARENA = 2^MaxLog2 bytes starting at a BASE address fixed at
// construction. Size classes ("buckets") are the powers of two from
// 2^MinLog2 (the minimum block, header included) up to 2^MaxLog2; bucket 0
// is the whole arena and bucket BUCKETS-1 is the minimum block. Every node
// of the implicit binary tree is either UNUSED (on a bucket free list or
// wholly covered by UNUSED descendants), SPLIT (exactly one child not
// UNUSED), or USED, and the SPLIT/not-SPLIT state of every internal node is
// the only per-node bit this package stores — see internal/splitbits.
package buddy

import (
	"errors"
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/heapbuddy/buddy/internal/dlist"
	"github.com/heapbuddy/buddy/internal/nodeidx"
	"github.com/heapbuddy/buddy/internal/splitbits"
)

const (
	// HeaderSize is the number of bytes reserved immediately before every
	// returned pointer, holding the caller's original requested size.
	HeaderSize = 8

	// DefaultMinLog2 is log2 of the default minimum block size (16 bytes).
	DefaultMinLog2 = 4

	// DefaultMaxLog2 is log2 of the default arena size (2 GiB).
	DefaultMaxLog2 = 31
)

// linkSize is the size of the intrusive free-list entry embedded in every
// free block. It is the hard floor for MinLog2: a block must be large
// enough to hold its own links while it sits on a bucket free list.
const linkSize = unsafe.Sizeof(dlist.Link{})

var (
	// ErrBlockSizeTooSmall is returned when the minimum block (2^minLog2
	// bytes) is no larger than the header or cannot hold a free-list entry.
	ErrBlockSizeTooSmall = errors.New("buddy: minLog2 is too small to hold the header and a free-list link")

	// ErrLog2Range is returned when maxLog2 does not exceed minLog2.
	ErrLog2Range = errors.New("buddy: maxLog2 must be greater than minLog2")

	// ErrLog2TooLarge is returned when maxLog2 would overflow address
	// arithmetic on this platform.
	ErrLog2TooLarge = errors.New("buddy: maxLog2 is too large for this platform")

	// ErrInitialCommitFailed is returned when the host refuses the very
	// first commit, needed to write the root free-list entry.
	ErrInitialCommitFailed = errors.New("buddy: host refused the initial commit required to initialize the arena")
)

// Allocator is a buddy allocator over a single Host-backed arena. A zero
// Allocator is not usable; construct one with New or NewWithLog2Range.
//
// An Allocator is single-threaded and non-reentrant: its bucket table,
// split-bit array, and commit tracker are mutated without synchronization.
// Callers sharing an Allocator across goroutines must serialize every
// Allocate/Release call themselves.
type Allocator struct {
	host    Host
	commit  *commitTracker
	base    uintptr
	minLog2 int
	maxLog2 int
	buckets int
	table   *bucketTable
	split   *splitbits.Array
}

// New creates an Allocator with the reference tunables (16-byte minimum
// block, 2 GiB arena).
func New(host Host) (*Allocator, error) {
	return NewWithLog2Range(host, DefaultMinLog2, DefaultMaxLog2)
}

// NewWithLog2Range creates an Allocator with custom block-size tunables.
// minLog2 is log2 of the minimum block size and must be large enough to
// hold the header and a free-list entry; maxLog2 is log2 of the arena size
// and must exceed minLog2.
func NewWithLog2Range(host Host, minLog2, maxLog2 int) (*Allocator, error) {
	if minLog2 < 0 || uintptr(1)<<uint(minLog2) <= HeaderSize || uintptr(1)<<uint(minLog2) < linkSize {
		return nil, fmt.Errorf("%w: got %d", ErrBlockSizeTooSmall, minLog2)
	}
	if maxLog2 <= minLog2 {
		return nil, fmt.Errorf("%w: minLog2=%d maxLog2=%d", ErrLog2Range, minLog2, maxLog2)
	}
	if maxLog2 >= bits.UintSize-1 {
		return nil, fmt.Errorf("%w: maxLog2=%d", ErrLog2TooLarge, maxLog2)
	}

	buckets := maxLog2 - minLog2 + 1
	a := &Allocator{
		host:    host,
		base:    host.CurrentBreak(),
		minLog2: minLog2,
		maxLog2: maxLog2,
		buckets: buckets,
		table:   newBucketTable(buckets),
		split:   splitbits.New(1 << uint(buckets-1)),
	}
	a.commit = newCommitTracker(host)

	if !a.commit.ensure(a.base + uintptr(linkSize)) {
		return nil, ErrInitialCommitFailed
	}

	// A single entry at BASE, on bucket 0's free list. The split-bit array
	// is already all-zero: every internal node starts UNUSED.
	a.table.pushBack(0, a.pointerAt(a.base))

	return a, nil
}

// Allocate serves a request of the given number of bytes, returning the
// address of a block of at least that size and true, or false if the
// request cannot be satisfied. Failure never changes allocator state: an
// oversize request, exhausted buckets, and a commit refusal all leave the
// allocator exactly as it was before the call.
func (a *Allocator) Allocate(request int) (uintptr, bool) {
	if request < 0 || uintptr(request)+HeaderSize > a.blockSize(0) {
		return 0, false
	}

	targetBucket := a.bucketForSize(request + HeaderSize)

	sourceBucket := -1
	var entry unsafe.Pointer
	for b := targetBucket; b >= 0; b-- {
		if e := a.table.popBack(b); e != nil {
			sourceBucket = b
			entry = e
			break
		}
	}
	if sourceBucket == -1 {
		return 0, false
	}

	p := uintptr(entry)
	blockSize := a.blockSize(sourceBucket)

	var bytesNeeded uintptr
	if sourceBucket < targetBucket {
		bytesNeeded = blockSize/2 + uintptr(linkSize)
	} else {
		bytesNeeded = blockSize
	}

	if !a.commit.ensure(p + bytesNeeded) {
		a.table.pushBack(sourceBucket, entry)
		return 0, false
	}

	index := a.nodeIndex(p, sourceBucket)
	if index != 0 {
		a.split.FlipParentAndRead(index)
	}

	bucket := sourceBucket
	for bucket < targetBucket {
		right := nodeidx.RightChild(index)
		index = nodeidx.LeftChild(index)
		bucket++
		a.split.FlipParentAndRead(index)
		a.table.pushBack(bucket, a.pointerAt(a.addrAt(right, bucket)))
	}

	*(*uint64)(a.pointerAt(p)) = uint64(request)
	return p + HeaderSize, true
}

// Release returns a block previously returned by Allocate. Passing an
// address not produced by an outstanding Allocate call is undefined
// behavior: no runtime check is made, per the allocator's contract.
func (a *Allocator) Release(addr uintptr) {
	p := addr - HeaderSize
	size := int(*(*uint64)(a.pointerAt(p)))
	bucket := a.bucketForSize(size + HeaderSize)
	index := a.nodeIndex(p, bucket)

	for index != 0 {
		if a.split.FlipParentAndRead(index) {
			// Parent became SPLIT: the buddy is USED. Enlist the current node.
			break
		}
		// Parent became UNUSED: the buddy is free too. Remove it and ascend.
		buddyAddr := a.addrAt(nodeidx.Buddy(index), bucket)
		dlist.Remove(a.pointerAt(buddyAddr))
		index = nodeidx.Parent(index)
		bucket--
	}

	a.table.pushBack(bucket, a.pointerAt(a.addrAt(index, bucket)))
}

// blockSize returns the size in bytes of a block in the given bucket.
func (a *Allocator) blockSize(bucket int) uintptr {
	return uintptr(1) << uint(a.maxLog2-bucket)
}

// bucketForSize returns the bucket of the smallest block size able to hold
// sz bytes.
func (a *Allocator) bucketForSize(sz int) int {
	k := bits.Len(uint(sz - 1))
	if k < a.minLog2 {
		k = a.minLog2
	}
	return a.maxLog2 - k
}

// nodeIndex returns the tree index of the block at address p in bucket.
func (a *Allocator) nodeIndex(p uintptr, bucket int) int {
	return nodeidx.Index(int(p-a.base), bucket, a.maxLog2)
}

// addrAt returns the arena address of the block at index in bucket.
func (a *Allocator) addrAt(index, bucket int) uintptr {
	return a.base + uintptr(nodeidx.Offset(index, bucket, a.maxLog2))
}

// pointerAt converts an arena address into an unsafe.Pointer. Valid only
// for addresses the host has committed for this arena; see
// internal/dlist's doc comment for why storing raw addresses in that
// memory is safe even though it is never scanned by the garbage collector.
func (a *Allocator) pointerAt(addr uintptr) unsafe.Pointer {
	return unsafe.Pointer(addr) //nolint:govet // address belongs to host-committed arena memory
}
