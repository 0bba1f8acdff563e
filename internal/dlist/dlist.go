// Package dlist implements the intrusive circular doubly-linked list used
// to thread free blocks together and as the bucket free-list sentinels.
//
// "Intrusive" means the link words live inside the memory of the thing being
// listed, not in a separately allocated node — for a free block that memory
// is otherwise unused while the block sits on a bucket's free list. A head
// is represented as a Link whose own prev/next both point at itself, which
// is what makes an empty list indistinguishable in shape from a non-empty
// one and removes null-checks from every operation. Remove needs no
// reference to the owning head: the list is fully addressable through any
// of its links.
//
// Links are identified by their real memory address (an unsafe.Pointer),
// never by a separately allocated handle. A Link placed inside arena memory
// is never scanned by the garbage collector — that memory is either outside
// the Go heap (an mmap reservation) or a pointer-free []byte — so storing
// raw addresses in it is safe; a Link used
// as a bucket head sentinel is an ordinary Go value and is scanned as such.
package dlist

import "unsafe"

// Link is the two-word pair of links threaded through a free block (or
// used as a bucket head sentinel). Two pointer-sized words is the minimum
// needed to make the list circular and doubly-linked without extra state.
type Link struct {
	prev, next unsafe.Pointer
}

// InitHead makes head an empty list: both of its links point to itself.
func InitHead(head *Link) {
	self := unsafe.Pointer(head)
	head.prev = self
	head.next = self
}

// Empty reports whether head's list has no entries.
func Empty(head *Link) bool {
	return head.next == unsafe.Pointer(head)
}

// PushBack inserts the Link at entry immediately before head, i.e. at the
// back of the list.
func PushBack(head *Link, entry unsafe.Pointer) {
	e := (*Link)(entry)
	last := (*Link)(head.prev)

	e.prev = head.prev
	e.next = unsafe.Pointer(head)
	last.next = entry
	head.prev = entry
}

// Remove unlinks the Link at entry from whatever list it is a member of.
// It does not need, and is not given, the list's head.
func Remove(entry unsafe.Pointer) {
	e := (*Link)(entry)
	prev := (*Link)(e.prev)
	next := (*Link)(e.next)

	prev.next = e.next
	next.prev = e.prev
}

// PopBack removes and returns the entry at the back of head's list, or nil
// if the list is empty.
func PopBack(head *Link) unsafe.Pointer {
	if Empty(head) {
		return nil
	}
	last := head.prev
	Remove(last)
	return last
}
