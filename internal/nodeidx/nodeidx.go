// Package nodeidx implements the bijection between a (bucket, in-arena
// offset) pair and a node index in a linearized complete binary tree.
//
// Node indices are assigned breadth-first: the root is index 0, a node at
// index i has children at 2i+1 and 2i+2, parent (i-1)/2, and buddy
// ((i-1)^1)+1. There are no pointers between nodes — every relationship is
// computed from the index with constant-time arithmetic, never a tree walk.
package nodeidx

// Index returns the node index for the block at offset within bucket,
// relative to an arena whose full size is 2^maxLog2 bytes.
func Index(offset int, bucket, maxLog2 int) int {
	return (offset >> uint(maxLog2-bucket)) + (1<<uint(bucket) - 1)
}

// Offset returns the in-arena offset of the block represented by index in
// bucket, relative to an arena whose full size is 2^maxLog2 bytes.
func Offset(index int, bucket, maxLog2 int) int {
	return (index - (1<<uint(bucket) - 1)) << uint(maxLog2-bucket)
}

// Parent returns the index of index's parent. Undefined for the root (0).
func Parent(index int) int {
	return (index - 1) / 2
}

// Buddy returns the index of index's sibling. Undefined for the root (0).
func Buddy(index int) int {
	return ((index - 1) ^ 1) + 1
}

// LeftChild returns the index of index's left child.
func LeftChild(index int) int {
	return 2*index + 1
}

// RightChild returns the index of index's right child.
func RightChild(index int) int {
	return 2*index + 2
}
