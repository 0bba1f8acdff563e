package buddy

import (
	"unsafe"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// SliceHost is a portable Host backed by a single Go byte slice. It is the
// default used throughout this package's tests: it needs no platform-specific
// syscalls, and it can be given an artificial commit ceiling to exercise the
// commit-failure rollback path without needing a real resource limit.
//
// The backing slice is allocated once, at the requested size, with
// dirtmake.Bytes instead of make — the bytes a real host hands back for
// newly-committed memory are not expected to be pre-zeroed either, and
// dirtmake skips exactly that zero-fill.
type SliceHost struct {
	base      uintptr
	data      []byte
	committed uintptr
	limit     uintptr // 0 means "no artificial ceiling beyond len(data)"
}

// NewSliceHost reserves size bytes for the arena. Nothing is considered
// committed until CommitUpTo is called.
func NewSliceHost(size int) *SliceHost {
	data := dirtmake.Bytes(size, size)
	return &SliceHost{
		base: uintptr(unsafe.Pointer(&data[0])),
		data: data,
	}
}

// SetCommitLimit caps how many bytes past the base CommitUpTo will ever
// agree to commit, simulating a host that refuses to extend the break
// beyond some point. A limit of 0 removes the cap.
func (h *SliceHost) SetCommitLimit(n int) {
	h.limit = uintptr(n)
}

// CurrentBreak implements Host.
func (h *SliceHost) CurrentBreak() uintptr {
	return h.base + h.committed
}

// CommitUpTo implements Host.
func (h *SliceHost) CommitUpTo(addr uintptr) bool {
	if addr < h.base {
		return false
	}
	rel := addr - h.base
	if rel > uintptr(len(h.data)) {
		return false
	}
	if h.limit != 0 && rel > h.limit {
		return false
	}
	if rel > h.committed {
		h.committed = rel
	}
	return true
}
