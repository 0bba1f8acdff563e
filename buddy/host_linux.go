// Copyright 2025 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux

package buddy

import (
	"fmt"
	"syscall"
	"unsafe"
)

// mmapHost is a Host backed by a single anonymous mmap reservation. The
// whole arena is reserved up front with PROT_NONE so no other allocation can
// land inside it; CommitUpTo then mprotects pages to PROT_READ|PROT_WRITE as
// the high-water mark advances, giving a hardware-enforced version of the
// lazy commit discipline spec.md describes in the abstract.
type mmapHost struct {
	base      uintptr
	data      []byte
	committed uintptr
	pageSize  uintptr
}

// NewMmapHost reserves size bytes of address space via mmap, uncommitted.
func NewMmapHost(size int) (Host, error) {
	data, err := syscall.Mmap(-1, 0, size, syscall.PROT_NONE, syscall.MAP_PRIVATE|syscall.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("buddy: mmap reservation of %d bytes failed: %w", size, err)
	}
	return &mmapHost{
		base:     uintptr(unsafe.Pointer(&data[0])),
		data:     data,
		pageSize: uintptr(syscall.Getpagesize()),
	}, nil
}

// CurrentBreak implements Host.
func (h *mmapHost) CurrentBreak() uintptr {
	return h.base + h.committed
}

// CommitUpTo implements Host.
func (h *mmapHost) CommitUpTo(addr uintptr) bool {
	if addr < h.base {
		return false
	}
	rel := addr - h.base
	if rel > uintptr(len(h.data)) {
		return false
	}
	if rel <= h.committed {
		return true
	}

	want := (rel + h.pageSize - 1) &^ (h.pageSize - 1)
	if want > uintptr(len(h.data)) {
		want = uintptr(len(h.data))
	}
	if err := syscall.Mprotect(h.data[h.committed:want], syscall.PROT_READ|syscall.PROT_WRITE); err != nil {
		return false
	}
	h.committed = want
	return true
}

// Close releases the mmap reservation. It is not part of the Host
// interface; callers that want to tear down a process-lifetime arena early
// can type-assert for it.
func (h *mmapHost) Close() error {
	return syscall.Munmap(h.data)
}
