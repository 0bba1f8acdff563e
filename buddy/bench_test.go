package buddy

import (
	"fmt"
	"testing"

	"github.com/bytedance/gopkg/lang/mcache"
)

func BenchmarkAllocateRelease(b *testing.B) {
	sizes := []int{64, 4096, 65536}
	for _, sz := range sizes {
		b.Run(fmt.Sprintf("buddy_n_%d", sz), func(b *testing.B) {
			host := NewSliceHost(1 << 28)
			a, err := NewWithLog2Range(host, DefaultMinLog2, 28)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				addr, ok := a.Allocate(sz)
				if !ok {
					b.Fatal("allocation failed")
				}
				a.Release(addr)
			}
		})

		b.Run(fmt.Sprintf("mcache_n_%d", sz), func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				buf := mcache.Malloc(sz)
				mcache.Free(buf)
			}
		})
	}
}
