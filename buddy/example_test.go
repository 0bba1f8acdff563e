package buddy

import "fmt"

func Example() {
	host := NewSliceHost(1 << 20) // 1 MiB arena
	a, err := NewWithLog2Range(host, DefaultMinLog2, 20)
	if err != nil {
		panic(err)
	}

	b1, _ := a.Allocate(100)
	b2, _ := a.Allocate(4096)

	fmt.Println(b1 != b2)

	a.Release(b1)
	a.Release(b2)

	// Output:
	// true
}
