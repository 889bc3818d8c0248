//go:build debug

package pool

import "fmt"

func assertIndex(i, length int) {
	if i < 0 || i >= length {
		panic(fmt.Sprintf("pool: packed index %d out of range (len %d), packed array diverged from logical list", i, length))
	}
}
