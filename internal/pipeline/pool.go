package pipeline

import (
	"context"
	"sync"
)

// forEachIndex runs fn for every index in [0, n) on a fixed pool of
// concurrency goroutines and blocks until all of them return. Callers write
// results into pre-sized slices keyed by index, which keeps output ordering
// independent of scheduling.
func forEachIndex(ctx context.Context, n, concurrency int, fn func(ctx context.Context, i int)) {
	if n == 0 {
		return
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > n {
		concurrency = n
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				fn(ctx, i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case indexes <- i:
		case <-ctx.Done():
			close(indexes)
			wg.Wait()
			return
		}
	}
	close(indexes)
	wg.Wait()
}
