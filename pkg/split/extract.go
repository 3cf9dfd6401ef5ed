package split

import (
	"runtime"
	"sync"
)

// Extract copies the triangles listed in body out of pos, in body order.
func Extract(body []int, pos []float32) []float32 {
	out := make([]float32, 0, len(body)*FloatsPerTriangle)
	for _, t := range body {
		o := t * FloatsPerTriangle
		out = append(out, pos[o:o+FloatsPerTriangle]...)
	}
	return out
}

// ExtractAll extracts every body. Bodies are copied by up to workers
// goroutines; a non-positive count uses GOMAXPROCS. The result is indexed
// like bodies whatever the worker count.
func ExtractAll(bodies [][]int, pos []float32, workers int) [][]float32 {
	parts := make([][]float32, len(bodies))
	if len(bodies) == 0 {
		return parts
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(bodies))
	if workers == 1 {
		for i, b := range bodies {
			parts[i] = Extract(b, pos)
		}
		return parts
	}
	task(workers, len(bodies), func(i int) {
		parts[i] = Extract(bodies[i], pos)
	})
	return parts
}

// task splits [0, n) into contiguous chunks, one per worker, and waits for
// all of them.
func task(workersCount, n int, fn func(i int)) {
	var wg sync.WaitGroup
	chunkSize := (n + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start, end := workerID*chunkSize, min((workerID+1)*chunkSize, n)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
