package grba

import (
	"runtime"
	"sync"
)

// ParallelMap calls fn(i) for every i in [0, n) on up to workers goroutines.
// workers <= 0 means runtime.NumCPU(). fn must only write to slot i of its output.
func ParallelMap(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	per, rem := n/workers, n%workers
	var wg sync.WaitGroup
	start := 0
	for w := 0; w < workers; w++ {
		cnt := per
		if w < rem {
			cnt++
		}
		if cnt == 0 {
			continue
		}
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				fn(i)
			}
		}(start, start+cnt)
		start += cnt
	}
	wg.Wait()
}

// FluxBatch evaluates FluxFullStr at every (rs[i], ys[i]) pair.
func FluxBatch(rs, ys []Real, jet Jet, phys Physics, workers int) ([]Real, []error) {
	n := imin(len(rs), len(ys))
	vals := make([]Real, n)
	errs := make([]error, n)
	ParallelMap(n, workers, func(i int) {
		vals[i], errs[i] = FluxFullStr(rs[i], ys[i], jet, phys)
	})
	return vals, errs
}

// R0MaxBatch evaluates R0Max at every y.
func R0MaxBatch(ys []Real, jet Jet, phys Physics, workers int) ([]Real, []error) {
	vals := make([]Real, len(ys))
	errs := make([]error, len(ys))
	ParallelMap(len(ys), workers, func(i int) {
		vals[i], errs[i] = R0Max(ys[i], jet, phys)
	})
	return vals, errs
}
