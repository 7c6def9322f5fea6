package grba

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestParallelMapVisitsEveryIndexOnce(t *testing.T) {
	for _, tc := range []struct{ n, workers int }{
		{0, 4}, {1, 4}, {7, 3}, {100, 0}, {5, 50},
	} {
		hits := make([]int32, tc.n)
		var calls atomic.Int32
		ParallelMap(tc.n, tc.workers, func(i int) {
			atomic.AddInt32(&hits[i], 1)
			calls.Add(1)
		})
		if int(calls.Load()) != tc.n {
			t.Fatalf("n=%d workers=%d: %d calls", tc.n, tc.workers, calls.Load())
		}
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d workers=%d: index %d visited %d times", tc.n, tc.workers, i, h)
			}
		}
	}
}

func TestFluxBatchMatchesSerial(t *testing.T) {
	jet := Jet{Kappa: 1, Sigma: 2, ThetaV: degToRad(2)}
	phys := DefaultPhysics()
	rs := []Real{0, 0.05, 0.1, 0.2, -1}
	ys := []Real{0.5, 0.5, 0.3, 0.7, 0.5, 0.9} // extra y is ignored
	vals, errs := FluxBatch(rs, ys, jet, phys, 2)
	if len(vals) != len(rs) {
		t.Fatalf("got %d values", len(vals))
	}
	for i := range rs {
		want, werr := FluxFullStr(rs[i], ys[i], jet, phys)
		if vals[i] != want || (werr == nil) != (errs[i] == nil) {
			t.Errorf("i=%d: got %g, %v; want %g, %v", i, vals[i], errs[i], want, werr)
		}
	}
	if !errors.Is(errs[4], ErrDomain) {
		t.Errorf("negative r: got %v", errs[4])
	}
}

func TestR0MaxBatch(t *testing.T) {
	jet := Jet{Kappa: 0, Sigma: 2, ThetaV: 0}
	ys := []Real{0.1, 0.5, 2}
	vals, errs := R0MaxBatch(ys, jet, DefaultPhysics(), 0)
	for i := 0; i < 2; i++ {
		want, _ := R0Max(ys[i], jet, DefaultPhysics())
		if errs[i] != nil || vals[i] != want {
			t.Errorf("y=%g: got %g, %v", ys[i], vals[i], errs[i])
		}
	}
	if !errors.Is(errs[2], ErrDomain) {
		t.Errorf("y=2: got %v", errs[2])
	}
}
