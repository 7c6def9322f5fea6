package grba

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/integrate/quad"
)

// Options controls the quadratures. Zero fields take the package defaults.
type Options struct {
	AbsTol      Real
	QuadNodes   int // Gauss-Legendre nodes per adaptive panel
	PhiNodes    int // Gauss-Legendre nodes on [0, pi] for PhiIntegral
	MaxDepth    int
	Concurrency int // passed to quad.Fixed for each panel
	Log         *SampleLog
}

func DefaultOptions() Options {
	return Options{AbsTol: AbsTol, QuadNodes: QuadNodes, PhiNodes: PhiNodes, MaxDepth: MaxDepth}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.AbsTol <= 0 {
		o.AbsTol = d.AbsTol
	}
	if o.QuadNodes <= 0 {
		o.QuadNodes = d.QuadNodes
	}
	if o.PhiNodes <= 0 {
		o.PhiNodes = d.PhiNodes
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	if o.Concurrency < 0 {
		o.Concurrency = 0
	}
	return o
}

// Result is a flux estimate together with how it was obtained.
type Result struct {
	Value   Real
	R0Max   Real // inner upper bound, only set by IntegrateR0
	Empty   bool // the visible region was empty
	Evals   int
	Skipped int
}

// sampler adapts an erroring integrand to quad.Fixed: failed nodes are recorded
// and contribute zero.
type sampler struct {
	op      string
	y       Real
	fn      func(x Real) (Real, error)
	log     *SampleLog
	evals   atomic.Int64
	skipped atomic.Int64
}

func (s *sampler) eval(x Real) Real {
	s.evals.Add(1)
	v, err := s.fn(x)
	if c := s.log.record(s.op, x, s.y, err); c != Evaluated {
		s.skipped.Add(1)
		DebugLog("%s: skipped node x=%g y=%g: %v", s.op, x, s.y, err)
		return 0
	}
	return v
}

// adaptive integrates f over [a, b] by recursive panel halving until the
// two-panel estimate agrees with the one-panel estimate within tol.
func adaptive(f func(Real) Real, a, b Real, o Options) Real {
	if a >= b {
		return 0
	}
	whole := quad.Fixed(f, a, b, o.QuadNodes, quad.Legendre{}, o.Concurrency)
	return refine(f, a, b, whole, o.AbsTol, o.MaxDepth, o)
}

func refine(f func(Real) Real, a, b, whole, tol Real, depth int, o Options) Real {
	m := 0.5 * (a + b)
	left := quad.Fixed(f, a, m, o.QuadNodes, quad.Legendre{}, o.Concurrency)
	right := quad.Fixed(f, m, b, o.QuadNodes, quad.Legendre{}, o.Concurrency)
	sum := left + right
	if !isFinite(sum) || depth <= 0 || math.Abs(sum-whole) <= tol {
		return sum
	}
	return refine(f, a, m, left, tol/2, depth-1, o) + refine(f, m, b, right, tol/2, depth-1, o)
}

// IntegrateR0 integrates FluxFullStr over r0 in [0, R0Max(y)] at fixed y.
func IntegrateR0(y Real, jet Jet, phys Physics, opts Options) (Result, error) {
	if err := validate(jet, phys); err != nil {
		return Result{}, err
	}
	if err := checkY(y); err != nil {
		return Result{}, err
	}
	rm, err := R0Max(y, jet, phys)
	if err != nil {
		return Result{}, err
	}
	if rm <= 0 {
		opts.Log.empty(y, rm)
		return Result{R0Max: rm, Empty: true}, nil
	}
	res, err := IntegrateR0Between(y, 0, rm, jet, phys, opts)
	res.R0Max = rm
	return res, err
}

// IntegrateR0Between integrates FluxFullStr over r0 in [lo, hi] at fixed y.
func IntegrateR0Between(y, lo, hi Real, jet Jet, phys Physics, opts Options) (Result, error) {
	if err := validate(jet, phys); err != nil {
		return Result{}, err
	}
	if err := checkY(y); err != nil {
		return Result{}, err
	}
	if lo < 0 || hi < lo {
		return Result{}, domainErr("r0 range", hi-lo, "needs 0 <= lo <= hi")
	}
	o := opts.withDefaults()
	s := &sampler{
		op:  "flux",
		y:   y,
		log: o.Log,
		fn: func(r Real) (Real, error) {
			return fluxFullStr(r, y, jet, phys, o.PhiNodes)
		},
	}
	v := adaptive(s.eval, lo, hi, o)
	return Result{Value: v, Evals: int(s.evals.Load()), Skipped: int(s.skipped.Load())}, nil
}

// IntegrateRY is the double integral over y in (Tiny, 1-Tiny) and r0 in
// [0, R0Max(y)]. Failed inner integrals are recorded and skipped.
func IntegrateRY(jet Jet, phys Physics, opts Options) (Result, error) {
	if err := validate(jet, phys); err != nil {
		return Result{}, err
	}
	o := opts.withDefaults()
	var innerEvals, innerSkipped atomic.Int64
	s := &sampler{
		op:  "r0-integral",
		log: o.Log,
		fn: func(y Real) (Real, error) {
			res, err := IntegrateR0(y, jet, phys, o)
			innerEvals.Add(int64(res.Evals))
			innerSkipped.Add(int64(res.Skipped))
			return res.Value, err
		},
	}
	v := adaptive(s.eval, Tiny, 1-Tiny, o)
	return Result{
		Value:   v,
		Evals:   int(s.evals.Load() + innerEvals.Load()),
		Skipped: int(s.skipped.Load() + innerSkipped.Load()),
	}, nil
}
