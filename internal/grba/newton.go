package grba

import "math"

// rootFunc returns f(x) and f'(x).
type rootFunc func(x Real) (f, df Real)

// findRoot runs Newton from x0 and falls back to bracketing plus bisection around
// x0 when Newton fails. The Newton error is returned if both fail.
func findRoot(op string, fn rootFunc, x0 Real) (Real, error) {
	x, err := newton(op, fn, x0)
	if err == nil {
		return x, nil
	}
	DebugLog("%s: %v, bracketing around %g", op, err, x0)
	if xb, ok := bracketRoot(fn, x0); ok {
		return xb, nil
	}
	return 0, err
}

func converged(dx, x Real) bool {
	return math.Abs(dx) <= NewtonAbsTol+NewtonRelTol*math.Abs(x)
}

func newton(op string, fn rootFunc, x0 Real) (Real, error) {
	x := x0
	for i := 1; i <= MaxNewtonIter; i++ {
		f, df := fn(x)
		if f == 0 {
			return x, nil
		}
		if !isFinite(f) || !isFinite(df) || df == 0 {
			return 0, &NoConvergeError{Op: op, Iterations: i, Last: x}
		}
		dx := f / df
		// trust region: never move further than 1+|x| in one step
		if lim := 1 + math.Abs(x); math.Abs(dx) > lim {
			dx = math.Copysign(lim, dx)
		}
		x -= dx
		if converged(dx, x) {
			return x, nil
		}
	}
	return 0, &NoConvergeError{Op: op, Iterations: MaxNewtonIter, Last: x}
}

// bracketRoot widens a symmetric interval around x0 until f changes sign, then
// bisects the half that holds the sign change nearest to x0.
func bracketRoot(fn rootFunc, x0 Real) (Real, bool) {
	f0, _ := fn(x0)
	if f0 == 0 {
		return x0, true
	}
	if !isFinite(f0) {
		return 0, false
	}
	h := math.Max(math.Abs(x0), 1e-6) * 1e-2
	for i := 0; i < MaxBracketSteps; i++ {
		for _, x := range [2]Real{x0 - h, x0 + h} {
			f, _ := fn(x)
			if isFinite(f) && f0*f <= 0 {
				return bisect(fn, x0, x, f0)
			}
		}
		h *= 2
	}
	return 0, false
}

func bisect(fn rootFunc, a, b, fa Real) (Real, bool) {
	for i := 0; i < MaxBisectIter; i++ {
		m := 0.5 * (a + b)
		if converged(b-a, m) {
			return m, true
		}
		fm, _ := fn(m)
		if !isFinite(fm) {
			return 0, false
		}
		if fm == 0 {
			return m, true
		}
		if fa*fm < 0 {
			b = m
		} else {
			a, fa = m, fm
		}
	}
	return 0, false
}
