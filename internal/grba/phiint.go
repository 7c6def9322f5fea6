package grba

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

type legendreNodes struct {
	x, w []Real
}

// nodeCache maps a node count to Gauss-Legendre nodes on [0, pi], sorted by x.
var nodeCache sync.Map

func phiNodes(n int) legendreNodes {
	if v, ok := nodeCache.Load(n); ok {
		return v.(legendreNodes)
	}
	x := make([]Real, n)
	w := make([]Real, n)
	quad.Legendre{}.FixedLocations(x, w, 0, math.Pi)
	inds := make([]int, n)
	floats.Argsort(x, inds)
	ws := make([]Real, n)
	for i, j := range inds {
		ws[i] = w[j]
	}
	nodes := legendreNodes{x: x, w: ws}
	nodeCache.Store(n, nodes)
	return nodes
}

// PhiIntegral is the azimuthal integral of (r'(phi)/r)^2 over [0, 2 pi], where
// r'(phi) is the equal-arrival radius on each azimuth. It equals 2 pi for an
// on-axis observer.
func PhiIntegral(r Real, jet Jet) (Real, error) {
	return phiIntegral(r, jet, PhiNodes)
}

func phiIntegral(r Real, jet Jet, n int) (Real, error) {
	if !(r > 0) {
		return 0, domainErr("r", r, "must be > 0")
	}
	nodes := phiNodes(n)
	rs, err := PhiChain(r, nodes.x, jet)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for i, rp := range rs {
		f := math.Abs(rp) / r
		sum += nodes.w[i] * f * f
	}
	// the integrand depends on cos(phi) only
	return 2 * sum, nil
}
