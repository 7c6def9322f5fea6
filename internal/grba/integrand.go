package grba

import "math"

// IntG is the local radiation weight at observer coordinate y and causality ratio chi.
// Out-of-domain arguments (chi <= 0, y <= 0) yield NaN/Inf which callers must see.
func IntG(y, chi, k, p Real) Real {
	bG := (1 - p) / 2
	ys := math.Pow(y, 0.5*(bG*(4-k)+4-3*k))
	chis := math.Pow(chi, (7*k-23+bG*(13+k))/(6*(4-k)))
	factor := math.Pow((7-2*k)*chi*math.Pow(y, 4-k)+1, bG-2)
	return ys * chis * factor
}

// Ck is the geometric normalisation (4-k)*(5-k)^((k-5)/(4-k)).
func Ck(k Real) Real {
	return (4 - k) * math.Pow(5-k, (k-5)/(4-k))
}

// FluxG is IntG weighted by the covering factor of a uniform shell.
func FluxG(y, chi, k, p Real) Real {
	cov := math.Pow(y, 5-k) / (2 * Ck(k))
	return 2 * math.Pi * cov * IntG(y, chi, k, p)
}

// Chi is the causality ratio of the shell point r on the line of sight. Points with
// chi < 1 have not become visible by observer coordinate y.
func Chi(r, y Real, jet Jet, phys Physics) Real {
	exp0 := profileWeight(ThetaPrime(r, jet.ThetaV, 0), jet.Sigma, jet.Kappa)
	t := math.Tan(jet.ThetaV) + r
	return (y - phys.Gk()*exp0*t*t) / math.Pow(y, 5-phys.K)
}
