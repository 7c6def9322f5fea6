package grba

import "math"

// EnergyProfile is the smoothed top-hat 2^(-(theta/sigma)^(2 kappa)).
// kappa = 0 is the uniform jet and returns 1 everywhere.
func EnergyProfile(thetaPrime, sigma, kappa Real) Real {
	if kappa == 0 {
		return 1
	}
	return math.Exp2(-math.Pow(math.Abs(thetaPrime)/sigma, 2*kappa))
}

// profileWeight is the literal 2^(-(thetaPrime/sigma)^(2 kappa)) used by the
// r0_max and chi conditions. Unlike EnergyProfile it has no uniform shortcut, so
// kappa = 0 gives the constant 1/2.
func profileWeight(thetaPrime, sigma, kappa Real) Real {
	return math.Exp2(-math.Pow(math.Abs(thetaPrime)/sigma, 2*kappa))
}

// ProfileSlope is d/dr of EnergyProfile(ThetaPrime(r, thetaV, phi)).
func ProfileSlope(r, phi Real, jet Jet) Real {
	if jet.Kappa == 0 {
		return 0
	}
	a, b := rayCoeffs(jet.ThetaV, phi)
	d := 1 + r*b
	th := r * a / d
	e := EnergyProfile(th, jet.Sigma, jet.Kappa)
	n := 2 * jet.Kappa
	if r == 0 {
		// (|th|/sigma)^n / r has the limit 0, a/sigma or infinity for n >, =, < 1
		switch {
		case n > 1:
			return 0
		case n == 1:
			return -e * math.Ln2 * a / jet.Sigma
		default:
			return math.Inf(-1)
		}
	}
	return -e * n * math.Ln2 * math.Pow(math.Abs(th)/jet.Sigma, n) / (r * d)
}
