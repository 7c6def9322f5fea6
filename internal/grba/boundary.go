package grba

import (
	"fmt"
	"math"
)

func r0MaxFunc(y Real, jet Jet, phys Physics) rootFunc {
	lhs := (y - math.Pow(y, 5-phys.K)) / phys.Gk()
	t := math.Tan(jet.ThetaV)
	return func(rm Real) (Real, Real) {
		u := t + rm
		e := profileWeight(ThetaPrime(rm, jet.ThetaV, 0), jet.Sigma, jet.Kappa)
		// the weight is constant at kappa = 0, where ProfileSlope is 0
		return u*u*e - lhs, 2*u*e + u*u*ProfileSlope(rm, 0, jet)
	}
}

// R0Max is the largest line-of-sight shell radius still causally visible at y.
// A result <= 0 means the visible region is empty; it is not an error.
func R0Max(y Real, jet Jet, phys Physics) (Real, error) {
	if err := validate(jet, phys); err != nil {
		return 0, err
	}
	if err := checkY(y); err != nil {
		return 0, err
	}
	return findRoot("r0_max", r0MaxFunc(y, jet, phys), R0MaxGuess)
}

// R0MaxResidual is the function whose root R0Max finds, evaluated at r.
func R0MaxResidual(r, y Real, jet Jet, phys Physics) Real {
	f, _ := r0MaxFunc(y, jet, phys)(r)
	return f
}

// RootFunction is the equal-arrival condition on the azimuth phi: zero when the
// shell point at radius r on phi matches the reference radius r0 on phi = 0.
func RootFunction(r, r0, phi Real, jet Jet) Real {
	t := math.Tan(jet.ThetaV)
	eng := EnergyProfile(ThetaPrime(r, jet.ThetaV, phi), jet.Sigma, jet.Kappa)
	eng0 := EnergyProfile(ThetaPrime(r, jet.ThetaV, 0), jet.Sigma, jet.Kappa)
	q := r*r + 2*r*t*math.Cos(phi) + t*t
	return eng*q - (r0+t)*(r0+t)*eng0
}

// RootJacobian is d RootFunction / dr.
func RootJacobian(r, r0, phi Real, jet Jet) Real {
	t := math.Tan(jet.ThetaV)
	cp := math.Cos(phi)
	eng := EnergyProfile(ThetaPrime(r, jet.ThetaV, phi), jet.Sigma, jet.Kappa)
	q := r*r + 2*r*t*cp + t*t
	return ProfileSlope(r, phi, jet)*q + eng*(2*r+2*t*cp) - (r0+t)*(r0+t)*ProfileSlope(r, 0, jet)
}

// SolveR finds the radius on azimuth phi matching r0, starting from guess.
// The root is signed: the branch it lands on depends on the guess, so take the
// absolute value only where the result is used as a radius.
func SolveR(guess, r0, phi Real, jet Jet) (Real, error) {
	if err := jet.Validate(); err != nil {
		return 0, err
	}
	fn := func(r Real) (Real, Real) {
		return RootFunction(r, r0, phi, jet), RootJacobian(r, r0, phi, jet)
	}
	return findRoot("solveR", fn, guess)
}

// PhiChain solves along increasing azimuths, each solution seeding the next
// search. Failed points are NaN and the chain resumes from the last good root;
// the first failure is returned.
func PhiChain(r0 Real, phis []Real, jet Jet) ([]Real, error) {
	if err := jet.Validate(); err != nil {
		return nil, err
	}
	out := make([]Real, len(phis))
	var first error
	guess := r0
	for i, phi := range phis {
		r, err := SolveR(guess, r0, phi, jet)
		if err != nil {
			out[i] = math.NaN()
			if first == nil {
				first = fmt.Errorf("phi=%g: %w", phi, err)
			}
			continue
		}
		out[i] = r
		guess = r
	}
	return out, first
}
