package grba

import "math"

// Jet describes the angular structure of the outflow and where the observer sits.
type Jet struct {
	Kappa  Real // smoothing index of the energy profile, 0 means uniform
	Sigma  Real // core angular width
	ThetaV Real // viewing angle (radians)
}

// Physics holds the emission and environment parameters.
type Physics struct {
	GammaA Real // Lorentz factor normalisation
	K      Real // circumburst density index
	P      Real // electron spectral index
}

// DefaultPhysics is a uniform medium with p=2.2.
func DefaultPhysics() Physics {
	return Physics{GammaA: DefaultGammaA, K: DefaultK, P: DefaultP}
}

func (j Jet) Validate() error {
	if !(j.Sigma > 0) {
		return domainErr("sigma", j.Sigma, "must be > 0")
	}
	if !(j.Kappa >= 0) || math.IsInf(j.Kappa, 0) {
		return domainErr("kappa", j.Kappa, "must be finite and >= 0")
	}
	if !(j.ThetaV >= 0 && j.ThetaV < math.Pi/2) {
		return domainErr("thetaV", j.ThetaV, "must be in [0, pi/2)")
	}
	return nil
}

func (p Physics) Validate() error {
	if !(p.GammaA > 0) {
		return domainErr("gammaA", p.GammaA, "must be > 0")
	}
	if !(p.K >= 0 && p.K < 4) {
		return domainErr("k", p.K, "must be in [0, 4)")
	}
	if p.P == 1 || math.IsNaN(p.P) {
		return domainErr("p", p.P, "must differ from 1")
	}
	return nil
}

// Gk is the (4-k)*gammaA^2 normalisation shared by r0_max and chi.
func (p Physics) Gk() Real { return (4 - p.K) * p.GammaA * p.GammaA }

func checkY(y Real) error {
	if !(y > 0 && y < 1) {
		return domainErr("y", y, "must be in (0, 1)")
	}
	return nil
}

func validate(jet Jet, phys Physics) error {
	if err := jet.Validate(); err != nil {
		return err
	}
	return phys.Validate()
}
