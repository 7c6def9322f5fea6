package grba

import "math"

// rayCoeffs returns A and B of thetaPrime = r*A / (1 + r*B) on the azimuth phi.
func rayCoeffs(thetaV, phi Real) (a, b Real) {
	c := math.Cos(thetaV)
	s2 := math.Sin(2 * thetaV)
	cp := math.Cos(phi)
	// clamp rounding noise, the radicand is cos^2 - sin^2*cos^2*cos(phi)^2 >= 0
	rad := c*c - 0.25*s2*s2*cp*cp
	if rad < 0 {
		rad = 0
	}
	return math.Sqrt(rad), 0.5 * s2 * cp
}

// ThetaPrime is the angle from the jet axis of the shell point at radius r and
// azimuth phi, linearised about the line of sight. 1 + 0.5*r*sin(2 thetaV)*cos(phi)
// must stay positive.
func ThetaPrime(r, thetaV, phi Real) Real {
	a, b := rayCoeffs(thetaV, phi)
	return r * a / (1 + r*b)
}

// ThetaPrimeSlope is d ThetaPrime / dr.
func ThetaPrimeSlope(r, thetaV, phi Real) Real {
	a, b := rayCoeffs(thetaV, phi)
	d := 1 + r*b
	return a / (d * d)
}
