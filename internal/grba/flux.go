package grba

// FluxFullStr is the r0 integrand of the structured-jet flux at observer
// coordinate y. Points that are not yet causally visible (chi < 1) contribute
// exactly zero.
func FluxFullStr(r, y Real, jet Jet, phys Physics) (Real, error) {
	return fluxFullStr(r, y, jet, phys, PhiNodes)
}

func fluxFullStr(r, y Real, jet Jet, phys Physics, phiN int) (Real, error) {
	if err := validate(jet, phys); err != nil {
		return 0, err
	}
	if err := checkY(y); err != nil {
		return 0, err
	}
	if r < 0 {
		return 0, domainErr("r", r, "must be >= 0")
	}
	if r == 0 {
		return 0, nil
	}
	chi := Chi(r, y, jet, phys)
	if chi < 1 {
		return 0, nil
	}
	phi, err := phiIntegral(r, jet, phiN)
	if err != nil {
		return 0, err
	}
	return r * IntG(y, chi, phys.K, phys.P) * phi, nil
}
