package grba

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const (
	TableR0Integrand  = "r0-integrand"
	TableR0MaxResidue = "r0max-residual"
	TablePhiProfile   = "phi-profile"
	TableLightCurve   = "light-curve"
	TableRootScan     = "root-scan"
	TableTotal        = "total"
)

// AllTables lists every table Run knows how to build.
var AllTables = []string{TableR0Integrand, TableR0MaxResidue, TablePhiProfile, TableLightCurve, TableRootScan, TableTotal}

// Row is one tabulated sample handed to the sinks.
type Row struct {
	Table  string
	Series string
	X      Real
	Value  Real
	Kappa  Real
	ThetaV Real // degrees
	Y      Real
	Sigma  Real
}

func span(n int, lo, hi Real) []Real {
	if n < 2 {
		return []Real{lo}
	}
	return floats.Span(make([]Real, n), lo, hi)
}

func newRow(table, series string, x, v, y Real, jet Jet) Row {
	return Row{
		Table:  table,
		Series: series,
		X:      x,
		Value:  v,
		Kappa:  jet.Kappa,
		ThetaV: radToDeg(jet.ThetaV),
		Y:      y,
		Sigma:  jet.Sigma,
	}
}

func ySeries(y Real) string { return fmt.Sprintf("y=%.3g", y) }

// R0IntegrandTable samples FluxFullStr on n points of [0, R0Max(y)] for each y.
// Observer coordinates with an empty visible region produce no rows.
func R0IntegrandTable(ys []Real, n int, jet Jet, phys Physics, opts Options) []Row {
	o := opts.withDefaults()
	var rows []Row
	for _, y := range ys {
		rm, err := R0Max(y, jet, phys)
		if err != nil {
			o.Log.record("r0_max", R0MaxGuess, y, err)
			Logf("%s: kappa=%g thetaV=%g y=%g: %v", TableR0Integrand, jet.Kappa, jet.ThetaV, y, err)
			continue
		}
		if rm <= 0 {
			o.Log.empty(y, rm)
			continue
		}
		for _, r := range span(n, 0, rm) {
			v, err := fluxFullStr(r, y, jet, phys, o.PhiNodes)
			if o.Log.record("flux", r, y, err) != Evaluated {
				v = math.NaN()
			}
			rows = append(rows, newRow(TableR0Integrand, ySeries(y), r, v, y, jet))
		}
	}
	return rows
}

// R0MaxResidualTable samples the r0_max root function on n points of [0, 1].
func R0MaxResidualTable(ys []Real, n int, jet Jet, phys Physics) []Row {
	var rows []Row
	for _, y := range ys {
		for _, r := range span(n, 0, 1) {
			rows = append(rows, newRow(TableR0MaxResidue, ySeries(y), r, R0MaxResidual(r, y, jet, phys), y, jet))
		}
	}
	return rows
}

// PhiProfileTable chains SolveR over n azimuths in [0, 2 pi] from r0. X is phi/pi
// and Value the signed root.
func PhiProfileTable(r0 Real, n int, jet Jet, opts Options) []Row {
	phis := span(n, 0, 2*math.Pi)
	rs, err := PhiChain(r0, phis, jet)
	if err != nil {
		opts.Log.record("solveR", r0, 0, err)
		Logf("%s: kappa=%g thetaV=%g r0=%g: %v", TablePhiProfile, jet.Kappa, jet.ThetaV, r0, err)
	}
	rows := make([]Row, 0, len(rs))
	series := fmt.Sprintf("r0=%.2e", r0)
	for i, r := range rs {
		rows = append(rows, newRow(TablePhiProfile, series, phis[i]/math.Pi, r, 0, jet))
	}
	return rows
}

// LightCurveTable integrates over r0 at n observer coordinates spread over (0, 1).
func LightCurveTable(n int, jet Jet, phys Physics, opts Options) []Row {
	rows := make([]Row, 0, n)
	for _, y := range span(n, Tiny, 1-Tiny) {
		res, err := IntegrateR0(y, jet, phys, opts)
		v := res.Value
		if err != nil {
			opts.Log.record("r0-integral", y, y, err)
			Logf("%s: kappa=%g thetaV=%g y=%g: %v", TableLightCurve, jet.Kappa, jet.ThetaV, y, err)
			v = math.NaN()
		}
		DebugLog("%s: kappa=%g thetaV=%g y=%g flux=%g evals=%d skipped=%d", TableLightCurve, jet.Kappa, jet.ThetaV, y, v, res.Evals, res.Skipped)
		rows = append(rows, newRow(TableLightCurve, "flux", y, v, y, jet))
	}
	return rows
}

// RootScanTable evaluates RootFunction and RootJacobian on n radii in
// [-100 r0, 100 r0] for phiCount azimuths spread over [0, 2 pi].
func RootScanTable(r0 Real, n, phiCount int, jet Jet) []Row {
	var rows []Row
	for _, phi := range span(phiCount, 0, 2*math.Pi) {
		fs := fmt.Sprintf("fun phi=%.2fpi", phi/math.Pi)
		js := fmt.Sprintf("jac phi=%.2fpi", phi/math.Pi)
		for _, r := range span(n, -100*r0, 100*r0) {
			rows = append(rows,
				newRow(TableRootScan, fs, r, RootFunction(r, r0, phi, jet), 0, jet),
				newRow(TableRootScan, js, r, RootJacobian(r, r0, phi, jet), 0, jet))
		}
	}
	return rows
}

// TotalTable is the full double integral for one jet.
func TotalTable(jet Jet, phys Physics, opts Options) []Row {
	res, err := IntegrateRY(jet, phys, opts)
	v := res.Value
	if err != nil {
		Logf("%s: kappa=%g thetaV=%g: %v", TableTotal, jet.Kappa, jet.ThetaV, err)
		v = math.NaN()
	}
	Logf("%s: kappa=%g thetaV=%g flux=%g evals=%d skipped=%d", TableTotal, jet.Kappa, radToDeg(jet.ThetaV), v, res.Evals, res.Skipped)
	return []Row{newRow(TableTotal, "flux", jet.Kappa, v, 0, jet)}
}

// groupByTable splits rows per table, keeping their order, and returns sorted names.
func groupByTable(rows []Row) ([]string, map[string][]Row) {
	m := make(map[string][]Row)
	for _, r := range rows {
		m[r.Table] = append(m[r.Table], r)
	}
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, m
}
