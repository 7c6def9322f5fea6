package grba

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coarseOptions() Options {
	return Options{AbsTol: 1e-3, QuadNodes: 4, PhiNodes: 8, MaxDepth: 3, Log: NewSampleLog()}
}

func TestR0IntegrandTable(t *testing.T) {
	jet := Jet{Kappa: 0, Sigma: 2, ThetaV: degToRad(6)}
	opts := coarseOptions()
	rows := R0IntegrandTable([]Real{Tiny, 0.5}, 5, jet, DefaultPhysics(), opts)
	require.Len(t, rows, 5)
	assert.Equal(t, 1, opts.Log.Count(EmptyDomain))
	for _, r := range rows {
		assert.Equal(t, TableR0Integrand, r.Table)
		assert.Equal(t, "y=0.5", r.Series)
		assert.InDelta(t, 6, r.ThetaV, 1e-12)
		assert.True(t, isFinite(r.Value), "x=%g", r.X)
	}
	assert.Zero(t, rows[0].X)
	assert.Zero(t, rows[0].Value)
	assert.Positive(t, rows[2].Value)
}

func TestR0MaxResidualTable(t *testing.T) {
	jet := Jet{Kappa: 1, Sigma: 2, ThetaV: degToRad(2)}
	phys := DefaultPhysics()
	rows := R0MaxResidualTable([]Real{0.25, 0.5}, 11, jet, phys)
	require.Len(t, rows, 22)
	for _, r := range rows {
		assert.Equal(t, R0MaxResidual(r.X, r.Y, jet, phys), r.Value)
	}
	assert.Equal(t, "y=0.25", rows[0].Series)
	assert.Equal(t, "y=0.5", rows[11].Series)
}

func TestPhiProfileTableOnAxis(t *testing.T) {
	jet := Jet{Kappa: 10, Sigma: 2, ThetaV: 0}
	rows := PhiProfileTable(PhiChainStart, 9, jet, coarseOptions())
	require.Len(t, rows, 9)
	assert.Zero(t, rows[0].X)
	assert.InDelta(t, 2, rows[8].X, 1e-15)
	for _, r := range rows {
		assert.InDelta(t, PhiChainStart, r.Value, 1e-15)
		assert.Equal(t, "r0=1.00e-05", r.Series)
	}
}

func TestLightCurveTable(t *testing.T) {
	jet := Jet{Kappa: 0, Sigma: 2, ThetaV: 0}
	rows := LightCurveTable(3, jet, DefaultPhysics(), coarseOptions())
	require.Len(t, rows, 3)
	assert.InDelta(t, Tiny, rows[0].X, 1e-15)
	assert.InDelta(t, 0.5, rows[1].X, 1e-12)
	assert.InDelta(t, 1-Tiny, rows[2].X, 1e-15)
	assert.Positive(t, rows[1].Value)
}

func TestRootScanTable(t *testing.T) {
	jet := Jet{Kappa: 1, Sigma: 2, ThetaV: degToRad(6)}
	r0 := 0.001
	rows := RootScanTable(r0, 7, 3, jet)
	require.Len(t, rows, 2*7*3)
	for i := 0; i < len(rows); i += 2 {
		fun, jac := rows[i], rows[i+1]
		assert.True(t, strings.HasPrefix(fun.Series, "fun phi="), fun.Series)
		assert.True(t, strings.HasPrefix(jac.Series, "jac phi="), jac.Series)
		assert.Equal(t, fun.X, jac.X)
	}
	assert.InDelta(t, -100*r0, rows[0].X, 1e-15)
	assert.Equal(t, "fun phi=1.00pi", rows[2*7].Series)
	assert.Equal(t, RootFunction(rows[0].X, r0, 0, jet), rows[0].Value)
	assert.Equal(t, RootJacobian(rows[1].X, r0, 0, jet), rows[1].Value)
}

func TestTotalTable(t *testing.T) {
	jet := Jet{Kappa: 1, Sigma: 2, ThetaV: 0}
	rows := TotalTable(jet, DefaultPhysics(), Options{AbsTol: 1e-2, QuadNodes: 4, PhiNodes: 8, MaxDepth: 1})
	require.Len(t, rows, 1)
	assert.Equal(t, TableTotal, rows[0].Table)
	assert.Equal(t, 1.0, rows[0].X)
	assert.False(t, math.IsNaN(rows[0].Value))
}

func TestGroupByTable(t *testing.T) {
	rows := []Row{
		{Table: "b", X: 1},
		{Table: "a", X: 2},
		{Table: "b", X: 3},
	}
	names, m := groupByTable(rows)
	assert.Equal(t, []string{"a", "b"}, names)
	require.Len(t, m["b"], 2)
	assert.Equal(t, 3.0, m["b"][1].X)
}
