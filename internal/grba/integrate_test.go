package grba

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate/quad"
)

func TestIntegrateR0EmptyDomain(t *testing.T) {
	log := NewSampleLog()
	opts := DefaultOptions()
	opts.Log = log
	res, err := IntegrateR0(Tiny, Jet{Kappa: 0, Sigma: 2, ThetaV: degToRad(6)}, DefaultPhysics(), opts)
	require.NoError(t, err)
	assert.True(t, res.Empty)
	assert.Zero(t, res.Value)
	assert.Zero(t, res.Evals)
	assert.Equal(t, 1, log.Count(EmptyDomain))
}

func TestIntegrateR0OnAxisReference(t *testing.T) {
	phys := DefaultPhysics()
	jet := Jet{Kappa: 0, Sigma: 2, ThetaV: 0}
	for _, y := range []Real{0.2, 0.5, 0.8} {
		rm, err := R0Max(y, jet, phys)
		require.NoError(t, err)
		ref := quad.Fixed(func(r Real) Real {
			chi := (y - phys.Gk()*0.5*r*r) / math.Pow(y, 5-phys.K)
			return 2 * math.Pi * r * IntG(y, chi, phys.K, phys.P)
		}, 0, rm, 200, quad.Legendre{}, 0)

		res, err := IntegrateR0(y, jet, phys, DefaultOptions())
		require.NoError(t, err)
		assert.False(t, res.Empty)
		assert.Zero(t, res.Skipped)
		assert.InDelta(t, rm, res.R0Max, 0)
		assert.InDelta(t, ref, res.Value, 1e-5, "y=%g", y)
	}
}

func TestIntegrateR0Additive(t *testing.T) {
	phys := DefaultPhysics()
	jet := Jet{Kappa: 1, Sigma: 2, ThetaV: degToRad(2)}
	y := 0.5
	whole, err := IntegrateR0(y, jet, phys, DefaultOptions())
	require.NoError(t, err)
	require.Greater(t, whole.Value, 0.0)

	m := 0.4 * whole.R0Max
	lo, err := IntegrateR0Between(y, 0, m, jet, phys, DefaultOptions())
	require.NoError(t, err)
	hi, err := IntegrateR0Between(y, m, whole.R0Max, jet, phys, DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, whole.Value, lo.Value+hi.Value, 2*AbsTol)
}

func TestIntegrateR0BetweenBadRange(t *testing.T) {
	jet := Jet{Kappa: 1, Sigma: 2, ThetaV: 0}
	_, err := IntegrateR0Between(0.5, 0.2, 0.1, jet, DefaultPhysics(), DefaultOptions())
	assert.ErrorIs(t, err, ErrDomain)
	_, err = IntegrateR0Between(0.5, -0.1, 0.1, jet, DefaultPhysics(), DefaultOptions())
	assert.ErrorIs(t, err, ErrDomain)
	res, err := IntegrateR0Between(0.5, 0.1, 0.1, jet, DefaultPhysics(), DefaultOptions())
	require.NoError(t, err)
	assert.Zero(t, res.Value)
}

func TestSamplerSkipsFailures(t *testing.T) {
	log := NewSampleLog()
	s := &sampler{
		op:  "step",
		log: log,
		fn: func(x Real) (Real, error) {
			if x > 0.5 {
				return 0, domainErr("x", x, "must be <= 0.5")
			}
			return 1, nil
		},
	}
	o := DefaultOptions()
	got := adaptive(s.eval, 0, 1, o)
	assert.InDelta(t, 0.5, got, 1e-12)
	assert.Positive(t, s.skipped.Load())
	assert.Equal(t, int(s.skipped.Load()), log.Count(DomainFault))
	assert.Equal(t, int(s.evals.Load()-s.skipped.Load()), log.Count(Evaluated))
	for _, smp := range log.Skipped() {
		assert.Greater(t, smp.X, 0.5)
		assert.Equal(t, "step", smp.Op)
	}
}

func TestIntegrateRYCoarse(t *testing.T) {
	opts := Options{AbsTol: 1e-2, QuadNodes: 4, PhiNodes: 8, MaxDepth: 2, Log: NewSampleLog()}
	for _, jet := range []Jet{
		{Kappa: 0, Sigma: 2, ThetaV: 0},
		{Kappa: 1, Sigma: 2, ThetaV: degToRad(2)},
	} {
		res, err := IntegrateRY(jet, DefaultPhysics(), opts)
		require.NoError(t, err)
		assert.True(t, isFinite(res.Value) && res.Value > 0, "%+v: %g", jet, res.Value)
		assert.Positive(t, res.Evals)
	}
}

func TestIntegrateDomain(t *testing.T) {
	_, err := IntegrateR0(1, Jet{Kappa: 1, Sigma: 2}, DefaultPhysics(), DefaultOptions())
	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "y", de.Param)
	_, err = IntegrateRY(Jet{Kappa: 1, Sigma: 2}, Physics{GammaA: 0, P: 2.2}, DefaultOptions())
	assert.ErrorIs(t, err, ErrDomain)
}
