package xirr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPV(t *testing.T) {
	s := series([]float64{0, 1, 2}, []float64{-1000, 500, 660})

	assert.Equal(t, 160.0, s.NPV(0))
	assert.InDelta(t, -1000+500/1.1+660/1.21, s.NPV(0.1), 1e-9)
	assert.InDelta(t, -500/1.21-2*660/1.331, s.Derivative(0.1), 1e-9)
}

func TestNPVOutsideDomain(t *testing.T) {
	s := series([]float64{0, 1}, []float64{-1000, 1100})
	for _, r := range []float64{-1, -1.5, math.NaN()} {
		assert.True(t, math.IsNaN(s.NPV(r)), "NPV(%v) should be NaN", r)
		assert.True(t, math.IsNaN(s.Derivative(r)), "Derivative(%v) should be NaN", r)
	}
}

func TestDerivativeMatchesFiniteDifference(t *testing.T) {
	s, err := Normalize(example())
	require.NoError(t, err)

	const h = 1e-6
	for _, r := range []float64{-0.5, 0, 0.1, 1, 3} {
		want := (s.NPV(r+h) - s.NPV(r-h)) / (2 * h)
		assert.InEpsilon(t, want, s.Derivative(r), 1e-6, "rate %v", r)
	}
}

func TestNPVIsDecreasingForTwoFlows(t *testing.T) {
	s, err := Normalize([]Cashflow{CF("2023-05-01", -1000), CF("2025-05-01", 1500)})
	require.NoError(t, err)

	points := s.Scan(DefaultOptions)
	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i-1].NPV, points[i].NPV, "NPV must decrease between %v and %v", points[i-1].Rate, points[i].Rate)
		assert.Negative(t, s.Derivative(points[i].Rate))
	}

	res, err := s.Solve(DefaultOptions)
	require.NoError(t, err)
	r := float64(res.Rate)
	assert.Greater(t, s.NPV(r-1e-3), 0.0)
	assert.Less(t, s.NPV(r+1e-3), 0.0)
}
