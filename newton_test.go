package xirr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewtonConverges(t *testing.T) {
	s, err := Normalize(example())
	require.NoError(t, err)

	r, iterations, err := newton(s, DefaultOptions)
	require.NoError(t, err)
	assert.InDelta(t, exampleRate, r, 1e-9)
	assert.Less(t, math.Abs(s.NPV(r)), DefaultOptions.Tolerance)
	assert.LessOrEqual(t, iterations, DefaultOptions.MaxIterations)
}

func TestNewtonGivesUp(t *testing.T) {
	s, err := Normalize(example())
	require.NoError(t, err)

	tests := []struct {
		name   string
		series *Series
		opts   Options
		reason string
	}{
		{
			name:   "iteration budget",
			series: s,
			opts:   func() Options { o := DefaultOptions; o.MaxIterations = 1; return o }(),
			reason: "no convergence after 1 iterations",
		},
		{
			name:   "guess at -1",
			series: s,
			opts:   DefaultOptions.WithGuess(-1),
			reason: "guess is not above -1",
		},
		{
			name:   "guess is NaN",
			series: s,
			opts:   DefaultOptions.WithGuess(math.NaN()),
			reason: "guess is not above -1",
		},
		{
			name:   "step leaves the domain",
			series: s,
			opts:   DefaultOptions.WithGuess(5),
			reason: "leaves the rate domain",
		},
		{
			// NPV'(-0.5) = -2/0.25 + 1/0.125 = 0 exactly.
			name:   "vanishing derivative",
			series: series([]float64{0, 1, 2}, []float64{-1, 2, -0.5}),
			opts:   DefaultOptions.WithGuess(-0.5),
			reason: "derivative too small",
		},
		{
			name:   "constant NPV",
			series: series([]float64{0, 0}, []float64{-1000, 1100}),
			opts:   DefaultOptions,
			reason: "derivative too small",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := newton(tt.series, tt.opts)
			var nc *notConvergedError
			require.ErrorAs(t, err, &nc)
			assert.Contains(t, nc.Error(), tt.reason)
		})
	}
}
