package xirr

import (
	"testing"

	"github.com/etnz/xirr/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	s, err := Normalize(example())
	require.NoError(t, err)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, date.MustParse("2025-03-23"), s.Start())

	wantDays := []int{0, 70, 141, 240}
	wantAmounts := []float64{-16000, 12000, -700, 4921}
	for i := range wantDays {
		years, amount := s.At(i)
		assert.InDelta(t, float64(wantDays[i])/365.25, years, 1e-15, "years of flow #%d", i)
		assert.Equal(t, wantAmounts[i], amount, "amount of flow #%d", i)
	}
	assert.InDelta(t, 240/365.25, s.Years(), 1e-15)
}

func TestNormalizeUnordered(t *testing.T) {
	cfs := []Cashflow{
		CF("2025-11-18", 4921),
		CF("2025-06-01", 12000),
		CF("2025-03-23", -16000),
		CF("2025-08-11", -700),
	}
	s, err := Normalize(cfs)
	require.NoError(t, err)
	assert.Equal(t, date.MustParse("2025-03-23"), s.Start())

	years, amount := s.At(0)
	assert.Zero(t, years)
	assert.Equal(t, -16000.0, amount)

	// the input is left untouched
	assert.Equal(t, date.MustParse("2025-11-18"), cfs[0].Date)
}

func TestNormalizeKeepsTies(t *testing.T) {
	cfs := []Cashflow{
		CF("2024-01-01", -500),
		CF("2024-01-01", -500),
		CF("2025-01-01", 1100),
	}
	s, err := Normalize(cfs)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	t0, a0 := s.At(0)
	t1, a1 := s.At(1)
	assert.Equal(t, t0, t1)
	assert.Equal(t, -500.0, a0)
	assert.Equal(t, -500.0, a1)

	// 2024 is a leap year.
	years, _ := s.At(2)
	assert.InDelta(t, 366/365.25, years, 1e-15)
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name      string
		cashflows []Cashflow
		want      error
	}{
		{"nil", nil, ErrInsufficientData},
		{"single", []Cashflow{CF("2025-01-01", -1000)}, ErrInsufficientData},
		{"all negative", []Cashflow{CF("2025-01-01", -1000), CF("2026-01-01", -100)}, ErrNoSignChange},
		{"all positive", []Cashflow{CF("2025-01-01", 1000), CF("2026-01-01", 100)}, ErrNoSignChange},
		{"all zero", []Cashflow{CF("2025-01-01", 0), CF("2026-01-01", 0)}, ErrNoSignChange},
		{"zero and positive", []Cashflow{CF("2025-01-01", 0), CF("2026-01-01", 100)}, ErrNoSignChange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Normalize(tt.cashflows)
			assert.Nil(t, s)
			require.ErrorIs(t, err, tt.want)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, len(tt.cashflows), verr.Count)
		})
	}
}

func TestSort(t *testing.T) {
	cfs := []Cashflow{
		CF("2025-06-01", 300),
		CF("2025-01-01", -200),
		CF("2025-06-01", -100),
	}
	got := Sort(cfs)
	want := []Cashflow{
		CF("2025-01-01", -200),
		CF("2025-06-01", -100),
		CF("2025-06-01", 300),
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Date, got[i].Date)
		assert.True(t, want[i].Amount.Equal(got[i].Amount), "got %v want %v", got[i].Amount, want[i].Amount)
	}
	assert.Equal(t, date.MustParse("2025-06-01"), cfs[0].Date, "Sort must not modify its input")
}
