package ndvi_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"agrokg/ndvi"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freezeTime(t *testing.T, at time.Time) {
	t.Helper()
	ndvi.SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { ndvi.SetClock(nil) })
}

func TestSyntheticSeriesShape(t *testing.T) {
	freezeTime(t, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))
	rng := rand.New(rand.NewSource(3))

	s := ndvi.Synthetic(30, 0.5, rng)

	require.Len(t, s.Dates, 30)
	require.Len(t, s.Values, 30)
	assert.Equal(t, ndvi.SourceSynthetic, s.Source)
	assert.Equal(t, "2026-02-14", s.Dates[0])
	assert.Equal(t, "2026-03-15", s.Dates[29])

	for i := 1; i < len(s.Dates); i++ {
		assert.Less(t, s.Dates[i-1], s.Dates[i], "dates must be strictly increasing")
	}
	for _, v := range s.Values {
		assert.GreaterOrEqual(t, v, 0.1)
		assert.LessOrEqual(t, v, 0.85)
	}
}

func TestSyntheticNeverFails(t *testing.T) {
	freezeTime(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	for seed := int64(0); seed < 25; seed++ {
		s := ndvi.Synthetic(7, 0.5, rand.New(rand.NewSource(seed)))
		require.Len(t, s.Values, 7, "seed %d", seed)
	}
}

func TestSeriesFromClimateFormula(t *testing.T) {
	days := []ndvi.ClimateDay{
		{Date: "2026-03-01", Precip: 8, TempC: 30, Solar: 25},    // all indices saturate at 1
		{Date: "2026-03-02", Precip: 0, TempC: 5, Solar: 0},      // all indices 0
		{Date: "2026-03-03", Precip: 4, TempC: 17.5, Solar: 12.5}, // all indices 0.5
		{Date: "2026-03-04", Precip: 16, TempC: 45, Solar: 50},   // clamped to 1
		{Date: "2026-03-05", Precip: 2, TempC: 10, Solar: 5},
		{Date: "2026-03-06", Precip: 8, TempC: 30, Solar: 25},
		{Date: "2026-03-07", Precip: 8, TempC: 30, Solar: 25},
	}

	s, ok := ndvi.SeriesFromClimate(days, "NASA POWER")

	require.True(t, ok)
	require.Len(t, s.Values, 7)
	assert.Equal(t, "NASA POWER", s.Source)
	assert.InDelta(t, 0.75, s.Values[0], 1e-9)
	assert.InDelta(t, 0.25, s.Values[1], 1e-9)
	assert.InDelta(t, 0.50, s.Values[2], 1e-9)
	assert.InDelta(t, 0.75, s.Values[3], 1e-9)
	// p=2 -> 0.25 water; t=10 -> 0.2 temp; s=5 -> 0.2 solar
	// 0.25 + 0.5*(0.4*0.25 + 0.3*0.2 + 0.3*0.2) = 0.36
	assert.InDelta(t, 0.36, s.Values[4], 1e-9)
}

func TestSeriesFromClimateDropsInvalidDays(t *testing.T) {
	days := make([]ndvi.ClimateDay, 0, 9)
	for i := 0; i < 7; i++ {
		days = append(days, ndvi.ClimateDay{Date: fmt.Sprintf("2026-03-%02d", i+1), Precip: 4, TempC: 17.5, Solar: 12.5})
	}
	days = append(days,
		ndvi.ClimateDay{Date: "2026-03-08", Precip: -999, TempC: 20, Solar: 15}, // fill value
		ndvi.ClimateDay{Date: "2026-03-09", Precip: 4, TempC: -80, Solar: 15},   // impossible temperature
	)

	s, ok := ndvi.SeriesFromClimate(days, "NASA POWER")

	require.True(t, ok)
	assert.Len(t, s.Values, 7)
	assert.NotContains(t, s.Dates, "2026-03-08")
	assert.NotContains(t, s.Dates, "2026-03-09")
}

func TestSeriesFromClimateUnavailableWhenTooFewValidDays(t *testing.T) {
	days := []ndvi.ClimateDay{
		{Date: "2026-03-01", Precip: 4, TempC: 20, Solar: 15},
		{Date: "2026-03-02", Precip: -1, TempC: 20, Solar: 15},
		{Date: "2026-03-03", Precip: 4, TempC: 20, Solar: -3},
		{Date: "2026-03-04", Precip: 4, TempC: 20, Solar: 15},
	}

	s, ok := ndvi.SeriesFromClimate(days, "NASA POWER")

	assert.False(t, ok)
	assert.Nil(t, s)
}

func TestSeriesMeanFallback(t *testing.T) {
	var empty ndvi.Series
	assert.Equal(t, 0.5, empty.Mean(0.5))

	s := ndvi.Series{Values: []float64{0.2, 0.4, 0.6}}
	assert.InDelta(t, 0.4, s.Mean(0), 1e-9)
}

func TestSeriesTail(t *testing.T) {
	s := ndvi.Series{
		Dates:  []string{"2026-03-01", "2026-03-02", "2026-03-03"},
		Values: []float64{0.1, 0.2, 0.3},
	}

	s.Tail(2)
	assert.Equal(t, []string{"2026-03-02", "2026-03-03"}, s.Dates)
	assert.Equal(t, []float64{0.2, 0.3}, s.Values)

	s.Tail(10) // shorter than requested: unchanged
	assert.Len(t, s.Values, 2)
}
