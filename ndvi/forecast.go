package ndvi

import "math/rand"

// ForecastDays is the fixed forecast horizon.
const ForecastDays = 7

const (
	forecastMin    = 0.1
	forecastMax    = 0.9
	forecastJitter = 0.01
)

// TrendPerDay returns the recent per-day slope: the difference between the
// last value and the one seven steps back, spread over the week. With fewer
// than seven points the trend degrades to flat rather than failing.
func TrendPerDay(values []float64) float64 {
	if len(values) < 7 {
		return 0
	}
	return (values[len(values)-1] - values[len(values)-7]) / 7
}

// ForecastSeries extrapolates the recent trend over the next ForecastDays,
// starting the day after today, with bounded jitter per step. Every value is
// clamped to [forecastMin, forecastMax].
func ForecastSeries(values []float64, rng *rand.Rand) Series {
	trend := TrendPerDay(values)
	var last float64
	if len(values) > 0 {
		last = values[len(values)-1]
	}

	now := clock.Now()
	out := Series{
		Dates:  make([]string, 0, ForecastDays),
		Values: make([]float64, 0, ForecastDays),
	}
	for i := 1; i <= ForecastDays; i++ {
		out.Dates = append(out.Dates, now.AddDate(0, 0, i).Format(dateLayout))
		fv := last + trend*float64(i) + uniform(rng, -forecastJitter, forecastJitter)
		out.Values = append(out.Values, clamp(roundN(fv, 4), forecastMin, forecastMax))
	}
	return out
}
