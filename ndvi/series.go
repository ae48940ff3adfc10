package ndvi

import (
	"math"
	"math/rand"

	"github.com/jonboulle/clockwork"
	"github.com/montanaflynn/stats"
)

const dateLayout = "2006-01-02"

// clock is the package time source so tests can freeze "today" via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// SourceSynthetic tags series produced by the fallback generator.
const SourceSynthetic = "mock"

// Series is a dated sequence of vegetation indices with a provenance tag.
// Dates are ISO (YYYY-MM-DD) and strictly increasing.
type Series struct {
	Dates  []string  `json:"dates"`
	Values []float64 `json:"values"`
	Source string    `json:"-"`
}

// Mean returns the average series value, or fallback when the series is empty.
func (s Series) Mean(fallback float64) float64 {
	if len(s.Values) == 0 {
		return fallback
	}
	m, err := stats.Mean(s.Values)
	if err != nil {
		return fallback
	}
	return m
}

// Tail trims the series in place to its last n points.
func (s *Series) Tail(n int) {
	if n <= 0 || len(s.Values) <= n {
		return
	}
	s.Dates = s.Dates[len(s.Dates)-n:]
	s.Values = s.Values[len(s.Values)-n:]
}

// ClimateDay is one day of point-query climate observations.
type ClimateDay struct {
	Date   string // ISO date
	Precip float64
	TempC  float64
	Solar  float64
}

const (
	precipSaturation = 8.0  // units/day of precipitation at which the water index saturates
	solarSaturation  = 25.0 // units/day of solar energy at which the solar index saturates
	tempRampLow      = 5.0  // degC mapped to 0
	tempRampSpan     = 25.0 // degC span of the suitability ramp (5..30)

	weightWater = 0.4
	weightTemp  = 0.3
	weightSolar = 0.3

	// minValidDays is the smallest usable real series; below it the source
	// counts as unavailable.
	minValidDays = 7
)

// SeriesFromClimate converts daily climate records into a vegetation-index
// series: water availability, temperature suitability and solar sufficiency
// combined 0.4/0.3/0.3 and mapped into the 0.25..0.75 index band. Physically
// invalid days are dropped, not zero-filled. When fewer than minValidDays
// remain, ok is false and the caller must use the synthetic fallback.
func SeriesFromClimate(days []ClimateDay, source string) (s *Series, ok bool) {
	s = &Series{Source: source}
	for _, d := range days {
		if d.Precip < 0 || d.TempC < -50 || d.Solar < 0 {
			continue
		}
		water := math.Min(1, d.Precip/precipSaturation)
		temp := clamp((d.TempC-tempRampLow)/tempRampSpan, 0, 1)
		solar := math.Min(1, d.Solar/solarSaturation)
		idx := 0.25 + 0.5*(weightWater*water+weightTemp*temp+weightSolar*solar)
		s.Dates = append(s.Dates, d.Date)
		s.Values = append(s.Values, roundN(idx, 4))
	}
	if len(s.Values) < minValidDays {
		return nil, false
	}
	return s, true
}

// Synthetic generates a bounded random walk of the given length ending today,
// then depresses the last five points with an increasing penalty to mimic a
// late-window decline. This path never fails.
func Synthetic(days int, base float64, rng *rand.Rand) Series {
	s := Series{
		Dates:  make([]string, 0, days),
		Values: make([]float64, 0, days),
		Source: SourceSynthetic,
	}
	now := clock.Now()
	val := base + uniform(rng, -0.05, 0.05)
	for i := days - 1; i >= 0; i-- {
		s.Dates = append(s.Dates, now.AddDate(0, 0, -i).Format(dateLayout))
		val += uniform(rng, -0.02, 0.02)
		val = clamp(val, 0.15, 0.85)
		s.Values = append(s.Values, roundN(val, 4))
	}
	for i := 0; i < 5 && i < len(s.Values); i++ {
		k := len(s.Values) - 1 - i
		s.Values[k] = roundN(math.Max(0.1, s.Values[k]-0.015*float64(i+1)), 4)
	}
	return s
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
