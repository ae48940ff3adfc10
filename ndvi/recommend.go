package ndvi

import (
	"fmt"
	"strings"
)

// Health labels, worst to best.
const (
	HealthCritical  = "critical"
	HealthPoor      = "poor"
	HealthMedium    = "medium"
	HealthGood      = "good"
	HealthExcellent = "excellent"
)

// healthLadder maps a grid average to a label. Evaluated top-down; the first
// bound strictly above the value wins, so a boundary value falls into the next
// bucket up (avg 0.25 is "poor", not "critical").
var healthLadder = []struct {
	upper float64
	label string
}{
	{0.25, HealthCritical},
	{0.40, HealthPoor},
	{0.60, HealthMedium},
	{0.75, HealthGood},
}

// ClassifyHealth maps an average index in [0, 1] to exactly one health label.
func ClassifyHealth(avg float64) string {
	for _, b := range healthLadder {
		if avg < b.upper {
			return b.label
		}
	}
	return HealthExcellent
}

// Trend labels over the 7-day delta.
const (
	TrendDecliningFast = "declining fast"
	TrendDeclining     = "declining slowly"
	TrendImprovingFast = "improving fast"
	TrendImproving     = "improving"
	TrendStable        = "stable"
)

// Trend bucket boundaries for the 7-day delta.
const (
	trendFastDecline = -0.08
	trendSlowDecline = -0.02
	trendSlowImprove = 0.02
	trendFastImprove = 0.08
)

// ClassifyTrend maps a 7-day index delta to a trend label.
func ClassifyTrend(delta float64) string {
	switch {
	case delta < trendFastDecline:
		return TrendDecliningFast
	case delta < trendSlowDecline:
		return TrendDeclining
	case delta > trendFastImprove:
		return TrendImprovingFast
	case delta > trendSlowImprove:
		return TrendImproving
	default:
		return TrendStable
	}
}

// Action tiers over the stressed share of the field, in percent.
const (
	stressUrgentPct   = 30.0
	stressModeratePct = 15.0
)

// ActionPlan returns the recommended actions for a given stress share. The
// urgent tier adds one crop-specific scouting line for leaf-disease-prone
// crops.
func ActionPlan(stressPct float64, crop string) []string {
	switch {
	case stressPct > stressUrgentPct:
		actions := []string{
			"Inspect the field within 24-48 hours",
			"Check the irrigation system for clogs and failures",
			"Take soil samples for pH and NPK analysis",
		}
		if crop == "wheat" || crop == "corn" {
			actions = append(actions, fmt.Sprintf("For %s: scout for leaf diseases (rust, powdery mildew)", crop))
		}
		return actions
	case stressPct > stressModeratePct:
		return []string{
			"Spot-irrigate the stressed patches",
			"Consider a foliar nitrogen application",
			"Install soil moisture sensors",
		}
	default:
		return []string{
			"Keep irrigating on the regular schedule",
			"Monitor the field every 7 days",
		}
	}
}

// Diagnosis is the deterministic classification of one analysis.
type Diagnosis struct {
	Health        string
	Trend         string
	StressPercent float64
	AvgIndex      float64
	Narrative     string
}

// Recommend classifies the grid and recent series into a Diagnosis with a
// human-readable narrative. The classification thresholds are the contract;
// the narrative text is presentation.
func Recommend(g Grid, values []float64, crop, source string) Diagnosis {
	avg := g.Mean()
	stressPct := g.FractionBelow(StressThreshold) * 100

	var delta float64
	if len(values) >= 7 {
		delta = values[len(values)-1] - values[len(values)-7]
	}

	d := Diagnosis{
		Health:        ClassifyHealth(avg),
		Trend:         ClassifyTrend(delta),
		StressPercent: stressPct,
		AvgIndex:      avg,
	}

	var b strings.Builder
	if source == SourceSynthetic {
		b.WriteString("Data: simulated (climate-model based)\n\n")
	} else {
		fmt.Fprintf(&b, "Data: %s (real climate observations)\n\n", source)
	}
	fmt.Fprintf(&b, "Field analysis: %s\n\n", crop)
	fmt.Fprintf(&b, "Overall condition: %s\n", d.Health)
	fmt.Fprintf(&b, "Average NDVI: %.2f\n", avg)
	fmt.Fprintf(&b, "Stress zone: %.1f%% of the field area\n", stressPct)
	fmt.Fprintf(&b, "Trend (7 days): %s\n\n", d.Trend)

	switch {
	case stressPct > stressUrgentPct:
		b.WriteString("URGENT: significant stress zone detected\n")
	case stressPct > stressModeratePct:
		b.WriteString("Moderate stress: needs attention\n")
	default:
		b.WriteString("Field is healthy: continue routine care\n")
	}
	for _, a := range ActionPlan(stressPct, crop) {
		fmt.Fprintf(&b, "- %s\n", a)
	}

	last := avg
	if len(values) > 0 {
		last = values[len(values)-1]
	}
	outlook := clamp(last+delta*2, 0.1, 0.95)
	direction := "rising"
	if outlook < last {
		direction = "falling"
	}
	fmt.Fprintf(&b, "\n7-day outlook: NDVI ~%.2f (%s)", outlook, direction)

	d.Narrative = b.String()
	return d
}
