package analysis

import (
	"time"

	"readiness/config"
	"readiness/metrics"
)

// SleepQuality computes the composite sleep score for one night from
// duration, efficiency, and restfulness, with the same proportional
// weight rebalancing the recovery scorer uses when components are
// missing.
func SleepQuality(night metrics.SleepNight, base metrics.BaselineSet, cfg config.Config) metrics.SleepResult {
	w := cfg.Sleep.Weights

	subScores := rebalance([]weightedComponent{
		{metrics.ComponentDuration, durationScore(night, base, cfg.Sleep), w.Duration},
		{metrics.ComponentEfficiency, efficiencyScore(night, cfg.Sleep), w.Efficiency},
		{metrics.ComponentRestfulness, restfulnessScore(night, cfg.Sleep), w.Restfulness},
	})

	return metrics.SleepResult{
		Score:     combine(subScores),
		SubScores: subScores,
	}
}

// durationScore compares the night against the athlete's rolling
// baseline need, falling back to the configured target when no baseline
// exists yet. Proportional: 6h against an 8h need scores 75.
func durationScore(night metrics.SleepNight, base metrics.BaselineSet, cfg config.SleepConfig) *float64 {
	if night.DurationHours == nil {
		return nil
	}
	need := cfg.TargetHours
	if base.SleepHours != nil && base.SleepHours.Mean > 0 {
		need = base.SleepHours.Mean
	}
	if need == 0 {
		return floatPtr(50)
	}
	return floatPtr(clamp(*night.DurationHours / need * 100, 0, 100))
}

// efficiencyScore maps sleep efficiency (time asleep over time in bed)
// onto 0-100 between the configured floor and ceiling.
func efficiencyScore(night metrics.SleepNight, cfg config.SleepConfig) *float64 {
	if night.DurationHours == nil || night.TimeInBedHours == nil || *night.TimeInBedHours <= 0 {
		return nil
	}
	efficiencyPct := *night.DurationHours / *night.TimeInBedHours * 100
	score := interpolate(efficiencyPct, cfg.EfficiencyFloor, cfg.EfficiencyCeil, 0, 100)
	return floatPtr(clamp(score, 0, 100))
}

// restfulnessScore prefers the restlessness fraction when the device
// reports one, otherwise counts wake events.
func restfulnessScore(night metrics.SleepNight, cfg config.SleepConfig) *float64 {
	if night.RestlessnessPct != nil {
		return floatPtr(clamp(100-*night.RestlessnessPct*cfg.RestlessSlope, 0, 100))
	}
	if night.WakeEvents != nil {
		return floatPtr(clamp(100-float64(*night.WakeEvents)*cfg.WakePenalty, 0, 100))
	}
	return nil
}

// SleepDebt accumulates the hours of missed sleep over the 7 days ending
// at asOf, against the configured target need. The rolling baseline is
// deliberately not used here: a week of short nights would drag the
// need down and hide the very debt being measured. Returns nil when no
// night in the window reported a duration.
func SleepDebt(history []metrics.DailyMetric, asOf time.Time, cfg config.Config) *float64 {
	windowEnd := asOf.Truncate(24 * time.Hour)
	windowStart := windowEnd.AddDate(0, 0, -6)

	need := cfg.Sleep.TargetHours

	var debt float64
	var reported int
	for _, m := range history {
		day := m.Date.Truncate(24 * time.Hour)
		if day.Before(windowStart) || day.After(windowEnd) {
			continue
		}
		if m.SleepHours == nil {
			continue
		}
		reported++
		if deficit := need - *m.SleepHours; deficit > 0 {
			debt += deficit
		}
	}

	if reported == 0 {
		return nil
	}
	return &debt
}
