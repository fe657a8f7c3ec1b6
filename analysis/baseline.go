package analysis

import (
	"time"

	"readiness/config"
	"readiness/metrics"
)

// Baselines computes the rolling per-field baselines from daily history.
// The window is the cfg.Baseline.WindowDays calendar days ending the day
// before asOf, so today's raw values never contaminate the reference they
// are compared against. A field's baseline is only present when at least
// cfg.Baseline.MinSamples days in the window reported it.
func Baselines(history []metrics.DailyMetric, asOf time.Time, cfg config.Config) metrics.BaselineSet {
	windowEnd := asOf.Truncate(24 * time.Hour)
	windowStart := windowEnd.AddDate(0, 0, -cfg.Baseline.WindowDays)

	var set metrics.BaselineSet
	set.HRV = fieldBaseline(history, windowStart, windowEnd, cfg.Baseline.MinSamples,
		func(m metrics.DailyMetric) *float64 { return m.HRV })
	set.RestingHR = fieldBaseline(history, windowStart, windowEnd, cfg.Baseline.MinSamples,
		func(m metrics.DailyMetric) *float64 { return m.RestingHR })
	set.SleepHours = fieldBaseline(history, windowStart, windowEnd, cfg.Baseline.MinSamples,
		func(m metrics.DailyMetric) *float64 { return m.SleepHours })
	set.SleepScore = fieldBaseline(history, windowStart, windowEnd, cfg.Baseline.MinSamples,
		func(m metrics.DailyMetric) *float64 { return m.SleepScore })
	set.RespiratoryRate = fieldBaseline(history, windowStart, windowEnd, cfg.Baseline.MinSamples,
		func(m metrics.DailyMetric) *float64 { return m.RespiratoryRate })
	return set
}

// fieldBaseline averages one optional field over [windowStart, windowEnd).
func fieldBaseline(history []metrics.DailyMetric, windowStart, windowEnd time.Time, minSamples int, field func(metrics.DailyMetric) *float64) *metrics.Baseline {
	var total float64
	var count int

	for _, m := range history {
		day := m.Date.Truncate(24 * time.Hour)
		if day.Before(windowStart) || !day.Before(windowEnd) {
			continue
		}
		if v := field(m); v != nil {
			total += *v
			count++
		}
	}

	if count < minSamples {
		return nil
	}
	return &metrics.Baseline{Mean: total / float64(count), Samples: count}
}
