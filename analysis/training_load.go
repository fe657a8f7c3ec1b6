package analysis

import (
	"math"
	"sort"
	"time"

	"readiness/config"
	"readiness/metrics"
)

// DailyStress is one day's total training stress.
type DailyStress struct {
	Date time.Time
	TSS  float64
}

// FitnessTrend folds a daily training-stress series into the CTL/ATL/TSB
// curves. Each point depends only on the previous point and that day's
// stress; days with no entry count as zero stress. Empty input returns nil.
//
//	CTL[i] = CTL[i-1] + (TSS[i] - CTL[i-1]) * (1 - e^(-1/fitnessDays))
//	ATL[i] = ATL[i-1] + (TSS[i] - ATL[i-1]) * (1 - e^(-1/fatigueDays))
//	TSB[i] = CTL[i] - ATL[i]
func FitnessTrend(stresses []DailyStress, cfg config.Config) []metrics.TrainingLoadPoint {
	if len(stresses) == 0 {
		return nil
	}

	sorted := make([]DailyStress, len(stresses))
	copy(sorted, stresses)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	ctlDecay := 1 - math.Exp(-1/cfg.Load.FitnessDays)
	atlDecay := 1 - math.Exp(-1/cfg.Load.FatigueDays)

	// Sum multiple entries on the same day.
	loadByDay := make(map[string]float64)
	for _, s := range sorted {
		loadByDay[s.Date.Format("2006-01-02")] += s.TSS
	}

	startDate := sorted[0].Date.Truncate(24 * time.Hour)
	endDate := sorted[len(sorted)-1].Date.Truncate(24 * time.Hour)

	var points []metrics.TrainingLoadPoint
	var ctl, atl float64

	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		tss := loadByDay[d.Format("2006-01-02")]

		ctl = ctl + (tss-ctl)*ctlDecay
		atl = atl + (tss-atl)*atlDecay

		points = append(points, metrics.TrainingLoadPoint{
			Date: d,
			CTL:  ctl,
			ATL:  atl,
			TSB:  ctl - atl,
		})
	}

	return points
}

// CurrentLoad returns the most recent point of the fitness trend, or a
// zero point when there is no history.
func CurrentLoad(stresses []DailyStress, cfg config.Config) metrics.TrainingLoadPoint {
	points := FitnessTrend(stresses, cfg)
	if len(points) == 0 {
		return metrics.TrainingLoadPoint{}
	}
	return points[len(points)-1]
}

// WeeklyTSS sums the training stress over the 7 days ending at asOf
// (inclusive).
func WeeklyTSS(stresses []DailyStress, asOf time.Time) float64 {
	windowEnd := asOf.Truncate(24 * time.Hour)
	windowStart := windowEnd.AddDate(0, 0, -6)

	var total float64
	for _, s := range stresses {
		day := s.Date.Truncate(24 * time.Hour)
		if day.Before(windowStart) || day.After(windowEnd) {
			continue
		}
		total += s.TSS
	}
	return total
}

// FormDescription translates a TSB value into the usual coaching bands.
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "Very fresh (possibly detrained)"
	case tsb > 10:
		return "Fresh and ready to race"
	case tsb > 0:
		return "Neutral - good for training"
	case tsb > -10:
		return "Slightly fatigued"
	case tsb > -25:
		return "Tired but building fitness"
	default:
		return "Very fatigued - rest needed"
	}
}
