package analysis

import (
	"readiness/config"
	"readiness/metrics"
)

// DetectPhase classifies the current training phase from the weekly
// stress total and the intensity distribution. The branches are a fixed
// priority order; the first match wins.
func DetectPhase(weeklyTSS, lowIntensityPct, highIntensityPct float64, cfg config.Config) metrics.PhaseResult {
	p := cfg.Phase
	result := metrics.PhaseResult{
		WeeklyTSS:        weeklyTSS,
		LowIntensityPct:  lowIntensityPct,
		HighIntensityPct: highIntensityPct,
	}

	switch {
	case lowIntensityPct > p.BaseLowIntensityPct && weeklyTSS > p.BaseWeeklyTSS:
		result.Phase = metrics.PhaseBase
		result.Confidence = minFloat(p.BaseConfidenceCap, lowIntensityPct/100+0.05)
	case weeklyTSS < p.RecoveryWeeklyTSS:
		result.Phase = metrics.PhaseRecovery
		result.Confidence = p.RecoveryConfidence
	case highIntensityPct > p.PeakHighIntensityPct:
		result.Phase = metrics.PhasePeak
		result.Confidence = minFloat(p.PeakConfidenceCap, 0.6+highIntensityPct/100)
	case highIntensityPct >= p.BuildHighIntensityMin && weeklyTSS >= p.BuildWeeklyTSS:
		result.Phase = metrics.PhaseBuild
		result.Confidence = p.BuildConfidence
	default:
		result.Phase = metrics.PhaseTransition
		result.Confidence = p.TransitionConfidence
	}

	return result
}

// IntensityDistribution splits an activity stream into low-intensity
// (zones 1-2, below 70% of heart-rate reserve) and high-intensity
// (zones 4+, at or above 85%) time shares. Returns percentages of the
// samples that carried heart rate.
func IntensityDistribution(samples []metrics.ActivitySample, profile AthleteProfile) (lowPct, highPct float64) {
	hrReserve := profile.MaxHR - profile.RestingHR
	if hrReserve <= 0 {
		return 0, 0
	}

	var low, high, valid int
	for _, s := range samples {
		if s.Heartrate == nil || *s.Heartrate <= 0 {
			continue
		}
		valid++
		ratio := (*s.Heartrate - profile.RestingHR) / hrReserve
		switch {
		case ratio < 0.70:
			low++
		case ratio >= 0.85:
			high++
		}
	}

	if valid == 0 {
		return 0, 0
	}
	return float64(low) / float64(valid) * 100, float64(high) / float64(valid) * 100
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
