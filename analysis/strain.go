package analysis

import (
	"math"

	"readiness/config"
	"readiness/metrics"
)

// AthleteProfile holds the physiological anchors the strain model needs.
type AthleteProfile struct {
	RestingHR float64
	MaxHR     float64
	FTP       float64 // watts
}

// DefaultProfile returns sensible anchors if the athlete has not
// configured their own.
func DefaultProfile() AthleteProfile {
	return AthleteProfile{
		RestingHR: 50,
		MaxHR:     185,
		FTP:       250,
	}
}

// ActivityImpulse integrates a single activity's sample stream into a
// TRIMP-style training impulse (Banister model): each interval
// contributes minutes * hrRatio * e^(b * hrRatio), where hrRatio is the
// fraction of heart-rate reserve in use. Samples without heart rate fall
// back to power against FTP when available. Normalized so an hour at
// lactate threshold lands near 100.
func ActivityImpulse(samples []metrics.ActivitySample, profile AthleteProfile, cfg config.Config) float64 {
	if len(samples) < 2 {
		return 0
	}

	hrReserve := profile.MaxHR - profile.RestingHR
	if hrReserve <= 0 {
		return 0
	}

	var impulse float64
	for i := 1; i < len(samples); i++ {
		dt := float64(samples[i].TimeOffset - samples[i-1].TimeOffset)
		if dt <= 0 {
			continue
		}
		minutes := dt / 60

		s := samples[i]
		switch {
		case s.Heartrate != nil && *s.Heartrate > 0:
			hrRatio := (*s.Heartrate - profile.RestingHR) / hrReserve
			hrRatio = clamp(hrRatio, 0, 1)
			impulse += minutes * hrRatio * math.Exp(cfg.Strain.HRCoefficient*hrRatio)
		case s.Power != nil && *s.Power > 0 && profile.FTP > 0:
			// Power-based TSS for the interval: IF^2-weighted time,
			// 100 points per hour at FTP. Comparable magnitude to the
			// HR impulse by construction.
			intensity := *s.Power / profile.FTP
			impulse += (minutes / 60) * intensity * intensity * 100
		}
	}

	return impulse
}

// DayStrain maps a cumulative daily impulse onto the bounded strain
// scale. The exponential saturation gives diminishing returns at the
// top: doubling the impulse never doubles the strain.
func DayStrain(impulse float64, cfg config.Config) metrics.StrainResult {
	if impulse < 0 {
		impulse = 0
	}
	score := cfg.Strain.ScaleMax * (1 - math.Exp(-impulse/cfg.Strain.ImpulseScale))
	return metrics.StrainResult{
		Impulse: impulse,
		Score:   clamp(score, 0, cfg.Strain.ScaleMax),
	}
}

// Strain scores a whole day of activities: impulses accumulate across
// activities, then the total is mapped onto the bounded scale.
func Strain(activities [][]metrics.ActivitySample, profile AthleteProfile, cfg config.Config) metrics.StrainResult {
	var total float64
	for _, samples := range activities {
		total += ActivityImpulse(samples, profile, cfg)
	}
	return DayStrain(total, cfg)
}

// ActivityTSS converts an activity impulse into a training-stress score
// relative to the configured threshold impulse, for feeding the fitness
// trend.
func ActivityTSS(impulse float64, cfg config.Config) float64 {
	if cfg.Strain.ThresholdTRIMP <= 0 {
		return 0
	}
	return impulse / cfg.Strain.ThresholdTRIMP * 100
}
