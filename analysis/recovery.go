package analysis

import (
	"math"

	"readiness/config"
	"readiness/metrics"
)

// RecoveryInput carries everything the recovery scorer consumes. TSB is
// the current training-stress balance from the fitness trend; nil means
// no training history exists and the form component is dropped.
// Detectors defaults to DefaultDetectors when nil.
type RecoveryInput struct {
	Today     metrics.DailyMetric
	Baselines metrics.BaselineSet
	TSB       *float64
	Detectors []ConfounderDetector
}

// Recovery computes the composite recovery score for one day.
//
// Components whose raw metric is missing are dropped and their weight is
// redistributed proportionally across the rest. Components whose raw
// metric exists but whose baseline is unavailable score a neutral 50
// rather than being dropped, so a new user still gets a stable score.
func Recovery(in RecoveryInput, cfg config.Config) metrics.RecoveryResult {
	w := cfg.Recovery.Weights

	var form *float64
	if in.TSB != nil {
		form = floatPtr(FormScore(*in.TSB, in.Today.TSS, cfg.Recovery.Form))
	}

	subScores := rebalance([]weightedComponent{
		{metrics.ComponentHRV, HRVScore(in.Today.HRV, in.Baselines.HRV, cfg.Recovery.HRVBands), w.HRV},
		{metrics.ComponentRHR, RHRScore(in.Today.RestingHR, in.Baselines.RestingHR, cfg.Recovery.RHRBands), w.RHR},
		{metrics.ComponentSleep, sleepComponent(in.Today, in.Baselines), w.Sleep},
		{metrics.ComponentRespiratory, RespiratoryScore(in.Today.RespiratoryRate, in.Baselines.RespiratoryRate, cfg.Recovery.Respiratory), w.Respiratory},
		{metrics.ComponentForm, form, w.Form},
	})

	score := combine(subScores)

	detectors := in.Detectors
	if detectors == nil {
		detectors = DefaultDetectors(cfg)
	}

	obs := ConfounderObservation{Today: in.Today, Baselines: in.Baselines}
	var adjustments []metrics.ConfounderAdjustment
	for _, d := range detectors {
		if adj, ok := d.Detect(obs); ok {
			score -= adj.Penalty
			adjustments = append(adjustments, adj)
		}
	}

	return metrics.RecoveryResult{
		Score:       clamp(score, 0, 100),
		SubScores:   subScores,
		Confounders: adjustments,
	}
}

// HRVScore maps today's HRV against baseline onto 0-100. At or above
// baseline scores 100; drops are penalized along graduated bands, with
// the slope steepening as the drop deepens. Missing the raw value means
// the component is unavailable (nil); missing only the baseline scores
// a neutral 50.
func HRVScore(hrv *float64, base *metrics.Baseline, bands config.DeviationBands) *float64 {
	if hrv == nil {
		return nil
	}
	if base == nil || base.Mean == 0 {
		return floatPtr(50)
	}
	dropPct := (base.Mean - *hrv) / base.Mean * 100
	return floatPtr(bandScore(dropPct, bands))
}

// RHRScore is the inverse-direction counterpart: elevation above
// baseline is adverse, with gentler bands than HRV.
func RHRScore(rhr *float64, base *metrics.Baseline, bands config.DeviationBands) *float64 {
	if rhr == nil {
		return nil
	}
	if base == nil || base.Mean == 0 {
		return floatPtr(50)
	}
	risePct := (*rhr - base.Mean) / base.Mean * 100
	return floatPtr(bandScore(risePct, bands))
}

// bandScore converts an adverse deviation percentage into a 0-100 score
// using graduated linear segments between the configured band edges.
func bandScore(deviationPct float64, b config.DeviationBands) float64 {
	switch {
	case deviationPct <= 0:
		return 100
	case deviationPct < b.MildPct:
		return interpolate(deviationPct, 0, b.MildPct, 100, b.MildFloor)
	case deviationPct < b.ModeratePct:
		return interpolate(deviationPct, b.MildPct, b.ModeratePct, b.MildFloor, b.ModerateFloor)
	case deviationPct < b.SeverePct:
		return interpolate(deviationPct, b.ModeratePct, b.SeverePct, b.ModerateFloor, b.SevereFloor)
	default:
		return clamp(interpolate(deviationPct, b.SeverePct, 100, b.SevereFloor, 0), 0, 100)
	}
}

// sleepComponent prefers a precomputed comprehensive sleep score and
// otherwise derives one proportionally from duration against baseline.
func sleepComponent(today metrics.DailyMetric, base metrics.BaselineSet) *float64 {
	if today.SleepScore != nil {
		return floatPtr(clamp(*today.SleepScore, 0, 100))
	}
	if today.SleepHours == nil {
		return nil
	}
	if base.SleepHours == nil || base.SleepHours.Mean == 0 {
		return floatPtr(50)
	}
	return floatPtr(clamp(*today.SleepHours / base.SleepHours.Mean * 100, 0, 100))
}

// RespiratoryScore scores the stability of respiratory rate: variability
// within the stable band around baseline scores 100, then falls off
// linearly, crossing 50 at the outer band edge.
func RespiratoryScore(rate *float64, base *metrics.Baseline, cfg config.RespiratoryConfig) *float64 {
	if rate == nil {
		return nil
	}
	if base == nil || base.Mean == 0 {
		return floatPtr(50)
	}
	variabilityPct := math.Abs(*rate-base.Mean) / base.Mean * 100
	if variabilityPct <= cfg.StableBandPct {
		return floatPtr(100.0)
	}
	score := interpolate(variabilityPct, cfg.StableBandPct, cfg.MaxBandPct, 100, 50)
	return floatPtr(clamp(score, 0, 100))
}

// FormScore derives the readiness contribution of training form. ATL
// below CTL (positive TSB) scores high, ATL above CTL scores low, and a
// same-day stress penalty is subtracted on top so a hard session today
// pulls readiness down even before it shows up in ATL.
func FormScore(tsb float64, todayTSS *float64, cfg config.FormConfig) float64 {
	score := clamp(cfg.Neutral+tsb*cfg.TSBSlope, 0, 100)
	if todayTSS != nil {
		score -= TSSPenalty(*todayTSS, cfg.PenaltyTiers)
	}
	return clamp(score, 0, 100)
}

// TSSPenalty interpolates the same-day stress penalty between the
// configured tiers, capped at the last tier so an extreme day cannot
// produce a runaway penalty.
func TSSPenalty(tss float64, tiers []config.PenaltyTier) float64 {
	if len(tiers) == 0 || tss <= tiers[0].TSS {
		return 0
	}
	last := tiers[len(tiers)-1]
	if tss >= last.TSS {
		return last.Penalty
	}
	for i := 1; i < len(tiers); i++ {
		if tss < tiers[i].TSS {
			return interpolate(tss, tiers[i-1].TSS, tiers[i].TSS, tiers[i-1].Penalty, tiers[i].Penalty)
		}
	}
	return last.Penalty
}

// interpolate maps v from [x0,x1] linearly onto [y0,y1].
func interpolate(v, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (v-x0)/(x1-x0)*(y1-y0)
}
