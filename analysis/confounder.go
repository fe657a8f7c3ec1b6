package analysis

import (
	"github.com/rs/zerolog/log"

	"readiness/config"
	"readiness/metrics"
)

// ConfounderObservation is the physiological picture a detector sees:
// today's raw metrics plus the rolling baselines.
type ConfounderObservation struct {
	Today     metrics.DailyMetric
	Baselines metrics.BaselineSet
}

// ConfounderDetector inspects an observation for a signature that would
// corrupt the recovery score (alcohol, travel, and so on) and returns
// the penalty to apply. Detectors are additive and order-independent.
type ConfounderDetector interface {
	Name() string
	Detect(obs ConfounderObservation) (metrics.ConfounderAdjustment, bool)
}

// DefaultDetectors returns the stock detector chain.
func DefaultDetectors(cfg config.Config) []ConfounderDetector {
	return []ConfounderDetector{
		AlcoholDetector{Config: cfg.Recovery.Confounder},
	}
}

// AlcoholDetector looks for the compound alcohol signature: a large HRV
// drop together with an elevated RHR and a disturbed night. Illness
// produces the same physiology, so detection is suppressed when the
// illness flag is set; it is also suppressed when no sleep data exists
// at all, since the signal is too unreliable to attribute.
type AlcoholDetector struct {
	Config config.ConfounderConfig
}

// Name implements ConfounderDetector.
func (AlcoholDetector) Name() string { return "alcohol" }

// Detect implements ConfounderDetector.
func (d AlcoholDetector) Detect(obs ConfounderObservation) (metrics.ConfounderAdjustment, bool) {
	today := obs.Today

	if today.IllnessSuspected {
		log.Debug().Str("detector", d.Name()).Msg("skipped: illness suspected, signature not attributable")
		return metrics.ConfounderAdjustment{}, false
	}
	if today.SleepScore == nil && today.SleepHours == nil {
		log.Debug().Str("detector", d.Name()).Msg("skipped: no sleep data")
		return metrics.ConfounderAdjustment{}, false
	}

	if today.HRV == nil || obs.Baselines.HRV == nil || obs.Baselines.HRV.Mean == 0 {
		return metrics.ConfounderAdjustment{}, false
	}
	if today.RestingHR == nil || obs.Baselines.RestingHR == nil || obs.Baselines.RestingHR.Mean == 0 {
		return metrics.ConfounderAdjustment{}, false
	}

	dropPct := (obs.Baselines.HRV.Mean - *today.HRV) / obs.Baselines.HRV.Mean * 100
	risePct := (*today.RestingHR - obs.Baselines.RestingHR.Mean) / obs.Baselines.RestingHR.Mean * 100

	if dropPct < d.Config.HRVDropPct || risePct < d.Config.RHRRisePct {
		return metrics.ConfounderAdjustment{}, false
	}

	// The signature needs a disturbed night on top of the autonomic
	// shift: either a poor quality score or a night cut well short of
	// baseline. A short night can still carry an excellent quality
	// score, which mitigates the penalty below.
	degraded := false
	if today.SleepScore != nil && *today.SleepScore < d.Config.DegradedSleepScore {
		degraded = true
	}
	if today.SleepHours != nil && obs.Baselines.SleepHours != nil &&
		*today.SleepHours < obs.Baselines.SleepHours.Mean*d.Config.ShortSleepRatio {
		degraded = true
	}
	if !degraded {
		return metrics.ConfounderAdjustment{}, false
	}

	// Penalty scales with the depth of the HRV drop, maxing out at
	// twice the detection threshold.
	scale := dropPct / (2 * d.Config.HRVDropPct)
	if scale > 1 {
		scale = 1
	}
	penalty := d.Config.MaxPenalty * scale

	if today.SleepScore != nil && *today.SleepScore >= d.Config.ExcellentSleepScore {
		penalty *= 1 - d.Config.GoodSleepMitigation
	}

	log.Debug().
		Str("detector", d.Name()).
		Float64("hrv_drop_pct", dropPct).
		Float64("rhr_rise_pct", risePct).
		Float64("penalty", penalty).
		Msg("confounder signature detected")

	return metrics.ConfounderAdjustment{Name: d.Name(), Penalty: penalty}, true
}
