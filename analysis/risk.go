package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"readiness/config"
	"readiness/metrics"
)

// RiskInput carries the factor inputs for an overtraining assessment.
// Every field is optional; a missing input drops its factor from the
// weighted sum entirely. Weights are deliberately NOT rebalanced on
// missing factors: with less evidence the assessment degrades toward a
// lower score rather than over-correcting.
type RiskInput struct {
	RecoveryScore  *float64 // 0-100
	HRVDropPct     *float64 // % below baseline; negative means above
	RHRRisePct     *float64 // % above baseline; negative means below
	TSB            *float64
	SleepDebtHours *float64 // accumulated over the trailing 7 days
}

// riskFactorNames in weight order.
const (
	factorRecovery  = "recovery"
	factorHRV       = "hrv_deviation"
	factorRHR       = "rhr_elevation"
	factorTSB       = "training_stress_balance"
	factorSleepDebt = "sleep_debt"
)

// OvertrainingRisk combines up to five independently scored factors into
// a weighted 0-100 risk score and categorical level.
func OvertrainingRisk(in RiskInput, cfg config.Config) metrics.RiskResult {
	w := cfg.Risk.Weights

	type scored struct {
		name     string
		weight   float64
		severity float64
		detail   string
	}
	var factors []scored

	if in.RecoveryScore != nil {
		adverse := 100 - clamp(*in.RecoveryScore, 0, 100)
		factors = append(factors, scored{
			name:     factorRecovery,
			weight:   w.Recovery,
			severity: bandSeverity(adverse, cfg.Risk.RecoveryBands),
			detail:   fmt.Sprintf("recovery score at %.0f", *in.RecoveryScore),
		})
	} else {
		log.Debug().Str("factor", factorRecovery).Msg("risk factor omitted: no input")
	}

	if in.HRVDropPct != nil {
		factors = append(factors, scored{
			name:     factorHRV,
			weight:   w.HRVDeviation,
			severity: bandSeverity(*in.HRVDropPct, cfg.Risk.HRVDropBands),
			detail:   fmt.Sprintf("HRV %.0f%% below baseline", math.Max(*in.HRVDropPct, 0)),
		})
	} else {
		log.Debug().Str("factor", factorHRV).Msg("risk factor omitted: no input")
	}

	if in.RHRRisePct != nil {
		factors = append(factors, scored{
			name:     factorRHR,
			weight:   w.RHRElevation,
			severity: bandSeverity(*in.RHRRisePct, cfg.Risk.RHRRiseBands),
			detail:   fmt.Sprintf("resting HR %.0f%% above baseline", math.Max(*in.RHRRisePct, 0)),
		})
	} else {
		log.Debug().Str("factor", factorRHR).Msg("risk factor omitted: no input")
	}

	if in.TSB != nil {
		factors = append(factors, scored{
			name:     factorTSB,
			weight:   w.TSB,
			severity: bandSeverity(-*in.TSB, cfg.Risk.TSBBands),
			detail:   fmt.Sprintf("form (TSB) at %.1f", *in.TSB),
		})
	} else {
		log.Debug().Str("factor", factorTSB).Msg("risk factor omitted: no input")
	}

	if in.SleepDebtHours != nil {
		factors = append(factors, scored{
			name:     factorSleepDebt,
			weight:   w.SleepDebt,
			severity: bandSeverity(*in.SleepDebtHours, cfg.Risk.SleepDebtBands),
			detail:   fmt.Sprintf("%.1fh sleep debt over 7 days", math.Max(*in.SleepDebtHours, 0)),
		})
	} else {
		log.Debug().Str("factor", factorSleepDebt).Msg("risk factor omitted: no input")
	}

	var score float64
	result := metrics.RiskResult{}
	for _, f := range factors {
		score += f.weight * f.severity * 100
		result.Factors = append(result.Factors, metrics.RiskFactor{
			Name:        f.name,
			Severity:    f.severity,
			Description: f.detail,
		})
	}
	// Highest severity first; stable so equal severities keep weight order.
	sort.SliceStable(result.Factors, func(i, j int) bool {
		return result.Factors[i].Severity > result.Factors[j].Severity
	})

	result.Score = clamp(score, 0, 100)
	result.Level = riskLevel(result.Score, cfg.Risk)
	result.Recommendation = recommendation(result)
	return result
}

// bandSeverity steps an adverse magnitude through the configured bands.
func bandSeverity(adverse float64, b config.SeverityBands) float64 {
	switch {
	case adverse >= b.Severe:
		return 1.0
	case adverse >= b.Moderate:
		return 0.7
	case adverse >= b.Mild:
		return 0.4
	default:
		return 0
	}
}

func riskLevel(score float64, cfg config.RiskConfig) metrics.RiskLevel {
	switch {
	case score >= cfg.CriticalScore:
		return metrics.RiskCritical
	case score >= cfg.HighScore:
		return metrics.RiskHigh
	case score >= cfg.ModerateScore:
		return metrics.RiskModerate
	default:
		return metrics.RiskLow
	}
}

// recommendation picks advice from the dominant factor, escalating to a
// fixed message at the critical level.
func recommendation(r metrics.RiskResult) string {
	if r.Level == metrics.RiskCritical {
		return "Critical overtraining risk: take complete rest days and consult a coach or physician before resuming training"
	}
	if len(r.Factors) == 0 || r.Factors[0].Severity == 0 {
		return "Training load and recovery are in balance; continue as planned"
	}

	switch r.Factors[0].Name {
	case factorRecovery:
		return "Recovery is lagging: favor easy sessions until the recovery score rebounds"
	case factorHRV:
		return "HRV is suppressed: reduce intensity and reassess tomorrow"
	case factorRHR:
		return "Resting heart rate is elevated: monitor for illness and keep intensity low"
	case factorTSB:
		return "Fatigue is well ahead of fitness: schedule lighter days to absorb the recent load"
	case factorSleepDebt:
		return "Sleep debt is accumulating: prioritize longer nights before the next hard session"
	default:
		return "Moderate your training load and monitor recovery trends"
	}
}
