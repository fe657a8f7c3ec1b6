package metrics

import "time"

// Component identifies one sub-score inside a composite score.
type Component string

const (
	// Recovery components
	ComponentHRV         Component = "hrv"
	ComponentRHR         Component = "rhr"
	ComponentSleep       Component = "sleep"
	ComponentRespiratory Component = "respiratory"
	ComponentForm        Component = "form"

	// Sleep components
	ComponentDuration    Component = "duration"
	ComponentEfficiency  Component = "efficiency"
	ComponentRestfulness Component = "restfulness"
)

// SubScore is a single 0-100 component score and the weight it carried
// in the composite after rebalancing.
type SubScore struct {
	Component Component `json:"component"`
	Score     float64   `json:"score"`
	Weight    float64   `json:"weight"`
}

// SubScoreSet is the ordered set of components that contributed to a
// composite score. Weights always sum to 1.
type SubScoreSet []SubScore

// TotalWeight returns the sum of the component weights.
func (s SubScoreSet) TotalWeight() float64 {
	var total float64
	for _, ss := range s {
		total += ss.Weight
	}
	return total
}

// ConfounderAdjustment records one confounder penalty applied to a
// recovery score.
type ConfounderAdjustment struct {
	Name    string  `json:"name"`
	Penalty float64 `json:"penalty"` // points subtracted, >= 0
}

// RecoveryResult is the composite recovery score for one day.
type RecoveryResult struct {
	Score       float64                `json:"score"` // 0-100
	SubScores   SubScoreSet            `json:"sub_scores"`
	Confounders []ConfounderAdjustment `json:"confounders,omitempty"`
}

// ConfounderApplied reports whether any confounder penalty was applied.
func (r RecoveryResult) ConfounderApplied() bool {
	return len(r.Confounders) > 0
}

// SleepResult is the composite sleep score for one night.
type SleepResult struct {
	Score     float64     `json:"score"` // 0-100
	SubScores SubScoreSet `json:"sub_scores"`
}

// StrainResult is the day strain derived from activity impulses.
type StrainResult struct {
	Impulse float64 `json:"impulse"` // cumulative TRIMP-style load
	Score   float64 `json:"score"`   // bounded 0-21 scale
}

// TrainingLoadPoint is one day of the fitness/fatigue/form curves.
type TrainingLoadPoint struct {
	Date time.Time `json:"date"`
	CTL  float64   `json:"ctl"` // fitness
	ATL  float64   `json:"atl"` // fatigue
	TSB  float64   `json:"tsb"` // form = CTL - ATL
}

// RiskLevel is the categorical overtraining risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskFactor is one contributing factor in a risk assessment.
type RiskFactor struct {
	Name        string  `json:"name"`
	Severity    float64 `json:"severity"` // 0-1
	Description string  `json:"description"`
}

// RiskResult is the weighted overtraining risk assessment.
type RiskResult struct {
	Score          float64      `json:"score"` // 0-100
	Level          RiskLevel    `json:"level"`
	Factors        []RiskFactor `json:"factors"`
	Recommendation string       `json:"recommendation"`
}

// Phase is the detected training phase.
type Phase string

const (
	PhaseBase       Phase = "base"
	PhaseBuild      Phase = "build"
	PhasePeak       Phase = "peak"
	PhaseRecovery   Phase = "recovery"
	PhaseTransition Phase = "transition"
)

// PhaseResult is a training-phase classification and the inputs that
// produced it.
type PhaseResult struct {
	Phase            Phase   `json:"phase"`
	Confidence       float64 `json:"confidence"` // 0-1
	WeeklyTSS        float64 `json:"weekly_tss"`
	LowIntensityPct  float64 `json:"low_intensity_pct"`
	HighIntensityPct float64 `json:"high_intensity_pct"`
}

// Significance buckets the strength of a correlation.
type Significance string

const (
	SignificanceStrong   Significance = "strong"
	SignificanceModerate Significance = "moderate"
	SignificanceWeak     Significance = "weak"
	SignificanceNone     Significance = "none"
)

// Trend is the direction of a correlation or score series.
type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
	TrendNone     Trend = "none"
)

// CorrelationResult is a Pearson correlation between two series.
type CorrelationResult struct {
	R            float64      `json:"r"`
	R2           float64      `json:"r2"`
	N            int          `json:"n"`
	Significance Significance `json:"significance"`
	Trend        Trend        `json:"trend"`
}
