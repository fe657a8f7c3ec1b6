package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable threshold and weight used by the analysis
// engines. The band cut points are empirically tuned rather than derived,
// so all of them are overridable here instead of living as constants in
// the scoring code.
type Config struct {
	Baseline BaselineConfig `yaml:"baseline"`
	Recovery RecoveryConfig `yaml:"recovery"`
	Sleep    SleepConfig    `yaml:"sleep"`
	Strain   StrainConfig   `yaml:"strain"`
	Load     LoadConfig     `yaml:"training_load"`
	Risk     RiskConfig     `yaml:"risk"`
	Phase    PhaseConfig    `yaml:"phase"`
}

// BaselineConfig controls the rolling-baseline window.
type BaselineConfig struct {
	WindowDays int `yaml:"window_days"`
	MinSamples int `yaml:"min_samples"`
}

// RecoveryWeights are the default component weights for the recovery
// score. They must sum to 1.
type RecoveryWeights struct {
	HRV         float64 `yaml:"hrv"`
	RHR         float64 `yaml:"rhr"`
	Sleep       float64 `yaml:"sleep"`
	Respiratory float64 `yaml:"respiratory"`
	Form        float64 `yaml:"form"`
}

// DeviationBands define a graduated penalty curve over percentage
// deviation from baseline. A deviation inside the mild band scores
// between 100 and MildFloor, and so on down to SevereFloor; deviations
// past the severe cut point fall below SevereFloor toward zero.
type DeviationBands struct {
	MildPct       float64 `yaml:"mild_pct"`
	ModeratePct   float64 `yaml:"moderate_pct"`
	SeverePct     float64 `yaml:"severe_pct"`
	MildFloor     float64 `yaml:"mild_floor"`
	ModerateFloor float64 `yaml:"moderate_floor"`
	SevereFloor   float64 `yaml:"severe_floor"`
}

// RespiratoryConfig controls the stability scoring of respiratory rate.
type RespiratoryConfig struct {
	StableBandPct float64 `yaml:"stable_band_pct"` // within this ± band of baseline scores 100
	MaxBandPct    float64 `yaml:"max_band_pct"`    // variability at this point scores 50
}

// PenaltyTier is one breakpoint of the same-day TSS penalty curve.
// Penalties are linearly interpolated between tiers and capped at the
// last tier.
type PenaltyTier struct {
	TSS     float64 `yaml:"tss"`
	Penalty float64 `yaml:"penalty"`
}

// FormConfig controls the TSB-derived form component.
type FormConfig struct {
	Neutral      float64       `yaml:"neutral"`   // score at TSB = 0
	TSBSlope     float64       `yaml:"tsb_slope"` // points per TSB unit
	PenaltyTiers []PenaltyTier `yaml:"penalty_tiers"`
}

// ConfounderConfig holds the thresholds for the alcohol-signature
// detector.
type ConfounderConfig struct {
	MaxPenalty          float64 `yaml:"max_penalty"`
	HRVDropPct          float64 `yaml:"hrv_drop_pct"`          // minimum HRV drop to consider
	RHRRisePct          float64 `yaml:"rhr_rise_pct"`          // minimum RHR elevation to consider
	DegradedSleepScore  float64 `yaml:"degraded_sleep_score"`  // sleep score below this counts as degraded
	ShortSleepRatio     float64 `yaml:"short_sleep_ratio"`     // duration below baseline*ratio counts as degraded
	ExcellentSleepScore float64 `yaml:"excellent_sleep_score"` // at or above this mitigates the penalty
	GoodSleepMitigation float64 `yaml:"good_sleep_mitigation"` // fraction of penalty forgiven
}

// RecoveryConfig groups everything the recovery scorer consumes.
type RecoveryConfig struct {
	Weights     RecoveryWeights   `yaml:"weights"`
	HRVBands    DeviationBands    `yaml:"hrv_bands"`
	RHRBands    DeviationBands    `yaml:"rhr_bands"`
	Respiratory RespiratoryConfig `yaml:"respiratory"`
	Form        FormConfig        `yaml:"form"`
	Confounder  ConfounderConfig  `yaml:"confounder"`
}

// SleepWeights are the sleep sub-component weights. They must sum to 1.
type SleepWeights struct {
	Duration    float64 `yaml:"duration"`
	Efficiency  float64 `yaml:"efficiency"`
	Restfulness float64 `yaml:"restfulness"`
}

// SleepConfig groups the sleep scorer tunables.
type SleepConfig struct {
	Weights         SleepWeights `yaml:"weights"`
	TargetHours     float64      `yaml:"target_hours"`     // fallback need when no baseline exists
	EfficiencyFloor float64      `yaml:"efficiency_floor"` // efficiency % scoring 0
	EfficiencyCeil  float64      `yaml:"efficiency_ceil"`  // efficiency % scoring 100
	WakePenalty     float64      `yaml:"wake_penalty"`     // points per wake event
	RestlessSlope   float64      `yaml:"restless_slope"`   // points lost per % of restless sleep
}

// StrainConfig controls the impulse model and the bounded strain scale.
type StrainConfig struct {
	ScaleMax       float64 `yaml:"scale_max"`       // top of the strain scale
	ImpulseScale   float64 `yaml:"impulse_scale"`   // impulse at which strain reaches ~63% of max
	HRCoefficient  float64 `yaml:"hr_coefficient"`  // Banister exponent coefficient
	ThresholdTRIMP float64 `yaml:"threshold_trimp"` // TRIMP of 1h at lactate threshold
}

// LoadConfig holds the CTL/ATL time constants in days.
type LoadConfig struct {
	FitnessDays float64 `yaml:"fitness_days"`
	FatigueDays float64 `yaml:"fatigue_days"`
}

// RiskWeights are the fixed factor weights for the overtraining risk
// score. Unlike recovery weights these are never rebalanced.
type RiskWeights struct {
	Recovery     float64 `yaml:"recovery"`
	HRVDeviation float64 `yaml:"hrv_deviation"`
	RHRElevation float64 `yaml:"rhr_elevation"`
	TSB          float64 `yaml:"tsb"`
	SleepDebt    float64 `yaml:"sleep_debt"`
}

// SeverityBands map an adverse magnitude onto severity steps. A value
// at or past Severe scores 1.0, past Moderate 0.7, past Mild 0.4,
// otherwise 0.
type SeverityBands struct {
	Mild     float64 `yaml:"mild"`
	Moderate float64 `yaml:"moderate"`
	Severe   float64 `yaml:"severe"`
}

// RiskConfig groups the risk assessor tunables.
type RiskConfig struct {
	Weights        RiskWeights   `yaml:"weights"`
	RecoveryBands  SeverityBands `yaml:"recovery_bands"`   // measured as 100 minus the recovery score
	HRVDropBands   SeverityBands `yaml:"hrv_drop_bands"`   // % drop below baseline
	RHRRiseBands   SeverityBands `yaml:"rhr_rise_bands"`   // % elevation above baseline
	TSBBands       SeverityBands `yaml:"tsb_bands"`        // magnitude of negative TSB
	SleepDebtBands SeverityBands `yaml:"sleep_debt_bands"` // hours of 7-day sleep debt
	ModerateScore  float64       `yaml:"moderate_score"`
	HighScore      float64       `yaml:"high_score"`
	CriticalScore  float64       `yaml:"critical_score"`
}

// PhaseConfig holds the decision-tree thresholds for phase detection.
type PhaseConfig struct {
	BaseLowIntensityPct   float64 `yaml:"base_low_intensity_pct"`
	BaseWeeklyTSS         float64 `yaml:"base_weekly_tss"`
	RecoveryWeeklyTSS     float64 `yaml:"recovery_weekly_tss"`
	PeakHighIntensityPct  float64 `yaml:"peak_high_intensity_pct"`
	BuildHighIntensityMin float64 `yaml:"build_high_intensity_min"`
	BuildWeeklyTSS        float64 `yaml:"build_weekly_tss"`
	BaseConfidenceCap     float64 `yaml:"base_confidence_cap"`
	PeakConfidenceCap     float64 `yaml:"peak_confidence_cap"`
	RecoveryConfidence    float64 `yaml:"recovery_confidence"`
	BuildConfidence       float64 `yaml:"build_confidence"`
	TransitionConfidence  float64 `yaml:"transition_confidence"`
}

// weightSumTolerance is how far component weights may stray from 1.0.
const weightSumTolerance = 1e-9

// Default returns the stock configuration. The band cut points mirror
// the values the scoring model was tuned with.
func Default() Config {
	return Config{
		Baseline: BaselineConfig{
			WindowDays: 7,
			MinSamples: 3,
		},
		Recovery: RecoveryConfig{
			Weights: RecoveryWeights{
				HRV:         0.30,
				RHR:         0.20,
				Sleep:       0.30,
				Respiratory: 0.10,
				Form:        0.10,
			},
			HRVBands: DeviationBands{
				MildPct:       10,
				ModeratePct:   20,
				SeverePct:     35,
				MildFloor:     85,
				ModerateFloor: 60,
				SevereFloor:   30,
			},
			// Same cut points as HRV but higher floors: the same
			// percentage deviation costs less on RHR.
			RHRBands: DeviationBands{
				MildPct:       10,
				ModeratePct:   20,
				SeverePct:     35,
				MildFloor:     90,
				ModerateFloor: 75,
				SevereFloor:   55,
			},
			Respiratory: RespiratoryConfig{
				StableBandPct: 5,
				MaxBandPct:    20,
			},
			Form: FormConfig{
				Neutral:  50,
				TSBSlope: 2,
				PenaltyTiers: []PenaltyTier{
					{TSS: 50, Penalty: 0},
					{TSS: 75, Penalty: 5},
					{TSS: 150, Penalty: 17.5},
					{TSS: 250, Penalty: 40},
				},
			},
			Confounder: ConfounderConfig{
				MaxPenalty:          15,
				HRVDropPct:          15,
				RHRRisePct:          5,
				DegradedSleepScore:  70,
				ShortSleepRatio:     0.9,
				ExcellentSleepScore: 85,
				GoodSleepMitigation: 0.30,
			},
		},
		Sleep: SleepConfig{
			Weights: SleepWeights{
				Duration:    0.45,
				Efficiency:  0.30,
				Restfulness: 0.25,
			},
			TargetHours:     8,
			EfficiencyFloor: 60,
			EfficiencyCeil:  95,
			WakePenalty:     10,
			RestlessSlope:   2,
		},
		Strain: StrainConfig{
			ScaleMax:       21,
			ImpulseScale:   85,
			HRCoefficient:  1.92,
			ThresholdTRIMP: 100,
		},
		Load: LoadConfig{
			FitnessDays: 42,
			FatigueDays: 7,
		},
		Risk: RiskConfig{
			Weights: RiskWeights{
				Recovery:     0.25,
				HRVDeviation: 0.25,
				RHRElevation: 0.20,
				TSB:          0.20,
				SleepDebt:    0.10,
			},
			RecoveryBands:  SeverityBands{Mild: 30, Moderate: 50, Severe: 70},
			HRVDropBands:   SeverityBands{Mild: 10, Moderate: 20, Severe: 30},
			RHRRiseBands:   SeverityBands{Mild: 4, Moderate: 7, Severe: 10},
			TSBBands:       SeverityBands{Mild: 10, Moderate: 20, Severe: 30},
			SleepDebtBands: SeverityBands{Mild: 3, Moderate: 6, Severe: 10},
			ModerateScore:  25,
			HighScore:      50,
			CriticalScore:  75,
		},
		Phase: PhaseConfig{
			BaseLowIntensityPct:   70,
			BaseWeeklyTSS:         300,
			RecoveryWeeklyTSS:     200,
			PeakHighIntensityPct:  25,
			BuildHighIntensityMin: 15,
			BuildWeeklyTSS:        300,
			BaseConfidenceCap:     0.95,
			PeakConfidenceCap:     0.90,
			RecoveryConfidence:    0.80,
			BuildConfidence:       0.75,
			TransitionConfidence:  0.50,
		},
	}
}

// LoadFile reads a YAML config from path, layered over the defaults so
// partial files only override what they mention.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks structural constraints: weight sums, window sizes,
// and band ordering.
func (c Config) Validate() error {
	if c.Baseline.WindowDays < 1 {
		return fmt.Errorf("baseline window must be at least 1 day, got %d", c.Baseline.WindowDays)
	}
	if c.Baseline.MinSamples < 1 || c.Baseline.MinSamples > c.Baseline.WindowDays {
		return fmt.Errorf("baseline min samples %d out of range for %d-day window",
			c.Baseline.MinSamples, c.Baseline.WindowDays)
	}

	rw := c.Recovery.Weights
	if sum := rw.HRV + rw.RHR + rw.Sleep + rw.Respiratory + rw.Form; math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("recovery weights sum to %.6f, want 1.0", sum)
	}

	sw := c.Sleep.Weights
	if sum := sw.Duration + sw.Efficiency + sw.Restfulness; math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("sleep weights sum to %.6f, want 1.0", sum)
	}

	kw := c.Risk.Weights
	if sum := kw.Recovery + kw.HRVDeviation + kw.RHRElevation + kw.TSB + kw.SleepDebt; math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("risk weights sum to %.6f, want 1.0", sum)
	}

	for _, bands := range []struct {
		name string
		b    DeviationBands
	}{
		{"hrv", c.Recovery.HRVBands},
		{"rhr", c.Recovery.RHRBands},
	} {
		b := bands.b
		if !(b.MildPct < b.ModeratePct && b.ModeratePct < b.SeverePct) {
			return fmt.Errorf("%s band cut points must be increasing", bands.name)
		}
		if !(b.SevereFloor < b.ModerateFloor && b.ModerateFloor < b.MildFloor) {
			return fmt.Errorf("%s band floors must be decreasing", bands.name)
		}
	}

	tiers := c.Recovery.Form.PenaltyTiers
	for i := 1; i < len(tiers); i++ {
		if tiers[i].TSS <= tiers[i-1].TSS || tiers[i].Penalty < tiers[i-1].Penalty {
			return fmt.Errorf("form penalty tiers must increase in TSS and penalty")
		}
	}

	if c.Load.FitnessDays <= 0 || c.Load.FatigueDays <= 0 {
		return fmt.Errorf("training load time constants must be positive")
	}
	if c.Strain.ScaleMax <= 0 || c.Strain.ImpulseScale <= 0 {
		return fmt.Errorf("strain scale parameters must be positive")
	}
	if !(c.Risk.ModerateScore < c.Risk.HighScore && c.Risk.HighScore < c.Risk.CriticalScore) {
		return fmt.Errorf("risk level thresholds must be increasing")
	}

	return nil
}
