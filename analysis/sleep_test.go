package analysis

import (
	"math"
	"testing"

	"readiness/config"
	"readiness/metrics"
)

func intPtr(v int) *int {
	return &v
}

func TestSleepQualityAllComponents(t *testing.T) {
	night := metrics.SleepNight{
		Date:            day(10),
		DurationHours:   floatPtr(8),
		TimeInBedHours:  floatPtr(8.4), // ~95% efficiency
		RestlessnessPct: floatPtr(0),
	}
	base := metrics.BaselineSet{SleepHours: baselineAt(8)}

	result := SleepQuality(night, base, config.Default())
	if len(result.SubScores) != 3 {
		t.Fatalf("got %d sub-scores, want 3", len(result.SubScores))
	}
	if result.Score < 95 {
		t.Errorf("ideal night scored %v, want >= 95", result.Score)
	}
	if math.Abs(result.SubScores.TotalWeight()-1) > 1e-9 {
		t.Errorf("weights sum to %v, want 1", result.SubScores.TotalWeight())
	}
}

func TestSleepQualityRebalancesMissingComponents(t *testing.T) {
	// Duration only: its weight becomes 1.
	night := metrics.SleepNight{DurationHours: floatPtr(6)}
	base := metrics.BaselineSet{SleepHours: baselineAt(8)}

	result := SleepQuality(night, base, config.Default())
	if len(result.SubScores) != 1 {
		t.Fatalf("got %d sub-scores, want 1", len(result.SubScores))
	}
	if result.SubScores[0].Weight != 1 {
		t.Errorf("lone component weight = %v, want 1", result.SubScores[0].Weight)
	}
	if math.Abs(result.Score-75) > 1e-9 {
		t.Errorf("6h of 8h need scored %v, want 75", result.Score)
	}
}

func TestSleepQualityNoData(t *testing.T) {
	result := SleepQuality(metrics.SleepNight{}, metrics.BaselineSet{}, config.Default())
	if result.SubScores != nil || result.Score != 0 {
		t.Errorf("empty night: got %+v", result)
	}
}

func TestDurationScoreFallsBackToTarget(t *testing.T) {
	// No baseline yet: the configured 8h target is the need.
	night := metrics.SleepNight{DurationHours: floatPtr(4)}

	got := durationScore(night, metrics.BaselineSet{}, config.Default().Sleep)
	if got == nil || math.Abs(*got-50) > 1e-9 {
		t.Errorf("4h of 8h target = %v, want 50", got)
	}
}

func TestEfficiencyScore(t *testing.T) {
	cfg := config.Default().Sleep

	tests := []struct {
		name     string
		asleep   float64
		inBed    float64
		min, max float64
	}{
		{"perfect", 8, 8, 100, 100},
		{"typical", 7.5, 8.2, 50, 100},
		{"fragmented", 5, 8, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			night := metrics.SleepNight{
				DurationHours:  floatPtr(tt.asleep),
				TimeInBedHours: floatPtr(tt.inBed),
			}
			got := efficiencyScore(night, cfg)
			if got == nil {
				t.Fatal("score unavailable")
			}
			if *got < tt.min || *got > tt.max {
				t.Errorf("efficiency %v/%v = %v, want in [%v, %v]", tt.asleep, tt.inBed, *got, tt.min, tt.max)
			}
		})
	}

	if got := efficiencyScore(metrics.SleepNight{DurationHours: floatPtr(8)}, cfg); got != nil {
		t.Errorf("no time-in-bed: got %v, want unavailable", *got)
	}
}

func TestRestfulnessScorePrefersRestlessness(t *testing.T) {
	cfg := config.Default().Sleep

	night := metrics.SleepNight{
		RestlessnessPct: floatPtr(10),
		WakeEvents:      intPtr(9), // would score far lower; must be ignored
	}
	if got := restfulnessScore(night, cfg); got == nil || math.Abs(*got-80) > 1e-9 {
		t.Errorf("got %v, want 80 from restlessness fraction", got)
	}

	wakesOnly := metrics.SleepNight{WakeEvents: intPtr(3)}
	if got := restfulnessScore(wakesOnly, cfg); got == nil || math.Abs(*got-70) > 1e-9 {
		t.Errorf("got %v, want 70 from 3 wake events", got)
	}
}

func TestSleepDebt(t *testing.T) {
	// Baseline week of 8h nights, then a rough recent week.
	var history []metrics.DailyMetric
	for i := 0; i < 7; i++ {
		history = append(history, metrics.DailyMetric{Date: day(i), SleepHours: floatPtr(8)})
	}
	history = append(history,
		metrics.DailyMetric{Date: day(8), SleepHours: floatPtr(6)},  // 2h short
		metrics.DailyMetric{Date: day(10), SleepHours: floatPtr(5)}, // 3h short
		metrics.DailyMetric{Date: day(12), SleepHours: floatPtr(9)}, // surplus does not cancel debt
	)

	debt := SleepDebt(history, day(13), config.Default())
	if debt == nil {
		t.Fatal("debt unavailable, want present")
	}
	// 2h + 3h short of the 8h target; the 9h night does not offset.
	if math.Abs(*debt-5) > 1e-9 {
		t.Errorf("sleep debt = %v, want 5h", *debt)
	}
}

func TestSleepDebtNoData(t *testing.T) {
	if debt := SleepDebt(nil, day(0), config.Default()); debt != nil {
		t.Errorf("no history: got %v, want nil", *debt)
	}
}
