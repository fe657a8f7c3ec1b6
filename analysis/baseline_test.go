package analysis

import (
	"math"
	"testing"

	"readiness/config"
	"readiness/metrics"
)

func TestBaselinesAveragesTrailingWindow(t *testing.T) {
	var history []metrics.DailyMetric
	for i := 0; i < 7; i++ {
		history = append(history, metrics.DailyMetric{
			Date: day(i),
			HRV:  floatPtr(40 + float64(i)), // 40..46
		})
	}

	// asOf day(7): the window covers day(0)..day(6), mean = 43.
	set := Baselines(history, day(7), config.Default())
	if set.HRV == nil {
		t.Fatal("HRV baseline unavailable, want present")
	}
	if math.Abs(set.HRV.Mean-43) > 1e-9 {
		t.Errorf("HRV baseline = %v, want 43", set.HRV.Mean)
	}
	if set.HRV.Samples != 7 {
		t.Errorf("samples = %d, want 7", set.HRV.Samples)
	}
}

func TestBaselinesExcludeToday(t *testing.T) {
	history := []metrics.DailyMetric{
		{Date: day(4), HRV: floatPtr(50)},
		{Date: day(5), HRV: floatPtr(50)},
		{Date: day(6), HRV: floatPtr(50)},
		{Date: day(7), HRV: floatPtr(20)}, // today's crashed reading
	}

	set := Baselines(history, day(7), config.Default())
	if set.HRV == nil {
		t.Fatal("HRV baseline unavailable, want present")
	}
	if set.HRV.Mean != 50 {
		t.Errorf("baseline = %v, want 50 (today must not contaminate it)", set.HRV.Mean)
	}
}

func TestBaselinesMinSamples(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		available bool
	}{
		{"two days insufficient", 2, false},
		{"three days sufficient", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var history []metrics.DailyMetric
			for i := 0; i < tt.days; i++ {
				history = append(history, metrics.DailyMetric{Date: day(i), RestingHR: floatPtr(55)})
			}

			set := Baselines(history, day(7), config.Default())
			if got := set.RestingHR != nil; got != tt.available {
				t.Errorf("available = %v, want %v", got, tt.available)
			}
		})
	}
}

func TestBaselinesPerFieldIndependence(t *testing.T) {
	// HRV reported every day, respiratory rate only twice: HRV baseline
	// exists, respiratory baseline does not.
	var history []metrics.DailyMetric
	for i := 0; i < 7; i++ {
		m := metrics.DailyMetric{Date: day(i), HRV: floatPtr(45)}
		if i < 2 {
			m.RespiratoryRate = floatPtr(14)
		}
		history = append(history, m)
	}

	set := Baselines(history, day(7), config.Default())
	if set.HRV == nil {
		t.Error("HRV baseline unavailable, want present")
	}
	if set.RespiratoryRate != nil {
		t.Error("respiratory baseline present, want unavailable with 2 samples")
	}
}

func TestBaselinesEmptyHistory(t *testing.T) {
	set := Baselines(nil, day(0), config.Default())
	if set.HRV != nil || set.RestingHR != nil || set.SleepHours != nil ||
		set.SleepScore != nil || set.RespiratoryRate != nil {
		t.Errorf("empty history produced baselines: %+v", set)
	}
}
