package analysis

import (
	"math"
	"testing"
	"time"

	"readiness/config"
)

func day(offset int) time.Time {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestFitnessTrendEmpty(t *testing.T) {
	if got := FitnessTrend(nil, config.Default()); got != nil {
		t.Errorf("FitnessTrend(nil) = %v, want nil", got)
	}
}

func TestFitnessTrendAllZeroStress(t *testing.T) {
	var stresses []DailyStress
	for i := 0; i < 30; i++ {
		stresses = append(stresses, DailyStress{Date: day(i), TSS: 0})
	}

	points := FitnessTrend(stresses, config.Default())
	if len(points) != 30 {
		t.Fatalf("got %d points, want 30", len(points))
	}
	for _, p := range points {
		if p.CTL != 0 || p.ATL != 0 || p.TSB != 0 {
			t.Errorf("%s: CTL=%v ATL=%v TSB=%v, want all 0", p.Date.Format("2006-01-02"), p.CTL, p.ATL, p.TSB)
		}
	}
}

func TestFitnessTrendTSBIdentity(t *testing.T) {
	stresses := []DailyStress{
		{Date: day(0), TSS: 80},
		{Date: day(3), TSS: 120},
		{Date: day(5), TSS: 60},
		{Date: day(9), TSS: 200},
	}

	for _, p := range FitnessTrend(stresses, config.Default()) {
		if p.TSB != p.CTL-p.ATL {
			t.Errorf("%s: TSB=%v, want CTL-ATL=%v", p.Date.Format("2006-01-02"), p.TSB, p.CTL-p.ATL)
		}
		if p.CTL < 0 || p.ATL < 0 {
			t.Errorf("%s: negative load CTL=%v ATL=%v", p.Date.Format("2006-01-02"), p.CTL, p.ATL)
		}
	}
}

func TestFitnessTrendConvergence(t *testing.T) {
	// Constant 100 TSS for 60 days: ATL converges near 100 on the
	// 7-day constant, CTL toward ~76 on the 42-day constant.
	var stresses []DailyStress
	for i := 0; i < 60; i++ {
		stresses = append(stresses, DailyStress{Date: day(i), TSS: 100})
	}

	current := CurrentLoad(stresses, config.Default())
	if current.ATL < 95 || current.ATL > 100 {
		t.Errorf("ATL = %v, want near 100", current.ATL)
	}
	if math.Abs(current.CTL-76) > 2 {
		t.Errorf("CTL = %v, want near 76", current.CTL)
	}
	if current.TSB > -15 {
		t.Errorf("TSB = %v, want strongly negative", current.TSB)
	}
}

func TestFitnessTrendFillsMissingDays(t *testing.T) {
	stresses := []DailyStress{
		{Date: day(0), TSS: 100},
		{Date: day(6), TSS: 100},
	}

	points := FitnessTrend(stresses, config.Default())
	if len(points) != 7 {
		t.Fatalf("got %d points, want 7 (gap days filled)", len(points))
	}
	// The gap days decay toward zero.
	if points[3].ATL >= points[0].ATL {
		t.Errorf("ATL did not decay across rest days: day0=%v day3=%v", points[0].ATL, points[3].ATL)
	}
}

func TestFitnessTrendSumsSameDay(t *testing.T) {
	double := []DailyStress{
		{Date: day(0), TSS: 40},
		{Date: day(0), TSS: 60},
	}
	single := []DailyStress{{Date: day(0), TSS: 100}}

	got := CurrentLoad(double, config.Default())
	want := CurrentLoad(single, config.Default())
	if got.CTL != want.CTL || got.ATL != want.ATL {
		t.Errorf("two activities on one day: got CTL=%v ATL=%v, want CTL=%v ATL=%v",
			got.CTL, got.ATL, want.CTL, want.ATL)
	}
}

func TestFitnessTrendConfigurableTimeConstants(t *testing.T) {
	cfg := config.Default()
	cfg.Load.FatigueDays = 42 // make ATL as slow as CTL

	var stresses []DailyStress
	for i := 0; i < 30; i++ {
		stresses = append(stresses, DailyStress{Date: day(i), TSS: 100})
	}

	current := CurrentLoad(stresses, cfg)
	if math.Abs(current.TSB) > 1e-9 {
		t.Errorf("equal time constants should give TSB=0, got %v", current.TSB)
	}
}

func TestWeeklyTSS(t *testing.T) {
	stresses := []DailyStress{
		{Date: day(0), TSS: 100}, // outside the window
		{Date: day(4), TSS: 50},
		{Date: day(8), TSS: 70},
		{Date: day(10), TSS: 80},
	}

	got := WeeklyTSS(stresses, day(10))
	if got != 150 {
		t.Errorf("WeeklyTSS = %v, want 150", got)
	}
}

func TestFormDescription(t *testing.T) {
	tests := []struct {
		tsb  float64
		want string
	}{
		{30, "Very fresh (possibly detrained)"},
		{15, "Fresh and ready to race"},
		{5, "Neutral - good for training"},
		{-5, "Slightly fatigued"},
		{-15, "Tired but building fitness"},
		{-40, "Very fatigued - rest needed"},
	}

	for _, tt := range tests {
		if got := FormDescription(tt.tsb); got != tt.want {
			t.Errorf("FormDescription(%v) = %q, want %q", tt.tsb, got, tt.want)
		}
	}
}
