package metrics

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// The result types are shared with a backend summary service and an
// offline pipeline, so they must serialize cleanly with no platform
// types leaking in.
func TestResultsSerialize(t *testing.T) {
	result := RecoveryResult{
		Score: 82.5,
		SubScores: SubScoreSet{
			{Component: ComponentHRV, Score: 90, Weight: 0.5},
			{Component: ComponentSleep, Score: 75, Weight: 0.5},
		},
		Confounders: []ConfounderAdjustment{{Name: "alcohol", Penalty: 7.5}},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded RecoveryResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Score != result.Score || len(decoded.SubScores) != 2 || !decoded.ConfounderApplied() {
		t.Errorf("round trip lost data: %+v", decoded)
	}
}

func TestDailyMetricOmitsMissingFields(t *testing.T) {
	hrv := 48.0
	m := DailyMetric{
		Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		HRV:  &hrv,
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "resting_hr") {
		t.Errorf("absent fields must be omitted, got %s", data)
	}
	if !strings.Contains(string(data), "\"hrv\":48") {
		t.Errorf("present field missing, got %s", data)
	}
}

func TestSubScoreSetTotalWeight(t *testing.T) {
	set := SubScoreSet{
		{Component: ComponentDuration, Weight: 0.45},
		{Component: ComponentEfficiency, Weight: 0.30},
		{Component: ComponentRestfulness, Weight: 0.25},
	}
	if got := set.TotalWeight(); got != 1.0 {
		t.Errorf("TotalWeight = %v, want 1.0", got)
	}
	if got := (SubScoreSet{}).TotalWeight(); got != 0 {
		t.Errorf("empty set TotalWeight = %v, want 0", got)
	}
}
