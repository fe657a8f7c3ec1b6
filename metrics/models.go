package metrics

import "time"

// DailyMetric is one day of wearable data. Every numeric field is
// independently optional; nil means the device did not report it.
type DailyMetric struct {
	Date             time.Time `json:"date"`
	HRV              *float64  `json:"hrv,omitempty"`              // ms
	RestingHR        *float64  `json:"resting_hr,omitempty"`       // bpm
	SleepHours       *float64  `json:"sleep_hours,omitempty"`
	SleepScore       *float64  `json:"sleep_score,omitempty"`      // 0-100
	RespiratoryRate  *float64  `json:"respiratory_rate,omitempty"` // breaths/min
	TSS              *float64  `json:"tss,omitempty"`
	IllnessSuspected bool      `json:"illness_suspected,omitempty"`
}

// SleepNight holds the detail metrics for a single night, beyond the
// summary fields carried on DailyMetric.
type SleepNight struct {
	Date            time.Time `json:"date"`
	DurationHours   *float64  `json:"duration_hours,omitempty"`
	TimeInBedHours  *float64  `json:"time_in_bed_hours,omitempty"`
	RestlessnessPct *float64  `json:"restlessness_pct,omitempty"` // 0-100, % of sleep spent restless
	WakeEvents      *int      `json:"wake_events,omitempty"`
}

// ActivitySample is a single point from an activity stream.
type ActivitySample struct {
	TimeOffset int      `json:"time_offset"` // seconds from activity start
	Heartrate  *float64 `json:"heartrate,omitempty"`  // bpm
	Power      *float64 `json:"power,omitempty"`      // watts
}

// Baseline is a rolling mean plus the number of days that contributed.
type Baseline struct {
	Mean    float64 `json:"mean"`
	Samples int     `json:"samples"`
}

// BaselineSet holds the per-field rolling baselines. A nil field means
// fewer than the minimum number of days reported that metric.
type BaselineSet struct {
	HRV             *Baseline `json:"hrv,omitempty"`
	RestingHR       *Baseline `json:"resting_hr,omitempty"`
	SleepHours      *Baseline `json:"sleep_hours,omitempty"`
	SleepScore      *Baseline `json:"sleep_score,omitempty"`
	RespiratoryRate *Baseline `json:"respiratory_rate,omitempty"`
}
