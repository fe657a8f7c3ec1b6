package analysis

import (
	"math"

	"readiness/metrics"
)

// scoreTrendDeadband is the relative change below which a score series
// is considered flat.
const scoreTrendDeadband = 0.05

// ScoreTrend classifies the direction of a score series by comparing
// the mean of its second half against its first half. Changes inside
// the deadband count as no trend. Fewer than four points is always
// TrendNone; that little data cannot support a direction.
func ScoreTrend(values []float64) metrics.Trend {
	if len(values) < 4 {
		return metrics.TrendNone
	}

	mid := len(values) / 2
	first := mean(values[:mid])
	second := mean(values[mid:])

	if first == 0 {
		return metrics.TrendNone
	}

	change := (second - first) / math.Abs(first)
	switch {
	case change > scoreTrendDeadband:
		return metrics.TrendPositive
	case change < -scoreTrendDeadband:
		return metrics.TrendNegative
	default:
		return metrics.TrendNone
	}
}

func mean(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
