package analysis

import (
	"errors"
	"math"

	"readiness/metrics"
)

// ErrLengthMismatch is returned when the two series passed to Correlate
// have different lengths. This is a caller contract violation, unlike
// insufficient data, which yields a nil result without error.
var ErrLengthMismatch = errors.New("correlation series length mismatch")

// minCorrelationSamples is the smallest series Pearson r is computed on.
const minCorrelationSamples = 3

// Correlate computes the Pearson correlation between two equal-length
// series. Returns (nil, nil) when there are fewer than three samples or
// either series has zero variance: those are "no signal" outcomes, never
// NaN.
func Correlate(x, y []float64) (*metrics.CorrelationResult, error) {
	if len(x) != len(y) {
		return nil, ErrLengthMismatch
	}
	n := len(x)
	if n < minCorrelationSamples {
		return nil, nil
	}

	var meanX, meanY float64
	for i := 0; i < n; i++ {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var sumXY, sumXX, sumYY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sumXY += dx * dy
		sumXX += dx * dx
		sumYY += dy * dy
	}

	denominator := math.Sqrt(sumXX * sumYY)
	if denominator == 0 {
		return nil, nil
	}

	r := clamp(sumXY/denominator, -1, 1)

	return &metrics.CorrelationResult{
		R:            r,
		R2:           r * r,
		N:            n,
		Significance: significance(r),
		Trend:        correlationTrend(r),
	}, nil
}

func significance(r float64) metrics.Significance {
	switch abs := math.Abs(r); {
	case abs >= 0.7:
		return metrics.SignificanceStrong
	case abs >= 0.5:
		return metrics.SignificanceModerate
	case abs >= 0.3:
		return metrics.SignificanceWeak
	default:
		return metrics.SignificanceNone
	}
}

// correlationTrend applies a deadband so noise near zero is not labeled
// a trend.
func correlationTrend(r float64) metrics.Trend {
	switch {
	case r > 0.1:
		return metrics.TrendPositive
	case r < -0.1:
		return metrics.TrendNegative
	default:
		return metrics.TrendNone
	}
}
