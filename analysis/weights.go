package analysis

import "readiness/metrics"

// weightedComponent is a candidate sub-score before rebalancing. A nil
// score means the component's input data was missing this run.
type weightedComponent struct {
	component metrics.Component
	score     *float64
	weight    float64
}

// rebalance drops unavailable components and redistributes their weight
// proportionally across the rest, so the surviving weights always sum
// to 1. Returns nil when nothing is available.
func rebalance(candidates []weightedComponent) metrics.SubScoreSet {
	var availableWeight float64
	for _, c := range candidates {
		if c.score != nil {
			availableWeight += c.weight
		}
	}
	if availableWeight == 0 {
		return nil
	}

	var set metrics.SubScoreSet
	for _, c := range candidates {
		if c.score == nil {
			continue
		}
		set = append(set, metrics.SubScore{
			Component: c.component,
			Score:     clamp(*c.score, 0, 100),
			Weight:    c.weight / availableWeight,
		})
	}
	return set
}

// combine folds a rebalanced sub-score set into a composite 0-100 score.
func combine(set metrics.SubScoreSet) float64 {
	var total float64
	for _, ss := range set {
		total += ss.Score * ss.Weight
	}
	return clamp(total, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floatPtr(v float64) *float64 {
	return &v
}
