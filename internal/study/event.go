package study

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/carrycrash/internal/carry"
	"github.com/wonny/carrycrash/pkg/logger"
)

// EventStudy partitions weeks into warning and non-warning by a bottom
// quantile of the change-in-fear distribution and compares forward return
// statistics across the two buckets. Purely descriptive, no significance
// testing.
type EventStudy struct {
	logger   *logger.Logger
	quantile float64
}

// NewEventStudy creates an event study with the given warning quantile
// (e.g. 0.10 = bottom decile of dfear).
func NewEventStudy(log *logger.Logger, quantile float64) *EventStudy {
	return &EventStudy{logger: log, quantile: quantile}
}

// EventResult holds the conditional statistics of the partition.
type EventResult struct {
	Threshold       float64 // dfear value at the warning quantile
	WarningCount    int
	NonWarningCount int
	AvgWarning      float64 // mean forward return, warning weeks
	HitRateWarning  float64 // fraction of warning weeks with negative forward return
	AvgNonWarning   float64 // mean forward return, non-warning weeks
}

// Run classifies each aligned week. A week is a warning when its dfear is
// at or below the quantile threshold: ties at the boundary are inclusive,
// so the bucket can hold slightly more than N*q weeks.
func (e *EventStudy) Run(a carry.Aligned) (EventResult, error) {
	if a.Len() == 0 {
		return EventResult{}, fmt.Errorf("event study: aligned dataset is empty")
	}

	threshold := Quantile(a.DFear, e.quantile)

	var warning, nonWarning []float64
	negatives := 0
	for i := range a.DFear {
		if a.DFear[i] <= threshold {
			warning = append(warning, a.RetNext[i])
			if a.RetNext[i] < 0 {
				negatives++
			}
			continue
		}
		nonWarning = append(nonWarning, a.RetNext[i])
	}

	res := EventResult{
		Threshold:       threshold,
		WarningCount:    len(warning),
		NonWarningCount: len(nonWarning),
		AvgWarning:      stat.Mean(warning, nil),
		AvgNonWarning:   stat.Mean(nonWarning, nil),
	}
	if len(warning) > 0 {
		res.HitRateWarning = float64(negatives) / float64(len(warning))
	}

	e.logger.WithFields(map[string]interface{}{
		"threshold":   threshold,
		"warning":     res.WarningCount,
		"non_warning": res.NonWarningCount,
	}).Info("Ran event study")

	return res, nil
}

// Quantile computes the p-quantile of xs with linear interpolation between
// order statistics (the pandas default, R type 7). Missing values must be
// filtered out by the caller.
func Quantile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
