package timeseries

import (
	"math"
	"sort"
	"time"
)

// Series is a date-indexed sequence of float64 observations.
// NaN is the missing-value marker throughout the pipeline; derivations
// propagate NaN instead of failing, and rows are dropped downstream.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// New builds a Series from parallel date/value slices.
func New(dates []time.Time, values []float64) Series {
	return Series{Dates: dates, Values: values}
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.Dates)
}

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Missing returns the missing-value marker.
func Missing() float64 {
	return math.NaN()
}

// SortDedupe returns a copy sorted by date with duplicate timestamps
// collapsed to the last occurrence. The result has a strictly increasing
// index, the precondition for resampling and joins.
func (s Series) SortDedupe() Series {
	type obs struct {
		date time.Time
		val  float64
		pos  int
	}

	all := make([]obs, s.Len())
	for i := range s.Dates {
		all[i] = obs{date: s.Dates[i], val: s.Values[i], pos: i}
	}

	// Stable order so the last occurrence in file order wins on ties
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].date.Equal(all[j].date) {
			return all[i].pos < all[j].pos
		}
		return all[i].date.Before(all[j].date)
	})

	out := Series{}
	for _, o := range all {
		n := out.Len()
		if n > 0 && out.Dates[n-1].Equal(o.date) {
			out.Values[n-1] = o.val
			continue
		}
		out.Dates = append(out.Dates, o.date)
		out.Values = append(out.Values, o.val)
	}
	return out
}

// WeekEnding returns the first day on or after d that falls on the anchor
// weekday, truncated to midnight UTC. This is the label of d's weekly
// bucket (right-closed, right-labeled weeks).
func WeekEnding(d time.Time, anchor time.Weekday) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(anchor) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// ResampleWeeklyLast buckets observations into weeks ending on the anchor
// weekday and keeps the last non-missing observation of each bucket.
// Weeks with no observations at all are omitted; a bucket whose
// observations are all missing yields a missing value.
func (s Series) ResampleWeeklyLast(anchor time.Weekday) Series {
	sorted := s.SortDedupe()

	out := Series{}
	for i := range sorted.Dates {
		label := WeekEnding(sorted.Dates[i], anchor)
		v := sorted.Values[i]

		n := out.Len()
		if n > 0 && out.Dates[n-1].Equal(label) {
			if !IsMissing(v) {
				out.Values[n-1] = v
			}
			continue
		}
		out.Dates = append(out.Dates, label)
		out.Values = append(out.Values, v)
	}
	return out
}

// InnerJoin aligns the given series on timestamps present in every one of
// them. It returns the common index and, per input series, the values at
// those timestamps. All inputs must have strictly increasing indexes.
func InnerJoin(series ...Series) ([]time.Time, [][]float64) {
	if len(series) == 0 {
		return nil, nil
	}

	cursors := make([]int, len(series))
	var dates []time.Time
	values := make([][]float64, len(series))

	for cursors[0] < series[0].Len() {
		candidate := series[0].Dates[cursors[0]]

		// Advance every other cursor to candidate or beyond
		max := candidate
		for k := 1; k < len(series); k++ {
			for cursors[k] < series[k].Len() && series[k].Dates[cursors[k]].Before(max) {
				cursors[k]++
			}
			if cursors[k] >= series[k].Len() {
				return dates, values
			}
			if series[k].Dates[cursors[k]].After(max) {
				max = series[k].Dates[cursors[k]]
			}
		}

		if max.After(candidate) {
			for cursors[0] < series[0].Len() && series[0].Dates[cursors[0]].Before(max) {
				cursors[0]++
			}
			continue
		}

		// All cursors sit on the same timestamp
		dates = append(dates, candidate)
		for k := range series {
			values[k] = append(values[k], series[k].Values[cursors[k]])
			cursors[k]++
		}
	}
	return dates, values
}
