package timeseries

import (
	"gonum.org/v1/gonum/stat"
)

// PctChange returns the period-over-period percentage change. The first
// element is missing, as is any element whose own or prior value is
// missing or whose prior value is zero.
func PctChange(x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		if i == 0 || IsMissing(x[i]) || IsMissing(x[i-1]) || x[i-1] == 0 {
			out[i] = Missing()
			continue
		}
		out[i] = (x[i] - x[i-1]) / x[i-1]
	}
	return out
}

// Diff returns the first difference. The first element is missing.
func Diff(x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		if i == 0 || IsMissing(x[i]) || IsMissing(x[i-1]) {
			out[i] = Missing()
			continue
		}
		out[i] = x[i] - x[i-1]
	}
	return out
}

// ExpandingZScore standardizes each element against the mean and sample
// standard deviation of all observations from the start of history through
// the element itself. Elements are missing until minPeriods non-missing
// observations have accumulated, so the statistic is causal: nothing after
// element i ever contributes to out[i]. A zero trailing standard deviation
// yields a missing value, never zero.
func ExpandingZScore(x []float64, minPeriods int) []float64 {
	out := make([]float64, len(x))
	history := make([]float64, 0, len(x))

	for i, v := range x {
		if IsMissing(v) {
			out[i] = Missing()
			continue
		}
		history = append(history, v)

		if len(history) < minPeriods {
			out[i] = Missing()
			continue
		}

		mean, std := stat.MeanStdDev(history, nil)
		if std == 0 {
			out[i] = Missing()
			continue
		}
		out[i] = (v - mean) / std
	}
	return out
}

// ForwardSum attaches to element i the sum of the next h elements
// (i+1 .. i+h). A window containing any missing value is missing, and the
// final h elements are missing because their windows run past the end of
// the data. The value at i therefore never includes period i itself: it is
// a strictly forward-looking target.
func ForwardSum(x []float64, h int) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		if i+h > len(x)-1 {
			out[i] = Missing()
			continue
		}
		sum := 0.0
		missing := false
		for j := i + 1; j <= i+h; j++ {
			if IsMissing(x[j]) {
				missing = true
				break
			}
			sum += x[j]
		}
		if missing {
			out[i] = Missing()
			continue
		}
		out[i] = sum
	}
	return out
}
