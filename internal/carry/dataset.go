package carry

import (
	"time"

	"github.com/wonny/carrycrash/internal/timeseries"
)

// Dataset is the weekly AUDJPY table the pipeline builds column by column.
// Every column is computed once and immutable afterward; NaN marks missing.
// Builders return a new Dataset value rather than mutating their input.
type Dataset struct {
	Dates []time.Time

	// Forward builder
	Spot        []float64 // synthetic AUDJPY spot (AUDUSD x USDJPY)
	PointsPips  []float64 // raw 1M forward points, JPY pips
	PointsPrice []float64 // points converted to price units
	Forward     []float64 // outright 1M forward

	// Fear signal builder
	RiskReversal []float64 // raw 1M 25-delta RR
	FearLevel    []float64 // -RR, higher = more fear
	FearZ        []float64 // expanding z-score of FearLevel
	DFear        []float64 // week-over-week change in FearZ

	// Return builder
	RetSpot     []float64 // weekly spot return
	CarryAnnual []float64 // annualized carry yield from the forward basis
	RetCarry    []float64 // weekly carry return
	RetTotal    []float64 // spot + carry, additive approximation
	RetNext     []float64 // forward-looking H-week total return
}

// Len returns the number of weekly rows.
func (d Dataset) Len() int {
	return len(d.Dates)
}

// columns lists every populated column for row-wise filtering.
func (d *Dataset) columns() []*[]float64 {
	return []*[]float64{
		&d.Spot, &d.PointsPips, &d.PointsPrice, &d.Forward,
		&d.RiskReversal, &d.FearLevel, &d.FearZ, &d.DFear,
		&d.RetSpot, &d.CarryAnnual, &d.RetCarry, &d.RetTotal, &d.RetNext,
	}
}

// filter keeps only rows where keep[i] is true.
func (d Dataset) filter(keep []bool) Dataset {
	out := d
	out.Dates = nil
	for _, col := range out.columns() {
		*col = nil
	}

	for i, k := range keep {
		if !k {
			continue
		}
		out.Dates = append(out.Dates, d.Dates[i])
	}
	dst := out.columns()
	for ci, col := range d.columns() {
		if *col == nil {
			continue
		}
		vals := make([]float64, 0, len(out.Dates))
		for i, k := range keep {
			if k {
				vals = append(vals, (*col)[i])
			}
		}
		*dst[ci] = vals
	}
	return out
}

// Aligned is the analysis view of the dataset: the rows where every field
// the event study and regressions need is present.
type Aligned struct {
	Dates   []time.Time
	RetW    []float64 // weekly total return
	FearZ   []float64
	DFear   []float64
	RetNext []float64 // forward H-week target
}

// Len returns the number of aligned rows.
func (a Aligned) Len() int {
	return len(a.Dates)
}

// Align drops every row with a missing weekly return, fear score, fear
// change or forward target, leaving the table the statistics run on.
func Align(d Dataset) Aligned {
	var out Aligned
	for i := range d.Dates {
		if timeseries.IsMissing(d.RetTotal[i]) ||
			timeseries.IsMissing(d.FearZ[i]) ||
			timeseries.IsMissing(d.DFear[i]) ||
			timeseries.IsMissing(d.RetNext[i]) {
			continue
		}
		out.Dates = append(out.Dates, d.Dates[i])
		out.RetW = append(out.RetW, d.RetTotal[i])
		out.FearZ = append(out.FearZ, d.FearZ[i])
		out.DFear = append(out.DFear, d.DFear[i])
		out.RetNext = append(out.RetNext, d.RetNext[i])
	}
	return out
}
