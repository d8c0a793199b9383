package carry

import (
	"time"

	"github.com/wonny/carrycrash/internal/timeseries"
	"github.com/wonny/carrycrash/pkg/logger"
)

// FearBuilder turns the raw risk-reversal series into the normalized fear
// signal and its week-over-week change.
type FearBuilder struct {
	logger   *logger.Logger
	anchor   time.Weekday
	minWeeks int
}

// NewFearBuilder creates a new fear signal builder. minWeeks is the number
// of observations the expanding z-score needs before it activates.
func NewFearBuilder(log *logger.Logger, anchor time.Weekday, minWeeks int) *FearBuilder {
	return &FearBuilder{logger: log, anchor: anchor, minWeeks: minWeeks}
}

// Build inner-joins the weekly risk reversal onto the spot+forward table,
// drops weeks missing any of the three series, then derives:
//
//	fear level = -RR   (more negative RR = puts expensive = more fear)
//	fear z     = expanding z-score of the level, causal, sample std,
//	             missing before minWeeks observations or on zero variance
//	dfear      = first difference of fear z
func (b *FearBuilder) Build(ds Dataset, rr timeseries.Series) Dataset {
	rrW := rr.ResampleWeeklyLast(b.anchor)

	dsSeries := func(vals []float64) timeseries.Series {
		return timeseries.New(ds.Dates, vals)
	}
	dates, cols := timeseries.InnerJoin(
		dsSeries(ds.Spot),
		dsSeries(ds.PointsPips),
		dsSeries(ds.PointsPrice),
		dsSeries(ds.Forward),
		rrW,
	)

	out := Dataset{
		Dates:        dates,
		Spot:         cols[0],
		PointsPips:   cols[1],
		PointsPrice:  cols[2],
		Forward:      cols[3],
		RiskReversal: cols[4],
	}

	// Drop weeks where spot, forward or RR is missing before the
	// expanding statistics see them
	keep := make([]bool, out.Len())
	for i := range keep {
		keep[i] = !timeseries.IsMissing(out.Spot[i]) &&
			!timeseries.IsMissing(out.Forward[i]) &&
			!timeseries.IsMissing(out.RiskReversal[i])
	}
	out = out.filter(keep)

	out.FearLevel = make([]float64, out.Len())
	for i := range out.FearLevel {
		out.FearLevel[i] = -out.RiskReversal[i]
	}

	out.FearZ = timeseries.ExpandingZScore(out.FearLevel, b.minWeeks)
	out.DFear = timeseries.Diff(out.FearZ)

	b.logger.WithFields(map[string]interface{}{
		"weekly_rows": out.Len(),
		"min_weeks":   b.minWeeks,
	}).Info("Built fear signal")

	return out
}
