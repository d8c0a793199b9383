package carry

import (
	"time"

	"github.com/wonny/carrycrash/internal/timeseries"
	"github.com/wonny/carrycrash/pkg/logger"
)

// pipsPerPriceUnit converts quoted forward points into price units:
// 1 pip = 0.01 JPY for JPY crosses.
const pipsPerPriceUnit = 100.0

// ForwardBuilder converts raw 1M forward points into an outright forward
// price on the weekly grid shared with the spot series.
type ForwardBuilder struct {
	logger *logger.Logger
	anchor time.Weekday
}

// NewForwardBuilder creates a new forward builder.
func NewForwardBuilder(log *logger.Logger, anchor time.Weekday) *ForwardBuilder {
	return &ForwardBuilder{logger: log, anchor: anchor}
}

// Build joins weekly spot with weekly forward points and derives the
// outright forward. Exact-zero points are treated as missing before any
// math: a zero quote in this export is a data-quality artifact, not a
// genuine zero forward basis. Weeks missing either series fall out of the
// inner join.
func (b *ForwardBuilder) Build(spotW, points timeseries.Series) Dataset {
	cleaned := make([]float64, len(points.Values))
	zeros := 0
	for i, v := range points.Values {
		if v == 0 {
			cleaned[i] = timeseries.Missing()
			zeros++
			continue
		}
		cleaned[i] = v
	}
	pointsW := timeseries.New(points.Dates, cleaned).ResampleWeeklyLast(b.anchor)

	dates, cols := timeseries.InnerJoin(spotW, pointsW)

	ds := Dataset{
		Dates:      dates,
		Spot:       cols[0],
		PointsPips: cols[1],
	}

	ds.PointsPrice = make([]float64, ds.Len())
	ds.Forward = make([]float64, ds.Len())
	for i := range ds.Dates {
		ds.PointsPrice[i] = ds.PointsPips[i] / pipsPerPriceUnit
		ds.Forward[i] = ds.Spot[i] + ds.PointsPrice[i]
	}

	b.logger.WithFields(map[string]interface{}{
		"weekly_rows": ds.Len(),
		"zero_points": zeros,
	}).Info("Built outright 1M forward")

	return ds
}
