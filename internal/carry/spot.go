package carry

import (
	"time"

	"github.com/wonny/carrycrash/internal/marketdata"
	"github.com/wonny/carrycrash/internal/timeseries"
	"github.com/wonny/carrycrash/pkg/logger"
)

// SpotBuilder derives the synthetic AUDJPY spot series from the two legs
// of the cross and puts it on the weekly grid.
type SpotBuilder struct {
	logger *logger.Logger
	anchor time.Weekday
}

// NewSpotBuilder creates a new spot builder.
func NewSpotBuilder(log *logger.Logger, anchor time.Weekday) *SpotBuilder {
	return &SpotBuilder{logger: log, anchor: anchor}
}

// Build multiplies the legs row by row (JPY per AUD = USD per AUD x JPY
// per USD, the USD leg cancels) and resamples to last-of-week. Weeks with
// no trading data are omitted, never filled.
func (b *SpotBuilder) Build(quotes []marketdata.PairQuote) timeseries.Series {
	dates := make([]time.Time, 0, len(quotes))
	cross := make([]float64, 0, len(quotes))
	for _, q := range quotes {
		dates = append(dates, q.Date)
		cross = append(cross, q.AUDUSD*q.USDJPY)
	}

	weekly := timeseries.New(dates, cross).ResampleWeeklyLast(b.anchor)

	b.logger.WithFields(map[string]interface{}{
		"daily_rows":  len(quotes),
		"weekly_rows": weekly.Len(),
	}).Info("Built weekly AUDJPY spot")

	return weekly
}
