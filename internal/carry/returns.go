package carry

import (
	"github.com/wonny/carrycrash/internal/timeseries"
	"github.com/wonny/carrycrash/pkg/logger"
)

const (
	tenorsPerYear = 12.0 // 1M forward tenor
	weeksPerYear  = 52.0
)

// ReturnBuilder derives weekly returns and the forward-looking target.
type ReturnBuilder struct {
	logger  *logger.Logger
	horizon int
}

// NewReturnBuilder creates a new return builder for an H-week target.
func NewReturnBuilder(log *logger.Logger, horizon int) *ReturnBuilder {
	return &ReturnBuilder{logger: log, horizon: horizon}
}

// Build adds the return columns:
//
//	ret_spot     = weekly percentage change of spot (first week missing)
//	carry_annual = ((forward - spot) / spot) * 12
//	ret_carry    = carry_annual / 52
//	ret_total    = ret_spot + ret_carry (additive, not compounded)
//	ret_next     = sum of ret_total over weeks t+1 .. t+H, so the target
//	               paired with week t contains no information from week t
//	               or earlier; the trailing weeks without a complete
//	               window stay missing
func (b *ReturnBuilder) Build(ds Dataset) Dataset {
	out := ds

	out.RetSpot = timeseries.PctChange(out.Spot)

	out.CarryAnnual = make([]float64, out.Len())
	out.RetCarry = make([]float64, out.Len())
	out.RetTotal = make([]float64, out.Len())
	for i := range out.Dates {
		if timeseries.IsMissing(out.Spot[i]) || timeseries.IsMissing(out.Forward[i]) || out.Spot[i] == 0 {
			out.CarryAnnual[i] = timeseries.Missing()
			out.RetCarry[i] = timeseries.Missing()
			out.RetTotal[i] = timeseries.Missing()
			continue
		}
		out.CarryAnnual[i] = (out.Forward[i] - out.Spot[i]) / out.Spot[i] * tenorsPerYear
		out.RetCarry[i] = out.CarryAnnual[i] / weeksPerYear
		out.RetTotal[i] = out.RetSpot[i] + out.RetCarry[i]
	}

	out.RetNext = timeseries.ForwardSum(out.RetTotal, b.horizon)

	b.logger.WithFields(map[string]interface{}{
		"weekly_rows": out.Len(),
		"horizon":     b.horizon,
	}).Info("Built return columns")

	return out
}
