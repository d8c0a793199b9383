package pipeline

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/carrycrash/internal/study"
	"github.com/wonny/carrycrash/internal/timeseries"
)

// WriteReport renders the study results as console text: event-study
// conditional statistics as percentages, then both regression tables with
// Newey-West t-statistics.
func (r *Result) WriteReport(w io.Writer) {
	h := r.Horizon

	fmt.Fprintf(w, "Event study (AUDJPY):\n")
	fmt.Fprintf(w, "  Avg next-%dw return | warning weeks: %.4f%%\n", h, r.Event.AvgWarning*100)
	fmt.Fprintf(w, "  Hit rate (<0)       | warning weeks: %.1f%%\n", r.Event.HitRateWarning*100)
	fmt.Fprintf(w, "  Avg next-%dw return | non-warning  : %.4f%%\n", h, r.Event.AvgNonWarning*100)
	fmt.Fprintf(w, "  Warning weeks: %d of %d (threshold dfear <= %.4f)\n",
		r.Event.WarningCount, r.AlignedRows, r.Event.Threshold)

	fmt.Fprintf(w, "\nRegression: ret_next_%dw ~ dfear (AUDJPY)\n", h)
	writeModel(w, r.ModelDFear)

	fmt.Fprintf(w, "\nRegression: ret_next_%dw ~ fear_z + dfear (AUDJPY)\n", h)
	writeModel(w, r.ModelJoint)
}

func writeModel(w io.Writer, m study.Model) {
	fmt.Fprintf(w, "  n=%d, Newey-West lags=%d\n", m.NObs, m.Lags)
	fmt.Fprintf(w, "  %-8s %12s %12s %10s\n", "", "coef", "NW se", "t")
	for i, name := range m.Names {
		fmt.Fprintf(w, "  %-8s %12.6f %12.6f %10.3f\n", name, m.Coefs[i], m.StdErrs[i], m.TStats[i])
	}
}

// WriteDiagnostics renders the verbose sanity checks: the first rows of
// the spot/points/forward table and the weekly return distribution.
func (r *Result) WriteDiagnostics(w io.Writer) {
	ds := r.Dataset

	fmt.Fprintf(w, "Sanity check - first rows (spot vs forward):\n")
	fmt.Fprintf(w, "  %-12s %10s %12s %14s %12s\n", "week", "spot", "points_pips", "points_price", "forward")
	for i := 0; i < ds.Len() && i < 10; i++ {
		fmt.Fprintf(w, "  %-12s %10.4f %12.4f %14.4f %12.4f\n",
			ds.Dates[i].Format("2006-01-02"),
			ds.Spot[i], ds.PointsPips[i], ds.PointsPrice[i], ds.Forward[i])
	}

	var rets []float64
	for _, v := range r.Aligned.RetW {
		if !timeseries.IsMissing(v) {
			rets = append(rets, v)
		}
	}
	if len(rets) == 0 {
		return
	}

	mean, std := stat.MeanStdDev(rets, nil)
	fmt.Fprintf(w, "\nWeekly total return distribution (n=%d):\n", len(rets))
	fmt.Fprintf(w, "  mean=%.4f%% std=%.4f%%\n", mean*100, std*100)
	for _, p := range []float64{0.01, 0.05, 0.50, 0.95, 0.99} {
		fmt.Fprintf(w, "  p%02.0f=%.4f%%\n", p*100, study.Quantile(rets, p)*100)
	}
}
