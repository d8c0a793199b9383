package pipeline

import (
	"fmt"
	"time"

	"github.com/wonny/carrycrash/internal/carry"
	"github.com/wonny/carrycrash/internal/marketdata"
	"github.com/wonny/carrycrash/internal/study"
	"github.com/wonny/carrycrash/internal/timeseries"
	"github.com/wonny/carrycrash/pkg/config"
	"github.com/wonny/carrycrash/pkg/logger"
)

// Orchestrator coordinates the carry-crash study end to end: load the
// three raw series, derive the weekly dataset, run the event study and
// both regressions. One pass, no persisted intermediate state.
type Orchestrator struct {
	cfg    *config.Config
	logger *logger.Logger

	loader        *marketdata.Loader
	spotBuilder   *carry.SpotBuilder
	fwdBuilder    *carry.ForwardBuilder
	fearBuilder   *carry.FearBuilder
	returnBuilder *carry.ReturnBuilder
	eventStudy    *study.EventStudy
	regression    *study.Regression
}

// Result holds everything a run produces.
type Result struct {
	Horizon     int
	WeeklyRows  int // rows in the full weekly dataset
	AlignedRows int // rows entering the statistics
	FirstWeek   time.Time
	LastWeek    time.Time
	Event       study.EventResult
	ModelDFear  study.Model // ret_next_h ~ dfear
	ModelJoint  study.Model // ret_next_h ~ fear_z + dfear
	Dataset     carry.Dataset
	Aligned     carry.Aligned
	Duration    time.Duration
}

// NewOrchestrator wires the pipeline stages from configuration.
func NewOrchestrator(cfg *config.Config, log *logger.Logger) (*Orchestrator, error) {
	anchor, err := cfg.AnchorWeekday()
	if err != nil {
		return nil, err
	}

	a := cfg.Analysis
	return &Orchestrator{
		cfg:           cfg,
		logger:        log,
		loader:        marketdata.NewLoader(cfg, log),
		spotBuilder:   carry.NewSpotBuilder(log, anchor),
		fwdBuilder:    carry.NewForwardBuilder(log, anchor),
		fearBuilder:   carry.NewFearBuilder(log, anchor, a.MinExpandingWeeks),
		returnBuilder: carry.NewReturnBuilder(log, a.HorizonWeeks),
		eventStudy:    study.NewEventStudy(log, a.WarningQuantile),
		regression:    study.NewRegression(log, a.HorizonWeeks-1),
	}, nil
}

// Run loads the configured input files and executes the study.
func (o *Orchestrator) Run() (*Result, error) {
	quotes, err := o.loader.OpenSpotPairs()
	if err != nil {
		return nil, fmt.Errorf("load spot: %w", err)
	}
	points, err := o.loader.OpenForwardPoints()
	if err != nil {
		return nil, fmt.Errorf("load forward points: %w", err)
	}
	rr, err := o.loader.OpenRiskReversal()
	if err != nil {
		return nil, fmt.Errorf("load risk reversal: %w", err)
	}

	return o.RunWithData(quotes, points, rr)
}

// RunWithData executes the study over already-loaded inputs. Tests use
// this entry point with synthetic series.
func (o *Orchestrator) RunWithData(quotes []marketdata.PairQuote, points, rr timeseries.Series) (*Result, error) {
	start := time.Now()

	spotW := o.spotBuilder.Build(quotes)
	if spotW.Len() == 0 {
		return nil, fmt.Errorf("pipeline: no usable spot data")
	}

	ds := o.fwdBuilder.Build(spotW, points)
	ds = o.fearBuilder.Build(ds, rr)
	ds = o.returnBuilder.Build(ds)

	aligned := carry.Align(ds)
	if aligned.Len() == 0 {
		return nil, fmt.Errorf("pipeline: aligned dataset is empty after filtering")
	}

	event, err := o.eventStudy.Run(aligned)
	if err != nil {
		return nil, err
	}

	modelDFear, err := o.regression.Fit(aligned.RetNext, [][]float64{aligned.DFear}, []string{"dfear"})
	if err != nil {
		return nil, fmt.Errorf("regression on dfear: %w", err)
	}
	modelJoint, err := o.regression.Fit(aligned.RetNext,
		[][]float64{aligned.FearZ, aligned.DFear}, []string{"fear_z", "dfear"})
	if err != nil {
		return nil, fmt.Errorf("regression on fear_z + dfear: %w", err)
	}

	res := &Result{
		Horizon:     o.cfg.Analysis.HorizonWeeks,
		WeeklyRows:  ds.Len(),
		AlignedRows: aligned.Len(),
		FirstWeek:   aligned.Dates[0],
		LastWeek:    aligned.Dates[aligned.Len()-1],
		Event:       event,
		ModelDFear:  modelDFear,
		ModelJoint:  modelJoint,
		Dataset:     ds,
		Aligned:     aligned,
		Duration:    time.Since(start),
	}

	o.logger.WithFields(map[string]interface{}{
		"weekly_rows":  res.WeeklyRows,
		"aligned_rows": res.AlignedRows,
		"duration":     res.Duration.String(),
	}).Info("Study complete")

	return res, nil
}
