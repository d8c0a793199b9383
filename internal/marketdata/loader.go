package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/carrycrash/internal/timeseries"
	"github.com/wonny/carrycrash/pkg/config"
	"github.com/wonny/carrycrash/pkg/logger"
)

// Loader reads the three raw CSV exports into typed rows. Column names come
// from configuration; the algorithms never see raw export headers.
type Loader struct {
	cfg    *config.Config
	logger *logger.Logger
}

// NewLoader creates a new Loader.
func NewLoader(cfg *config.Config, log *logger.Logger) *Loader {
	return &Loader{cfg: cfg, logger: log}
}

// PairQuote is one raw row of the spot export: the two legs of the cross,
// keyed by the base pair's date column.
type PairQuote struct {
	Date   time.Time
	AUDUSD float64
	USDJPY float64
}

// dateLayouts are tried in order when parsing export dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
	"02-Jan-06",
}

// LoadSpotPairs reads the spot export. Each row carries both legs; rows
// with an unparseable date or a missing leg are dropped here, before any
// resampling.
func (l *Loader) LoadSpotPairs(r io.Reader) ([]PairQuote, error) {
	cols := l.cfg.Columns

	records, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	dateIdx, err := columnIndex(header, cols.AUDUSDDate)
	if err != nil {
		return nil, err
	}
	audIdx, err := columnIndex(header, cols.AUDUSDLast)
	if err != nil {
		return nil, err
	}
	jpyIdx, err := columnIndex(header, cols.USDJPYLast)
	if err != nil {
		return nil, err
	}

	var quotes []PairQuote
	dropped := 0
	for _, rec := range records {
		date, ok := parseDate(field(rec, dateIdx))
		if !ok {
			dropped++
			continue
		}
		aud := parseValue(field(rec, audIdx))
		jpy := parseValue(field(rec, jpyIdx))
		if timeseries.IsMissing(aud) || timeseries.IsMissing(jpy) {
			dropped++
			continue
		}
		quotes = append(quotes, PairQuote{Date: date, AUDUSD: aud, USDJPY: jpy})
	}

	l.logger.WithFields(map[string]interface{}{
		"rows":    len(quotes),
		"dropped": dropped,
	}).Debug("Loaded spot pairs")

	return quotes, nil
}

// LoadForwardPoints reads the 1M forward-points export. Values stay raw
// (pips); zero handling belongs to the forward builder.
func (l *Loader) LoadForwardPoints(r io.Reader) (timeseries.Series, error) {
	cols := l.cfg.Columns
	return l.loadSeries(r, cols.ForwardDate, cols.ForwardValue, "forward points")
}

// LoadRiskReversal reads the 1M 25-delta risk-reversal export.
func (l *Loader) LoadRiskReversal(r io.Reader) (timeseries.Series, error) {
	cols := l.cfg.Columns
	return l.loadSeries(r, cols.RiskReversalDate, cols.RiskReversalValue, "risk reversal")
}

// loadSeries reads a single date/value series. Rows with unparseable dates
// are dropped; unparseable or empty values become missing markers so the
// resampler can skip them.
func (l *Loader) loadSeries(r io.Reader, dateCol, valueCol, what string) (timeseries.Series, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return timeseries.Series{}, err
	}

	dateIdx, err := columnIndex(header, dateCol)
	if err != nil {
		return timeseries.Series{}, err
	}
	valIdx, err := columnIndex(header, valueCol)
	if err != nil {
		return timeseries.Series{}, err
	}

	var dates []time.Time
	var values []float64
	dropped := 0
	for _, rec := range records {
		date, ok := parseDate(field(rec, dateIdx))
		if !ok {
			dropped++
			continue
		}
		dates = append(dates, date)
		values = append(values, parseValue(field(rec, valIdx)))
	}

	l.logger.WithFields(map[string]interface{}{
		"series":  what,
		"rows":    len(dates),
		"dropped": dropped,
	}).Debug("Loaded series")

	return timeseries.New(dates, values), nil
}

// OpenSpotPairs loads the spot export from the configured path.
func (l *Loader) OpenSpotPairs() ([]PairQuote, error) {
	f, err := os.Open(l.cfg.Inputs.SpotPath)
	if err != nil {
		return nil, fmt.Errorf("open spot file: %w", err)
	}
	defer f.Close()
	return l.LoadSpotPairs(f)
}

// OpenForwardPoints loads the forward-points export from the configured path.
func (l *Loader) OpenForwardPoints() (timeseries.Series, error) {
	f, err := os.Open(l.cfg.Inputs.ForwardPointsPath)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("open forward points file: %w", err)
	}
	defer f.Close()
	return l.LoadForwardPoints(f)
}

// OpenRiskReversal loads the risk-reversal export from the configured path.
func (l *Loader) OpenRiskReversal() (timeseries.Series, error) {
	f, err := os.Open(l.cfg.Inputs.RiskReversalPath)
	if err != nil {
		return timeseries.Series{}, fmt.Errorf("open risk reversal file: %w", err)
	}
	defer f.Close()
	return l.LoadRiskReversal(f)
}

func readCSV(r io.Reader) ([][]string, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("csv file is empty")
	}
	return all[1:], all[0], nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.TrimSpace(h) == strings.TrimSpace(name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header", name)
}

func field(rec []string, idx int) string {
	if idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseValue(s string) float64 {
	if s == "" {
		return timeseries.Missing()
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return timeseries.Missing()
	}
	return v
}
