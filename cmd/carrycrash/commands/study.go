package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/carrycrash/internal/pipeline"
	"github.com/wonny/carrycrash/pkg/config"
	"github.com/wonny/carrycrash/pkg/logger"
)

// studyCmd represents the study command
var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Carry-crash study",
	Long: `Runs the AUDJPY carry-crash study over the configured CSV inputs.

The study reports:
- Event-study conditional statistics (warning vs non-warning weeks)
- Predictive regressions with Newey-West standard errors

Example:
  go run ./cmd/carrycrash study run
  go run ./cmd/carrycrash study run --horizon 8 --min-weeks 104`,
}

var (
	studyRunCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline",
		Long: `Loads spot, forward-points and risk-reversal exports, builds the weekly
dataset and runs the event study and regressions.

Flags:
  --spot        spot CSV path
  --forwards    forward points CSV path
  --rr          risk reversal CSV path
  --horizon     forward return horizon in weeks (default 4)
  --quantile    bottom dfear quantile flagged as warning (default 0.10)
  --min-weeks   weeks before the expanding z-score activates (default 52)
  --anchor      weekly anchor day (default Friday)

Example:
  go run ./cmd/carrycrash study run
  go run ./cmd/carrycrash study run --horizon 8 --quantile 0.05`,
		RunE: runStudy,
	}

	// Flags
	studySpotPath string
	studyFwdPath  string
	studyRRPath   string
	studyHorizon  int
	studyQuantile float64
	studyMinWeeks int
	studyAnchor   string
)

func init() {
	rootCmd.AddCommand(studyCmd)
	studyCmd.AddCommand(studyRunCmd)

	// Flags
	studyRunCmd.Flags().StringVar(&studySpotPath, "spot", "", "spot CSV path (default from config)")
	studyRunCmd.Flags().StringVar(&studyFwdPath, "forwards", "", "forward points CSV path (default from config)")
	studyRunCmd.Flags().StringVar(&studyRRPath, "rr", "", "risk reversal CSV path (default from config)")
	studyRunCmd.Flags().IntVar(&studyHorizon, "horizon", 0, "forward return horizon in weeks")
	studyRunCmd.Flags().Float64Var(&studyQuantile, "quantile", 0, "warning quantile on dfear")
	studyRunCmd.Flags().IntVar(&studyMinWeeks, "min-weeks", 0, "min weeks before z-score activates")
	studyRunCmd.Flags().StringVar(&studyAnchor, "anchor", "", "weekly anchor day (e.g. Friday)")
}

func runStudy(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyStudyFlags(cfg)
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	PrintStudyHeader(cfg)

	orch, err := pipeline.NewOrchestrator(cfg, log)
	if err != nil {
		return err
	}

	res, err := orch.Run()
	if err != nil {
		log.WithError(err).Error("Study failed")
		return err
	}

	PrintSection(fmt.Sprintf("Results  (%s ~ %s, %d aligned weeks)",
		res.FirstWeek.Format("2006-01-02"),
		res.LastWeek.Format("2006-01-02"),
		res.AlignedRows))

	res.WriteReport(os.Stdout)

	if verbose {
		fmt.Println()
		res.WriteDiagnostics(os.Stdout)
	}

	PrintCompletion(res.Duration)
	return nil
}

// applyStudyFlags layers explicit flag values over the loaded config.
func applyStudyFlags(cfg *config.Config) {
	if studySpotPath != "" {
		cfg.Inputs.SpotPath = studySpotPath
	}
	if studyFwdPath != "" {
		cfg.Inputs.ForwardPointsPath = studyFwdPath
	}
	if studyRRPath != "" {
		cfg.Inputs.RiskReversalPath = studyRRPath
	}
	if studyHorizon > 0 {
		cfg.Analysis.HorizonWeeks = studyHorizon
	}
	if studyQuantile > 0 {
		cfg.Analysis.WarningQuantile = studyQuantile
	}
	if studyMinWeeks > 0 {
		cfg.Analysis.MinExpandingWeeks = studyMinWeeks
	}
	if studyAnchor != "" {
		cfg.Analysis.WeekAnchor = studyAnchor
	}
}
