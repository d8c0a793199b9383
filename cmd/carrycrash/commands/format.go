package commands

import (
	"fmt"
	"time"

	"github.com/wonny/carrycrash/pkg/config"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// Every command renders headers and sections the same way
// ═══════════════════════════════════════════════════════════

// PrintStudyHeader prints the run banner with the resolved parameters.
func PrintStudyHeader(cfg *config.Config) {
	a := cfg.Analysis
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  AUDJPY Carry-Crash Study")
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  Anchor    : %s close\n", a.WeekAnchor)
	fmt.Printf("  Horizon   : %d weeks\n", a.HorizonWeeks)
	fmt.Printf("  Warning q : %.2f\n", a.WarningQuantile)
	fmt.Printf("  Min weeks : %d\n", a.MinExpandingWeeks)
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()
}

// PrintSection prints a section divider with a title.
func PrintSection(title string) {
	fmt.Println()
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  %s\n", title)
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintCompletion prints the run completion footer.
func PrintCompletion(duration time.Duration) {
	fmt.Println()
	fmt.Printf("Study completed in %.2fs\n", duration.Seconds())
}
