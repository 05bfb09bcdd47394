package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/assistroi/internal/pkg/tui/components"
	"github.com/emiliopalmerini/assistroi/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/assistroi/internal/roi"
	"github.com/emiliopalmerini/assistroi/internal/util"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Show how analytics uplift changes monthly savings",
	Long: `Re-evaluate monthly savings for a range of analytics uplift values.

Examples:
  assistroi sweep
  assistroi sweep --steps 0,10,20,30,40`,
	RunE: runSweep,
}

var (
	sweepParams paramFlags
	sweepSteps  string
	sweepJSON   bool
)

func init() {
	rootCmd.AddCommand(sweepCmd)
	addParameterFlags(sweepCmd, &sweepParams)
	sweepCmd.Flags().StringVar(&sweepSteps, "steps", "", "Comma-separated uplift percentages (default 0,5,...,30)")
	sweepCmd.Flags().BoolVar(&sweepJSON, "json", false, "Print points as JSON")
}

// parseSteps converts "0,5,10" into uplift fractions.
func parseSteps(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return roi.DefaultUpliftSteps, nil
	}
	var steps []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid uplift step %q: %w", part, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid uplift step %q: must be a finite number", part)
		}
		if v < 0 {
			return nil, fmt.Errorf("invalid uplift step %q: must not be negative", part)
		}
		steps = append(steps, v/100)
	}
	return steps, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	p, _, err := sweepParams.resolve(cmd)
	if err != nil {
		return err
	}
	steps, err := parseSteps(sweepSteps)
	if err != nil {
		return err
	}

	points := roi.SweepUplift(p, steps)
	if sweepJSON {
		return writeJSON(cmd.OutOrStdout(), points)
	}
	printSweep(cmd.OutOrStdout(), points, defaults.Currency)
	return nil
}

func printSweep(w io.Writer, points []roi.SweepPoint, currency string) {
	s := theme.Default()
	maxSavings := 0.0
	for _, pt := range points {
		maxSavings = math.Max(maxSavings, pt.Savings)
	}

	fmt.Fprintln(w, s.Title.Render("Uplift sensitivity"))
	fmt.Fprintf(w, "%-8s %-10s %-16s\n", "UPLIFT", "RATE", "SAVINGS")
	for _, pt := range points {
		fmt.Fprintf(w, "%-8s %-10s %-16s %s\n",
			util.FormatPercent(pt.UpliftPercent),
			util.FormatPercent(pt.EffectiveRatePercent),
			util.FormatCurrency(pt.Savings, currency),
			components.NewBar(30, pt.Savings, maxSavings).View())
	}
}
