package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/assistroi/internal/ports"
	"github.com/emiliopalmerini/assistroi/internal/roi"
	"github.com/emiliopalmerini/assistroi/internal/util"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Evaluate a parameter set",
	Long: `Evaluate the ROI of a support assistant for one parameter set.

Unset flags fall back to the configured defaults; --industry applies a sector
preset before explicit flags are applied.

Examples:
  assistroi calc
  assistroi calc --industry finance --volume 1200
  assistroi calc --rate 60 --analytics=false --json`,
	RunE: runCalc,
}

var (
	calcParams paramFlags
	calcJSON   bool
)

func init() {
	rootCmd.AddCommand(calcCmd)
	addParameterFlags(calcCmd, &calcParams)
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "Print results as JSON")
}

func runCalc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, ind, err := calcParams.resolve(cmd)
	if err != nil {
		return err
	}
	results := roi.Aggregate(p)

	err = withApp(ctx, AppOptions{}, func(app *AppContext) error {
		app.record(ctx, &ports.Evaluation{Source: "cli", IndustryID: ind.ID, Parameters: p, Results: results})
		return nil
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if calcJSON {
		return writeJSON(out, results)
	}
	printSummary(out, "ROI summary", ind, p, results, defaults.Currency)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func paybackLabel(pb roi.Payback) string {
	if !pb.Recoverable {
		return "not recoverable"
	}
	return util.FormatMonths(pb.Months)
}

func breakEvenLabel(be roi.BreakEven) string {
	if !be.Found {
		return fmt.Sprintf("not reached within %d/month", roi.BreakEvenCeiling)
	}
	return fmt.Sprintf("%d inquiries/month", be.Volume)
}

func printSummary(w io.Writer, title string, ind domain.Industry, p roi.Parameters, r roi.Results, currency string) {
	s := theme.Default()
	cur := func(v float64) string { return util.FormatCurrency(v, currency) }

	rows := []string{
		s.Title.Render(title),
		s.Row("Industry", industryLabel(ind)),
		s.Row("Efficiency", fmt.Sprintf("%s → %s",
			util.FormatPercent(r.BaseEfficiencyPercent), util.FormatPercent(r.EffectiveEfficiencyPercent))),
		s.Subtitle.Render("Savings"),
		s.Label.Render("Monthly savings") + s.Signed(r.MonthlySavings, cur(r.MonthlySavings)),
		s.Row("Analytics uplift benefit", cur(r.AnalyticsUpliftBenefit)),
		s.Label.Render("Total monthly value") + s.Signed(r.TotalMonthlyValue, cur(r.TotalMonthlyValue)),
		s.Row("Annual savings", cur(r.AnnualSavings)),
		s.Label.Render("Payback") + s.Payback(r.Payback.Recoverable, paybackLabel(r.Payback)),
		s.Row("FTE saved", fmt.Sprintf("%.2f", r.FTESaved)),
		s.Row("Break-even", breakEvenLabel(r.BreakEven)),
		s.Subtitle.Render("Monthly cost"),
		s.Row("Current staff cost", cur(r.CurrentTotalCost)),
		s.Row("Residual staff cost", cur(r.ResidualTotalCost)),
		s.Row("Assistant cost", cur(r.AssistantTotalCost)),
		s.Row("New total cost", cur(r.NewTotalCost)),
	}
	if p.InternalChannelEnabled {
		rows = append(rows, s.Muted.Render(fmt.Sprintf("internal channel: %d questions, %s → %s",
			p.InternalQuestionVolume, cur(r.Internal.CurrentCost), cur(r.Internal.ResidualCost))))
	}

	fmt.Fprintln(w, s.Card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
}
