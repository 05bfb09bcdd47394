package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/ports"
	"github.com/emiliopalmerini/assistroi/internal/roi"
	"github.com/emiliopalmerini/assistroi/internal/util"
)

var scenarioCmd = &cobra.Command{
	Use:     "scenario",
	Aliases: []string{"scenarios"},
	Short:   "Manage saved scenarios",
	Long: `Save, inspect and compare named parameter sets.

Examples:
  assistroi scenario save baseline --industry it
  assistroi scenario save pilot --volume 800 --description "Q3 pilot"
  assistroi scenario list
  assistroi scenario show baseline
  assistroi scenario compare baseline pilot
  assistroi scenario delete pilot`,
}

var scenarioSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save or update a scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioSave,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenarios",
	RunE:  runScenarioList,
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Show a scenario and its results",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioShow,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete <name|id>",
	Short: "Delete a scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioDelete,
}

var scenarioCompareCmd = &cobra.Command{
	Use:   "compare <name|id> <name|id>...",
	Short: "Compare results of several scenarios side by side",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runScenarioCompare,
}

// Flags
var (
	scenarioParams       paramFlags
	scenarioDescription  string
	scenarioStorageDays  int
	scenarioFrequency    string
	scenarioListIndustry string
	scenarioListLimit    int
	scenarioShowJSON     bool
)

func init() {
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.AddCommand(scenarioSaveCmd, scenarioListCmd, scenarioShowCmd, scenarioDeleteCmd, scenarioCompareCmd)

	addParameterFlags(scenarioSaveCmd, &scenarioParams)
	scenarioSaveCmd.Flags().StringVarP(&scenarioDescription, "description", "d", "", "Scenario description")
	scenarioSaveCmd.Flags().IntVar(&scenarioStorageDays, "storage-days", 0, "Days of question history to keep")
	scenarioSaveCmd.Flags().StringVar(&scenarioFrequency, "frequency", "", "History analysis frequency: weekly, monthly, quarterly")

	scenarioListCmd.Flags().StringVar(&scenarioListIndustry, "industry", "", "Filter by industry ID")
	scenarioListCmd.Flags().IntVarP(&scenarioListLimit, "limit", "n", 50, "Maximum scenarios to list")

	scenarioShowCmd.Flags().BoolVar(&scenarioShowJSON, "json", false, "Print scenario and results as JSON")
}

// findScenario resolves key as a name first, then as an ID.
func findScenario(ctx context.Context, repo ports.ScenarioRepository, key string) (*domain.Scenario, error) {
	s, err := repo.GetByName(ctx, key)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, domain.ErrScenarioNotFound) {
		return nil, err
	}
	s, err = repo.GetByID(ctx, key)
	if errors.Is(err, domain.ErrScenarioNotFound) {
		return nil, fmt.Errorf("scenario %q: %w", key, domain.ErrScenarioNotFound)
	}
	return s, err
}

// industryFor returns the preset for id, or a bare industry carrying the ID
// when it is no longer in the catalog.
func industryFor(id string) domain.Industry {
	if id == "" {
		return domain.Industry{}
	}
	ind, err := catalog.Lookup(id)
	if err != nil {
		return domain.Industry{ID: id, Name: id}
	}
	return ind
}

func runScenarioSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("scenario name must not be empty")
	}

	p, ind, err := scenarioParams.resolve(cmd)
	if err != nil {
		return err
	}

	history := defaults.History
	if cmd.Flags().Changed("storage-days") {
		if scenarioStorageDays <= 0 {
			return fmt.Errorf("storage-days must be positive")
		}
		history.StorageDays = scenarioStorageDays
	}
	if cmd.Flags().Changed("frequency") {
		history.Frequency = domain.ParseAnalysisFrequency(scenarioFrequency)
	}

	return withApp(ctx, AppOptions{Store: true}, func(app *AppContext) error {
		existing, err := app.ScenarioRepo.GetByName(ctx, name)
		if err != nil && !errors.Is(err, domain.ErrScenarioNotFound) {
			return err
		}

		s, err := domain.NewScenario(name, ind.ID, p, history)
		if err != nil {
			return err
		}
		if existing != nil {
			s.ID = existing.ID
			s.CreatedAt = existing.CreatedAt
			if !cmd.Flags().Changed("description") {
				s.Description = existing.Description
			}
		}
		if scenarioDescription != "" {
			s.Description = &scenarioDescription
		}

		if err := app.ScenarioRepo.Save(ctx, s); err != nil {
			return err
		}

		results := s.Evaluate()
		app.record(ctx, &ports.Evaluation{Source: "cli", IndustryID: s.IndustryID, ScenarioID: &s.ID, Parameters: p, Results: results})

		verb := "Saved"
		if existing != nil {
			verb = "Updated"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s scenario %q (%s): monthly savings %s, payback %s\n",
			verb, s.Name, s.ID, util.FormatCurrency(results.MonthlySavings, defaults.Currency), paybackLabel(results.Payback))
		return nil
	})
}

func runScenarioList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	opts := ports.ListScenariosOptions{Limit: scenarioListLimit}
	if scenarioListIndustry != "" {
		opts.IndustryID = &scenarioListIndustry
	}

	return withApp(ctx, AppOptions{Store: true}, func(app *AppContext) error {
		scenarios, err := app.ScenarioRepo.List(ctx, opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(scenarios) == 0 {
			fmt.Fprintln(out, "No scenarios saved yet. Use 'assistroi scenario save <name>'.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tINDUSTRY\tVOLUME\tMONTHLY SAVINGS\tPAYBACK\tUPDATED")
		for _, s := range scenarios {
			r := s.Evaluate()
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
				s.Name, s.IndustryID, s.Parameters.InquiryVolume,
				util.FormatCurrency(r.MonthlySavings, defaults.Currency), paybackLabel(r.Payback),
				s.UpdatedAt.Local().Format(time.DateTime))
		}
		return w.Flush()
	})
}

type scenarioView struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	IndustryID  string                 `json:"industry_id"`
	History     domain.HistorySettings `json:"history"`
	Parameters  roi.Parameters         `json:"parameters"`
	Results     roi.Results            `json:"results"`
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   string                 `json:"updated_at"`
}

func runScenarioShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withApp(ctx, AppOptions{Store: true}, func(app *AppContext) error {
		s, err := findScenario(ctx, app.ScenarioRepo, args[0])
		if err != nil {
			return err
		}
		results := s.Evaluate()

		out := cmd.OutOrStdout()
		if scenarioShowJSON {
			return writeJSON(out, scenarioView{
				ID:          s.ID,
				Name:        s.Name,
				Description: s.Description,
				IndustryID:  s.IndustryID,
				History:     s.History,
				Parameters:  s.Parameters,
				Results:     results,
				CreatedAt:   s.CreatedAt.Format(time.RFC3339),
				UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
			})
		}

		if s.Description != nil {
			fmt.Fprintln(out, *s.Description)
		}
		fmt.Fprintf(out, "History: %d days, analysed %s\n", s.History.StorageDays, s.History.Frequency)
		printSummary(out, s.Name, industryFor(s.IndustryID), s.Parameters, results, defaults.Currency)
		return nil
	})
}

func runScenarioDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withApp(ctx, AppOptions{Store: true}, func(app *AppContext) error {
		s, err := findScenario(ctx, app.ScenarioRepo, args[0])
		if err != nil {
			return err
		}
		if err := app.ScenarioRepo.Delete(ctx, s.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted scenario %q\n", s.Name)
		return nil
	})
}

type comparedScenario struct {
	scenario *domain.Scenario
	results  roi.Results
}

// compareScenarios loads and evaluates every key concurrently, keeping the
// order of keys.
func compareScenarios(ctx context.Context, repo ports.ScenarioRepository, keys []string) ([]comparedScenario, error) {
	out := make([]comparedScenario, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		g.Go(func() error {
			s, err := findScenario(gctx, repo, key)
			if err != nil {
				return err
			}
			out[i] = comparedScenario{scenario: s, results: s.Evaluate()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func runScenarioCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withApp(ctx, AppOptions{Store: true}, func(app *AppContext) error {
		compared, err := compareScenarios(ctx, app.ScenarioRepo, args)
		if err != nil {
			return err
		}

		cur := func(v float64) string { return util.FormatCurrency(v, defaults.Currency) }
		rows := []struct {
			label string
			value func(c comparedScenario) string
		}{
			{"industry", func(c comparedScenario) string { return c.scenario.IndustryID }},
			{"volume", func(c comparedScenario) string { return fmt.Sprintf("%d", c.scenario.Parameters.InquiryVolume) }},
			{"effective rate", func(c comparedScenario) string { return util.FormatPercent(c.results.EffectiveEfficiencyPercent) }},
			{"monthly savings", func(c comparedScenario) string { return cur(c.results.MonthlySavings) }},
			{"total monthly value", func(c comparedScenario) string { return cur(c.results.TotalMonthlyValue) }},
			{"annual savings", func(c comparedScenario) string { return cur(c.results.AnnualSavings) }},
			{"payback", func(c comparedScenario) string { return paybackLabel(c.results.Payback) }},
			{"FTE saved", func(c comparedScenario) string { return fmt.Sprintf("%.2f", c.results.FTESaved) }},
			{"break-even", func(c comparedScenario) string { return breakEvenLabel(c.results.BreakEven) }},
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		header := []string{""}
		for _, c := range compared {
			header = append(header, c.scenario.Name)
		}
		fmt.Fprintln(w, strings.Join(header, "\t"))
		for _, row := range rows {
			cells := []string{row.label}
			for _, c := range compared {
				cells = append(cells, row.value(c))
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}
		return w.Flush()
	})
}
