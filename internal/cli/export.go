package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/assistroi/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an analysis as CSV, JSON, Markdown or HTML",
	Long: `Export the full analysis: every result, the uplift sensitivity table and
question insights.

When --output names a directory, the file is written there as
assistant_roi_analysis_YYYY-MM-DD.<ext>.

Examples:
  assistroi export --format csv --output .
  assistroi export --format html --output report.html
  assistroi export --scenario baseline --format md`,
	RunE: runExport,
}

// Flags
var (
	exportParams   paramFlags
	exportFormat   string
	exportOutput   string
	exportScenario string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	addParameterFlags(exportCmd, &exportParams)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv, json, md, html")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file or directory (default: stdout)")
	exportCmd.Flags().StringVarP(&exportScenario, "scenario", "s", "", "Export a saved scenario instead of flags")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format, err := report.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	opts := report.Options{
		Currency: defaults.Currency,
		History:  defaults.History,
		Insights: defaults.InsightsOrSample(),
		Now:      time.Now(),
	}

	var r *report.Report
	if exportScenario != "" {
		err = withApp(ctx, AppOptions{Store: true}, func(app *AppContext) error {
			s, err := findScenario(ctx, app.ScenarioRepo, exportScenario)
			if err != nil {
				return err
			}
			opts.Title = "Support Assistant ROI Analysis: " + s.Name
			opts.History = s.History
			opts.Industry = industryFor(s.IndustryID)
			r = report.Build(s.Parameters, opts)
			return nil
		})
		if err != nil {
			return err
		}
	} else {
		p, ind, err := exportParams.resolve(cmd)
		if err != nil {
			return err
		}
		opts.Industry = ind
		r = report.Build(p, opts)
	}

	var output io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		path := exportOutput
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, report.FileName(opts.Now, format))
		}
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = file.Close() }()
		output = file
		defer fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s report to %s\n", format, path)
	}

	return report.Write(output, r, format)
}
