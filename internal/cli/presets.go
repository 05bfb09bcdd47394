package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/assistroi/internal/util"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List industry presets",
	Long: `List the industry presets available to --industry.

Each preset sets the base automation rate and the average handle time of
external inquiries. Presets can be replaced in the defaults file.`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

var presetsJSON bool

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.Flags().BoolVar(&presetsJSON, "json", false, "Print presets as JSON")
}

func runPresets(cmd *cobra.Command, args []string) error {
	industries := catalog.List()
	out := cmd.OutOrStdout()
	if presetsJSON {
		return writeJSON(out, industries)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAUTOMATION\tHANDLE TIME")
	for _, ind := range industries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f min\n", ind.ID, ind.Name, util.FormatPercent(ind.AutomationRate*100), ind.AvgHandleMinutes)
	}
	return w.Flush()
}
