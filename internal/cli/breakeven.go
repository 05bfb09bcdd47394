package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/assistroi/internal/roi"
	"github.com/emiliopalmerini/assistroi/internal/util"
)

var breakevenCmd = &cobra.Command{
	Use:   "breakeven",
	Short: "Find the break-even inquiry volume",
	Long: `Find the smallest monthly inquiry volume at which the assistant pays for
itself. The search covers 0 to 10000 inquiries and uses the base automation
rate; analytics uplift is not counted.`,
	RunE: runBreakeven,
}

var (
	breakevenParams paramFlags
	breakevenJSON   bool
)

func init() {
	rootCmd.AddCommand(breakevenCmd)
	addParameterFlags(breakevenCmd, &breakevenParams)
	breakevenCmd.Flags().BoolVar(&breakevenJSON, "json", false, "Print result as JSON")
}

func runBreakeven(cmd *cobra.Command, args []string) error {
	p, _, err := breakevenParams.resolve(cmd)
	if err != nil {
		return err
	}
	be := roi.FindBreakEven(p)

	out := cmd.OutOrStdout()
	if breakevenJSON {
		return writeJSON(out, be)
	}

	if !be.Found {
		fmt.Fprintf(out, "Break-even not reached within %d inquiries/month.\n", roi.BreakEvenCeiling)
		return nil
	}
	fmt.Fprintf(out, "Break-even: %d inquiries/month\n", be.Volume)
	fmt.Fprintf(out, "Assistant cost to cover: %s/month\n", util.FormatCurrency(roi.AssistantTotalCost(p), defaults.Currency))
	if p.InquiryVolume >= be.Volume {
		fmt.Fprintf(out, "Current volume %d is above break-even.\n", p.InquiryVolume)
	} else {
		fmt.Fprintf(out, "Current volume %d is %d below break-even.\n", p.InquiryVolume, be.Volume-p.InquiryVolume)
	}
	return nil
}
