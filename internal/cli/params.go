package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/roi"
)

// paramFlags holds the raw values of the shared parameter flags. Rates are
// entered as percentages.
type paramFlags struct {
	industry string

	volume        int
	hourlyCost    float64
	handleMinutes float64

	internal              bool
	internalVolume        int
	managerCost           float64
	internalHandleMinutes float64

	ratePercent  float64
	monthlyCost  float64
	setupCost    float64
	amortization int
	workHours    float64

	analytics     bool
	upliftPercent float64
}

func addParameterFlags(cmd *cobra.Command, f *paramFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.industry, "industry", "i", "", "Industry preset (see 'assistroi presets'); sets rate and handle time")

	flags.IntVar(&f.volume, "volume", 0, "Monthly external inquiries")
	flags.Float64Var(&f.hourlyCost, "hourly-cost", 0, "Staff cost per hour")
	flags.Float64Var(&f.handleMinutes, "handle-minutes", 0, "Average minutes per external inquiry")

	flags.BoolVar(&f.internal, "internal", false, "Include the internal (manager) question channel")
	flags.IntVar(&f.internalVolume, "internal-volume", 0, "Monthly internal questions")
	flags.Float64Var(&f.managerCost, "manager-cost", 0, "Manager cost per hour")
	flags.Float64Var(&f.internalHandleMinutes, "internal-handle-minutes", 0, "Average minutes per internal question")

	flags.Float64Var(&f.ratePercent, "rate", 0, "Base automation rate in percent")
	flags.Float64Var(&f.monthlyCost, "monthly-cost", 0, "Assistant subscription per month")
	flags.Float64Var(&f.setupCost, "setup-cost", 0, "One-off setup cost")
	flags.IntVar(&f.amortization, "amortization", 0, "Months over which setup cost is amortised")
	flags.Float64Var(&f.workHours, "work-hours", 0, "Staff working hours per month")

	flags.BoolVar(&f.analytics, "analytics", false, "Enable question-history analytics uplift")
	flags.Float64Var(&f.upliftPercent, "uplift", 0, "Analytics uplift in percent")
}

// resolve starts from the configured defaults, applies the industry preset and
// then every flag the user set explicitly, and validates the result.
func (f *paramFlags) resolve(cmd *cobra.Command) (roi.Parameters, domain.Industry, error) {
	p := defaults.Parameters
	ind := domain.FallbackIndustry

	if f.industry != "" {
		var err error
		ind, err = catalog.Lookup(f.industry)
		if err != nil {
			return roi.Parameters{}, domain.Industry{}, err
		}
		p = ind.Apply(p)
	}

	changed := cmd.Flags().Changed
	if changed("volume") {
		p.InquiryVolume = f.volume
	}
	if changed("hourly-cost") {
		p.StaffHourlyCost = f.hourlyCost
	}
	if changed("handle-minutes") {
		p.AvgHandleMinutesExternal = f.handleMinutes
	}
	if changed("internal") {
		p.InternalChannelEnabled = f.internal
	}
	if changed("internal-volume") {
		p.InternalQuestionVolume = f.internalVolume
	}
	if changed("manager-cost") {
		p.ManagerHourlyCost = f.managerCost
	}
	if changed("internal-handle-minutes") {
		p.AvgHandleMinutesInternal = f.internalHandleMinutes
	}
	if changed("rate") {
		p.BaseAutomationRate = f.ratePercent / 100
	}
	if changed("monthly-cost") {
		p.AssistantMonthlyCost = f.monthlyCost
	}
	if changed("setup-cost") {
		p.SetupCost = f.setupCost
	}
	if changed("amortization") {
		p.AmortizationMonths = f.amortization
	}
	if changed("work-hours") {
		p.StaffWorkHoursPerMonth = f.workHours
	}
	if changed("analytics") {
		p.AnalyticsEnabled = f.analytics
	}
	if changed("uplift") {
		p.AnalyticsUpliftFraction = f.upliftPercent / 100
	}

	if err := domain.Validate(p); err != nil {
		return roi.Parameters{}, domain.Industry{}, err
	}
	return p, ind, nil
}

func industryLabel(ind domain.Industry) string {
	if ind.Name == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", ind.Name, ind.ID)
}
