// Package roi models the return on deploying a support assistant that deflects
// routine inquiries away from human staff.
//
// Every function in this package is pure: results are recomputed from a
// Parameters value on each call and nothing is cached between calls.
// Parameters are expected to be validated by the caller (see domain.Validate);
// the engine does not re-check ranges.
package roi

// Parameters is the complete input of one ROI evaluation.
type Parameters struct {
	// External channel: end-user inquiries handled by staff.
	InquiryVolume            int     `json:"inquiry_volume" yaml:"inquiry_volume"`
	StaffHourlyCost          float64 `json:"staff_hourly_cost" yaml:"staff_hourly_cost"`
	AvgHandleMinutesExternal float64 `json:"avg_handle_minutes_external" yaml:"avg_handle_minutes_external"`

	// Internal channel: escalations answered by managers.
	InternalChannelEnabled   bool    `json:"internal_channel_enabled" yaml:"internal_channel_enabled"`
	InternalQuestionVolume   int     `json:"internal_question_volume" yaml:"internal_question_volume"`
	ManagerHourlyCost        float64 `json:"manager_hourly_cost" yaml:"manager_hourly_cost"`
	AvgHandleMinutesInternal float64 `json:"avg_handle_minutes_internal" yaml:"avg_handle_minutes_internal"`

	BaseAutomationRate   float64 `json:"base_automation_rate" yaml:"base_automation_rate"`
	AssistantMonthlyCost float64 `json:"assistant_monthly_cost" yaml:"assistant_monthly_cost"`
	SetupCost            float64 `json:"setup_cost" yaml:"setup_cost"`
	AmortizationMonths   int     `json:"amortization_months" yaml:"amortization_months"`

	// StaffWorkHoursPerMonth only converts hours into FTE counts.
	StaffWorkHoursPerMonth float64 `json:"staff_work_hours_per_month" yaml:"staff_work_hours_per_month"`

	AnalyticsEnabled        bool    `json:"analytics_enabled" yaml:"analytics_enabled"`
	AnalyticsUpliftFraction float64 `json:"analytics_uplift_fraction" yaml:"analytics_uplift_fraction"`
}

// AssistantTotalCost is the monthly assistant charge plus the amortised setup cost.
func AssistantTotalCost(p Parameters) float64 {
	return p.AssistantMonthlyCost + p.SetupCost/float64(p.AmortizationMonths)
}
