package roi

// Payback is the number of months needed to recover the setup cost.
// Recoverable is false when monthly savings are zero or negative; Months is
// then meaningless and left at zero.
type Payback struct {
	Months      float64 `json:"months"`
	Recoverable bool    `json:"recoverable"`
}

// Results is the full output of one evaluation.
type Results struct {
	BreakEven      BreakEven `json:"break_even"`
	MonthlySavings float64   `json:"monthly_savings"`
	AnnualSavings  float64   `json:"annual_savings"`
	Payback        Payback   `json:"payback"`
	FTESaved       float64   `json:"fte_saved"`

	CurrentTotalCost float64 `json:"current_total_cost"`
	// ResidualTotalCost is staff cost left after automation, both channels.
	ResidualTotalCost float64 `json:"residual_total_cost"`
	// NewTotalCost is ResidualTotalCost plus AssistantTotalCost.
	NewTotalCost       float64 `json:"new_total_cost"`
	AssistantTotalCost float64 `json:"assistant_total_cost"`

	// AnalyticsUpliftBenefit is priced from the base rate, not the capped
	// effective rate, so MonthlySavings+AnalyticsUpliftBenefit is an
	// approximation rather than an exact decomposition.
	AnalyticsUpliftBenefit float64 `json:"analytics_uplift_benefit"`
	TotalMonthlyValue      float64 `json:"total_monthly_value"`

	BaseEfficiencyPercent      float64 `json:"base_efficiency_percent"`
	EffectiveEfficiencyPercent float64 `json:"effective_efficiency_percent"`

	External ChannelCost `json:"external"`
	Internal ChannelCost `json:"internal"`
}

// Aggregate evaluates p. It is the single entry point presentation layers use.
func Aggregate(p Parameters) Results {
	rate := ComputeEfficiency(p.BaseAutomationRate, p.AnalyticsEnabled, p.AnalyticsUpliftFraction)

	ext := externalChannel(p, float64(p.InquiryVolume), rate)
	in := internalChannel(p, rate)
	assistant := AssistantTotalCost(p)

	current := ext.CurrentCost + in.CurrentCost
	residual := ext.ResidualCost + in.ResidualCost
	monthly := current - (residual + assistant)

	var payback Payback
	if monthly > 0 {
		payback = Payback{Months: p.SetupCost / monthly, Recoverable: true}
	}

	var uplift float64
	if p.AnalyticsEnabled {
		uplift = current * p.BaseAutomationRate * p.AnalyticsUpliftFraction
	}

	return Results{
		BreakEven:                  FindBreakEven(p),
		MonthlySavings:             monthly,
		AnnualSavings:              monthly * 12,
		Payback:                    payback,
		FTESaved:                   ext.FTESaved() + in.FTESaved(),
		CurrentTotalCost:           current,
		ResidualTotalCost:          residual,
		NewTotalCost:               residual + assistant,
		AssistantTotalCost:         assistant,
		AnalyticsUpliftBenefit:     uplift,
		TotalMonthlyValue:          monthly + uplift,
		BaseEfficiencyPercent:      p.BaseAutomationRate * 100,
		EffectiveEfficiencyPercent: rate * 100,
		External:                   ext,
		Internal:                   in,
	}
}
