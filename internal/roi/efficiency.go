package roi

// MaxEffectiveRate is the share of inquiries the assistant can ever deflect.
// The remainder is assumed to need human judgment regardless of tuning.
const MaxEffectiveRate = 0.95

// EfficiencyResult reports the automation rate before and after analytics uplift.
type EfficiencyResult struct {
	BaseRatePercent      float64 `json:"base_rate_percent"`
	EffectiveRatePercent float64 `json:"effective_rate_percent"`
}

// ComputeEfficiency applies the optional analytics uplift to baseRate and caps
// the result at MaxEffectiveRate.
func ComputeEfficiency(baseRate float64, analyticsEnabled bool, upliftFraction float64) float64 {
	adjusted := baseRate
	if analyticsEnabled {
		adjusted = baseRate * (1 + upliftFraction)
	}
	return capRate(adjusted)
}

// Efficiency computes the EfficiencyResult for p.
func Efficiency(p Parameters) EfficiencyResult {
	effective := ComputeEfficiency(p.BaseAutomationRate, p.AnalyticsEnabled, p.AnalyticsUpliftFraction)
	return EfficiencyResult{
		BaseRatePercent:      p.BaseAutomationRate * 100,
		EffectiveRatePercent: effective * 100,
	}
}

func capRate(rate float64) float64 {
	if rate > MaxEffectiveRate {
		return MaxEffectiveRate
	}
	return rate
}
