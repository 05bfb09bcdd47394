package roi

// DefaultUpliftSteps are the uplift fractions plotted by the sensitivity chart.
var DefaultUpliftSteps = []float64{0, 0.05, 0.10, 0.15, 0.20, 0.25, 0.30}

// SweepPoint is one sample of the uplift sensitivity curve.
type SweepPoint struct {
	UpliftPercent        float64 `json:"uplift_percent"`
	Savings              float64 `json:"savings"`
	EffectiveRatePercent float64 `json:"effective_rate_percent"`
}

// SweepUplift re-evaluates net monthly savings at the configured volume for each
// uplift in upliftValues, treating analytics as enabled with that uplift.
func SweepUplift(p Parameters, upliftValues []float64) []SweepPoint {
	points := make([]SweepPoint, 0, len(upliftValues))
	for _, u := range upliftValues {
		rate := ComputeEfficiency(p.BaseAutomationRate, true, u)
		points = append(points, SweepPoint{
			UpliftPercent:        u * 100,
			Savings:              SavingsAt(p, float64(p.InquiryVolume), rate),
			EffectiveRatePercent: rate * 100,
		})
	}
	return points
}
