package roi

// BreakEvenCeiling is the largest monthly volume the solver searches.
const BreakEvenCeiling = 10000

// BreakEven is the outcome of the break-even search.
// When Found is false, Volume is BreakEvenCeiling and only means that savings
// stayed non-positive across the modelled range. The smallest reportable
// volume is 1: when savings are already positive at zero external inquiries
// (the internal channel alone covers the assistant), the result is
// {Volume: 1, Found: true}.
type BreakEven struct {
	Volume int  `json:"volume"`
	Found  bool `json:"found"`
}

// FindBreakEven returns the smallest monthly external volume in
// [1, BreakEvenCeiling] at which net savings turn strictly positive.
//
// The search uses the base automation rate: analytics uplift is excluded so the
// answer reflects the assistant as deployed, without further learning.
func FindBreakEven(p Parameters) BreakEven {
	rate := capRate(p.BaseAutomationRate)
	savings := func(v int) float64 {
		return SavingsAt(p, float64(v), rate)
	}

	low, high := 0, BreakEvenCeiling
	for high-low > 1 {
		mid := (low + high) / 2
		if savings(mid) > 0 {
			high = mid
		} else {
			low = mid
		}
	}

	return BreakEven{Volume: high, Found: savings(high) > 0}
}
