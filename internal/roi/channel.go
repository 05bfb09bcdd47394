package roi

// ChannelCost is the monthly labour picture of one inquiry channel.
type ChannelCost struct {
	CurrentCost  float64 `json:"current_cost"`
	ResidualCost float64 `json:"residual_cost"`
	FTEBefore    float64 `json:"fte_before"`
	FTEAfter     float64 `json:"fte_after"`
}

// Savings is the labour cost removed by automation.
func (c ChannelCost) Savings() float64 {
	return c.CurrentCost - c.ResidualCost
}

// FTESaved is the staffing reduction in full-time equivalents.
func (c ChannelCost) FTESaved() float64 {
	return c.FTEBefore - c.FTEAfter
}

// ComputeChannelCost prices volume items per month before and after automation.
// Volume is treated as a continuous rate; residual volumes are fractional.
func ComputeChannelCost(volume, minutesPerItem, hourlyCost, effectiveRate, workHoursPerMonth float64) ChannelCost {
	hoursCurrent := volume * minutesPerItem / 60
	residualVolume := volume * (1 - effectiveRate)
	hoursResidual := residualVolume * minutesPerItem / 60

	return ChannelCost{
		CurrentCost:  hoursCurrent * hourlyCost,
		ResidualCost: hoursResidual * hourlyCost,
		FTEBefore:    hoursCurrent / workHoursPerMonth,
		FTEAfter:     hoursResidual / workHoursPerMonth,
	}
}

// externalChannel prices the end-user channel at volume.
func externalChannel(p Parameters, volume, rate float64) ChannelCost {
	return ComputeChannelCost(volume, p.AvgHandleMinutesExternal, p.StaffHourlyCost, rate, p.StaffWorkHoursPerMonth)
}

// internalChannel prices the manager-escalation channel, zero when disabled.
func internalChannel(p Parameters, rate float64) ChannelCost {
	if !p.InternalChannelEnabled {
		return ChannelCost{}
	}
	return ComputeChannelCost(float64(p.InternalQuestionVolume), p.AvgHandleMinutesInternal, p.ManagerHourlyCost, rate, p.StaffWorkHoursPerMonth)
}

// SavingsAt is the net monthly saving with volume external inquiries, the
// configured internal channel and both channels automated at rate.
func SavingsAt(p Parameters, volume, rate float64) float64 {
	ext := externalChannel(p, volume, rate)
	in := internalChannel(p, rate)
	return ext.Savings() + in.Savings() - AssistantTotalCost(p)
}
