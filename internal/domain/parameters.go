package domain

import (
	"math"

	"github.com/emiliopalmerini/assistroi/internal/roi"
)

// DefaultParameters returns the parameter set a new analysis starts from.
func DefaultParameters() roi.Parameters {
	return roi.Parameters{
		InquiryVolume:            500,
		StaffHourlyCost:          2500,
		AvgHandleMinutesExternal: 10,
		InternalChannelEnabled:   true,
		InternalQuestionVolume:   300,
		ManagerHourlyCost:        3500,
		AvgHandleMinutesInternal: 15,
		BaseAutomationRate:       0.70,
		AssistantMonthlyCost:     100000,
		SetupCost:                500000,
		AmortizationMonths:       12,
		StaffWorkHoursPerMonth:   160,
		AnalyticsEnabled:         true,
		AnalyticsUpliftFraction:  0.15,
	}
}

// Validate checks the engine's input contract. The engine itself never
// re-validates, so every entry point (CLI, web, stores) calls this first.
// Every float field must be finite, including fields of disabled features,
// since parameters are echoed back in JSON responses.
func Validate(p roi.Parameters) error {
	var fields []FieldError
	add := func(field, msg string) {
		fields = append(fields, FieldError{Field: field, Message: msg})
	}
	// check reports a non-finite value, or msg when invalid(v) holds.
	check := func(field string, v float64, invalid func(float64) bool, msg string) {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			add(field, "must be a finite number")
		case invalid != nil && invalid(v):
			add(field, msg)
		}
	}
	positive := func(v float64) bool { return v <= 0 }
	negative := func(v float64) bool { return v < 0 }

	if p.InquiryVolume < 0 {
		add("inquiry_volume", "must not be negative")
	}
	check("staff_hourly_cost", p.StaffHourlyCost, positive, "must be positive")
	check("avg_handle_minutes_external", p.AvgHandleMinutesExternal, positive, "must be positive")
	check("base_automation_rate", p.BaseAutomationRate, func(v float64) bool { return v < 0 || v >= 1 }, "must be in [0, 1)")
	check("assistant_monthly_cost", p.AssistantMonthlyCost, negative, "must not be negative")
	check("setup_cost", p.SetupCost, negative, "must not be negative")
	if p.AmortizationMonths <= 0 {
		add("amortization_months", "must be positive")
	}
	check("staff_work_hours_per_month", p.StaffWorkHoursPerMonth, positive, "must be positive")

	if p.InternalChannelEnabled {
		if p.InternalQuestionVolume < 0 {
			add("internal_question_volume", "must not be negative")
		}
		check("manager_hourly_cost", p.ManagerHourlyCost, positive, "must be positive")
		check("avg_handle_minutes_internal", p.AvgHandleMinutesInternal, positive, "must be positive")
	} else {
		check("manager_hourly_cost", p.ManagerHourlyCost, nil, "")
		check("avg_handle_minutes_internal", p.AvgHandleMinutesInternal, nil, "")
	}

	if p.AnalyticsEnabled {
		check("analytics_uplift_fraction", p.AnalyticsUpliftFraction, negative, "must not be negative")
	} else {
		check("analytics_uplift_fraction", p.AnalyticsUpliftFraction, nil, "")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
