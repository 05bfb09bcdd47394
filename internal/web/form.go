package web

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/roi"
	"github.com/emiliopalmerini/assistroi/internal/web/templates"
)

// bounds are the accepted ranges of form inputs; values outside are clamped.
type bounds struct{ min, max float64 }

var formBounds = map[string]bounds{
	"volume":                  {100, 5000},
	"hourly_cost":             {1000, 5000},
	"handle_minutes":          {1, 60},
	"internal_volume":         {10, 1000},
	"manager_cost":            {2000, 10000},
	"internal_handle_minutes": {1, 60},
	"rate":                    {30, 90},
	"monthly_cost":            {0, 500000},
	"setup_cost":              {0, 2000000},
	"amortization":            {1, 36},
	"uplift":                  {5, 30},
	"storage_days":            {1, 3650},
}

func clamp(name string, v float64) float64 {
	b, ok := formBounds[name]
	if !ok {
		return v
	}
	return math.Min(math.Max(v, b.min), b.max)
}

// calcInput is a parsed calculator request.
type calcInput struct {
	Parameters roi.Parameters
	Industry   domain.Industry
	History    domain.HistorySettings
}

// parseInput builds parameters from query or form values: configured
// defaults, then the industry preset, then every value present. Numeric
// fields are clamped to formBounds; unparseable numbers are errors.
func (s *Server) parseInput(values url.Values) (calcInput, error) {
	in := calcInput{
		Parameters: s.defaults.Parameters,
		History:    s.defaults.History,
	}
	p := &in.Parameters

	if key := values.Get("industry"); key != "" {
		ind, err := s.catalog.Lookup(key)
		if err != nil {
			return calcInput{}, err
		}
		in.Industry = ind
		*p = ind.Apply(*p)
	}

	var errs []domain.FieldError
	number := func(name string, apply func(float64)) {
		raw := values.Get(name)
		if raw == "" {
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, domain.FieldError{Field: name, Message: fmt.Sprintf("invalid number %q", raw)})
			return
		}
		apply(clamp(name, v))
	}
	boolean := func(name string, apply func(bool)) {
		all := values[name]
		if len(all) == 0 {
			return
		}
		// Checkboxes post a hidden "false" followed by "true" when checked.
		v, err := strconv.ParseBool(all[len(all)-1])
		if err != nil {
			v = all[len(all)-1] == "on"
		}
		apply(v)
	}

	number("volume", func(v float64) { p.InquiryVolume = int(math.Round(v)) })
	number("hourly_cost", func(v float64) { p.StaffHourlyCost = v })
	number("handle_minutes", func(v float64) { p.AvgHandleMinutesExternal = v })
	boolean("internal", func(v bool) { p.InternalChannelEnabled = v })
	number("internal_volume", func(v float64) { p.InternalQuestionVolume = int(math.Round(v)) })
	number("manager_cost", func(v float64) { p.ManagerHourlyCost = v })
	number("internal_handle_minutes", func(v float64) { p.AvgHandleMinutesInternal = v })
	number("rate", func(v float64) { p.BaseAutomationRate = v / 100 })
	number("monthly_cost", func(v float64) { p.AssistantMonthlyCost = v })
	number("setup_cost", func(v float64) { p.SetupCost = v })
	number("amortization", func(v float64) { p.AmortizationMonths = int(math.Round(v)) })
	boolean("analytics", func(v bool) { p.AnalyticsEnabled = v })
	number("uplift", func(v float64) { p.AnalyticsUpliftFraction = v / 100 })
	number("storage_days", func(v float64) { in.History.StorageDays = int(math.Round(v)) })
	if f := values.Get("frequency"); f != "" {
		in.History.Frequency = domain.ParseAnalysisFrequency(f)
	}

	if len(errs) > 0 {
		return calcInput{}, &domain.ValidationError{Fields: errs}
	}
	if err := domain.Validate(in.Parameters); err != nil {
		return calcInput{}, err
	}
	return in, nil
}

// formValues converts parameters back into what the form displays.
func formValues(in calcInput) templates.FormValues {
	p := in.Parameters
	return templates.FormValues{
		Industry:              in.Industry.ID,
		Volume:                p.InquiryVolume,
		HourlyCost:            p.StaffHourlyCost,
		HandleMinutes:         p.AvgHandleMinutesExternal,
		Internal:              p.InternalChannelEnabled,
		InternalVolume:        p.InternalQuestionVolume,
		ManagerCost:           p.ManagerHourlyCost,
		InternalHandleMinutes: p.AvgHandleMinutesInternal,
		RatePercent:           math.Round(p.BaseAutomationRate*1000) / 10,
		MonthlyCost:           p.AssistantMonthlyCost,
		SetupCost:             p.SetupCost,
		Amortization:          p.AmortizationMonths,
		Analytics:             p.AnalyticsEnabled,
		UpliftPercent:         math.Round(p.AnalyticsUpliftFraction*1000) / 10,
		StorageDays:           in.History.StorageDays,
		Frequency:             string(in.History.Frequency),
	}
}

// encodeInput renders in as query values accepted by parseInput.
func encodeInput(in calcInput) url.Values {
	f := formValues(in)
	v := url.Values{}
	if f.Industry != "" {
		v.Set("industry", f.Industry)
	}
	v.Set("volume", strconv.Itoa(f.Volume))
	v.Set("hourly_cost", strconv.FormatFloat(f.HourlyCost, 'f', -1, 64))
	v.Set("handle_minutes", strconv.FormatFloat(f.HandleMinutes, 'f', -1, 64))
	v.Set("internal", strconv.FormatBool(f.Internal))
	v.Set("internal_volume", strconv.Itoa(f.InternalVolume))
	v.Set("manager_cost", strconv.FormatFloat(f.ManagerCost, 'f', -1, 64))
	v.Set("internal_handle_minutes", strconv.FormatFloat(f.InternalHandleMinutes, 'f', -1, 64))
	v.Set("rate", strconv.FormatFloat(f.RatePercent, 'f', -1, 64))
	v.Set("monthly_cost", strconv.FormatFloat(f.MonthlyCost, 'f', -1, 64))
	v.Set("setup_cost", strconv.FormatFloat(f.SetupCost, 'f', -1, 64))
	v.Set("amortization", strconv.Itoa(f.Amortization))
	v.Set("analytics", strconv.FormatBool(f.Analytics))
	v.Set("uplift", strconv.FormatFloat(f.UpliftPercent, 'f', -1, 64))
	v.Set("storage_days", strconv.Itoa(f.StorageDays))
	v.Set("frequency", f.Frequency)
	return v
}
