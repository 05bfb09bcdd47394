package web

import (
	"errors"
	"net/url"
	"testing"

	"github.com/emiliopalmerini/assistroi/internal/domain"
)

func TestParseInput_Defaults(t *testing.T) {
	env := newTestEnv(t, false)

	in, err := env.server.parseInput(url.Values{})
	if err != nil {
		t.Fatalf("parseInput: %v", err)
	}
	if in.Parameters != domain.DefaultParameters() {
		t.Errorf("expected default parameters, got %+v", in.Parameters)
	}
	if in.History != domain.DefaultHistorySettings() {
		t.Errorf("expected default history, got %+v", in.History)
	}
}

func TestParseInput_IndustryThenOverrides(t *testing.T) {
	env := newTestEnv(t, false)

	in, err := env.server.parseInput(url.Values{
		"industry":       {"it"},
		"handle_minutes": {"20"},
	})
	if err != nil {
		t.Fatalf("parseInput: %v", err)
	}
	if in.Industry.ID != "it" {
		t.Errorf("expected industry it, got %q", in.Industry.ID)
	}
	if in.Parameters.BaseAutomationRate != 0.75 {
		t.Errorf("expected preset rate 0.75, got %v", in.Parameters.BaseAutomationRate)
	}
	if in.Parameters.AvgHandleMinutesExternal != 20 {
		t.Errorf("expected explicit handle time 20, got %v", in.Parameters.AvgHandleMinutesExternal)
	}
}

func TestParseInput_Clamps(t *testing.T) {
	env := newTestEnv(t, false)

	in, err := env.server.parseInput(url.Values{
		"volume":       {"99999"},
		"rate":         {"5"},
		"amortization": {"0"},
		"uplift":       {"80"},
	})
	if err != nil {
		t.Fatalf("parseInput: %v", err)
	}
	p := in.Parameters
	if p.InquiryVolume != 5000 {
		t.Errorf("expected volume clamped to 5000, got %d", p.InquiryVolume)
	}
	if p.BaseAutomationRate != 0.30 {
		t.Errorf("expected rate clamped to 0.30, got %v", p.BaseAutomationRate)
	}
	if p.AmortizationMonths != 1 {
		t.Errorf("expected amortization clamped to 1, got %d", p.AmortizationMonths)
	}
	if p.AnalyticsUpliftFraction != 0.30 {
		t.Errorf("expected uplift clamped to 0.30, got %v", p.AnalyticsUpliftFraction)
	}
}

func TestParseInput_CheckboxPattern(t *testing.T) {
	env := newTestEnv(t, false)

	in, err := env.server.parseInput(url.Values{"analytics": {"false"}, "internal": {"false", "true"}})
	if err != nil {
		t.Fatalf("parseInput: %v", err)
	}
	if in.Parameters.AnalyticsEnabled {
		t.Error("unchecked analytics box should disable analytics")
	}
	if !in.Parameters.InternalChannelEnabled {
		t.Error("checked internal box should enable internal channel")
	}
}

func TestParseInput_InvalidNumber(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.server.parseInput(url.Values{"volume": {"lots"}, "setup_cost": {"NaN"}})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(verr.Fields))
	}
	if !errors.Is(err, domain.ErrInvalidParameters) {
		t.Error("expected error to match ErrInvalidParameters")
	}
}

func TestParseInput_UnknownIndustry(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.server.parseInput(url.Values{"industry": {"shipping"}})
	if !errors.Is(err, domain.ErrUnknownIndustry) {
		t.Errorf("expected ErrUnknownIndustry, got %v", err)
	}
}

func TestEncodeInput_RoundTrips(t *testing.T) {
	env := newTestEnv(t, false)

	in, err := env.server.parseInput(url.Values{"industry": {"retail"}, "volume": {"1200"}, "analytics": {"false"}})
	if err != nil {
		t.Fatal(err)
	}
	again, err := env.server.parseInput(encodeInput(in))
	if err != nil {
		t.Fatalf("parse encoded: %v", err)
	}
	if again.Parameters != in.Parameters {
		t.Errorf("parameters changed across encode:\n%+v\n%+v", in.Parameters, again.Parameters)
	}
	if again.Industry.ID != "retail" {
		t.Errorf("expected industry retail, got %q", again.Industry.ID)
	}
}
