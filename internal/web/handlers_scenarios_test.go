package web

import (
	"net/http"
	"strings"
	"testing"
)

func TestScenarios_Lifecycle(t *testing.T) {
	env := newTestEnv(t, true)

	w := env.do(t, http.MethodPost, "/api/scenarios", strings.NewReader(`{"name":"Pilot","industry_id":"healthcare"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decode[scenarioResponse](t, w.Body)
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}
	if created.Parameters.BaseAutomationRate != 0.60 {
		t.Errorf("expected healthcare preset rate, got %v", created.Parameters.BaseAutomationRate)
	}

	// Saving under the same name updates in place.
	w = env.do(t, http.MethodPost, "/api/scenarios", strings.NewReader(`{"name":"Pilot","industry_id":"it"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", w.Code, w.Body.String())
	}
	updated := decode[scenarioResponse](t, w.Body)
	if updated.ID != created.ID {
		t.Errorf("expected same ID %s, got %s", created.ID, updated.ID)
	}

	list := decode[[]scenarioResponse](t, env.do(t, http.MethodGet, "/api/scenarios", nil).Body)
	if len(list) != 1 {
		t.Fatalf("expected 1 scenario, got %d", len(list))
	}
	if list[0].IndustryID != "it" {
		t.Errorf("expected industry it, got %q", list[0].IndustryID)
	}

	w = env.do(t, http.MethodGet, "/api/scenarios/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	got := decode[scenarioResponse](t, w.Body)
	if got.Results.MonthlySavings != updated.Results.MonthlySavings {
		t.Errorf("stored scenario evaluates differently: %v vs %v", got.Results.MonthlySavings, updated.Results.MonthlySavings)
	}

	if w := env.do(t, http.MethodDelete, "/api/scenarios/"+created.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/scenarios/"+created.ID, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/api/scenarios/"+created.ID, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting twice, got %d", w.Code)
	}
}

func TestScenarios_SaveValidation(t *testing.T) {
	env := newTestEnv(t, true)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing name", `{"name":"  "}`, http.StatusBadRequest},
		{"bad json", `{"name":`, http.StatusBadRequest},
		{"unknown industry", `{"name":"x","industry_id":"mining"}`, http.StatusBadRequest},
		{"invalid parameters", `{"name":"x","parameters":{"staff_hourly_cost":0}}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/scenarios", strings.NewReader(tt.body))
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestScenarios_FilterByIndustry(t *testing.T) {
	env := newTestEnv(t, true)

	for _, body := range []string{
		`{"name":"A","industry_id":"retail"}`,
		`{"name":"B","industry_id":"finance"}`,
		`{"name":"C","industry_id":"retail"}`,
	} {
		if w := env.do(t, http.MethodPost, "/api/scenarios", strings.NewReader(body)); w.Code != http.StatusCreated {
			t.Fatalf("save failed: %d %s", w.Code, w.Body.String())
		}
	}

	list := decode[[]scenarioResponse](t, env.do(t, http.MethodGet, "/api/scenarios?industry=retail", nil).Body)
	if len(list) != 2 {
		t.Errorf("expected 2 retail scenarios, got %d", len(list))
	}
	list = decode[[]scenarioResponse](t, env.do(t, http.MethodGet, "/api/scenarios?limit=1", nil).Body)
	if len(list) != 1 {
		t.Errorf("expected limit 1, got %d", len(list))
	}
}

func TestScenarios_NoStore(t *testing.T) {
	env := newTestEnv(t, false)

	for _, req := range []struct{ method, target string }{
		{http.MethodGet, "/api/scenarios"},
		{http.MethodPost, "/api/scenarios"},
		{http.MethodGet, "/api/scenarios/abc"},
		{http.MethodDelete, "/api/scenarios/abc"},
	} {
		if w := env.do(t, req.method, req.target, nil); w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s %s: expected 503, got %d", req.method, req.target, w.Code)
		}
	}
}
