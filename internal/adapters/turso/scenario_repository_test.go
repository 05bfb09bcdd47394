package turso_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emiliopalmerini/assistroi/internal/adapters/turso"
	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/ports"
)

func newScenario(t *testing.T, name, industry string) *domain.Scenario {
	t.Helper()
	s, err := domain.NewScenario(name, industry, domain.DefaultParameters(), domain.DefaultHistorySettings())
	if err != nil {
		t.Fatalf("NewScenario: %v", err)
	}
	return s
}

func TestScenarioRepository_SaveAndGet(t *testing.T) {
	repo := turso.NewScenarioRepository(testDB(t))
	ctx := context.Background()

	desc := "baseline for the helpdesk"
	s := newScenario(t, "baseline", "it")
	s.Description = &desc
	s.History.Frequency = domain.AnalysisWeekly

	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "baseline" || got.IndustryID != "it" {
		t.Errorf("unexpected scenario: %+v", got)
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("description not round-tripped: %v", got.Description)
	}
	if got.Parameters != s.Parameters {
		t.Errorf("parameters differ:\n got  %+v\n want %+v", got.Parameters, s.Parameters)
	}
	if got.History.Frequency != domain.AnalysisWeekly || got.History.StorageDays != 90 {
		t.Errorf("unexpected history settings: %+v", got.History)
	}
	if !got.CreatedAt.Equal(s.CreatedAt.Truncate(time.Second)) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, s.CreatedAt)
	}

	byName, err := repo.GetByName(ctx, "baseline")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if byName.ID != s.ID {
		t.Errorf("GetByName returned %s, want %s", byName.ID, s.ID)
	}
}

func TestScenarioRepository_SaveUpdatesExisting(t *testing.T) {
	repo := turso.NewScenarioRepository(testDB(t))
	ctx := context.Background()

	s := newScenario(t, "pilot", "retail")
	if err := repo.Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	s.Parameters.InquiryVolume = 1200
	s.UpdatedAt = s.UpdatedAt.Add(time.Hour)
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Parameters.InquiryVolume != 1200 {
		t.Errorf("InquiryVolume = %d, want 1200", got.Parameters.InquiryVolume)
	}

	all, err := repo.List(ctx, ports.ListScenariosOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 scenario after upsert, got %d", len(all))
	}
}

func TestScenarioRepository_NotFound(t *testing.T) {
	repo := turso.NewScenarioRepository(testDB(t))
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Errorf("GetByID error = %v, want ErrScenarioNotFound", err)
	}
	if _, err := repo.GetByName(ctx, "missing"); !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Errorf("GetByName error = %v, want ErrScenarioNotFound", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Errorf("Delete error = %v, want ErrScenarioNotFound", err)
	}
}

func TestScenarioRepository_ListFiltersAndLimits(t *testing.T) {
	repo := turso.NewScenarioRepository(testDB(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, tc := range []struct{ name, industry string }{
		{"a", "it"}, {"b", "finance"}, {"c", "it"},
	} {
		s := newScenario(t, tc.name, tc.industry)
		s.UpdatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := repo.Save(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	all, err := repo.List(ctx, ports.ListScenariosOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(all))
	}
	if all[0].Name != "c" {
		t.Errorf("expected most recently updated first, got %s", all[0].Name)
	}

	it := "it"
	filtered, err := repo.List(ctx, ports.ListScenariosOptions{IndustryID: &it})
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 2 {
		t.Errorf("expected 2 it scenarios, got %d", len(filtered))
	}

	limited, err := repo.List(ctx, ports.ListScenariosOptions{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 scenario with limit, got %d", len(limited))
	}
}

func TestScenarioRepository_Delete(t *testing.T) {
	repo := turso.NewScenarioRepository(testDB(t))
	ctx := context.Background()

	s := newScenario(t, "temp", "services")
	if err := repo.Save(ctx, s); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, s.ID); !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}
