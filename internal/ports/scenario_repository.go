package ports

import (
	"context"

	"github.com/emiliopalmerini/assistroi/internal/domain"
)

// ScenarioRepository persists saved scenarios.
// Lookups of missing scenarios return domain.ErrScenarioNotFound.
type ScenarioRepository interface {
	Save(ctx context.Context, scenario *domain.Scenario) error
	GetByID(ctx context.Context, id string) (*domain.Scenario, error)
	GetByName(ctx context.Context, name string) (*domain.Scenario, error)
	List(ctx context.Context, opts ListScenariosOptions) ([]*domain.Scenario, error)
	Delete(ctx context.Context, id string) error
}

type ListScenariosOptions struct {
	Limit      int
	IndustryID *string
}
