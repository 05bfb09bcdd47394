package turso

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/infrastructure/database"
	"github.com/emiliopalmerini/assistroi/internal/ports"
	"github.com/emiliopalmerini/assistroi/internal/roi"
	"github.com/emiliopalmerini/assistroi/internal/util"
)

const scenarioColumns = `id, name, description, industry_id, parameters, storage_days, analysis_frequency, created_at, updated_at`

type ScenarioRepository struct {
	db *sql.DB
}

func NewScenarioRepository(db *sql.DB) *ScenarioRepository {
	return &ScenarioRepository{db: db}
}

// Save inserts the scenario or replaces the existing row with the same ID.
func (r *ScenarioRepository) Save(ctx context.Context, s *domain.Scenario) error {
	params, err := json.Marshal(s.Parameters)
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO scenarios (`+scenarioColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			industry_id = excluded.industry_id,
			parameters = excluded.parameters,
			storage_days = excluded.storage_days,
			analysis_frequency = excluded.analysis_frequency,
			updated_at = excluded.updated_at`,
		s.ID,
		s.Name,
		util.NullStringPtr(s.Description),
		s.IndustryID,
		string(params),
		s.History.StorageDays,
		string(s.History.Frequency),
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

func (r *ScenarioRepository) GetByID(ctx context.Context, id string) (*domain.Scenario, error) {
	s, err := database.WithRetry(ctx, database.DefaultRetries, func() (*domain.Scenario, error) {
		return scanScenario(r.db.QueryRowContext(ctx, `SELECT `+scenarioColumns+` FROM scenarios WHERE id = ?`, id))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario %q: %w", id, err)
	}
	return s, nil
}

func (r *ScenarioRepository) GetByName(ctx context.Context, name string) (*domain.Scenario, error) {
	s, err := database.WithRetry(ctx, database.DefaultRetries, func() (*domain.Scenario, error) {
		return scanScenario(r.db.QueryRowContext(ctx, `SELECT `+scenarioColumns+` FROM scenarios WHERE name = ?`, name))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario by name %q: %w", name, err)
	}
	return s, nil
}

func (r *ScenarioRepository) List(ctx context.Context, opts ports.ListScenariosOptions) ([]*domain.Scenario, error) {
	query := `SELECT ` + scenarioColumns + ` FROM scenarios`
	var args []any
	if opts.IndustryID != nil {
		query += ` WHERE industry_id = ?`
		args = append(args, *opts.IndustryID)
	}
	query += ` ORDER BY updated_at DESC, name`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	scenarios, err := database.WithRetry(ctx, database.DefaultRetries, func() ([]*domain.Scenario, error) {
		return r.query(ctx, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	return scenarios, nil
}

func (r *ScenarioRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Scenario, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []*domain.Scenario
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, rows.Err()
}

func (r *ScenarioRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("failed to delete scenario %q: %w", id, domain.ErrScenarioNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(row rowScanner) (*domain.Scenario, error) {
	var (
		s           domain.Scenario
		description sql.NullString
		params      string
		frequency   string
		createdAt   string
		updatedAt   string
	)

	err := row.Scan(&s.ID, &s.Name, &description, &s.IndustryID, &params,
		&s.History.StorageDays, &frequency, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrScenarioNotFound
	}
	if err != nil {
		return nil, err
	}

	var p roi.Parameters
	if err := json.Unmarshal([]byte(params), &p); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}

	s.Description = util.NullStringToPtr(description)
	s.Parameters = p
	s.History.Frequency = domain.ParseAnalysisFrequency(frequency)
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &s, nil
}
