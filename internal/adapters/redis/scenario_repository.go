// Package redis stores scenarios in Redis for deployments that share state
// across several web instances without a Turso database.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/ports"
	"github.com/emiliopalmerini/assistroi/internal/roi"
)

const defaultKeyPrefix = "assistroi:"

// ScenarioRepository keeps each scenario as a JSON string and maintains a
// sorted set (score = updated_at) plus a name index for lookups.
type ScenarioRepository struct {
	client    *goredis.Client
	keyPrefix string
}

func NewScenarioRepository(client *goredis.Client, keyPrefix string) *ScenarioRepository {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &ScenarioRepository{client: client, keyPrefix: keyPrefix}
}

// NewClient connects to addr and verifies the connection.
func NewClient(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

type scenarioJSON struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	IndustryID  string         `json:"industry_id"`
	Parameters  roi.Parameters `json:"parameters"`
	StorageDays int            `json:"storage_days"`
	Frequency   string         `json:"analysis_frequency"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

func encodeScenario(s *domain.Scenario) ([]byte, error) {
	return json.Marshal(scenarioJSON{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		IndustryID:  s.IndustryID,
		Parameters:  s.Parameters,
		StorageDays: s.History.StorageDays,
		Frequency:   string(s.History.Frequency),
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

func decodeScenario(data []byte) (*domain.Scenario, error) {
	var sj scenarioJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	s := &domain.Scenario{
		ID:          sj.ID,
		Name:        sj.Name,
		Description: sj.Description,
		IndustryID:  sj.IndustryID,
		Parameters:  sj.Parameters,
		History: domain.HistorySettings{
			StorageDays: sj.StorageDays,
			Frequency:   domain.ParseAnalysisFrequency(sj.Frequency),
		},
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, sj.CreatedAt)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, sj.UpdatedAt)
	return s, nil
}

func (r *ScenarioRepository) scenarioKey(id string) string { return r.keyPrefix + "scenario:" + id }
func (r *ScenarioRepository) indexKey() string             { return r.keyPrefix + "scenarios" }
func (r *ScenarioRepository) namesKey() string             { return r.keyPrefix + "scenario_names" }

func (r *ScenarioRepository) Save(ctx context.Context, s *domain.Scenario) error {
	data, err := encodeScenario(s)
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}

	// Renames must drop the old name entry.
	prev, err := r.GetByID(ctx, s.ID)
	if err != nil && !errors.Is(err, domain.ErrScenarioNotFound) {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		if prev != nil && prev.Name != s.Name {
			pipe.HDel(ctx, r.namesKey(), prev.Name)
		}
		pipe.Set(ctx, r.scenarioKey(s.ID), data, 0)
		pipe.ZAdd(ctx, r.indexKey(), goredis.Z{Score: float64(s.UpdatedAt.Unix()), Member: s.ID})
		pipe.HSet(ctx, r.namesKey(), s.Name, s.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

func (r *ScenarioRepository) GetByID(ctx context.Context, id string) (*domain.Scenario, error) {
	data, err := r.client.Get(ctx, r.scenarioKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("failed to get scenario %q: %w", id, domain.ErrScenarioNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario %q: %w", id, err)
	}
	return decodeScenario(data)
}

func (r *ScenarioRepository) GetByName(ctx context.Context, name string) (*domain.Scenario, error) {
	id, err := r.client.HGet(ctx, r.namesKey(), name).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, fmt.Errorf("failed to get scenario by name %q: %w", name, domain.ErrScenarioNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario by name %q: %w", name, err)
	}
	return r.GetByID(ctx, id)
}

func (r *ScenarioRepository) List(ctx context.Context, opts ports.ListScenariosOptions) ([]*domain.Scenario, error) {
	ids, err := r.client.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.scenarioKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	var scenarios []*domain.Scenario
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Index entry without a value; skipped until the next Delete.
			continue
		}
		s, err := decodeScenario([]byte(str))
		if err != nil {
			return nil, err
		}
		if opts.IndustryID != nil && s.IndustryID != *opts.IndustryID {
			continue
		}
		scenarios = append(scenarios, s)
		if opts.Limit > 0 && len(scenarios) == opts.Limit {
			break
		}
	}
	return scenarios, nil
}

func (r *ScenarioRepository) Delete(ctx context.Context, id string) error {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, r.scenarioKey(id))
		pipe.ZRem(ctx, r.indexKey(), id)
		pipe.HDel(ctx, r.namesKey(), s.Name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}
