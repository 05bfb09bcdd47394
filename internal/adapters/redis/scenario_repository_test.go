package redis

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/ports"
)

func TestKeys(t *testing.T) {
	r := NewScenarioRepository(nil, "")
	assert.Equal(t, "assistroi:scenario:abc", r.scenarioKey("abc"))
	assert.Equal(t, "assistroi:scenarios", r.indexKey())
	assert.Equal(t, "assistroi:scenario_names", r.namesKey())

	custom := NewScenarioRepository(nil, "test:")
	assert.Equal(t, "test:scenario:abc", custom.scenarioKey("abc"))
}

func TestScenarioCodec(t *testing.T) {
	desc := "weekly review"
	s, err := domain.NewScenario("pilot", "education", domain.DefaultParameters(), domain.HistorySettings{
		StorageDays: 30,
		Frequency:   domain.AnalysisWeekly,
	})
	require.NoError(t, err)
	s.Description = &desc

	data, err := encodeScenario(s)
	require.NoError(t, err)

	got, err := decodeScenario(data)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Parameters, got.Parameters)
	assert.Equal(t, s.History, got.History)
	assert.Equal(t, desc, *got.Description)
	assert.Equal(t, s.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestDecodeScenario_Invalid(t *testing.T) {
	_, err := decodeScenario([]byte("{not json"))
	assert.Error(t, err)
}

// Runs against a live server when ASSISTROI_TEST_REDIS_ADDR is set.
func TestScenarioRepository_Live(t *testing.T) {
	addr := os.Getenv("ASSISTROI_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ASSISTROI_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	prefix := "assistroi-test:" + t.Name() + ":"
	repo := NewScenarioRepository(client, prefix)
	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	})

	s, err := domain.NewScenario("live", "it", domain.DefaultParameters(), domain.DefaultHistorySettings())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.GetByName(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	s.Name = "renamed"
	require.NoError(t, repo.Save(ctx, s))
	_, err = repo.GetByName(ctx, "live")
	assert.True(t, errors.Is(err, domain.ErrScenarioNotFound))

	list, err := repo.List(ctx, ports.ListScenariosOptions{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, s.ID))
	_, err = repo.GetByID(ctx, s.ID)
	assert.True(t, errors.Is(err, domain.ErrScenarioNotFound))
}
