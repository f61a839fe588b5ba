package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabiplan/internal/models/response_models"
	"tabiplan/pkg/utils"
)

func planRecord(id, summary string) response_models.SavedPlanRecord {
	return response_models.SavedPlanRecord{
		ID: id,
		Plan: response_models.Plan{
			Summary: summary,
			Itinerary: []response_models.PlanDay{
				{Day: 1, Date: "2025-07-01", Title: "到着", Items: []response_models.PlanItem{}},
			},
			Params: response_models.PlanParams{
				Activity:    "ラベンダー鑑賞",
				Destination: "北海道富良野",
				Budget:      88000,
			},
		},
		Params: response_models.WizardSnapshot{
			Activity: "ラベンダー鑑賞",
			Budget:   100000,
		},
	}
}

// runPlanRepositoryContract exercises the shared store semantics against
// any backend.
func runPlanRepositoryContract(t *testing.T, repo PlanRepository) {
	ctx := context.Background()

	// empty store
	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)

	err = repo.Delete(ctx, "missing")
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)

	// save assigns id and timestamp
	first, err := repo.Save(ctx, planRecord("", "最初のプラン"))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, first.SavedAt)

	second, err := repo.Save(ctx, planRecord("", "次のプラン"))
	require.NoError(t, err)

	// newest first
	records, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID)
	assert.Equal(t, first.ID, records[1].ID)

	// resave replaces in place and moves to the front
	updated := planRecord(first.ID, "更新されたプラン")
	_, err = repo.Save(ctx, updated)
	require.NoError(t, err)

	records, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, "更新されたプラン", records[0].Summary)

	got, err := repo.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "次のプラン", got.Summary)

	// the plan's generation-params echo and the wizard snapshot are
	// stored under distinct keys and both survive the round trip
	assert.Equal(t, second.Plan.Params, got.Plan.Params)
	assert.Equal(t, "北海道富良野", got.Plan.Params.Destination)
	assert.Equal(t, 88000, got.Plan.Params.Budget)
	assert.Equal(t, second.Params, got.Params)
	assert.Equal(t, 100000, got.Params.Budget)

	require.NoError(t, repo.Delete(ctx, first.ID))
	records, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, second.ID, records[0].ID)
}

func TestFilePlanRepository(t *testing.T) {
	runPlanRepositoryContract(t, NewFilePlanRepository(t.TempDir()))
}

func TestFilePlanRepositoryCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, planStoreFile), []byte("{not json"), 0o644))

	repo := NewFilePlanRepository(dir)
	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)

	// saving over the corrupt file works
	saved, err := repo.Save(context.Background(), planRecord("", "復旧"))
	require.NoError(t, err)

	got, err := repo.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "復旧", got.Summary)
}

func TestFilePlanRepositoryPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	saved, err := NewFilePlanRepository(dir).Save(ctx, planRecord("", "永続化"))
	require.NoError(t, err)

	got, err := NewFilePlanRepository(dir).Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "永続化", got.Summary)
}

func newTestRedisRepo(t *testing.T) PlanRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisPlanRepository(client)
}

func TestRedisPlanRepository(t *testing.T) {
	runPlanRepositoryContract(t, newTestRedisRepo(t))
}

func TestRedisPlanRepositoryCorruptValueStartsEmpty(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, mr.Set(planStoreKey, "{not json"))

	repo := NewRedisPlanRepository(client)
	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}
