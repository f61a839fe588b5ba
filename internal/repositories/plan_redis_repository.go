package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"tabiplan/internal/models/response_models"
	"tabiplan/pkg/utils"
)

const planStoreKey = "saved_trip_plans"

// redisPlanRepository keeps the whole record collection under one key,
// mirroring the file store's read-modify-write semantics.
type redisPlanRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisPlanRepository(client *redis.Client) PlanRepository {
	return &redisPlanRepository{client: client, now: time.Now}
}

func (r *redisPlanRepository) readAll(ctx context.Context) ([]response_models.SavedPlanRecord, error) {
	data, err := r.client.Get(ctx, planStoreKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrStorageError, err)
	}
	var records []response_models.SavedPlanRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("Corrupt plan store under %s, starting empty: %v", planStoreKey, err)
		return nil, nil
	}
	return records, nil
}

func (r *redisPlanRepository) writeAll(ctx context.Context, records []response_models.SavedPlanRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageError, err)
	}
	if err := r.client.Set(ctx, planStoreKey, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageError, err)
	}
	return nil
}

func (r *redisPlanRepository) Save(ctx context.Context, record response_models.SavedPlanRecord) (response_models.SavedPlanRecord, error) {
	records, err := r.readAll(ctx)
	if err != nil {
		return response_models.SavedPlanRecord{}, err
	}
	stampRecord(&record, r.now())
	if err := r.writeAll(ctx, upsertRecord(records, record)); err != nil {
		return response_models.SavedPlanRecord{}, err
	}
	return record, nil
}

func (r *redisPlanRepository) List(ctx context.Context) ([]response_models.SavedPlanRecord, error) {
	return r.readAll(ctx)
}

func (r *redisPlanRepository) Get(ctx context.Context, id string) (response_models.SavedPlanRecord, error) {
	records, err := r.readAll(ctx)
	if err != nil {
		return response_models.SavedPlanRecord{}, err
	}
	return findRecord(records, id)
}

func (r *redisPlanRepository) Delete(ctx context.Context, id string) error {
	records, err := r.readAll(ctx)
	if err != nil {
		return err
	}
	filtered := removeRecord(records, id)
	if len(filtered) == len(records) {
		return utils.ErrPlanNotFound
	}
	return r.writeAll(ctx, filtered)
}
