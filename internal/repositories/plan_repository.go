package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"tabiplan/internal/models/response_models"
	"tabiplan/pkg/utils"
)

// PlanRepository stores finished plans as one flat record collection.
// Writes are whole-collection read-modify-write; the last writer wins.
type PlanRepository interface {
	Save(ctx context.Context, record response_models.SavedPlanRecord) (response_models.SavedPlanRecord, error)
	List(ctx context.Context) ([]response_models.SavedPlanRecord, error)
	Get(ctx context.Context, id string) (response_models.SavedPlanRecord, error)
	Delete(ctx context.Context, id string) error
}

const planStoreFile = "saved_trip_plans.json"

type filePlanRepository struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFilePlanRepository(dataDir string) PlanRepository {
	return &filePlanRepository{
		path: filepath.Join(dataDir, planStoreFile),
		now:  time.Now,
	}
}

// readAll defaults to an empty collection on missing or corrupt data.
func (r *filePlanRepository) readAll() []response_models.SavedPlanRecord {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}
	var records []response_models.SavedPlanRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("Corrupt plan store at %s, starting empty: %v", r.path, err)
		return nil
	}
	return records
}

func (r *filePlanRepository) writeAll(records []response_models.SavedPlanRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageError, err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageError, err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStorageError, err)
	}
	return nil
}

func (r *filePlanRepository) Save(ctx context.Context, record response_models.SavedPlanRecord) (response_models.SavedPlanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stampRecord(&record, r.now())
	records := upsertRecord(r.readAll(), record)
	if err := r.writeAll(records); err != nil {
		return response_models.SavedPlanRecord{}, err
	}
	return record, nil
}

func (r *filePlanRepository) List(ctx context.Context) ([]response_models.SavedPlanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll(), nil
}

func (r *filePlanRepository) Get(ctx context.Context, id string) (response_models.SavedPlanRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return findRecord(r.readAll(), id)
}

func (r *filePlanRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.readAll()
	filtered := removeRecord(records, id)
	if len(filtered) == len(records) {
		return utils.ErrPlanNotFound
	}
	return r.writeAll(filtered)
}

// stampRecord assigns an id when absent and stamps the save time.
func stampRecord(record *response_models.SavedPlanRecord, now time.Time) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.SavedAt = utils.FormatRFC3339JST(now)
}

// upsertRecord prepends record, replacing any existing record with the
// same id, so listings come back most-recent save first.
func upsertRecord(records []response_models.SavedPlanRecord, record response_models.SavedPlanRecord) []response_models.SavedPlanRecord {
	return append([]response_models.SavedPlanRecord{record}, removeRecord(records, record.ID)...)
}

func removeRecord(records []response_models.SavedPlanRecord, id string) []response_models.SavedPlanRecord {
	filtered := make([]response_models.SavedPlanRecord, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func findRecord(records []response_models.SavedPlanRecord, id string) (response_models.SavedPlanRecord, error) {
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return response_models.SavedPlanRecord{}, utils.ErrPlanNotFound
}
