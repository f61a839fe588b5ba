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

const (
	historyStoreFile = "trip_app_history.json"

	// Only the most recent entries are kept.
	maxHistoryEntries = 20
)

type HistoryRepository interface {
	Add(ctx context.Context, entry response_models.HistoryEntry) error
	List(ctx context.Context) ([]response_models.HistoryEntry, error)
	Clear(ctx context.Context) error
}

type fileHistoryRepository struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileHistoryRepository(dataDir string) HistoryRepository {
	return &fileHistoryRepository{
		path: filepath.Join(dataDir, historyStoreFile),
		now:  time.Now,
	}
}

func (r *fileHistoryRepository) readAll() []response_models.HistoryEntry {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}
	var entries []response_models.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("Corrupt history store at %s, starting empty: %v", r.path, err)
		return nil
	}
	return entries
}

func (r *fileHistoryRepository) writeAll(entries []response_models.HistoryEntry) error {
	data, err := json.Marshal(entries)
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

func (r *fileHistoryRepository) Add(ctx context.Context, entry response_models.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.Timestamp = utils.FormatRFC3339JST(r.now())

	entries := append([]response_models.HistoryEntry{entry}, r.readAll()...)
	if len(entries) > maxHistoryEntries {
		entries = entries[:maxHistoryEntries]
	}
	return r.writeAll(entries)
}

func (r *fileHistoryRepository) List(ctx context.Context) ([]response_models.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll(), nil
}

func (r *fileHistoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", utils.ErrStorageError, err)
	}
	return nil
}
