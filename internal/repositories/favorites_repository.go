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

	"tabiplan/internal/models/response_models"
	"tabiplan/pkg/utils"
)

const favoritesStoreFile = "trip_app_favorites.json"

type FavoritesRepository interface {
	// Toggle adds the item when absent and removes it when present,
	// reporting whether it ended up added.
	Toggle(ctx context.Context, item response_models.FavoriteItem) (bool, error)
	List(ctx context.Context) ([]response_models.FavoriteItem, error)
	IsFavorite(ctx context.Context, id string) (bool, error)
}

type fileFavoritesRepository struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewFileFavoritesRepository(dataDir string) FavoritesRepository {
	return &fileFavoritesRepository{
		path: filepath.Join(dataDir, favoritesStoreFile),
		now:  time.Now,
	}
}

func (r *fileFavoritesRepository) readAll() []response_models.FavoriteItem {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}
	var items []response_models.FavoriteItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Corrupt favorites store at %s, starting empty: %v", r.path, err)
		return nil
	}
	return items
}

func (r *fileFavoritesRepository) writeAll(items []response_models.FavoriteItem) error {
	data, err := json.Marshal(items)
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

func (r *fileFavoritesRepository) Toggle(ctx context.Context, item response_models.FavoriteItem) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.readAll()
	filtered := make([]response_models.FavoriteItem, 0, len(items))
	removed := false
	for _, f := range items {
		if f.ID == item.ID {
			removed = true
			continue
		}
		filtered = append(filtered, f)
	}
	if removed {
		return false, r.writeAll(filtered)
	}

	item.AddedAt = utils.FormatRFC3339JST(r.now())
	return true, r.writeAll(append(filtered, item))
}

func (r *fileFavoritesRepository) List(ctx context.Context) ([]response_models.FavoriteItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll(), nil
}

func (r *fileFavoritesRepository) IsFavorite(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.readAll() {
		if f.ID == id {
			return true, nil
		}
	}
	return false, nil
}
