package services

import (
	"context"

	"tabiplan/internal/models/response_models"
	"tabiplan/internal/repositories"
	"tabiplan/pkg/utils"
)

type PlansServiceInterface interface {
	ListPlans(ctx context.Context) ([]response_models.SavedPlanListItem, error)
	GetPlan(ctx context.Context, id string) (response_models.SavedPlanRecord, error)
	DeletePlan(ctx context.Context, id string) error
	ShareLink(ctx context.Context, id, baseURL string) (string, error)
	ShareQR(ctx context.Context, id, baseURL string) ([]byte, error)
	ToggleFavorite(ctx context.Context, item response_models.FavoriteItem) (bool, error)
	ListFavorites(ctx context.Context) ([]response_models.FavoriteItem, error)
	ListHistory(ctx context.Context) ([]response_models.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
}

type PlansService struct {
	plans     repositories.PlanRepository
	favorites repositories.FavoritesRepository
	history   repositories.HistoryRepository
}

func NewPlansService(
	plans repositories.PlanRepository,
	favorites repositories.FavoritesRepository,
	history repositories.HistoryRepository,
) PlansServiceInterface {
	return &PlansService{
		plans:     plans,
		favorites: favorites,
		history:   history,
	}
}

// ListPlans returns saved plans newest first, each flagged when its total
// cost exceeds the budget it was planned against.
func (s *PlansService) ListPlans(ctx context.Context) ([]response_models.SavedPlanListItem, error) {
	records, err := s.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]response_models.SavedPlanListItem, 0, len(records))
	for _, record := range records {
		items = append(items, response_models.SavedPlanListItem{
			SavedPlanRecord: record,
			OverBudget:      record.OverBudget(),
		})
	}
	return items, nil
}

func (s *PlansService) GetPlan(ctx context.Context, id string) (response_models.SavedPlanRecord, error) {
	return s.plans.Get(ctx, id)
}

func (s *PlansService) DeletePlan(ctx context.Context, id string) error {
	return s.plans.Delete(ctx, id)
}

// ShareLink encodes the stored plan into a URL a recipient can open
// without an account. Oversized plans are rejected rather than truncated.
func (s *PlansService) ShareLink(ctx context.Context, id, baseURL string) (string, error) {
	record, err := s.plans.Get(ctx, id)
	if err != nil {
		return "", err
	}
	encoded, err := utils.EncodeForSharing(record.Plan)
	if err != nil {
		return "", err
	}
	return baseURL + "?plan=" + encoded, nil
}

func (s *PlansService) ShareQR(ctx context.Context, id, baseURL string) ([]byte, error) {
	url, err := s.ShareLink(ctx, id, baseURL)
	if err != nil {
		return nil, err
	}
	return utils.ShareQR(url)
}

func (s *PlansService) ToggleFavorite(ctx context.Context, item response_models.FavoriteItem) (bool, error) {
	return s.favorites.Toggle(ctx, item)
}

func (s *PlansService) ListFavorites(ctx context.Context) ([]response_models.FavoriteItem, error) {
	return s.favorites.List(ctx)
}

func (s *PlansService) ListHistory(ctx context.Context) ([]response_models.HistoryEntry, error) {
	return s.history.List(ctx)
}

func (s *PlansService) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}
