package wizardfx

import (
	"go.uber.org/fx"

	"tabiplan/internal/repositories"
	"tabiplan/internal/services"
	mem "tabiplan/pkg/memcache"
)

var Module = fx.Provide(NewWizardService, NewPlansService)

func NewWizardService(
	planner services.PlannerServiceInterface,
	transport services.TransportServiceInterface,
	plans repositories.PlanRepository,
	history repositories.HistoryRepository,
	sessions mem.SessionStore,
) services.WizardServiceInterface {
	return services.NewWizardService(planner, transport, plans, history, sessions)
}

func NewPlansService(
	plans repositories.PlanRepository,
	favorites repositories.FavoritesRepository,
	history repositories.HistoryRepository,
) services.PlansServiceInterface {
	return services.NewPlansService(plans, favorites, history)
}
