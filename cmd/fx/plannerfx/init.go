package plannerfx

import (
	"time"

	"go.uber.org/fx"

	"tabiplan/internal/services"
	"tabiplan/pkg/utils"
)

var Module = fx.Provide(NewPlannerService, NewFareCache, NewTransportService)

const (
	fareCacheEntries = 256
	fareCacheTTL     = 12 * time.Hour
)

func NewPlannerService(generator utils.TextGenerator) services.PlannerServiceInterface {
	return services.NewPlannerService(generator)
}

func NewFareCache() services.FareCache {
	return services.NewFareCache(fareCacheEntries, fareCacheTTL)
}

func NewTransportService(generator utils.TextGenerator, cache services.FareCache) services.TransportServiceInterface {
	return services.NewTransportService(generator, cache)
}
