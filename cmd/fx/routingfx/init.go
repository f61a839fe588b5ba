package routingfx

import (
	"os"

	"go.uber.org/fx"

	"tabiplan/internal/services"
)

var Module = fx.Provide(NewRoutingService, NewDirectionsService)

func NewRoutingService() services.RoutingServiceInterface {
	return services.NewORSRoutingService(os.Getenv("ORS_API_KEY"), os.Getenv("ORS_BASE_URL"))
}

func NewDirectionsService(
	routing services.RoutingServiceInterface,
	transport services.TransportServiceInterface,
) services.DirectionsServiceInterface {
	return services.NewDirectionsService(routing, transport)
}
