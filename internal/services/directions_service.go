package services

import (
	"context"

	"tabiplan/internal/models/request_models"
	"tabiplan/internal/models/response_models"
)

type DirectionsServiceInterface interface {
	GetDirections(ctx context.Context, req request_models.DirectionsRequest) (*response_models.DirectionsResult, error)
}

type DirectionsService struct {
	routing   RoutingServiceInterface
	transport TransportServiceInterface
}

func NewDirectionsService(routing RoutingServiceInterface, transport TransportServiceInterface) DirectionsServiceInterface {
	return &DirectionsService{
		routing:   routing,
		transport: transport,
	}
}

// GetDirections resolves both endpoints, routes between them with the
// requested travel mode, and attaches a fare estimate. The fare comes
// from a separate estimator and never fails the route itself.
func (s *DirectionsService) GetDirections(ctx context.Context, req request_models.DirectionsRequest) (*response_models.DirectionsResult, error) {
	start, err := s.routing.Geocode(ctx, req.Origin)
	if err != nil {
		return nil, err
	}
	end, err := s.routing.Geocode(ctx, req.Destination)
	if err != nil {
		return nil, err
	}

	route, err := s.routing.Route(ctx, start, end, TravelModeToProfile(req.Mode))
	if err != nil {
		return nil, err
	}

	return &response_models.DirectionsResult{
		Distance: FormatDistance(route.DistanceMeters),
		Duration: FormatDuration(route.DurationSeconds),
		Fare:     s.transport.EstimateFare(ctx, req.Origin, req.Destination, req.Mode),
		Route:    route,
	}, nil
}
