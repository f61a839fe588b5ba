package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"tabiplan/internal/models/response_models"
	"tabiplan/pkg/utils"
)

type RoutingServiceInterface interface {
	Geocode(ctx context.Context, address string) (response_models.Coordinates, error)
	Route(ctx context.Context, start, end response_models.Coordinates, profile string) (*response_models.RouteResult, error)
}

// ORSRoutingService resolves free-text locations and routes between them
// via the OpenRouteService geocoding and directions endpoints.
type ORSRoutingService struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

func NewORSRoutingService(apiKey, baseURL string) *ORSRoutingService {
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}
	return &ORSRoutingService{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		APIKey:  apiKey,
		BaseURL: baseURL,
	}
}

func (s *ORSRoutingService) Geocode(ctx context.Context, address string) (response_models.Coordinates, error) {
	q := url.Values{}
	q.Set("api_key", s.APIKey)
	q.Set("text", address)
	q.Set("boundary.country", "JP")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/geocode/search?"+q.Encode(), nil)
	if err != nil {
		return response_models.Coordinates{}, fmt.Errorf("%w: %v", utils.ErrRoutingFailed, err)
	}

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return response_models.Coordinates{}, fmt.Errorf("%w: geocoding http error: %v", utils.ErrRoutingFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return response_models.Coordinates{}, fmt.Errorf("%w: geocoding bad status: %s", utils.ErrRoutingFailed, resp.Status)
	}

	var payload struct {
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return response_models.Coordinates{}, fmt.Errorf("%w: geocoding decode: %v", utils.ErrRoutingFailed, err)
	}

	if len(payload.Features) == 0 {
		return response_models.Coordinates{}, fmt.Errorf("%w: %q", utils.ErrNoResultsFound, address)
	}
	coords := payload.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return response_models.Coordinates{}, fmt.Errorf("%w: geocoding returned malformed geometry", utils.ErrRoutingFailed)
	}
	// provider order is [lng, lat]
	return response_models.Coordinates{Lat: coords[1], Lng: coords[0]}, nil
}

func (s *ORSRoutingService) Route(ctx context.Context, start, end response_models.Coordinates, profile string) (*response_models.RouteResult, error) {
	body, err := json.Marshal(map[string]any{
		"coordinates": [][]float64{
			{start.Lng, start.Lat},
			{end.Lng, end.Lat},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrRoutingFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/v2/directions/"+profile, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrRoutingFailed, err)
	}
	req.Header.Set("Authorization", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: directions http error: %v", utils.ErrRoutingFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: directions bad status: %s", utils.ErrRoutingFailed, resp.Status)
	}

	var payload struct {
		Features []struct {
			Properties struct {
				Summary struct {
					Distance float64 `json:"distance"`
					Duration float64 `json:"duration"`
				} `json:"summary"`
			} `json:"properties"`
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
			BBox []float64 `json:"bbox"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: directions decode: %v", utils.ErrRoutingFailed, err)
	}
	if len(payload.Features) == 0 {
		return nil, fmt.Errorf("%w: no route returned", utils.ErrRoutingFailed)
	}

	route := payload.Features[0]
	coords := make([][2]float64, 0, len(route.Geometry.Coordinates))
	for _, c := range route.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		coords = append(coords, [2]float64{c[1], c[0]}) // convert to [lat, lng]
	}

	return &response_models.RouteResult{
		DistanceMeters:  route.Properties.Summary.Distance,
		DurationSeconds: route.Properties.Summary.Duration,
		Coordinates:     coords,
		Bounds:          route.BBox,
	}, nil
}

// TravelModeToProfile converts a travel-mode name to an OpenRouteService
// profile. TRANSIT falls back to driving: there is no public-transit
// profile, the fare estimator is what prices it.
func TravelModeToProfile(mode string) string {
	switch mode {
	case "DRIVING":
		return "driving-car"
	case "WALKING":
		return "foot-walking"
	case "BICYCLING":
		return "cycling-regular"
	case "TRANSIT":
		return "driving-car"
	default:
		return "driving-car"
	}
}

// FormatDistance renders meters as km to one decimal from 1000m up.
func FormatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%d m", int(math.Round(meters)))
}

// FormatDuration renders seconds as "H時間M分", or "M分" under an hour.
func FormatDuration(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%d時間%d分", hours, minutes)
	}
	return fmt.Sprintf("%d分", minutes)
}
