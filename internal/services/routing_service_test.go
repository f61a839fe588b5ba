package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabiplan/internal/models/request_models"
	"tabiplan/internal/models/response_models"
	"tabiplan/pkg/utils"
)

func mustCoords(lat, lng float64) response_models.Coordinates {
	return response_models.Coordinates{Lat: lat, Lng: lng}
}

func newORSStub(t *testing.T, handler http.HandlerFunc) (*ORSRoutingService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewORSRoutingService("test-key", server.URL), server
}

func TestGeocode(t *testing.T) {
	var gotQuery map[string]string
	svc, _ := newORSStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/geocode/search", r.URL.Path)
		gotQuery = map[string]string{
			"api_key":          r.URL.Query().Get("api_key"),
			"text":             r.URL.Query().Get("text"),
			"boundary.country": r.URL.Query().Get("boundary.country"),
		}
		json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{
				{"geometry": map[string]any{"coordinates": []float64{135.7681, 35.0116}}},
			},
		})
	})

	coords, err := svc.Geocode(context.Background(), "京都駅")

	require.NoError(t, err)
	assert.Equal(t, 35.0116, coords.Lat)
	assert.Equal(t, 135.7681, coords.Lng)
	assert.Equal(t, "test-key", gotQuery["api_key"])
	assert.Equal(t, "京都駅", gotQuery["text"])
	assert.Equal(t, "JP", gotQuery["boundary.country"])
}

func TestGeocodeNoResults(t *testing.T) {
	svc, _ := newORSStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"features": []any{}})
	})

	_, err := svc.Geocode(context.Background(), "存在しない場所")

	assert.ErrorIs(t, err, utils.ErrNoResultsFound)
}

func TestGeocodeBadStatus(t *testing.T) {
	svc, _ := newORSStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := svc.Geocode(context.Background(), "京都駅")

	assert.ErrorIs(t, err, utils.ErrRoutingFailed)
}

func TestRoute(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	svc, _ := newORSStub(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{{
				"properties": map[string]any{
					"summary": map[string]any{"distance": 456789.0, "duration": 18540.0},
				},
				"geometry": map[string]any{
					"coordinates": [][]float64{{139.76, 35.68}, {135.77, 35.01}},
				},
				"bbox": []float64{135.77, 35.01, 139.76, 35.68},
			}},
		})
	})

	start := mustCoords(35.68, 139.76)
	end := mustCoords(35.01, 135.77)
	route, err := svc.Route(context.Background(), start, end, "driving-car")

	require.NoError(t, err)
	assert.Equal(t, "/v2/directions/driving-car", gotPath)
	assert.Equal(t, "test-key", gotAuth)

	// request body goes out in (lng, lat) order
	coordsOut := gotBody["coordinates"].([]any)
	first := coordsOut[0].([]any)
	assert.Equal(t, 139.76, first[0])
	assert.Equal(t, 35.68, first[1])

	assert.Equal(t, 456789.0, route.DistanceMeters)
	assert.Equal(t, 18540.0, route.DurationSeconds)
	// response geometry comes back converted to (lat, lng)
	require.Len(t, route.Coordinates, 2)
	assert.Equal(t, [2]float64{35.68, 139.76}, route.Coordinates[0])
	assert.Equal(t, []float64{135.77, 35.01, 139.76, 35.68}, route.Bounds)
}

func TestRouteNoFeatures(t *testing.T) {
	svc, _ := newORSStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"features": []any{}})
	})

	_, err := svc.Route(context.Background(), mustCoords(1, 2), mustCoords(3, 4), "driving-car")

	assert.ErrorIs(t, err, utils.ErrRoutingFailed)
}

func TestTravelModeToProfile(t *testing.T) {
	assert.Equal(t, "driving-car", TravelModeToProfile("DRIVING"))
	assert.Equal(t, "foot-walking", TravelModeToProfile("WALKING"))
	assert.Equal(t, "cycling-regular", TravelModeToProfile("BICYCLING"))
	assert.Equal(t, "driving-car", TravelModeToProfile("TRANSIT"))
	assert.Equal(t, "driving-car", TravelModeToProfile(""))
	assert.Equal(t, "driving-car", TravelModeToProfile("hoverboard"))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "999 m", FormatDistance(999.4))
	assert.Equal(t, "1.0 km", FormatDistance(1000))
	assert.Equal(t, "456.8 km", FormatDistance(456789))
	assert.Equal(t, "0 m", FormatDistance(0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0分", FormatDuration(0))
	assert.Equal(t, "45分", FormatDuration(2700))
	assert.Equal(t, "5時間9分", FormatDuration(18540))
	assert.Equal(t, "1時間0分", FormatDuration(3600))
}

func TestDirectionsServiceGeocodeFailureSkipsRouting(t *testing.T) {
	routeCalled := false
	svc, _ := newORSStub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocode/search" {
			routeCalled = true
		}
		json.NewEncoder(w).Encode(map[string]any{"features": []any{}})
	})

	gen := &scriptedGenerator{responses: []string{"1500"}}
	directions := NewDirectionsService(svc, NewTransportService(gen, NewFareCache(4, 0)))

	_, err := directions.GetDirections(context.Background(), request_models.DirectionsRequest{
		Origin:      "どこか",
		Destination: "どこか別の場所",
		Mode:        "TRANSIT",
	})

	assert.ErrorIs(t, err, utils.ErrNoResultsFound)
	assert.False(t, routeCalled)
	assert.Equal(t, 0, gen.calls)
}

func TestDirectionsServiceHappyPath(t *testing.T) {
	svc, _ := newORSStub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/geocode/search" {
			json.NewEncoder(w).Encode(map[string]any{
				"features": []map[string]any{
					{"geometry": map[string]any{"coordinates": []float64{139.76, 35.68}}},
				},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{{
				"properties": map[string]any{
					"summary": map[string]any{"distance": 1500.0, "duration": 600.0},
				},
				"geometry": map[string]any{"coordinates": [][]float64{{139.76, 35.68}}},
			}},
		})
	})

	gen := &scriptedGenerator{responses: []string{"210"}}
	directions := NewDirectionsService(svc, NewTransportService(gen, NewFareCache(4, 0)))

	result, err := directions.GetDirections(context.Background(), request_models.DirectionsRequest{
		Origin:      "東京駅",
		Destination: "皇居",
		Mode:        "TRANSIT",
	})

	require.NoError(t, err)
	assert.Equal(t, "1.5 km", result.Distance)
	assert.Equal(t, "10分", result.Duration)
	assert.Equal(t, "210円", result.Fare)
	require.NotNil(t, result.Route)
}
