package response_models

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteResult carries one resolved route. Coordinates are in (lat, lng)
// order, converted from the provider's (lng, lat); Bounds stays in the
// provider's [minLng, minLat, maxLng, maxLat] shape.
type RouteResult struct {
	DistanceMeters  float64      `json:"distance"`
	DurationSeconds float64      `json:"duration"`
	Coordinates     [][2]float64 `json:"coordinates"`
	Bounds          []float64    `json:"bounds,omitempty"`
}

type DirectionsResult struct {
	Distance string       `json:"distance"`
	Duration string       `json:"duration"`
	Fare     string       `json:"fare"`
	Route    *RouteResult `json:"route"`
}
