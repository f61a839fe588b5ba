package request_models

// StartSessionRequest optionally bootstraps from a saved plan id or a
// shared-plan payload; both jump the session straight to the final stage.
type StartSessionRequest struct {
	PlanID string `json:"plan_id"`
	Shared string `json:"shared"`
}

type ActivityRequest struct {
	Activity string `json:"activity"`
}

type SelectDestinationRequest struct {
	ID string `json:"id"`
}

type LocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type DetailsRequest struct {
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Budget           int    `json:"budget"`
	Preferences      string `json:"preferences"`
	IncludeTransport bool   `json:"include_transport"`
}
