package response_models

// WizardSnapshot is the wizard input state a plan was generated from,
// persisted alongside the plan so a saved record can resume at the final
// stage.
type WizardSnapshot struct {
	Activity         string       `json:"activity"`
	Destination      *Destination `json:"destination,omitempty"`
	StartDate        string       `json:"startDate"`
	EndDate          string       `json:"endDate"`
	Budget           int          `json:"budget"`
	Preferences      string       `json:"preferences,omitempty"`
	IncludeTransport bool         `json:"includeTransport"`
	TransportCost    int          `json:"estimatedTransportCost"`
	UserLocation     *Coordinates `json:"userLocation,omitempty"`
}

// SavedPlanRecord is one persisted plan. The wizard snapshot is stored
// under its own key so the embedded plan keeps its generation-params
// echo; record.Params is the snapshot, record.Plan.Params the echo.
type SavedPlanRecord struct {
	ID      string `json:"id"`
	SavedAt string `json:"savedAt"`
	Plan
	Params WizardSnapshot `json:"wizardParams"`
}

// OverBudget flags an AI total exceeding the requested budget. Display
// concern only; the record is stored as generated.
func (r SavedPlanRecord) OverBudget() bool {
	return r.Params.Budget > 0 && r.BudgetBreakdown.Total > r.Params.Budget
}

type SavedPlanListItem struct {
	SavedPlanRecord
	OverBudget bool `json:"overBudget"`
}
