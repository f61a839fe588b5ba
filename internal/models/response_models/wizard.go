package response_models

// WizardSessionView is a point-in-time snapshot of a wizard session.
// TransportCostPending means the async estimate is still in flight; the
// cost field may change underneath an already-rendered budget form.
type WizardSessionView struct {
	ID                   string        `json:"id"`
	Stage                int           `json:"stage"`
	Activity             string        `json:"activity,omitempty"`
	Destinations         []Destination `json:"destinations,omitempty"`
	Destination          *Destination  `json:"destination,omitempty"`
	StartDate            string        `json:"startDate,omitempty"`
	EndDate              string        `json:"endDate,omitempty"`
	Budget               int           `json:"budget,omitempty"`
	SuggestedBudget      int           `json:"suggestedBudget,omitempty"`
	Preferences          string        `json:"preferences,omitempty"`
	IncludeTransport     bool          `json:"includeTransport"`
	TransportCost        int           `json:"transportCost"`
	TransportCostPending bool          `json:"transportCostPending"`
	UserLocation         *Coordinates  `json:"userLocation,omitempty"`
	GeneratedPlan        *Plan         `json:"generatedPlan,omitempty"`
}
