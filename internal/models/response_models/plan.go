package response_models

// Destination is one AI-proposed travel target. IDs are stable within a
// suggestion batch and used to avoid repeats on "load more".
type Destination struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	NameEn        string   `json:"nameEn,omitempty"`
	Description   string   `json:"description"`
	BestSeason    string   `json:"bestSeason"`
	EstimatedCost int      `json:"estimatedCost"`
	Highlights    []string `json:"highlights"`
}

type PlanItem struct {
	Time        string  `json:"time"`
	Activity    string  `json:"activity"`
	Location    string  `json:"location"`
	Lat         float64 `json:"lat,omitempty"`
	Lng         float64 `json:"lng,omitempty"`
	Cost        int     `json:"cost"`
	Description string  `json:"description"`
	Notes       string  `json:"notes,omitempty"`
}

type PlanDay struct {
	Day   int        `json:"day"`
	Date  string     `json:"date"`
	Title string     `json:"title"`
	Items []PlanItem `json:"items"`
}

type Hotel struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Address       string   `json:"address"`
	PricePerNight int      `json:"pricePerNight"`
	TotalNights   int      `json:"totalNights"`
	Rating        float64  `json:"rating"`
	Amenities     []string `json:"amenities"`
	Reason        string   `json:"reason"`
}

// BudgetBreakdown is AI-supplied. Total is trusted output and never
// recomputed; an over-budget total is a display concern only.
type BudgetBreakdown struct {
	Transportation int `json:"transportation"`
	Accommodation  int `json:"accommodation"`
	Activities     int `json:"activities"`
	Meals          int `json:"meals"`
	Other          int `json:"other"`
	Total          int `json:"total"`
}

// PlanParams echoes the inputs a plan was generated from.
type PlanParams struct {
	Activity    string `json:"activity"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Budget      int    `json:"budget"`
	Preferences string `json:"preferences,omitempty"`
}

type Plan struct {
	Summary         string          `json:"summary"`
	Itinerary       []PlanDay       `json:"itinerary"`
	Hotels          []Hotel         `json:"hotels"`
	BudgetBreakdown BudgetBreakdown `json:"budgetBreakdown"`
	Tips            []string        `json:"tips,omitempty"`
	PackingList     []string        `json:"packingList,omitempty"`
	GeneratedAt     string          `json:"generatedAt"`
	Params          PlanParams      `json:"params"`
}
