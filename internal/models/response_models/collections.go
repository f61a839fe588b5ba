package response_models

type FavoriteItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AddedAt     string `json:"addedAt"`
}

type HistoryEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Activity    string `json:"activity,omitempty"`
	Destination string `json:"destination,omitempty"`
	Timestamp   string `json:"timestamp"`
}
