package response_models

// ItineraryDay is the narrated, externally visible form of one trip day.
type ItineraryDay struct {
	Day        int      `json:"day"`
	Date       string   `json:"date"`
	City       string   `json:"city"`
	TravelFrom string   `json:"travelFrom,omitempty"`
	Title      string   `json:"title"`
	Morning    string   `json:"morning"`
	Afternoon  string   `json:"afternoon"`
	Evening    string   `json:"evening"`
	DealIDs    []string `json:"deal_ids"`
}

type ItinerarySuggestion struct {
	ID           string         `json:"id,omitempty"`
	WindowStart  string         `json:"window_start"`
	WindowEnd    string         `json:"window_end"`
	DurationDays int            `json:"duration_days"`
	Title        string         `json:"title"`
	Summary      string         `json:"summary"`
	Days         []ItineraryDay `json:"days"`
	Score        float64        `json:"score"`
	CreatedAt    int64          `json:"created_at,omitempty"`
}
