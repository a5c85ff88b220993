package request_models

// NarrativeRequest is the structured context sent to the text-generation service.
type NarrativeRequest struct {
	Window   NarrativeWindow  `json:"window"`
	Duration int              `json:"duration"`
	DaySeeds []NarrativeSeed  `json:"daySeeds"`
	Events   []NarrativeEvent `json:"events"`
}

type NarrativeWindow struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Score float64 `json:"score"`
}

type NarrativeSeed struct {
	Day        int            `json:"day"`
	Date       string         `json:"date"`
	City       string         `json:"city"`
	TravelFrom string         `json:"travelFrom,omitempty"`
	Deal       *NarrativeDeal `json:"deal,omitempty"`
}

type NarrativeDeal struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
	URL      string   `json:"url,omitempty"`
}

type NarrativeEvent struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
