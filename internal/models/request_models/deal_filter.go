package request_models

// DealFilter narrows the experience deals handed to the itinerary engine.
type DealFilter struct {
	Cities         []string
	TopOnly        bool
	PreferBookable bool
	MinConfidence  float64
	Limit          int
}

// ItineraryQuery filters stored suggestions.
type ItineraryQuery struct {
	WindowStart  string `form:"window_start"`
	DurationDays int    `form:"duration"`
	Page         int    `form:"page"`
	PageSize     int    `form:"pageSize"`
}
