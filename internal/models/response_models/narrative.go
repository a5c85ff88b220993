package response_models

// NarrativeDay is one day as returned by the text-generation service. Only
// the three text slots are trusted; everything else is overwritten.
type NarrativeDay struct {
	Day       int      `json:"day"`
	Title     string   `json:"title,omitempty"`
	Morning   string   `json:"morning"`
	Afternoon string   `json:"afternoon"`
	Evening   string   `json:"evening"`
	DealIDs   []string `json:"deal_ids,omitempty"`
}

type NarrativeResponse struct {
	Title   string         `json:"title,omitempty"`
	Summary string         `json:"summary,omitempty"`
	Days    []NarrativeDay `json:"days"`
}
