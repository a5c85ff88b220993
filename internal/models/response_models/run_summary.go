package response_models

// RunSummary reports one pass of the itinerary job.
type RunSummary struct {
	Inserted int     `json:"inserted"`
	Skipped  int     `json:"skipped"`
	Windows  int     `json:"windows"`
	Elapsed  float64 `json:"elapsed_seconds"`
}

type DealTriggerResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
