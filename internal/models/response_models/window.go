package response_models

type WindowScoreResponse struct {
	WindowStart string  `json:"window_start"`
	WindowEnd   string  `json:"window_end"`
	Score       float64 `json:"score"`
	Label       string  `json:"label"`
}
