package planner

import (
	"fmt"
	"math"
	"strings"

	resp "traveldeal/internal/models/response_models"
	"traveldeal/pkg/utils"
)

// VarietyThreshold is the minimum number of distinct mornings (and evenings)
// a generated itinerary of the given length must have.
func VarietyThreshold(duration int) int {
	return int(math.Max(3, math.Ceil(0.6*float64(duration))))
}

func distinct(days []resp.NarrativeDay, slot func(resp.NarrativeDay) string) int {
	seen := make(map[string]struct{}, len(days))
	for _, d := range days {
		seen[strings.ToLower(strings.TrimSpace(slot(d)))] = struct{}{}
	}
	return len(seen)
}

// CheckVariety accepts a generated itinerary only with exactly duration days
// and enough distinct morning and evening texts. Any failure wraps
// utils.ErrLowVariety.
func CheckVariety(days []resp.NarrativeDay, duration int) error {
	if len(days) != duration {
		return fmt.Errorf("%w: got %d days, want %d", utils.ErrLowVariety, len(days), duration)
	}
	threshold := VarietyThreshold(duration)
	if n := distinct(days, func(d resp.NarrativeDay) string { return d.Morning }); n < threshold {
		return fmt.Errorf("%w: %d distinct mornings, need %d", utils.ErrLowVariety, n, threshold)
	}
	if n := distinct(days, func(d resp.NarrativeDay) string { return d.Evening }); n < threshold {
		return fmt.Errorf("%w: %d distinct evenings, need %d", utils.ErrLowVariety, n, threshold)
	}
	return nil
}
