package db_models

import (
	"time"

	"gorm.io/datatypes"
)

// ItinerarySuggestion is keyed by (window_start, duration_days); a newer row
// for the same key replaces the old one.
type ItinerarySuggestion struct {
	BaseModel
	WindowStart  time.Time `gorm:"type:date;not null;uniqueIndex:idx_itinerary_window_duration"`
	WindowEnd    time.Time `gorm:"type:date;not null"`
	DurationDays int       `gorm:"not null;uniqueIndex:idx_itinerary_window_duration"`
	Title        *string
	Summary      *string
	Days         datatypes.JSON `gorm:"type:jsonb;not null"`
	Score        *float64
}
