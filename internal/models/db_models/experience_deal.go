package db_models

import "time"

// ExperienceDeal is a curated activity record. Read-only to the itinerary engine.
type ExperienceDeal struct {
	BaseModel
	Title        string
	City         *string `gorm:"index"`
	Category     *string
	Price        *float64
	Currency     *string `gorm:"size:3"`
	Rating       *float64
	ReviewsCount *int
	URL          string
	ImageURL     *string
	Summary      *string
	SourceDomain *string
	ScoutedDate  time.Time `gorm:"type:date"`
	Confidence   *float64
	NeedsReview  bool `gorm:"default:false"`
}
