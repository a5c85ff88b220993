package db_models

import "time"

// Event is a festival or calendar entry that may shape an evening plan.
type Event struct {
	BaseModel
	Name      string
	Location  string
	StartDate time.Time `gorm:"type:date;index"`
	EndDate   time.Time `gorm:"type:date;index"`
}
