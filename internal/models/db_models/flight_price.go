package db_models

import (
	"time"

	"gorm.io/datatypes"
)

// FlightPrice is one observed round-trip fare for the tracked route.
type FlightPrice struct {
	BaseModel
	Origin      string    `gorm:"size:8;index:idx_flight_route"`
	Destination string    `gorm:"size:8;index:idx_flight_route"`
	DepartDate  time.Time `gorm:"type:date"`
	ReturnDate  time.Time `gorm:"type:date"`
	Price       float64
	Currency    string         `gorm:"size:3"`
	CheckedAt   time.Time      `gorm:"index"`
	Metadata    datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
