package db_models

import (
	"time"

	"gorm.io/datatypes"
)

// HotelPrice is the rolling average nightly rate observed for a city.
type HotelPrice struct {
	BaseModel
	City      string         `gorm:"index:idx_hotel_city_checked"`
	AvgPrice  float64
	Currency  string         `gorm:"size:3"`
	CheckedAt time.Time      `gorm:"index:idx_hotel_city_checked"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
