package repositories

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	dbm "traveldeal/internal/models/db_models"
)

// PriceRepository reads the append-only flight and hotel price history.
type PriceRepository interface {
	GetRecentFlightPrices(ctx context.Context, limit int) ([]dbm.FlightPrice, error)
	GetHotelHistoryByCity(ctx context.Context, cities []string, perCity int) (map[string][]dbm.HotelPrice, error)
}

type priceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) PriceRepository {
	return &priceRepository{db: db}
}

// GetRecentFlightPrices returns the latest limit samples, oldest first.
func (r *priceRepository) GetRecentFlightPrices(ctx context.Context, limit int) ([]dbm.FlightPrice, error) {
	var rows []dbm.FlightPrice
	if err := r.db.WithContext(ctx).
		Order("checked_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load flight prices: %w", err)
	}

	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// GetHotelHistoryByCity returns up to perCity latest samples for each city,
// oldest first within a city. Cities with no samples are absent from the map.
func (r *priceRepository) GetHotelHistoryByCity(ctx context.Context, cities []string, perCity int) (map[string][]dbm.HotelPrice, error) {
	out := make(map[string][]dbm.HotelPrice, len(cities))
	if len(cities) == 0 || perCity <= 0 {
		return out, nil
	}

	var rows []dbm.HotelPrice
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, created_at, updated_at, city, avg_price, currency, checked_at, metadata
		FROM (
			SELECT hp.*, ROW_NUMBER() OVER (PARTITION BY hp.city ORDER BY hp.checked_at DESC) AS rn
			FROM hotel_prices hp
			WHERE hp.city = ANY(?)
		) ranked
		WHERE ranked.rn <= ?
		ORDER BY ranked.city, ranked.checked_at ASC`,
		pq.Array(cities), perCity,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load hotel prices: %w", err)
	}

	for _, row := range rows {
		out[row.City] = append(out[row.City], row)
	}
	return out, nil
}
