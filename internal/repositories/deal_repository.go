package repositories

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	dbm "traveldeal/internal/models/db_models"
	req "traveldeal/internal/models/request_models"
)

type DealRepository interface {
	GetExperienceDeals(ctx context.Context, filter req.DealFilter) ([]dbm.ExperienceDeal, error)
}

type dealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) DealRepository {
	return &dealRepository{db: db}
}

func (r *dealRepository) GetExperienceDeals(ctx context.Context, filter req.DealFilter) ([]dbm.ExperienceDeal, error) {
	q := r.db.WithContext(ctx).Model(&dbm.ExperienceDeal{}).Where("city IS NOT NULL")

	if len(filter.Cities) > 0 {
		q = q.Where("city = ANY(?)", pq.Array(filter.Cities))
	}
	if filter.TopOnly {
		q = q.Where("needs_review = ?", false)
		if filter.MinConfidence > 0 {
			q = q.Where("(confidence IS NULL OR confidence >= ?)", filter.MinConfidence)
		}
	}
	if filter.PreferBookable {
		q = q.Order("(price IS NOT NULL AND rating IS NOT NULL) DESC")
	}
	q = q.Order("rating DESC NULLS LAST").Order("scouted_date DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var deals []dbm.ExperienceDeal
	if err := q.Find(&deals).Error; err != nil {
		return nil, fmt.Errorf("failed to load experience deals: %w", err)
	}
	return deals, nil
}
