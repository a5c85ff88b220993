package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	dbm "traveldeal/internal/models/db_models"
	req "traveldeal/internal/models/request_models"
	"traveldeal/pkg/utils"
)

type ItineraryRepository interface {
	// ReplaceSuggestion deletes any row with the same (window_start,
	// duration_days) and inserts s, atomically.
	ReplaceSuggestion(ctx context.Context, s *dbm.ItinerarySuggestion) error
	InsertSuggestion(ctx context.Context, s *dbm.ItinerarySuggestion) error
	DeleteSuggestion(ctx context.Context, windowStart time.Time, durationDays int) error
	GetSuggestion(ctx context.Context, windowStart time.Time, durationDays int) (*dbm.ItinerarySuggestion, error)
	ListSuggestions(ctx context.Context, q req.ItineraryQuery) ([]dbm.ItinerarySuggestion, int64, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) ReplaceSuggestion(ctx context.Context, s *dbm.ItinerarySuggestion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteByKey(tx, s.WindowStart, s.DurationDays); err != nil {
			return err
		}
		if err := tx.Create(s).Error; err != nil {
			return fmt.Errorf("insert itinerary suggestion: %w", err)
		}
		return nil
	})
}

func (r *itineraryRepository) InsertSuggestion(ctx context.Context, s *dbm.ItinerarySuggestion) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("insert itinerary suggestion: %w", err)
	}
	return nil
}

func (r *itineraryRepository) DeleteSuggestion(ctx context.Context, windowStart time.Time, durationDays int) error {
	return deleteByKey(r.db.WithContext(ctx), windowStart, durationDays)
}

func deleteByKey(tx *gorm.DB, windowStart time.Time, durationDays int) error {
	err := tx.Unscoped().
		Where("window_start = ? AND duration_days = ?", utils.DateOnly(windowStart), durationDays).
		Delete(&dbm.ItinerarySuggestion{}).Error
	if err != nil {
		return fmt.Errorf("delete itinerary suggestion: %w", err)
	}
	return nil
}

func (r *itineraryRepository) GetSuggestion(ctx context.Context, windowStart time.Time, durationDays int) (*dbm.ItinerarySuggestion, error) {
	var s dbm.ItinerarySuggestion
	err := r.db.WithContext(ctx).
		Where("window_start = ? AND duration_days = ?", utils.DateOnly(windowStart), durationDays).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.RecordNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *itineraryRepository) ListSuggestions(ctx context.Context, q req.ItineraryQuery) ([]dbm.ItinerarySuggestion, int64, error) {
	page, pageSize := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	base := r.db.WithContext(ctx).Model(&dbm.ItinerarySuggestion{})
	if q.WindowStart != "" {
		ws, err := utils.ParseISODate(q.WindowStart)
		if err != nil {
			return nil, 0, err
		}
		base = base.Where("window_start = ?", ws)
	}
	if q.DurationDays > 0 {
		base = base.Where("duration_days = ?", q.DurationDays)
	}

	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []dbm.ItinerarySuggestion
	err := base.
		Order("window_start ASC").
		Order("duration_days ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
