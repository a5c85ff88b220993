package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "traveldeal/internal/models/db_models"
)

type EventRepository interface {
	GetEventsInRange(ctx context.Context, start, end time.Time) ([]dbm.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// GetEventsInRange returns events overlapping [start, end].
func (r *eventRepository) GetEventsInRange(ctx context.Context, start, end time.Time) ([]dbm.Event, error) {
	var events []dbm.Event
	err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("start_date ASC").
		Find(&events).Error
	return events, err
}
