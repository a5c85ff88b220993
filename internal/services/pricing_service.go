package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"traveldeal/internal/config"
	"traveldeal/internal/metrics"
	resp "traveldeal/internal/models/response_models"
	"traveldeal/internal/planner"
	"traveldeal/internal/repositories"
	"traveldeal/pkg/utils"
)

type PricingServiceInterface interface {
	RecommendWindows(ctx context.Context) ([]resp.WindowScoreResponse, error)
	EvaluateDealTriggers(ctx context.Context) ([]resp.DealTriggerResponse, error)
}

type PricingService struct {
	prices   repositories.PriceRepository
	scoring  planner.ScoringPolicy
	triggers planner.TriggerPolicy
	cfg      *config.Config
	logger   *zap.Logger
}

func NewPricingService(prices repositories.PriceRepository, cfg *config.Config, logger *zap.Logger) PricingServiceInterface {
	return &PricingService{
		prices:   prices,
		scoring:  planner.DefaultScoringPolicy,
		triggers: planner.DefaultTriggerPolicy,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *PricingService) history(ctx context.Context) ([]planner.PriceSample, map[string][]planner.PriceSample, error) {
	flights, err := s.prices.GetRecentFlightPrices(ctx, s.cfg.Itinerary.FlightHistory)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	hotels, err := s.prices.GetHotelHistoryByCity(ctx, s.cfg.Trip.HubCities, s.cfg.Itinerary.HotelHistory)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return flightSamples(flights), hotelSamples(hotels), nil
}

func (s *PricingService) RecommendWindows(ctx context.Context) ([]resp.WindowScoreResponse, error) {
	flights, hotels, err := s.history(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := scoringOptions(s.cfg)
	if err != nil {
		return nil, err
	}

	windows := s.scoring.RecommendWindows(flights, hotels, opts)

	out := make([]resp.WindowScoreResponse, len(windows))
	for i, w := range windows {
		out[i] = windowResponse(w)
	}
	return out, nil
}

func (s *PricingService) EvaluateDealTriggers(ctx context.Context) ([]resp.DealTriggerResponse, error) {
	flights, hotels, err := s.history(ctx)
	if err != nil {
		return nil, err
	}

	found := s.triggers.Evaluate(routeLabel(s.cfg.Trip), flights, hotels, s.cfg.Trip.HubCities)
	out := make([]resp.DealTriggerResponse, len(found))
	for i, t := range found {
		out[i] = resp.DealTriggerResponse{Type: t.Type, Message: t.Message}
	}
	return out, nil
}

// logTriggers records detected triggers. Delivery is someone else's job.
func logTriggers(logger *zap.Logger, found []planner.DealTrigger) {
	for _, t := range found {
		metrics.DealTriggers.WithLabelValues(t.Type).Inc()
		logger.Info("deal trigger detected", zap.String("type", t.Type), zap.String("message", t.Message))
	}
}

func routeLabel(trip config.TripConfig) string {
	return trip.Origin + "-" + trip.Destination
}
