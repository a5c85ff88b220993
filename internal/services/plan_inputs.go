package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"traveldeal/internal/config"
	req "traveldeal/internal/models/request_models"
	"traveldeal/internal/planner"
	"traveldeal/internal/repositories"
	"traveldeal/pkg/utils"
)

// planInputs is everything the engine reads from storage before planning.
type planInputs struct {
	Flights []planner.PriceSample
	Hotels  map[string][]planner.PriceSample
	Deals   []planner.ActivityRecord
}

type inputLimits struct {
	FlightHistory int
	HotelHistory  int
	DealLimit     int
	Cities        []string
}

// loadPlanInputs reads the three sources concurrently. A failed source is
// logged and treated as empty; it never fails the caller.
func loadPlanInputs(ctx context.Context, prices repositories.PriceRepository, deals repositories.DealRepository, limits inputLimits, logger *zap.Logger) planInputs {
	var in planInputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := prices.GetRecentFlightPrices(gctx, limits.FlightHistory)
		if err != nil {
			logger.Warn("flight history unavailable", zap.Error(err))
			return nil
		}
		in.Flights = flightSamples(rows)
		return nil
	})

	g.Go(func() error {
		rows, err := prices.GetHotelHistoryByCity(gctx, limits.Cities, limits.HotelHistory)
		if err != nil {
			logger.Warn("hotel history unavailable", zap.Error(err))
			return nil
		}
		in.Hotels = hotelSamples(rows)
		return nil
	})

	g.Go(func() error {
		rows, err := deals.GetExperienceDeals(gctx, req.DealFilter{
			TopOnly:        true,
			PreferBookable: true,
			Limit:          limits.DealLimit,
		})
		if err != nil {
			logger.Warn("experience deals unavailable", zap.Error(err))
			return nil
		}
		in.Deals = activityRecords(rows)
		return nil
	})

	_ = g.Wait()
	if in.Hotels == nil {
		in.Hotels = map[string][]planner.PriceSample{}
	}
	return in
}

// tripDates returns the departure and return days of the configured trip.
func tripDates(trip config.TripConfig) (time.Time, time.Time, error) {
	depart, err := utils.ParseISODate(trip.DepartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	ret, err := utils.ParseISODate(trip.ReturnDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return depart, ret, nil
}

// scoringOptions bounds window starts so no window ends after the return date.
func scoringOptions(cfg *config.Config) (planner.WindowOptions, error) {
	depart, ret, err := tripDates(cfg.Trip)
	if err != nil {
		return planner.WindowOptions{}, err
	}
	return planner.WindowOptions{
		TripStart:    depart,
		TotalDays:    utils.DaysBetween(depart, ret),
		WindowLength: cfg.Itinerary.WindowLength,
		MaxWindows:   cfg.Itinerary.MaxWindows,
	}, nil
}
