package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"traveldeal/internal/config"
	"traveldeal/internal/metrics"
	req "traveldeal/internal/models/request_models"
	resp "traveldeal/internal/models/response_models"
	"traveldeal/internal/planner"
	"traveldeal/internal/repositories"
	"traveldeal/pkg/utils"
)

var tracer = otel.Tracer("traveldeal/internal/services")

// Score given to the trip-start window when nothing was scored.
const defaultTripStartScore = 70

// Durations tried when none are configured, besides the ones derived from
// the trip length.
var baseDurations = []int{3, 5, 7, 10, 14}

type ItineraryServiceInterface interface {
	RunItineraryJob(ctx context.Context) (*resp.RunSummary, error)
	ListItineraries(ctx context.Context, q req.ItineraryQuery) ([]resp.ItinerarySuggestion, int64, error)
	GetItinerary(ctx context.Context, windowStart string, duration int) (*resp.ItinerarySuggestion, error)
	// PreviewItinerary composes a plan without storing it.
	PreviewItinerary(ctx context.Context, windowStart string, duration int) (*resp.ItinerarySuggestion, error)
}

type ItineraryService struct {
	prices   repositories.PriceRepository
	deals    repositories.DealRepository
	store    repositories.ItineraryRepository
	composer ItineraryComposerInterface
	routes   planner.RoutePolicy
	scoring  planner.ScoringPolicy
	triggers planner.TriggerPolicy
	cfg      *config.Config
	logger   *zap.Logger

	running atomic.Bool
}

func NewItineraryService(
	prices repositories.PriceRepository,
	deals repositories.DealRepository,
	store repositories.ItineraryRepository,
	composer ItineraryComposerInterface,
	routes planner.RoutePolicy,
	cfg *config.Config,
	logger *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		prices:   prices,
		deals:    deals,
		store:    store,
		composer: composer,
		routes:   routes,
		scoring:  planner.DefaultScoringPolicy,
		triggers: planner.DefaultTriggerPolicy,
		cfg:      cfg,
		logger:   logger,
	}
}

// jobDurations returns the trip lengths to plan, ascending and unique.
func jobDurations(configured []int, tripLength int) ([]int, error) {
	candidates := configured
	if len(candidates) == 0 {
		candidates = append([]int{}, baseDurations...)
		candidates = append(candidates, max(3, tripLength-3), max(3, tripLength-1), tripLength)
	}

	seen := make(map[int]struct{}, len(candidates))
	out := make([]int, 0, len(candidates))
	for _, d := range candidates {
		if d <= 0 {
			return nil, fmt.Errorf("%w: %d", utils.ErrInvalidDuration, d)
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}

// withTripStart appends a window beginning on the departure day unless the
// scorer already returned one.
func (s *ItineraryService) withTripStart(windows []planner.WindowScore, tripStart time.Time) []planner.WindowScore {
	for _, w := range windows {
		if w.WindowStart.Equal(tripStart) {
			return windows
		}
	}
	score := float64(defaultTripStartScore)
	if len(windows) > 0 {
		score = windows[0].Score
	}
	return append(windows, planner.WindowScore{
		WindowStart: tripStart,
		WindowEnd:   utils.AddDays(tripStart, s.cfg.Itinerary.WindowLength-1),
		Score:       score,
		Label:       s.scoring.Label(score),
	})
}

func (s *ItineraryService) limits() inputLimits {
	return inputLimits{
		FlightHistory: s.cfg.Itinerary.FlightHistory,
		HotelHistory:  s.cfg.Itinerary.HotelHistory,
		DealLimit:     s.cfg.Itinerary.DealLimit,
		Cities:        s.cfg.Trip.HubCities,
	}
}

func (s *ItineraryService) RunItineraryJob(ctx context.Context) (*resp.RunSummary, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, utils.ErrJobAlreadyRunning
	}
	defer s.running.Store(false)

	metrics.JobRunning.Set(1)
	defer metrics.JobRunning.Set(0)

	ctx, span := tracer.Start(ctx, "itinerary.job")
	defer span.End()
	started := time.Now()

	if err := s.cfg.Validate(); err != nil {
		return nil, s.failRun(span, "invalid_config", err)
	}
	durations, err := jobDurations(s.cfg.Itinerary.Durations, s.cfg.Trip.TripLengthDays)
	if err != nil {
		return nil, s.failRun(span, "invalid_config", err)
	}
	opts, err := scoringOptions(s.cfg)
	if err != nil {
		return nil, s.failRun(span, "invalid_config", err)
	}
	_, ret, _ := tripDates(s.cfg.Trip)
	inCountryEnd := utils.AddDays(ret, -1)

	inputs := loadPlanInputs(ctx, s.prices, s.deals, s.limits(), s.logger)
	logTriggers(s.logger, s.triggers.Evaluate(routeLabel(s.cfg.Trip), inputs.Flights, inputs.Hotels, s.cfg.Trip.HubCities))

	windows := s.scoring.RecommendWindows(inputs.Flights, inputs.Hotels, opts)
	windows = s.withTripStart(windows, opts.TripStart)
	pool := planner.NewDealPool(inputs.Deals, s.cfg.Itinerary.DealsPerCity)

	span.SetAttributes(
		attribute.Int("itinerary.windows", len(windows)),
		attribute.IntSlice("itinerary.durations", durations),
		attribute.Int("itinerary.deals", len(inputs.Deals)),
	)

	summary := &resp.RunSummary{Windows: len(windows)}
	for _, window := range windows {
		available := utils.DaysBetweenInclusive(window.WindowStart, inCountryEnd)
		for _, duration := range durations {
			if err := ctx.Err(); err != nil {
				return nil, s.failRun(span, "cancelled", err)
			}
			if duration > available {
				summary.Skipped++
				metrics.ItineraryPairs.WithLabelValues(metrics.OutcomeSkipped).Inc()
				continue
			}
			if err := s.runPair(ctx, window, duration, pool); err != nil {
				summary.Skipped++
				metrics.ItineraryPairs.WithLabelValues(metrics.OutcomeSkipped).Inc()
				s.logger.Warn("itinerary pair failed",
					zap.String("window_start", utils.FormatISODate(window.WindowStart)),
					zap.Int("duration", duration),
					zap.Error(err))
				continue
			}
			summary.Inserted++
			metrics.ItineraryPairs.WithLabelValues(metrics.OutcomeInserted).Inc()
		}
	}

	summary.Elapsed = time.Since(started).Seconds()
	metrics.ItineraryRuns.WithLabelValues("success").Inc()
	s.logger.Info("itinerary job finished",
		zap.Int("inserted", summary.Inserted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("windows", summary.Windows),
		zap.Float64("elapsed_seconds", summary.Elapsed))
	return summary, nil
}

func (s *ItineraryService) failRun(span trace.Span, status string, err error) error {
	metrics.ItineraryRuns.WithLabelValues(status).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.Error("itinerary job aborted", zap.String("status", status), zap.Error(err))
	return err
}

func (s *ItineraryService) runPair(ctx context.Context, window planner.WindowScore, duration int, pool *planner.DealPool) error {
	start := time.Now()
	defer func() { metrics.ItineraryPairDuration.Observe(time.Since(start).Seconds()) }()

	if timeout := s.cfg.Itinerary.PairTimeoutDuration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ctx, span := tracer.Start(ctx, "itinerary.pair")
	defer span.End()
	span.SetAttributes(
		attribute.String("itinerary.window_start", utils.FormatISODate(window.WindowStart)),
		attribute.Int("itinerary.duration", duration),
	)

	_, seeds := planner.PlanSeeds(s.routes, pool, duration, window.WindowStart)
	_, err := s.composer.ComposeAndSave(ctx, ComposeInput{Window: window, Duration: duration, Seeds: seeds})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *ItineraryService) ListItineraries(ctx context.Context, q req.ItineraryQuery) ([]resp.ItinerarySuggestion, int64, error) {
	if q.WindowStart != "" {
		if _, err := utils.ParseISODate(q.WindowStart); err != nil {
			return nil, 0, err
		}
	}
	rows, total, err := s.store.ListSuggestions(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]resp.ItinerarySuggestion, 0, len(rows))
	for i := range rows {
		item, err := suggestionResponse(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *item)
	}
	return out, total, nil
}

func (s *ItineraryService) GetItinerary(ctx context.Context, windowStart string, duration int) (*resp.ItinerarySuggestion, error) {
	start, err := utils.ParseISODate(windowStart)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, utils.ErrInvalidDuration
	}

	row, err := s.store.GetSuggestion(ctx, start, duration)
	if err != nil {
		if errors.Is(err, utils.RecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return suggestionResponse(row)
}

func (s *ItineraryService) PreviewItinerary(ctx context.Context, windowStart string, duration int) (*resp.ItinerarySuggestion, error) {
	start, err := utils.ParseISODate(windowStart)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, utils.ErrInvalidDuration
	}
	opts, err := scoringOptions(s.cfg)
	if err != nil {
		return nil, err
	}
	_, ret, _ := tripDates(s.cfg.Trip)
	inCountryEnd := utils.AddDays(ret, -1)
	if available := utils.DaysBetweenInclusive(start, inCountryEnd); duration > available {
		return nil, fmt.Errorf("%w: %d days from %s do not fit before %s",
			utils.ErrInvalidDuration, duration, utils.FormatISODate(start), utils.FormatISODate(inCountryEnd))
	}

	inputs := loadPlanInputs(ctx, s.prices, s.deals, s.limits(), s.logger)
	window := s.scoreWindow(inputs, opts, start)
	pool := planner.NewDealPool(inputs.Deals, s.cfg.Itinerary.DealsPerCity)

	_, seeds := planner.PlanSeeds(s.routes, pool, duration, start)
	return s.composer.Compose(ctx, ComposeInput{Window: window, Duration: duration, Seeds: seeds})
}

// scoreWindow finds the scored window starting at start, or the baseline
// when start lies outside the trip.
func (s *ItineraryService) scoreWindow(inputs planInputs, opts planner.WindowOptions, start time.Time) planner.WindowScore {
	opts.MaxWindows = opts.TotalDays + 1

	for _, w := range s.scoring.RecommendWindows(inputs.Flights, inputs.Hotels, opts) {
		if w.WindowStart.Equal(start) {
			return w
		}
	}
	score := s.scoring.Baseline(inputs.Flights, inputs.Hotels)
	return planner.WindowScore{
		WindowStart: start,
		WindowEnd:   utils.AddDays(start, s.cfg.Itinerary.WindowLength-1),
		Score:       score,
		Label:       s.scoring.Label(score),
	}
}
