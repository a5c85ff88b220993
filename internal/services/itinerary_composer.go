package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"traveldeal/internal/metrics"
	resp "traveldeal/internal/models/response_models"
	"traveldeal/internal/planner"
	"traveldeal/internal/repositories"
	"traveldeal/pkg/utils"
)

// DefaultGeneratedMaxDays is the longest trip sent to the text generator.
const DefaultGeneratedMaxDays = 10

type ComposeInput struct {
	Window   planner.WindowScore
	Duration int
	Seeds    []planner.DaySeed
}

type ItineraryComposerInterface interface {
	// Compose narrates the seeds without persisting anything.
	Compose(ctx context.Context, in ComposeInput) (*resp.ItinerarySuggestion, error)
	// ComposeAndSave composes and replaces the stored suggestion for
	// (window start, duration).
	ComposeAndSave(ctx context.Context, in ComposeInput) (*resp.ItinerarySuggestion, error)
}

type ComposerOptions struct {
	GeneratedMaxDays  int
	GenerationTimeout time.Duration
}

type ItineraryComposer struct {
	events    repositories.EventRepository
	store     repositories.ItineraryRepository
	generator utils.NarrativeClientInterface
	narrator  *planner.Narrator
	opts      ComposerOptions
	logger    *zap.Logger
}

// NewItineraryComposer builds a composer. A nil generator disables the
// generated path entirely.
func NewItineraryComposer(
	events repositories.EventRepository,
	store repositories.ItineraryRepository,
	generator utils.NarrativeClientInterface,
	narrator *planner.Narrator,
	opts ComposerOptions,
	logger *zap.Logger,
) ItineraryComposerInterface {
	if opts.GeneratedMaxDays <= 0 {
		opts.GeneratedMaxDays = DefaultGeneratedMaxDays
	}
	return &ItineraryComposer{
		events:    events,
		store:     store,
		generator: generator,
		narrator:  narrator,
		opts:      opts,
		logger:    logger,
	}
}

func (c *ItineraryComposer) Compose(ctx context.Context, in ComposeInput) (*resp.ItinerarySuggestion, error) {
	if in.Duration <= 0 {
		return nil, utils.ErrInvalidDuration
	}
	if len(in.Seeds) != in.Duration {
		return nil, fmt.Errorf("%w: %d seeds for a %d-day trip", utils.ErrInvalidInput, len(in.Seeds), in.Duration)
	}

	start := in.Window.WindowStart
	end := utils.AddDays(start, in.Duration-1)
	events := c.lookupEvents(ctx, start, end)

	title, summary := c.narrator.Header(in.Seeds, start, end)
	days := c.narrator.FallbackDays(in.Seeds, events)

	if generated := c.generate(ctx, in, utils.FormatISODate(end), events); generated != nil {
		days = c.mergeGenerated(in.Seeds, generated.Days)
		if t := strings.TrimSpace(generated.Title); t != "" {
			title = t
		}
		if s := strings.TrimSpace(generated.Summary); s != "" {
			summary = s
		}
	}

	return &resp.ItinerarySuggestion{
		WindowStart:  utils.FormatISODate(start),
		WindowEnd:    utils.FormatISODate(end),
		DurationDays: in.Duration,
		Title:        title,
		Summary:      summary,
		Days:         days,
		Score:        in.Window.Score,
	}, nil
}

func (c *ItineraryComposer) ComposeAndSave(ctx context.Context, in ComposeInput) (*resp.ItinerarySuggestion, error) {
	suggestion, err := c.Compose(ctx, in)
	if err != nil {
		return nil, err
	}

	row, err := suggestionRow(suggestion)
	if err != nil {
		return nil, err
	}
	if err := c.store.ReplaceSuggestion(ctx, row); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	suggestion.ID = row.ID.String()
	suggestion.CreatedAt = row.CreatedAt
	return suggestion, nil
}

func (c *ItineraryComposer) lookupEvents(ctx context.Context, start, end time.Time) []planner.Event {
	if c.events == nil {
		return nil
	}
	rows, err := c.events.GetEventsInRange(ctx, start, end)
	if err != nil {
		c.logger.Warn("event lookup failed, continuing without events",
			zap.String("window_start", utils.FormatISODate(start)),
			zap.Error(err))
		return nil
	}
	return calendarEvents(rows)
}

// generate returns an accepted generated itinerary, or nil when the fallback
// should be used.
func (c *ItineraryComposer) generate(ctx context.Context, in ComposeInput, windowEnd string, events []planner.Event) *resp.NarrativeResponse {
	if c.generator == nil || in.Duration > c.opts.GeneratedMaxDays {
		metrics.NarrativeGenerations.WithLabelValues(metrics.GenerationSkipped).Inc()
		return nil
	}

	genCtx := ctx
	if c.opts.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, c.opts.GenerationTimeout)
		defer cancel()
	}

	request := narrativeRequest(in.Window, windowEnd, in.Duration, in.Seeds, events)
	out, err := c.generator.GenerateItinerary(genCtx, request)
	if err == nil && out == nil {
		err = utils.ErrMalformedGeneration
	}
	if err == nil {
		err = planner.CheckVariety(out.Days, in.Duration)
	}

	fields := []zap.Field{
		zap.String("window_start", request.Window.Start),
		zap.Int("duration", in.Duration),
	}
	switch {
	case err == nil:
		metrics.NarrativeGenerations.WithLabelValues(metrics.GenerationAccepted).Inc()
		return out
	case errors.Is(err, utils.ErrLowVariety):
		metrics.NarrativeGenerations.WithLabelValues(metrics.GenerationRejected).Inc()
		c.logger.Info("generated itinerary rejected, using fallback", append(fields, zap.Error(err))...)
	default:
		metrics.NarrativeGenerations.WithLabelValues(metrics.GenerationFailed).Inc()
		c.logger.Warn("text generation failed, using fallback", append(fields, zap.Error(err))...)
	}
	return nil
}

// mergeGenerated keeps only the narrative text of generated days; every
// structural field comes from the seed.
func (c *ItineraryComposer) mergeGenerated(seeds []planner.DaySeed, generated []resp.NarrativeDay) []resp.ItineraryDay {
	days := make([]resp.ItineraryDay, len(seeds))
	for i, seed := range seeds {
		g := generated[i]
		days[i] = resp.ItineraryDay{
			Day:        seed.Day,
			Date:       utils.FormatISODate(seed.Date),
			City:       seed.City,
			TravelFrom: seed.TravelFrom,
			Title:      c.narrator.DayTitle(seed, len(seeds)),
			Morning:    strings.TrimSpace(g.Morning),
			Afternoon:  strings.TrimSpace(g.Afternoon),
			Evening:    strings.TrimSpace(g.Evening),
			DealIDs:    planner.DealIDs(seed),
		}
	}
	return days
}
