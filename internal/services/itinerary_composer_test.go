package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	resp "traveldeal/internal/models/response_models"
	"traveldeal/internal/planner"
	"traveldeal/pkg/utils"
)

var hubs = []string{"Bangkok", "Chiang Mai", "Phuket", "Krabi", "Koh Samui"}

func composeInput(t *testing.T, duration int, deals ...planner.ActivityRecord) ComposeInput {
	t.Helper()
	start := utils.MustParseISODate("2025-10-31")
	pool := planner.NewDealPool(deals, 60)
	_, seeds := planner.PlanSeeds(planner.NewRegionalRoutePolicy("Bangkok", hubs), pool, duration, start)
	return ComposeInput{
		Window:   planner.WindowScore{WindowStart: start, WindowEnd: utils.AddDays(start, 4), Score: 58.3, Label: planner.LabelFlexible},
		Duration: duration,
		Seeds:    seeds,
	}
}

func newComposer(events *fakeEvents, store *memStore, gen *fakeGenerator) *ItineraryComposer {
	var generator utils.NarrativeClientInterface
	if gen != nil {
		generator = gen
	}
	return NewItineraryComposer(events, store, generator, planner.NewNarrator("Bangkok"), ComposerOptions{}, zap.NewNop()).(*ItineraryComposer)
}

func variedDays(n int) []resp.NarrativeDay {
	days := make([]resp.NarrativeDay, n)
	for i := range days {
		days[i] = resp.NarrativeDay{
			Day:       99,
			Title:     "ignored",
			Morning:   fmt.Sprintf("Morning plan %d", i),
			Afternoon: fmt.Sprintf("Afternoon plan %d", i),
			Evening:   fmt.Sprintf("Evening plan %d", i),
			DealIDs:   []string{"made-up"},
		}
	}
	return days
}

func TestCompose_FallbackWithoutGenerator(t *testing.T) {
	c := newComposer(&fakeEvents{}, newMemStore(), nil)
	in := composeInput(t, 5)

	got, err := c.Compose(context.Background(), in)
	require.NoError(t, err)

	want := planner.NewNarrator("Bangkok").FallbackDays(in.Seeds, nil)
	assert.Equal(t, want, got.Days)
	assert.Equal(t, "2025-10-31", got.WindowStart)
	assert.Equal(t, "2025-11-04", got.WindowEnd)
	assert.Equal(t, 5, got.DurationDays)
	assert.Equal(t, 58.3, got.Score)

	title, summary := planner.NewNarrator("Bangkok").Header(in.Seeds, in.Window.WindowStart, utils.AddDays(in.Window.WindowStart, 4))
	assert.Equal(t, title, got.Title)
	assert.Equal(t, summary, got.Summary)
}

func TestCompose_AcceptsGeneratedTextButKeepsStructure(t *testing.T) {
	gen := &fakeGenerator{out: &resp.NarrativeResponse{Title: "Temples and street food", Days: variedDays(4)}}
	c := newComposer(&fakeEvents{}, newMemStore(), gen)
	in := composeInput(t, 4)

	got, err := c.Compose(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, 1, gen.calls)
	require.Len(t, got.Days, 4)

	assert.Equal(t, "Temples and street food", got.Title)
	_, fallbackSummary := planner.NewNarrator("Bangkok").Header(in.Seeds, in.Window.WindowStart, utils.AddDays(in.Window.WindowStart, 3))
	assert.Equal(t, fallbackSummary, got.Summary)

	for i, day := range got.Days {
		seed := in.Seeds[i]
		assert.Equal(t, seed.Day, day.Day)
		assert.Equal(t, utils.FormatISODate(seed.Date), day.Date)
		assert.Equal(t, seed.City, day.City)
		assert.Equal(t, planner.DealIDs(seed), day.DealIDs)
		assert.Equal(t, fmt.Sprintf("Morning plan %d", i), day.Morning)
		assert.NotEqual(t, "ignored", day.Title)
	}
	assert.Equal(t, 4, gen.last.Duration)
	assert.Len(t, gen.last.DaySeeds, 4)
}

func TestCompose_FallsBackOnLowVariety(t *testing.T) {
	days := variedDays(5)
	for i := range days {
		days[i].Morning = "Temple walk"
	}
	gen := &fakeGenerator{out: &resp.NarrativeResponse{Title: "Same every day", Days: days}}
	c := newComposer(&fakeEvents{}, newMemStore(), gen)
	in := composeInput(t, 5)

	got, err := c.Compose(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, planner.NewNarrator("Bangkok").FallbackDays(in.Seeds, nil), got.Days)
	assert.NotEqual(t, "Same every day", got.Title)
}

func TestCompose_FallsBackOnGenerationError(t *testing.T) {
	gen := &fakeGenerator{err: utils.ErrGenerationUnavailable}
	c := newComposer(&fakeEvents{}, newMemStore(), gen)
	in := composeInput(t, 3)

	got, err := c.Compose(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, planner.NewNarrator("Bangkok").FallbackDays(in.Seeds, nil), got.Days)
}

func TestCompose_LongTripsSkipGeneration(t *testing.T) {
	gen := &fakeGenerator{out: &resp.NarrativeResponse{Days: variedDays(11)}}
	c := newComposer(&fakeEvents{}, newMemStore(), gen)

	_, err := c.Compose(context.Background(), composeInput(t, 11))
	require.NoError(t, err)
	assert.Zero(t, gen.calls)

	gen.out = &resp.NarrativeResponse{Days: variedDays(10)}
	_, err = c.Compose(context.Background(), composeInput(t, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
}

func TestCompose_EventFailureIsNotFatal(t *testing.T) {
	c := newComposer(&fakeEvents{err: errBoom}, newMemStore(), nil)
	got, err := c.Compose(context.Background(), composeInput(t, 3))
	require.NoError(t, err)
	assert.Len(t, got.Days, 3)
}

func TestCompose_RejectsBadInput(t *testing.T) {
	c := newComposer(&fakeEvents{}, newMemStore(), nil)

	_, err := c.Compose(context.Background(), ComposeInput{Duration: 0})
	assert.ErrorIs(t, err, utils.ErrInvalidDuration)

	in := composeInput(t, 3)
	in.Duration = 4
	_, err = c.Compose(context.Background(), in)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestComposeAndSave_ReplacesPreviousSuggestion(t *testing.T) {
	store := newMemStore()
	c := newComposer(&fakeEvents{}, store, nil)
	in := composeInput(t, 3)

	first, err := c.ComposeAndSave(context.Background(), in)
	require.NoError(t, err)
	second, err := c.ComposeAndSave(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 2, store.writes)
	assert.NotEmpty(t, second.ID)
	assert.Equal(t, first.Days, second.Days)

	row, err := store.GetSuggestion(context.Background(), in.Window.WindowStart, 3)
	require.NoError(t, err)
	stored, err := suggestionResponse(row)
	require.NoError(t, err)
	assert.Equal(t, second.Days, stored.Days)
}

func TestComposeAndSave_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.failFor[3] = true
	c := newComposer(&fakeEvents{}, store, nil)

	_, err := c.ComposeAndSave(context.Background(), composeInput(t, 3))
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
	assert.Zero(t, store.Len())
}
