package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dbm "traveldeal/internal/models/db_models"
	"traveldeal/internal/planner"
	"traveldeal/pkg/utils"
)

func fares(prices ...float64) []dbm.FlightPrice {
	start := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	out := make([]dbm.FlightPrice, len(prices))
	for i, p := range prices {
		out[i] = dbm.FlightPrice{Origin: "YVR", Destination: "BKK", Price: p, Currency: "CAD", CheckedAt: start.Add(time.Duration(i) * 24 * time.Hour)}
	}
	return out
}

func TestRecommendWindows_WithoutHistory(t *testing.T) {
	svc := NewPricingService(&fakePrices{}, testConfig(), zap.NewNop())

	windows, err := svc.RecommendWindows(context.Background())
	require.NoError(t, err)
	require.Len(t, windows, 3)
	assert.Equal(t, "2025-10-31", windows[0].WindowStart)
	assert.Equal(t, "2025-11-04", windows[0].WindowEnd)
	assert.Equal(t, string(planner.LabelFlexible), windows[0].Label)
}

func TestRecommendWindows_CheapFareLiftsScores(t *testing.T) {
	svc := NewPricingService(&fakePrices{flights: fares(1400, 1500, 1000)}, testConfig(), zap.NewNop())

	windows, err := svc.RecommendWindows(context.Background())
	require.NoError(t, err)
	assert.Greater(t, windows[0].Score, 58.29)
}

func TestRecommendWindows_StayInsideTrip(t *testing.T) {
	for _, tripLength := range []int{22, 40} {
		cfg := testConfig()
		cfg.Itinerary.MaxWindows = 100
		cfg.Trip.TripLengthDays = tripLength
		svc := NewPricingService(&fakePrices{}, cfg, zap.NewNop())

		windows, err := svc.RecommendWindows(context.Background())
		require.NoError(t, err)
		require.Len(t, windows, 17)
		ret := utils.MustParseISODate(cfg.Trip.ReturnDate)
		for _, w := range windows {
			assert.False(t, utils.MustParseISODate(w.WindowEnd).After(ret), "%s ends after return", w.WindowStart)
		}
	}
}

func TestEvaluateDealTriggers(t *testing.T) {
	svc := NewPricingService(&fakePrices{flights: fares(1000, 1000, 700)}, testConfig(), zap.NewNop())

	triggers, err := svc.EvaluateDealTriggers(context.Background())
	require.NoError(t, err)
	require.Len(t, triggers, 2)
	assert.Equal(t, planner.TriggerFlightDrop, triggers[0].Type)
	assert.Contains(t, triggers[0].Message, "YVR-BKK")
	assert.Equal(t, planner.TriggerFlightLow, triggers[1].Type)
}

func TestPricingService_MapsStoreErrors(t *testing.T) {
	svc := NewPricingService(&fakePrices{err: errBoom}, testConfig(), zap.NewNop())

	_, err := svc.RecommendWindows(context.Background())
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
	_, err = svc.EvaluateDealTriggers(context.Background())
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}
