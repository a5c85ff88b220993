package planner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traveldeal/pkg/utils"
)

func mustDate(s string) time.Time { return utils.MustParseISODate(s) }

func ptr(v float64) *float64 { return &v }

func dealsIn(city string, n int) []ActivityRecord {
	out := make([]ActivityRecord, n)
	for i := range out {
		out[i] = ActivityRecord{
			ID:     fmt.Sprintf("%s-%d", city, i),
			Title:  fmt.Sprintf("%s experience %d", city, i),
			City:   city,
			Price:  ptr(float64(100 * (i + 1))),
			Rating: ptr(4.9 - float64(i)/10),
		}
	}
	return out
}

func TestBuildDaySeeds_ShortTripStaysAtAnchor(t *testing.T) {
	pool := NewDealPool(dealsIn("Chiang Mai", 4), 60)
	policy := NewRegionalRoutePolicy("Bangkok", thaiHubs)

	route, seeds := PlanSeeds(policy, pool, 3, mustDate("2025-10-28"))

	assert.Equal(t, []string{"Bangkok"}, route)
	require.Len(t, seeds, 3)
	for _, s := range seeds {
		assert.Equal(t, "Bangkok", s.City)
		assert.Empty(t, s.TravelFrom)
		assert.Nil(t, s.Deal)
	}
}

func TestBuildDaySeeds_LongLoop(t *testing.T) {
	pool := NewDealPool(dealsIn("Chiang Mai", 2), 60)
	route := []string{"Bangkok", "Chiang Mai", "Krabi", "Bangkok"}
	start := mustDate("2025-10-28")

	seeds := BuildDaySeeds(route, []int{4, 8, 7, 3}, 22, pool, start)

	require.Len(t, seeds, 22)
	for k, s := range seeds {
		assert.Equal(t, k+1, s.Day)
		assert.Equal(t, utils.AddDays(start, k), s.Date)
	}

	assert.Equal(t, "Bangkok", seeds[3].City)
	assert.Equal(t, "Chiang Mai", seeds[4].City)
	assert.Equal(t, "Bangkok", seeds[4].TravelFrom)
	assert.Empty(t, seeds[5].TravelFrom)
	assert.Equal(t, "Krabi", seeds[12].City)
	assert.Equal(t, "Chiang Mai", seeds[12].TravelFrom)
	assert.Equal(t, "Bangkok", seeds[19].City)
	assert.Equal(t, "Krabi", seeds[19].TravelFrom)
	assert.Equal(t, "2025-11-18", utils.FormatISODate(seeds[21].Date))

	require.NotNil(t, seeds[4].Deal)
	assert.Equal(t, "Chiang Mai-0", seeds[4].Deal.ID)
	require.NotNil(t, seeds[5].Deal)
	assert.Equal(t, "Chiang Mai-1", seeds[5].Deal.ID)
	assert.Nil(t, seeds[6].Deal)
}

func TestBuildDaySeeds_QueuesAreFreshPerBuild(t *testing.T) {
	pool := NewDealPool(dealsIn("Krabi", 1), 60)
	route := []string{"Bangkok", "Krabi", "Bangkok"}

	first := BuildDaySeeds(route, []int{2, 3, 1}, 6, pool, mustDate("2025-10-28"))
	second := BuildDaySeeds(route, []int{2, 3, 1}, 6, pool, mustDate("2025-10-29"))

	require.NotNil(t, first[2].Deal)
	require.NotNil(t, second[2].Deal)
	assert.Equal(t, first[2].Deal.ID, second[2].Deal.ID)
	assert.Equal(t, 1, pool.Count("Krabi"))
}

func TestBuildDaySeeds_AllocationMismatch(t *testing.T) {
	start := mustDate("2025-10-28")

	over := BuildDaySeeds([]string{"Bangkok", "Krabi"}, []int{5, 5}, 3, nil, start)
	require.Len(t, over, 3)
	assert.Equal(t, "Bangkok", over[2].City)

	under := BuildDaySeeds([]string{"Bangkok", "Krabi"}, []int{1, 1}, 4, nil, start)
	require.Len(t, under, 4)
	assert.Equal(t, "Krabi", under[3].City)
	assert.Empty(t, under[3].TravelFrom)
	assert.Equal(t, 4, under[3].Day)
}

func TestBuildDaySeeds_ExactCountForAnyDuration(t *testing.T) {
	pool := NewDealPool(append(dealsIn("Krabi", 3), dealsIn("Phuket", 5)...), 60)
	policy := NewRegionalRoutePolicy("Bangkok", thaiHubs)
	start := mustDate("2025-10-28")

	for d := 1; d <= 30; d++ {
		_, seeds := PlanSeeds(policy, pool, d, start)
		require.Len(t, seeds, d)
		assert.Equal(t, d, seeds[d-1].Day)
		assert.Equal(t, utils.AddDays(start, d-1), seeds[d-1].Date)
	}
}

func TestNewDealPool_RanksAndCaps(t *testing.T) {
	deals := []ActivityRecord{
		{ID: "no-price", City: "Krabi", Rating: ptr(5)},
		{ID: "cheap", City: "Krabi", Price: ptr(50), Rating: ptr(4.5)},
		{ID: "pricey", City: "Krabi", Price: ptr(90), Rating: ptr(4.5)},
		{ID: "best", City: "Krabi", Price: ptr(200), Rating: ptr(4.8)},
		{ID: "cityless", Price: ptr(10), Rating: ptr(5)},
	}

	pool := NewDealPool(deals, 3)
	q := pool.Queues()["Krabi"]

	require.Len(t, q, 3)
	assert.Equal(t, []string{"best", "cheap", "pricey"}, []string{q[0].ID, q[1].ID, q[2].ID})
	assert.Equal(t, map[string]int{"Krabi": 3}, pool.Inventory())
	assert.Zero(t, pool.Count(""))
}
