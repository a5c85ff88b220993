package planner

import (
	"time"

	"traveldeal/pkg/utils"
)

// DaySeed is the structural skeleton of one trip day.
type DaySeed struct {
	Day        int
	Date       time.Time
	City       string
	TravelFrom string
	Deal       *ActivityRecord
}

// BuildDaySeeds walks route and allocation, binding one deal per day from
// each city's queue. It always returns exactly duration seeds, dated
// consecutively from windowStart; days the allocation does not cover stay in
// the last city visited.
func BuildDaySeeds(route []string, allocation []int, duration int, pool *DealPool, windowStart time.Time) []DaySeed {
	if duration <= 0 {
		return nil
	}
	queues := pool.Queues()
	seeds := make([]DaySeed, 0, duration)

	next := func(city, travelFrom string) {
		seed := DaySeed{
			Day:        len(seeds) + 1,
			Date:       utils.AddDays(windowStart, len(seeds)),
			City:       city,
			TravelFrom: travelFrom,
		}
		if q := queues[city]; len(q) > 0 {
			deal := q[0]
			queues[city] = q[1:]
			seed.Deal = &deal
		}
		seeds = append(seeds, seed)
	}

	lastCity := ""
	if len(route) > 0 {
		lastCity = route[0]
	}
	for i := 0; i < len(route) && i < len(allocation) && len(seeds) < duration; i++ {
		city := route[i]
		for local := 0; local < allocation[i] && len(seeds) < duration; local++ {
			from := ""
			if local == 0 && i > 0 && route[i-1] != city {
				from = route[i-1]
			}
			next(city, from)
		}
		lastCity = city
	}
	for len(seeds) < duration {
		next(lastCity, "")
	}
	return seeds
}

// PlanSeeds runs route planning, allocation and seed assembly for one
// (windowStart, duration) pair.
func PlanSeeds(policy RoutePolicy, pool *DealPool, duration int, windowStart time.Time) ([]string, []DaySeed) {
	route := policy.PlanRoute(duration, pool.Inventory())
	allocation := AllocateSegmentDays(duration, route)
	return route, BuildDaySeeds(route, allocation, duration, pool, windowStart)
}
