package planner

import (
	"sort"
	"strings"
)

// RoutePolicy picks the ordered cities for a trip of the given length.
// inventory maps a city to the number of deals available in it.
type RoutePolicy interface {
	PlanRoute(duration int, inventory map[string]int) []string
}

// ChooseCityCount is the number of distinct cities, anchor included.
func ChooseCityCount(duration int) int {
	switch {
	case duration <= 5:
		return 1
	case duration <= 9:
		return 2
	case duration <= 16:
		return 3
	default:
		return 4
	}
}

// RegionalRoutePolicy opens and closes every multi-city trip at Anchor.
// Long trips prefer a north hub plus coast plus island shape, shorter ones
// fall back to inventory ranking.
type RegionalRoutePolicy struct {
	Anchor   string
	Hubs     []string
	NorthHub string
	Coastal  []string
	Island   string

	LongTripDays int
	MidTripDays  int
}

func NewRegionalRoutePolicy(anchor string, hubs []string) *RegionalRoutePolicy {
	return &RegionalRoutePolicy{
		Anchor:       anchor,
		Hubs:         hubs,
		NorthHub:     "Chiang Mai",
		Coastal:      []string{"Krabi", "Phuket"},
		Island:       "Koh Samui",
		LongTripDays: 17,
		MidTripDays:  10,
	}
}

// ranked returns the non-anchor hubs by inventory, descending. Ties keep
// the configured hub order.
func (p *RegionalRoutePolicy) ranked(inventory map[string]int) []string {
	out := make([]string, 0, len(p.Hubs))
	for _, city := range p.Hubs {
		if !strings.EqualFold(city, p.Anchor) {
			out = append(out, city)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return inventory[out[i]] > inventory[out[j]]
	})
	return out
}

func (p *RegionalRoutePolicy) isHub(city string) bool {
	for _, h := range p.Hubs {
		if h == city {
			return true
		}
	}
	return false
}

func (p *RegionalRoutePolicy) PlanRoute(duration int, inventory map[string]int) []string {
	if duration <= 5 {
		return []string{p.Anchor}
	}

	ranked := p.ranked(inventory)
	middle := make([]string, 0, 3)
	has := func(city string) bool {
		for _, c := range middle {
			if c == city {
				return true
			}
		}
		return false
	}
	addIfStocked := func(city string) {
		if city != "" && p.isHub(city) && inventory[city] > 0 && !has(city) {
			middle = append(middle, city)
		}
	}
	addBest := func(candidates []string) {
		best, bestCount := "", -1
		for _, city := range candidates {
			if city == p.Anchor || has(city) || !p.isHub(city) {
				continue
			}
			if n := inventory[city]; n > bestCount {
				best, bestCount = city, n
			}
		}
		if best != "" {
			middle = append(middle, best)
		}
	}

	switch {
	case duration >= p.LongTripDays:
		addIfStocked(p.NorthHub)
		addBest(p.Coastal)
		addIfStocked(p.Island)
	case duration >= p.MidTripDays:
		addIfStocked(p.NorthHub)
		addBest(append(append([]string(nil), p.Coastal...), p.Island))
	default:
		addBest(ranked)
	}

	desired := ChooseCityCount(duration) - 1
	if desired > len(ranked) {
		desired = len(ranked)
	}
	if desired < 1 {
		desired = 1
	}
	for _, city := range ranked {
		if len(middle) >= desired {
			break
		}
		if !has(city) {
			middle = append(middle, city)
		}
	}
	if len(middle) > desired {
		middle = middle[:desired]
	}

	route := make([]string, 0, len(middle)+2)
	route = append(route, p.Anchor)
	route = append(route, middle...)
	return append(route, p.Anchor)
}
