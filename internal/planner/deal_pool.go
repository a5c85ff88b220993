package planner

import (
	"math"
	"sort"
)

// ActivityRecord is a curated deal bound to at most one trip day.
type ActivityRecord struct {
	ID       string
	Title    string
	City     string
	Category string
	Price    *float64
	Currency string
	Rating   *float64
	URL      string
}

func (a ActivityRecord) bookable() bool {
	return a.Price != nil && *a.Price > 0 && a.Rating != nil && *a.Rating > 0
}

func ratingOf(a ActivityRecord) float64 {
	if a.Rating == nil {
		return 0
	}
	return *a.Rating
}

func priceOf(a ActivityRecord) float64 {
	if a.Price == nil {
		return math.Inf(1)
	}
	return *a.Price
}

// DealPool groups deals by city, each city ranked best first.
type DealPool struct {
	byCity map[string][]ActivityRecord
}

// NewDealPool groups deals by city and ranks each city: deals with both a
// price and a rating first, then rating desc, then price asc. Each city keeps
// at most perCity deals (no cap when perCity <= 0). Deals without a city are
// dropped.
func NewDealPool(deals []ActivityRecord, perCity int) *DealPool {
	byCity := make(map[string][]ActivityRecord)
	for _, d := range deals {
		if d.City == "" {
			continue
		}
		byCity[d.City] = append(byCity[d.City], d)
	}

	for city, list := range byCity {
		sort.SliceStable(list, func(i, j int) bool {
			a, b := list[i], list[j]
			if a.bookable() != b.bookable() {
				return a.bookable()
			}
			if ratingOf(a) != ratingOf(b) {
				return ratingOf(a) > ratingOf(b)
			}
			return priceOf(a) < priceOf(b)
		})
		if perCity > 0 && len(list) > perCity {
			list = list[:perCity]
		}
		byCity[city] = list
	}
	return &DealPool{byCity: byCity}
}

// Count is the number of deals available in city.
func (p *DealPool) Count(city string) int {
	if p == nil {
		return 0
	}
	return len(p.byCity[city])
}

// Inventory returns deal counts per city.
func (p *DealPool) Inventory() map[string]int {
	out := make(map[string]int)
	if p == nil {
		return out
	}
	for city, list := range p.byCity {
		out[city] = len(list)
	}
	return out
}

// Queues returns a fresh copy of every city queue, so consuming one build
// never affects the next.
func (p *DealPool) Queues() map[string][]ActivityRecord {
	out := make(map[string][]ActivityRecord)
	if p == nil {
		return out
	}
	for city, list := range p.byCity {
		out[city] = append([]ActivityRecord(nil), list...)
	}
	return out
}
