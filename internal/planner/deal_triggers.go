package planner

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	TriggerFlightDrop = "flight_drop"
	TriggerFlightLow  = "flight_low"
)

// DealTrigger is a detected price event. Delivery is someone else's job.
type DealTrigger struct {
	Type    string
	Message string
}

type TriggerPolicy struct {
	MinSamples int
	DropRatio  float64 // latest <= mean*DropRatio fires a drop
}

var DefaultTriggerPolicy = TriggerPolicy{MinSamples: 2, DropRatio: 0.85}

var whitespace = regexp.MustCompile(`\s+`)

func citySlug(city string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(city)), "_")
}

func HotelDropType(city string) string { return "hotel_drop_" + citySlug(city) }
func HotelLowType(city string) string  { return "hotel_low_" + citySlug(city) }

type seriesStats struct {
	latest, mean, min float64
	currency          string
}

func stats(samples []PriceSample) seriesStats {
	st := seriesStats{min: math.Inf(1)}
	sum := 0.0
	for _, s := range samples {
		sum += s.Price
		st.min = math.Min(st.min, s.Price)
	}
	last := samples[len(samples)-1]
	st.latest = last.Price
	st.mean = sum / float64(len(samples))
	st.currency = last.Currency
	return st
}

func percentBelow(latest, mean float64) int {
	if mean <= 0 {
		return 0
	}
	return int(math.Round((mean - latest) / mean * 100))
}

// Evaluate checks the flight series and each hub city's hotel series for a
// drop against the series mean and for a new low.
func (p TriggerPolicy) Evaluate(route string, flights []PriceSample, hotels map[string][]PriceSample, cities []string) []DealTrigger {
	var out []DealTrigger

	if len(flights) >= p.MinSamples && len(flights) > 0 {
		st := stats(flights)
		if st.mean > 0 && st.latest <= st.mean*p.DropRatio {
			out = append(out, DealTrigger{
				Type: TriggerFlightDrop,
				Message: fmt.Sprintf("Flight fare %s is %d%% below %d-sample avg (%.0f %s).",
					route, percentBelow(st.latest, st.mean), len(flights), st.mean, st.currency),
			})
		}
		if st.latest <= st.min {
			out = append(out, DealTrigger{
				Type:    TriggerFlightLow,
				Message: fmt.Sprintf("Flight fare %s hit a new low at %.0f %s.", route, st.latest, st.currency),
			})
		}
	}

	for _, city := range cities {
		rows := hotels[city]
		if len(rows) < p.MinSamples || len(rows) == 0 {
			continue
		}
		st := stats(rows)
		if st.mean > 0 && st.latest <= st.mean*p.DropRatio {
			out = append(out, DealTrigger{
				Type: HotelDropType(city),
				Message: fmt.Sprintf("%s hotels dropped %d%% vs %d-sample avg (%.0f %s).",
					city, percentBelow(st.latest, st.mean), len(rows), st.mean, st.currency),
			})
		}
		if st.latest <= st.min {
			out = append(out, DealTrigger{
				Type:    HotelLowType(city),
				Message: fmt.Sprintf("%s hotels reached a new low at %.0f %s.", city, st.latest, st.currency),
			})
		}
	}
	return out
}
