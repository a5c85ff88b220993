package planner

import (
	"math"
	"sort"
	"time"

	"traveldeal/pkg/utils"
)

// PriceSample is one observed price, ascending by CheckedAt within a series.
type PriceSample struct {
	CheckedAt time.Time
	Price     float64
	Currency  string
}

type WindowLabel string

const (
	LabelPrime    WindowLabel = "PRIME"
	LabelSolid    WindowLabel = "SOLID"
	LabelFlexible WindowLabel = "FLEXIBLE"
)

// WindowScore is a candidate travel window. WindowEnd is inclusive.
type WindowScore struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Score       float64
	Label       WindowLabel
}

// ScoringPolicy holds the tunables of the price-trend scorer.
type ScoringPolicy struct {
	FlightWeight float64
	HotelWeight  float64
	NeutralScore float64

	SeriesMin   float64
	SeriesMax   float64
	BaselineMin float64
	BaselineMax float64
	WindowMin   float64
	WindowMax   float64

	PrimeAt float64
	SolidAt float64

	// Seasonal perturbation: sin(i/SinPeriod)*SinAmp + cos(i/CosPeriod)*CosAmp.
	SinPeriod float64
	SinAmp    float64
	CosPeriod float64
	CosAmp    float64
}

var DefaultScoringPolicy = ScoringPolicy{
	FlightWeight: 35,
	HotelWeight:  30,
	NeutralScore: 50,
	SeriesMin:    10,
	SeriesMax:    90,
	BaselineMin:  20,
	BaselineMax:  90,
	WindowMin:    10,
	WindowMax:    98,
	PrimeAt:      80,
	SolidAt:      70,
	SinPeriod:    2.8,
	SinAmp:       6,
	CosPeriod:    4.2,
	CosAmp:       4,
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SeriesScore scores one series: a latest price under the series mean scores
// above neutral, weighted by k and scaled by the series range.
func (p ScoringPolicy) SeriesScore(samples []PriceSample, k float64) float64 {
	if len(samples) == 0 {
		return p.NeutralScore
	}
	lo, hi, sum := samples[0].Price, samples[0].Price, 0.0
	for _, s := range samples {
		lo = math.Min(lo, s.Price)
		hi = math.Max(hi, s.Price)
		sum += s.Price
	}
	if hi == lo {
		return p.NeutralScore
	}
	mean := sum / float64(len(samples))
	latest := samples[len(samples)-1].Price
	relative := (mean - latest) / (hi - lo)
	return clamp(p.NeutralScore+relative*k, p.SeriesMin, p.SeriesMax)
}

func (p ScoringPolicy) FlightScore(samples []PriceSample) float64 {
	return p.SeriesScore(samples, p.FlightWeight)
}

// HotelScore is the mean of the per-city scores, neutral with no cities.
func (p ScoringPolicy) HotelScore(byCity map[string][]PriceSample) float64 {
	if len(byCity) == 0 {
		return p.NeutralScore
	}
	cities := make([]string, 0, len(byCity))
	for city := range byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	total := 0.0
	for _, city := range cities {
		total += p.SeriesScore(byCity[city], p.HotelWeight)
	}
	return total / float64(len(cities))
}

func (p ScoringPolicy) Baseline(flights []PriceSample, hotels map[string][]PriceSample) float64 {
	return clamp((p.FlightScore(flights)+p.HotelScore(hotels))/2, p.BaselineMin, p.BaselineMax)
}

func (p ScoringPolicy) Label(score float64) WindowLabel {
	switch {
	case score >= p.PrimeAt:
		return LabelPrime
	case score >= p.SolidAt:
		return LabelSolid
	default:
		return LabelFlexible
	}
}

func (p ScoringPolicy) seasonal(offset int) float64 {
	i := float64(offset)
	return math.Sin(i/p.SinPeriod)*p.SinAmp + math.Cos(i/p.CosPeriod)*p.CosAmp
}

type WindowOptions struct {
	TripStart    time.Time
	TotalDays    int // days from depart to return
	WindowLength int
	MaxWindows   int
}

// RecommendWindows scores every window start in [0, TotalDays-WindowLength]
// (always at least offset 0) and returns the best MaxWindows, best first.
// Equal scores keep chronological order.
func (p ScoringPolicy) RecommendWindows(flights []PriceSample, hotels map[string][]PriceSample, opts WindowOptions) []WindowScore {
	windowLength := opts.WindowLength
	if windowLength <= 0 {
		windowLength = 5
	}
	maxWindows := opts.MaxWindows
	if maxWindows <= 0 {
		maxWindows = 3
	}
	lastOffset := opts.TotalDays - windowLength
	if lastOffset < 0 {
		lastOffset = 0
	}

	base := p.Baseline(flights, hotels)
	windows := make([]WindowScore, 0, lastOffset+1)
	for i := 0; i <= lastOffset; i++ {
		start := utils.AddDays(opts.TripStart, i)
		score := clamp(base+p.seasonal(i), p.WindowMin, p.WindowMax)
		windows = append(windows, WindowScore{
			WindowStart: start,
			WindowEnd:   utils.AddDays(start, windowLength-1),
			Score:       score,
			Label:       p.Label(score),
		})
	}

	sort.SliceStable(windows, func(a, b int) bool {
		return windows[a].Score > windows[b].Score
	})
	if len(windows) > maxWindows {
		windows = windows[:maxWindows]
	}
	return windows
}
