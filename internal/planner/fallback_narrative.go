package planner

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	resp "traveldeal/internal/models/response_models"
	"traveldeal/pkg/utils"
)

// Event is a calendar entry that can take over an evening slot.
type Event struct {
	Name     string
	Location string
	Start    time.Time
	End      time.Time
}

const defaultBankCity = "Bangkok"

var morningBank = map[string][]string{
	"Bangkok": {
		"Temple hop early, then breakfast near the river.",
		"Canal-side walk and a casual cafe start.",
		"Old town loop with a coffee stop and a slow pace.",
		"Neighborhood wander with a bakery break.",
		"Market breakfast and a short boat ride for orientation.",
	},
	"Chiang Mai": {
		"Old city temple circuit and a slow breakfast.",
		"Cafe start, then a neighborhood walk inside the moat.",
		"Early viewpoint or park walk, then a light brunch.",
		"Local market stop and a relaxed morning in the old quarter.",
		"Craft shopping and a short stroll through side streets.",
	},
	"Krabi": {
		"Beach sunrise, then breakfast with a view.",
		"Slow morning on the sand, then coffee and a short walk.",
		"Viewpoint hike (easy pace), then brunch.",
		"Market stop and a lazy morning by the water.",
		"Cafe start, then a scenic coastal stroll.",
	},
	"Phuket": {
		"Old town stroll and a cafe breakfast.",
		"Beach morning, then a slow brunch.",
		"Viewpoint loop, then coffee and a reset.",
		"Neighborhood walk with a bakery stop.",
		"Market breakfast and a relaxed start.",
	},
	"Koh Samui": {
		"Sunrise viewpoint and a relaxed cafe start.",
		"Beach morning, then brunch and a short walk.",
		"Slow breakfast, then a neighborhood wander.",
		"Coffee start, then a gentle viewpoint or temple stop.",
		"Market bite and an easy start by the water.",
	},
}

var eveningBank = map[string][]string{
	"Bangkok": {
		"Riverside dinner and a low-key night view.",
		"Night market snack run and an early finish.",
		"Chinatown-style food crawl with a short stroll after.",
		"Rooftop or riverside drinks to cap the day.",
		"Casual dinner, then a walk through a lively neighborhood.",
	},
	"Chiang Mai": {
		"Night market tasting and a relaxed walk back.",
		"Low-key dinner and a short lantern-lit stroll.",
		"Old town dinner, then a casual bar or dessert stop.",
		"Street food sampling and a quiet finish.",
		"Riverside dinner with a slow pace.",
	},
	"Krabi": {
		"Seafood dinner and a sunset view.",
		"Night market bites and a short waterfront walk.",
		"Casual dinner, then a calm beach stroll.",
		"Sunset drinks, then an early night.",
		"Food crawl focused on local specialties.",
	},
	"Phuket": {
		"Old town dinner and a late dessert stop.",
		"Night market sampling and a short walk.",
		"Sunset viewpoint, then a casual dinner.",
		"Food crawl with a focus on local specialties.",
		"Rooftop drinks, then a relaxed finish.",
	},
	"Koh Samui": {
		"Riverside or beach dinner with a sunset view.",
		"Night market bites and a calm walk back.",
		"Casual dinner, then a short beach stroll.",
		"Food crawl focused on local specialties.",
		"Low-key drinks and an early finish.",
	},
}

var dayThemes = []string{
	"Markets + street food",
	"Temples + old town",
	"Waterfront + neighborhoods",
	"Nature + viewpoints",
	"Museums + cafes",
	"Wellness + slow afternoon",
}

// Narrator writes the deterministic day text. Every phrase is a pure function
// of the seed, its position and the matched event.
type Narrator struct {
	Anchor      string
	MorningBank map[string][]string
	EveningBank map[string][]string
	Themes      []string
}

func NewNarrator(anchor string) *Narrator {
	return &Narrator{
		Anchor:      anchor,
		MorningBank: morningBank,
		EveningBank: eveningBank,
		Themes:      dayThemes,
	}
}

func (n *Narrator) bank(banks map[string][]string, city string) []string {
	if b, ok := banks[city]; ok {
		return b
	}
	if b, ok := banks[n.Anchor]; ok {
		return b
	}
	return banks[defaultBankCity]
}

func (n *Narrator) isAnchor(city string) bool {
	return strings.EqualFold(city, n.Anchor)
}

func phraseSeed(seed DaySeed, slot string) string {
	return fmt.Sprintf("%s-%s-%d-%s", utils.FormatISODate(seed.Date), seed.City, seed.Day-1, slot)
}

// MatchEvent returns the first event covering the seed's date whose location
// mentions the seed's city. An empty location matches anywhere and the
// anchor city accepts any location.
func (n *Narrator) MatchEvent(seed DaySeed, events []Event) *Event {
	date := utils.DateOnly(seed.Date)
	city := strings.ToLower(seed.City)
	for i := range events {
		ev := events[i]
		if date.Before(utils.DateOnly(ev.Start)) || date.After(utils.DateOnly(ev.End)) {
			continue
		}
		loc := strings.ToLower(strings.TrimSpace(ev.Location))
		if loc == "" || strings.Contains(loc, city) || n.isAnchor(seed.City) {
			return &events[i]
		}
	}
	return nil
}

func (n *Narrator) Morning(seed DaySeed) string {
	if seed.TravelFrom != "" {
		return fmt.Sprintf("Travel from %s to %s, check in, and reset with a coffee.", seed.TravelFrom, seed.City)
	}
	return utils.PickFrom(n.bank(n.MorningBank, seed.City), phraseSeed(seed, "am"))
}

func (n *Narrator) Afternoon(seed DaySeed) string {
	if seed.Deal == nil {
		return fmt.Sprintf("Guided highlight focusing on %s.", seed.City)
	}
	var extras []string
	if price := FormatDealPrice(seed.Deal.Price, seed.Deal.Currency); price != "" {
		extras = append(extras, price)
	}
	if seed.Deal.Rating != nil && *seed.Deal.Rating > 0 {
		extras = append(extras, fmt.Sprintf("%.1f★", *seed.Deal.Rating))
	}
	if len(extras) == 0 {
		return fmt.Sprintf("Featured experience: %s.", seed.Deal.Title)
	}
	return fmt.Sprintf("Featured experience: %s (%s).", seed.Deal.Title, strings.Join(extras, ", "))
}

func (n *Narrator) Evening(seed DaySeed, duration int, event *Event) string {
	if event != nil {
		return fmt.Sprintf("Catch %s in the evening, then a late supper.", event.Name)
	}
	if seed.Day == duration && n.isAnchor(seed.City) {
		return "Pack, grab a simple dinner, and get an early night for travel."
	}
	return utils.PickFrom(n.bank(n.EveningBank, seed.City), phraseSeed(seed, "pm"))
}

func (n *Narrator) DayTitle(seed DaySeed, duration int) string {
	switch {
	case seed.Day == 1:
		return "Arrive in " + seed.City
	case seed.Day == duration && n.isAnchor(seed.City):
		return "Departure prep in " + seed.City
	case seed.Day == duration:
		return "Last day in " + seed.City
	case seed.TravelFrom != "":
		return "Travel to " + seed.City
	}
	theme := utils.PickFrom(n.Themes, fmt.Sprintf("%s-%s-%d", utils.FormatISODate(seed.Date), seed.City, seed.Day-1))
	return seed.City + ": " + theme
}

// FallbackDays narrates every seed without any external call.
func (n *Narrator) FallbackDays(seeds []DaySeed, events []Event) []resp.ItineraryDay {
	days := make([]resp.ItineraryDay, len(seeds))
	for i, seed := range seeds {
		days[i] = resp.ItineraryDay{
			Day:        seed.Day,
			Date:       utils.FormatISODate(seed.Date),
			City:       seed.City,
			TravelFrom: seed.TravelFrom,
			Title:      n.DayTitle(seed, len(seeds)),
			Morning:    n.Morning(seed),
			Afternoon:  n.Afternoon(seed),
			Evening:    n.Evening(seed, len(seeds), n.MatchEvent(seed, events)),
			DealIDs:    DealIDs(seed),
		}
	}
	return days
}

// DealIDs is the deal id list a day carries, never nil.
func DealIDs(seed DaySeed) []string {
	if seed.Deal == nil {
		return []string{}
	}
	return []string{seed.Deal.ID}
}

type citySegment struct {
	City       string
	Start, End time.Time
}

// Header builds the itinerary title and the city-block summary.
func (n *Narrator) Header(seeds []DaySeed, windowStart, windowEnd time.Time) (string, string) {
	title := fmt.Sprintf("Thailand loop: %s to %s", utils.FormatISODate(windowStart), utils.FormatISODate(windowEnd))

	var segments []citySegment
	for _, seed := range seeds {
		if len(segments) == 0 || segments[len(segments)-1].City != seed.City {
			segments = append(segments, citySegment{City: seed.City, Start: seed.Date, End: seed.Date})
			continue
		}
		segments[len(segments)-1].End = seed.Date
	}
	if len(segments) <= 1 {
		return title, "Single-city rhythm with one standout experience each day."
	}

	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = fmt.Sprintf("%s (%s-%s)", s.City, s.Start.Format("Jan 2"), s.End.Format("Jan 2"))
	}
	return title, "City blocks with travel days baked in: " + strings.Join(parts, " · ") + "."
}

var pricePrinter = message.NewPrinter(language.English)

// FormatDealPrice renders a whole-unit price with its ISO currency code,
// e.g. "THB 1,200". Empty when either part is missing.
func FormatDealPrice(price *float64, code string) string {
	if price == nil || *price <= 0 || strings.TrimSpace(code) == "" {
		return ""
	}
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	label := strings.ToUpper(strings.TrimSpace(code))
	if err == nil {
		label = unit.String()
	}
	return label + " " + pricePrinter.Sprintf("%v", number.Decimal(*price, number.MaxFractionDigits(0)))
}
