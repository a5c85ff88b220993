package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"traveldeal/internal/config"
	dbm "traveldeal/internal/models/db_models"
	req "traveldeal/internal/models/request_models"
	resp "traveldeal/internal/models/response_models"
	"traveldeal/pkg/utils"
)

var errBoom = errors.New("boom")

type fakePrices struct {
	flights []dbm.FlightPrice
	hotels  map[string][]dbm.HotelPrice
	err     error
}

func (f *fakePrices) GetRecentFlightPrices(ctx context.Context, limit int) ([]dbm.FlightPrice, error) {
	return f.flights, f.err
}

func (f *fakePrices) GetHotelHistoryByCity(ctx context.Context, cities []string, perCity int) (map[string][]dbm.HotelPrice, error) {
	return f.hotels, f.err
}

type fakeDeals struct {
	rows []dbm.ExperienceDeal
	err  error
}

func (f *fakeDeals) GetExperienceDeals(ctx context.Context, filter req.DealFilter) ([]dbm.ExperienceDeal, error) {
	return f.rows, f.err
}

type fakeEvents struct {
	rows []dbm.Event
	err  error
}

func (f *fakeEvents) GetEventsInRange(ctx context.Context, start, end time.Time) ([]dbm.Event, error) {
	return f.rows, f.err
}

// memStore keeps suggestions keyed like the unique index.
type memStore struct {
	mu      sync.Mutex
	rows    map[string]dbm.ItinerarySuggestion
	failFor map[int]bool
	writes  int
}

func newMemStore() *memStore {
	return &memStore{rows: map[string]dbm.ItinerarySuggestion{}, failFor: map[int]bool{}}
}

func storeKey(start time.Time, duration int) string {
	return fmt.Sprintf("%s/%d", utils.FormatISODate(start), duration)
}

func (m *memStore) ReplaceSuggestion(ctx context.Context, s *dbm.ItinerarySuggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[s.DurationDays] {
		return errBoom
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now().Unix()
	m.writes++
	m.rows[storeKey(s.WindowStart, s.DurationDays)] = *s
	return nil
}

func (m *memStore) InsertSuggestion(ctx context.Context, s *dbm.ItinerarySuggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := storeKey(s.WindowStart, s.DurationDays)
	if _, ok := m.rows[key]; ok {
		return errors.New("duplicate key")
	}
	m.rows[key] = *s
	return nil
}

func (m *memStore) DeleteSuggestion(ctx context.Context, windowStart time.Time, durationDays int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, storeKey(windowStart, durationDays))
	return nil
}

func (m *memStore) GetSuggestion(ctx context.Context, windowStart time.Time, durationDays int) (*dbm.ItinerarySuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[storeKey(windowStart, durationDays)]
	if !ok {
		return nil, utils.RecordNotFound
	}
	return &row, nil
}

func (m *memStore) ListSuggestions(ctx context.Context, q req.ItineraryQuery) ([]dbm.ItinerarySuggestion, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.rows))
	for k := range m.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]dbm.ItinerarySuggestion, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.rows[k])
	}
	return out, int64(len(out)), nil
}

func (m *memStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type fakeGenerator struct {
	calls int
	out   *resp.NarrativeResponse
	err   error
	last  req.NarrativeRequest
}

func (f *fakeGenerator) GenerateItinerary(ctx context.Context, r req.NarrativeRequest) (*resp.NarrativeResponse, error) {
	f.calls++
	f.last = r
	return f.out, f.err
}

func (f *fakeGenerator) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{Backend: "memory"},
		Trip: config.TripConfig{
			Origin:         "YVR",
			Destination:    "BKK",
			DepartDate:     "2025-10-28",
			ReturnDate:     "2025-11-18",
			TripLengthDays: 22,
			AnchorCity:     "Bangkok",
			HubCities:      []string{"Bangkok", "Chiang Mai", "Phuket", "Krabi", "Koh Samui"},
		},
		Itinerary: config.ItineraryConfig{
			WindowLength:     5,
			MaxWindows:       3,
			Durations:        []int{3, 7, 21},
			FlightHistory:    30,
			HotelHistory:     20,
			DealLimit:        160,
			DealsPerCity:     60,
			PairTimeout:      5000,
			GeneratedMaxDays: 10,
		},
		Narrative: config.NarrativeConfig{Provider: "openai"},
	}
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func dealRow(city, title string, rating float64) dbm.ExperienceDeal {
	return dbm.ExperienceDeal{
		BaseModel: dbm.BaseModel{ID: uuid.New()},
		Title:     title,
		City:      strPtr(city),
		Price:     floatPtr(1200),
		Currency:  strPtr("THB"),
		Rating:    floatPtr(rating),
		URL:       "https://example.com/" + title,
	}
}
