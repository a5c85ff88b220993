package services

import (
	"encoding/json"
	"fmt"

	dbm "traveldeal/internal/models/db_models"
	req "traveldeal/internal/models/request_models"
	resp "traveldeal/internal/models/response_models"
	"traveldeal/internal/planner"
	"traveldeal/pkg/utils"
)

func flightSamples(rows []dbm.FlightPrice) []planner.PriceSample {
	out := make([]planner.PriceSample, len(rows))
	for i, r := range rows {
		out[i] = planner.PriceSample{CheckedAt: r.CheckedAt, Price: r.Price, Currency: r.Currency}
	}
	return out
}

func hotelSamples(byCity map[string][]dbm.HotelPrice) map[string][]planner.PriceSample {
	out := make(map[string][]planner.PriceSample, len(byCity))
	for city, rows := range byCity {
		samples := make([]planner.PriceSample, len(rows))
		for i, r := range rows {
			samples[i] = planner.PriceSample{CheckedAt: r.CheckedAt, Price: r.AvgPrice, Currency: r.Currency}
		}
		out[city] = samples
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func activityRecords(rows []dbm.ExperienceDeal) []planner.ActivityRecord {
	out := make([]planner.ActivityRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, planner.ActivityRecord{
			ID:       r.ID.String(),
			Title:    r.Title,
			City:     deref(r.City),
			Category: deref(r.Category),
			Price:    r.Price,
			Currency: deref(r.Currency),
			Rating:   r.Rating,
			URL:      r.URL,
		})
	}
	return out
}

func calendarEvents(rows []dbm.Event) []planner.Event {
	out := make([]planner.Event, len(rows))
	for i, r := range rows {
		out[i] = planner.Event{Name: r.Name, Location: r.Location, Start: r.StartDate, End: r.EndDate}
	}
	return out
}

func narrativeRequest(window planner.WindowScore, windowEnd string, duration int, seeds []planner.DaySeed, events []planner.Event) req.NarrativeRequest {
	out := req.NarrativeRequest{
		Window: req.NarrativeWindow{
			Start: utils.FormatISODate(window.WindowStart),
			End:   windowEnd,
			Score: window.Score,
		},
		Duration: duration,
		DaySeeds: make([]req.NarrativeSeed, len(seeds)),
		Events:   make([]req.NarrativeEvent, len(events)),
	}
	for i, s := range seeds {
		seed := req.NarrativeSeed{
			Day:        s.Day,
			Date:       utils.FormatISODate(s.Date),
			City:       s.City,
			TravelFrom: s.TravelFrom,
		}
		if s.Deal != nil {
			seed.Deal = &req.NarrativeDeal{
				ID:       s.Deal.ID,
				Title:    s.Deal.Title,
				Category: s.Deal.Category,
				Price:    s.Deal.Price,
				Currency: s.Deal.Currency,
				Rating:   s.Deal.Rating,
				URL:      s.Deal.URL,
			}
		}
		out.DaySeeds[i] = seed
	}
	for i, e := range events {
		out.Events[i] = req.NarrativeEvent{
			Name:      e.Name,
			Location:  e.Location,
			StartDate: utils.FormatISODate(e.Start),
			EndDate:   utils.FormatISODate(e.End),
		}
	}
	return out
}

func suggestionRow(s *resp.ItinerarySuggestion) (*dbm.ItinerarySuggestion, error) {
	start, err := utils.ParseISODate(s.WindowStart)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseISODate(s.WindowEnd)
	if err != nil {
		return nil, err
	}
	days, err := json.Marshal(s.Days)
	if err != nil {
		return nil, fmt.Errorf("marshal itinerary days: %w", err)
	}
	title, summary, score := s.Title, s.Summary, s.Score
	return &dbm.ItinerarySuggestion{
		WindowStart:  start,
		WindowEnd:    end,
		DurationDays: s.DurationDays,
		Title:        &title,
		Summary:      &summary,
		Days:         days,
		Score:        &score,
	}, nil
}

func suggestionResponse(row *dbm.ItinerarySuggestion) (*resp.ItinerarySuggestion, error) {
	out := &resp.ItinerarySuggestion{
		ID:           row.ID.String(),
		WindowStart:  utils.FormatISODate(row.WindowStart),
		WindowEnd:    utils.FormatISODate(row.WindowEnd),
		DurationDays: row.DurationDays,
		Title:        deref(row.Title),
		Summary:      deref(row.Summary),
		CreatedAt:    row.CreatedAt,
	}
	if row.Score != nil {
		out.Score = *row.Score
	}
	if len(row.Days) > 0 {
		if err := json.Unmarshal(row.Days, &out.Days); err != nil {
			return nil, fmt.Errorf("decode itinerary days: %w", err)
		}
	}
	return out, nil
}

func windowResponse(w planner.WindowScore) resp.WindowScoreResponse {
	return resp.WindowScoreResponse{
		WindowStart: utils.FormatISODate(w.WindowStart),
		WindowEnd:   utils.FormatISODate(w.WindowEnd),
		Score:       w.Score,
		Label:       string(w.Label),
	}
}
