package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	req "traveldeal/internal/models/request_models"
	resp "traveldeal/internal/models/response_models"
	"traveldeal/pkg/middleware"
	"traveldeal/pkg/utils"
)

type stubItineraries struct {
	runErr    error
	lastQuery req.ItineraryQuery
	lastStart string
	lastDays  int
}

func (s *stubItineraries) RunItineraryJob(ctx context.Context) (*resp.RunSummary, error) {
	if s.runErr != nil {
		return nil, s.runErr
	}
	return &resp.RunSummary{Inserted: 9, Skipped: 3, Windows: 4}, nil
}

func (s *stubItineraries) ListItineraries(ctx context.Context, q req.ItineraryQuery) ([]resp.ItinerarySuggestion, int64, error) {
	s.lastQuery = q
	return []resp.ItinerarySuggestion{{WindowStart: "2025-10-28", DurationDays: 3}}, 1, nil
}

func (s *stubItineraries) GetItinerary(ctx context.Context, windowStart string, duration int) (*resp.ItinerarySuggestion, error) {
	s.lastStart, s.lastDays = windowStart, duration
	if windowStart == "2025-12-01" {
		return nil, utils.RecordNotFound
	}
	return &resp.ItinerarySuggestion{WindowStart: windowStart, DurationDays: duration}, nil
}

func (s *stubItineraries) PreviewItinerary(ctx context.Context, windowStart string, duration int) (*resp.ItinerarySuggestion, error) {
	if _, err := utils.ParseISODate(windowStart); err != nil {
		return nil, err
	}
	if duration > 21 {
		return nil, fmt.Errorf("%w: %d days do not fit before 2025-11-17", utils.ErrInvalidDuration, duration)
	}
	return &resp.ItinerarySuggestion{WindowStart: windowStart, DurationDays: duration}, nil
}

type stubPricing struct {
	err error
}

func (s *stubPricing) RecommendWindows(ctx context.Context) ([]resp.WindowScoreResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []resp.WindowScoreResponse{{WindowStart: "2025-10-31", WindowEnd: "2025-11-04", Score: 58.3, Label: "FLEXIBLE"}}, nil
}

func (s *stubPricing) EvaluateDealTriggers(ctx context.Context) ([]resp.DealTriggerResponse, error) {
	return []resp.DealTriggerResponse{{Type: "flight_low", Message: "low"}}, nil
}

func newRouter(it *stubItineraries, pr *stubPricing) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())

	ic := NewItineraryController(it)
	pc := NewPricingController(pr)
	r.POST("/jobs/itinerary/run", ic.RunItineraryJob)
	r.GET("/itineraries", ic.ListItineraries)
	r.GET("/itineraries/:windowStart/:duration", ic.GetItinerary)
	r.GET("/preview/itineraries/:windowStart/:duration", ic.PreviewItinerary)
	r.GET("/windows", pc.RecommendWindows)
	r.GET("/deals/triggers", pc.DealTriggers)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	var body utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRunItineraryJob(t *testing.T) {
	r := newRouter(&stubItineraries{}, &stubPricing{})

	w, body := do(t, r, http.MethodPost, "/jobs/itinerary/run")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", body.Status)
	assert.NotEmpty(t, body.TraceID)
	assert.Equal(t, w.Header().Get("X-Trace-ID"), body.TraceID)

	data := body.Data.(map[string]interface{})
	assert.EqualValues(t, 9, data["inserted"])
	assert.EqualValues(t, 3, data["skipped"])
}

func TestRunItineraryJob_AlreadyRunning(t *testing.T) {
	r := newRouter(&stubItineraries{runErr: utils.ErrJobAlreadyRunning}, &stubPricing{})

	w, body := do(t, r, http.MethodPost, "/jobs/itinerary/run")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "error", body.Status)
}

func TestListItineraries_BindsQuery(t *testing.T) {
	stub := &stubItineraries{}
	r := newRouter(stub, &stubPricing{})

	w, body := do(t, r, http.MethodGet, "/itineraries?window_start=2025-10-28&duration=3&page=2&pageSize=10")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, req.ItineraryQuery{WindowStart: "2025-10-28", DurationDays: 3, Page: 2, PageSize: 10}, stub.lastQuery)
	assert.EqualValues(t, 1, body.Data.(map[string]interface{})["total"])

	w, _ = do(t, r, http.MethodGet, "/itineraries?pageSize=500")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, http.MethodGet, "/itineraries?page=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetItinerary(t *testing.T) {
	stub := &stubItineraries{}
	r := newRouter(stub, &stubPricing{})

	w, _ := do(t, r, http.MethodGet, "/itineraries/2025-10-28/7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-10-28", stub.lastStart)
	assert.Equal(t, 7, stub.lastDays)

	w, _ = do(t, r, http.MethodGet, "/itineraries/2025-12-01/7")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodGet, "/itineraries/2025-10-28/zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewItinerary_BadDate(t *testing.T) {
	r := newRouter(&stubItineraries{}, &stubPricing{})

	w, _ := do(t, r, http.MethodGet, "/preview/itineraries/2025-10-31/5")
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := do(t, r, http.MethodGet, "/preview/itineraries/31-10-2025/5")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, utils.ErrInvalidDate.Error(), body.Message)
}

func TestPreviewItinerary_DurationPastReturn(t *testing.T) {
	r := newRouter(&stubItineraries{}, &stubPricing{})

	w, body := do(t, r, http.MethodGet, "/preview/itineraries/2025-10-28/4611686018427387904")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", body.Status)

	w, _ = do(t, r, http.MethodGet, "/preview/itineraries/2025-10-28/22")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/preview/itineraries/2025-10-28/21")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPricingEndpoints(t *testing.T) {
	r := newRouter(&stubItineraries{}, &stubPricing{})

	w, body := do(t, r, http.MethodGet, "/windows")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body.Data, 1)

	w, _ = do(t, r, http.MethodGet, "/deals/triggers")
	assert.Equal(t, http.StatusOK, w.Code)

	failing := newRouter(&stubItineraries{}, &stubPricing{err: utils.ErrDatabaseError})
	w, _ = do(t, failing, http.MethodGet, "/windows")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
