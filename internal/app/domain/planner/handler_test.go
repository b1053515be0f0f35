package planner

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/catalog"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
	"github.com/FACorreiaa/go-wayfarer/internal/app/observability/metrics"
)

func setupHandler(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	metrics.InitAppMetrics()

	logger := zap.NewNop()
	h := NewHandler(NewSynthesizer(logger), catalog.NewStaticCatalog(logger), logger)
	h.now = func() time.Time { return time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC) }

	router := gin.New()
	router.POST("/api/v1/itineraries", h.Synthesize)
	return router
}

func postItinerary(t *testing.T, router *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validBody() map[string]any {
	return map[string]any{
		"destinations": []map[string]string{
			{"id": "paris", "name": "Paris"},
			{"id": "rome", "name": "Rome"},
		},
		"start_date":         "2026-05-01",
		"end_date":           "2026-05-05",
		"travelers":          2,
		"include_activities": true,
		"activity_offer_ids": map[string][]string{
			"paris": {"activity-paris-1", "activity-paris-2"},
		},
		"flight_offer_id": "flight-paris-1",
	}
}

func TestHandlerSynthesize(t *testing.T) {
	router := setupHandler(t)

	w := postItinerary(t, router, validBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp synthesizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Plan)

	assert.Len(t, resp.Plan.Days, 4)
	assert.NotEmpty(t, resp.TotalFormatted)
	assert.Positive(t, resp.PerTravelerMinor)
	assert.Positive(t, resp.PerDayPerTravelerMinor)
	assert.Positive(t, resp.Plan.Budget.Flights, "selected flight offer billed")

	b := resp.Plan.Budget
	assert.Equal(t, b.Flights+b.Accommodation+b.Food+b.Transport+b.Activities+b.Miscellaneous, b.Total)
}

func TestHandlerSynthesizeDefaultsTiers(t *testing.T) {
	router := setupHandler(t)

	body := validBody()
	delete(body, "activity_offer_ids")
	delete(body, "flight_offer_id")
	w := postItinerary(t, router, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp synthesizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "standard", string(resp.Plan.Request.AccommodationTier))
	assert.Equal(t, "standard", string(resp.Plan.Request.MealTier))
	assert.Zero(t, resp.Plan.Budget.Flights)
}

func TestHandlerSynthesizeUnknownOffersDegrade(t *testing.T) {
	router := setupHandler(t)

	body := validBody()
	body["flight_offer_id"] = "no-such-flight"
	body["activity_offer_ids"] = map[string][]string{"paris": {"no-such-activity"}}

	w := postItinerary(t, router, body)
	require.Equal(t, http.StatusOK, w.Code, "unknown offer ids are skipped, not fatal")

	var resp synthesizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Plan.Budget.Flights)
	assert.Zero(t, resp.Plan.Budget.Activities)
}

func TestHandlerSynthesizeValidation(t *testing.T) {
	router := setupHandler(t)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"Missing destinations", func(b map[string]any) { delete(b, "destinations") }},
		{"Empty destinations", func(b map[string]any) { b["destinations"] = []map[string]string{} }},
		{"Missing travelers", func(b map[string]any) { delete(b, "travelers") }},
		{"Bad tier", func(b map[string]any) { b["meal_tier"] = "lavish" }},
		{"Bad date format", func(b map[string]any) { b["start_date"] = "05/01/2026" }},
		{"End before start", func(b map[string]any) { b["end_date"] = "2026-04-01" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := validBody()
			tc.mutate(body)

			w := postItinerary(t, router, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestHandlerSynthesizeWarnsOnMissingSelections(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics.InitAppMetrics()

	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)
	h := NewHandler(NewSynthesizer(zap.NewNop()), catalog.NewStaticCatalog(zap.NewNop()), logger)

	router := gin.New()
	router.POST("/api/v1/itineraries", h.Synthesize)

	body := validBody()
	body["flight_offer_id"] = "no-such-flight"
	body["lodging_offer_ids"] = map[string]string{"paris": "no-such-lodging"}
	body["activity_offer_ids"] = map[string][]string{"paris": {"no-such-activity"}}

	w := postItinerary(t, router, body)
	require.Equal(t, http.StatusOK, w.Code)

	for _, message := range []string{
		"Continuing without flight",
		"Falling back to tier-derived lodging label",
		"Skipping activity",
	} {
		entries := logs.FilterMessage(message).All()
		require.Len(t, entries, 1, message)
		errField, ok := entries[0].ContextMap()["error"].(string)
		require.True(t, ok, "warning carries the error field")
		assert.Contains(t, errField, models.ErrMissingSelection.Error())
	}
}

func TestHandlerSynthesizeIsDeterministic(t *testing.T) {
	router := setupHandler(t)

	first := postItinerary(t, router, validBody())
	second := postItinerary(t, router, validBody())
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	assert.JSONEq(t, first.Body.String(), second.Body.String(),
		"same request and clock must produce the same response body")
}
