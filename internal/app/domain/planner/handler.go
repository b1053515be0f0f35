package planner

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/domain/catalog"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
	"github.com/FACorreiaa/go-wayfarer/internal/app/observability/metrics"
)

// Handler exposes the synthesis endpoint consumed by the step-wizard UI
// once all selections have been collected.
type Handler struct {
	service Service
	catalog catalog.OfferCatalog
	logger  *zap.Logger
	now     func() time.Time
}

func NewHandler(service Service, cat catalog.OfferCatalog, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		catalog: cat,
		logger:  logger,
		now:     time.Now,
	}
}

type synthesizeRequest struct {
	Destinations []struct {
		ID   string `json:"id" binding:"required"`
		Name string `json:"name"`
	} `json:"destinations" binding:"required,min=1"`
	StartDate         string              `json:"start_date" binding:"required"`
	EndDate           string              `json:"end_date" binding:"required"`
	Travelers         int                 `json:"travelers" binding:"required,min=1"`
	AccommodationTier string              `json:"accommodation_tier" binding:"omitempty,oneof=budget standard premium"`
	MealTier          string              `json:"meal_tier" binding:"omitempty,oneof=budget standard premium"`
	IncludeActivities bool                `json:"include_activities"`
	Origin            string              `json:"origin"`
	FlightOfferID     string              `json:"flight_offer_id"`
	LodgingOfferIDs   map[string]string   `json:"lodging_offer_ids"`
	ActivityOfferIDs  map[string][]string `json:"activity_offer_ids"`
}

type synthesizeResponse struct {
	Plan                   *models.TripPlan `json:"plan"`
	TotalFormatted         string           `json:"total_formatted"`
	PerTravelerMinor       int64            `json:"per_traveler_minor"`
	PerDayPerTravelerMinor int64            `json:"per_day_per_traveler_minor"`
	SuggestedActivityHours float64          `json:"suggested_activity_hours"`
}

// Synthesize handles POST /itineraries: it resolves the selected offer
// IDs against a freshly fetched bundle, runs the engine and returns the
// finished plan with its derived display figures.
func (h *Handler) Synthesize(c *gin.Context) {
	start := time.Now()
	l := h.logger.With(zap.String("method", "Synthesize"), zap.String("ip", c.ClientIP()))

	var req synthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tripReq, err := h.buildTripRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	origin := req.Origin
	if origin == "" {
		origin = "home"
	}
	dates := models.DateRange{Start: tripReq.StartDate, End: tripReq.EndDate}
	bundle, err := catalog.FetchBundle(c.Request.Context(), h.catalog, origin, tripReq.Destinations, dates, tripReq.Travelers)
	if err != nil {
		l.Error("Offer fetch failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "offer catalog unavailable"})
		return
	}

	selections := h.resolveSelections(req, bundle, l)

	plan, err := h.service.Synthesize(c.Request.Context(), tripReq, selections, h.now().UTC())
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		l.Error("Synthesis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to synthesize itinerary"})
		return
	}

	m := metrics.Get()
	m.ItinerariesSynthesizedTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.Int("destinations", len(tripReq.Destinations))))
	m.SynthesisDurationSeconds.Record(c.Request.Context(), time.Since(start).Seconds())

	activityCount := 0
	for _, offers := range selections.ActivitiesByDestination {
		activityCount += len(offers)
	}

	c.JSON(http.StatusOK, synthesizeResponse{
		Plan:                   plan,
		TotalFormatted:         models.FormatMinor(plan.Budget.Total),
		PerTravelerMinor:       plan.Budget.PerTraveler(tripReq.Travelers),
		PerDayPerTravelerMinor: plan.Budget.PerDayPerTraveler(tripReq.TripDays(), tripReq.Travelers),
		SuggestedActivityHours: SuggestedActivityHours(defaultDailyHourBudget, activityCount),
	})
}

func (h *Handler) buildTripRequest(req synthesizeRequest) (models.TripRequest, error) {
	const layout = "2006-01-02"
	start, err := time.Parse(layout, req.StartDate)
	if err != nil {
		return models.TripRequest{}, err
	}
	end, err := time.Parse(layout, req.EndDate)
	if err != nil {
		return models.TripRequest{}, err
	}

	destinations := make([]models.Destination, len(req.Destinations))
	for i, d := range req.Destinations {
		name := d.Name
		if name == "" {
			name = d.ID
		}
		destinations[i] = models.Destination{ID: d.ID, Name: name}
	}

	accommodationTier := models.Tier(req.AccommodationTier)
	if req.AccommodationTier == "" {
		accommodationTier = models.TierStandard
	}
	mealTier := models.Tier(req.MealTier)
	if req.MealTier == "" {
		mealTier = models.TierStandard
	}

	return models.TripRequest{
		Destinations:      destinations,
		StartDate:         start,
		EndDate:           end,
		Travelers:         req.Travelers,
		AccommodationTier: accommodationTier,
		MealTier:          mealTier,
		IncludeActivities: req.IncludeActivities,
	}, nil
}

// resolveSelections maps the request's offer IDs onto concrete offers
// from the bundle. Unknown IDs degrade gracefully: the engine treats a
// missing flight or lodging as "none selected" rather than failing the
// whole synthesis.
func (h *Handler) resolveSelections(req synthesizeRequest, bundle *models.OfferBundle, l *zap.Logger) models.Selections {
	sel := models.Selections{
		LodgingByDestination:    make(map[string]models.Offer),
		ActivitiesByDestination: make(map[string][]models.Offer),
	}

	if req.FlightOfferID != "" {
		if offer, ok := bundle.FindOffer(req.FlightOfferID); ok {
			sel.Flight = &offer
		} else {
			l.Warn("Continuing without flight",
				zap.String("offerID", req.FlightOfferID),
				zap.Error(fmt.Errorf("flight offer %s: %w", req.FlightOfferID, models.ErrMissingSelection)))
		}
	}

	for destID, offerID := range req.LodgingOfferIDs {
		if offer, ok := bundle.FindOffer(offerID); ok {
			sel.LodgingByDestination[destID] = offer
		} else {
			l.Warn("Falling back to tier-derived lodging label",
				zap.String("destination", destID),
				zap.Error(fmt.Errorf("lodging offer %s: %w", offerID, models.ErrMissingSelection)))
		}
	}

	for destID, offerIDs := range req.ActivityOfferIDs {
		for _, offerID := range offerIDs {
			if offer, ok := bundle.FindOffer(offerID); ok {
				sel.ActivitiesByDestination[destID] = append(sel.ActivitiesByDestination[destID], offer)
			} else {
				l.Warn("Skipping activity",
					zap.String("destination", destID),
					zap.Error(fmt.Errorf("activity offer %s: %w", offerID, models.ErrMissingSelection)))
			}
		}
	}
	return sel
}
