package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// Handler exposes read-only offer lookups to the step-wizard UI.
type Handler struct {
	catalog OfferCatalog
	logger  *zap.Logger
}

func NewHandler(cat OfferCatalog, logger *zap.Logger) *Handler {
	return &Handler{catalog: cat, logger: logger}
}

// GetFlights handles GET /offers/flights?origin=&destination=&start=&end=&travelers=
func (h *Handler) GetFlights(c *gin.Context) {
	origin := c.DefaultQuery("origin", "home")
	destination := c.Query("destination")
	if destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination is required"})
		return
	}
	dates, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	travelers := 1
	if v, err := strconv.Atoi(c.DefaultQuery("travelers", "1")); err == nil && v > 0 {
		travelers = v
	}

	offers, err := h.catalog.GetFlightOffers(c.Request.Context(), origin, destination, dates, travelers)
	if err != nil {
		h.logger.Error("Flight offer lookup failed", zap.String("destination", destination), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "flight offers unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// GetLodging handles GET /offers/lodging?destination=&start=&end=
func (h *Handler) GetLodging(c *gin.Context) {
	destination := c.Query("destination")
	if destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination is required"})
		return
	}
	dates, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offers, err := h.catalog.GetLodgingOffers(c.Request.Context(), destination, dates)
	if err != nil {
		h.logger.Error("Lodging offer lookup failed", zap.String("destination", destination), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "lodging offers unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// GetActivities handles GET /offers/activities?destination=
func (h *Handler) GetActivities(c *gin.Context) {
	destination := c.Query("destination")
	if destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "destination is required"})
		return
	}

	offers, err := h.catalog.GetActivityOffers(c.Request.Context(), destination)
	if err != nil {
		h.logger.Error("Activity offer lookup failed", zap.String("destination", destination), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "activity offers unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

func parseDateRange(c *gin.Context) (models.DateRange, error) {
	const layout = "2006-01-02"
	start, err := time.Parse(layout, c.DefaultQuery("start", time.Now().Format(layout)))
	if err != nil {
		return models.DateRange{}, err
	}
	end, err := time.Parse(layout, c.DefaultQuery("end", start.AddDate(0, 0, 7).Format(layout)))
	if err != nil {
		return models.DateRange{}, err
	}
	return models.DateRange{Start: start, End: end}, nil
}
