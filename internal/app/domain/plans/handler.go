package plans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/middleware"
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
	"github.com/FACorreiaa/go-wayfarer/internal/app/observability/metrics"
)

// Handler exposes saved-plan CRUD to authenticated users.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type savePlanRequest struct {
	Title string          `json:"title"`
	Plan  models.TripPlan `json:"plan" binding:"required"`
}

// Save handles POST /plans.
func (h *Handler) Save(c *gin.Context) {
	ownerID := middleware.GetUserIDFromContext(c)

	var req savePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.service.SavePlan(c.Request.Context(), ownerID, req.Title, req.Plan)
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to save plan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save plan"})
		return
	}

	metrics.Get().PlansSavedTotal.Add(c.Request.Context(), 1)
	c.JSON(http.StatusCreated, saved)
}

// Get handles GET /plans/:id. Plans are private to their owner.
func (h *Handler) Get(c *gin.Context) {
	ownerID := middleware.GetUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	saved, err := h.service.GetPlan(c.Request.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		h.logger.Error("Failed to get plan", zap.String("planID", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plan"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// List handles GET /plans.
func (h *Handler) List(c *gin.Context) {
	ownerID := middleware.GetUserIDFromContext(c)

	filter := models.PlansFilter{
		OwnerID:   ownerID,
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filter.Offset = offset
	}

	listed, err := h.service.ListPlans(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list plans", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list plans"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": listed})
}

// Delete handles DELETE /plans/:id.
func (h *Handler) Delete(c *gin.Context) {
	ownerID := middleware.GetUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return
	}

	if err := h.service.DeletePlan(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		h.logger.Error("Failed to delete plan", zap.String("planID", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete plan"})
		return
	}
	c.Status(http.StatusNoContent)
}
