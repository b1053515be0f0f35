package plans

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the saved-plans business logic consumed by the HTTP layer.
// Every operation is scoped to the requesting owner; plans are private.
type Service interface {
	SavePlan(ctx context.Context, ownerID, title string, plan models.TripPlan) (*models.SavedTripPlan, error)
	GetPlan(ctx context.Context, ownerID string, id uuid.UUID) (*models.SavedTripPlan, error)
	ListPlans(ctx context.Context, filter models.PlansFilter) ([]*models.SavedTripPlan, error)
	DeletePlan(ctx context.Context, ownerID string, id uuid.UUID) error
}

type ServiceImpl struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *ServiceImpl) SavePlan(ctx context.Context, ownerID, title string, plan models.TripPlan) (*models.SavedTripPlan, error) {
	l := s.logger.With(zap.String("method", "SavePlan"), zap.String("ownerID", ownerID))

	if ownerID == "" {
		return nil, fmt.Errorf("owner is required to save a plan: %w", models.ErrBadRequest)
	}
	if len(plan.Days) == 0 {
		return nil, fmt.Errorf("refusing to save a plan with no days: %w", models.ErrBadRequest)
	}
	if title == "" {
		title = defaultTitle(plan)
	}

	saved, err := s.repo.SavePlan(ctx, ownerID, title, plan)
	if err != nil {
		l.Error("Failed to save plan", zap.Error(err))
		return nil, err
	}

	l.Info("Plan saved", zap.String("planID", saved.ID.String()))
	return saved, nil
}

func (s *ServiceImpl) GetPlan(ctx context.Context, ownerID string, id uuid.UUID) (*models.SavedTripPlan, error) {
	l := s.logger.With(zap.String("method", "GetPlan"), zap.String("planID", id.String()))

	saved, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		l.Warn("Failed to get plan", zap.Error(err))
		return nil, err
	}
	// Another owner's plan is reported as absent, not as forbidden.
	if saved.OwnerID != ownerID {
		l.Warn("Plan owned by another user", zap.String("ownerID", ownerID))
		return nil, fmt.Errorf("trip plan %s: %w", id, models.ErrNotFound)
	}
	return saved, nil
}

func (s *ServiceImpl) ListPlans(ctx context.Context, filter models.PlansFilter) ([]*models.SavedTripPlan, error) {
	l := s.logger.With(zap.String("method", "ListPlans"), zap.String("ownerID", filter.OwnerID))

	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	listed, err := s.repo.ListPlans(ctx, filter)
	if err != nil {
		l.Error("Failed to list plans", zap.Error(err))
		return nil, err
	}

	l.Info("Plans listed", zap.Int("count", len(listed)))
	return listed, nil
}

func (s *ServiceImpl) DeletePlan(ctx context.Context, ownerID string, id uuid.UUID) error {
	l := s.logger.With(zap.String("method", "DeletePlan"), zap.String("planID", id.String()))

	if err := s.repo.DeletePlan(ctx, ownerID, id); err != nil {
		l.Warn("Failed to delete plan", zap.Error(err))
		return err
	}
	return nil
}

func defaultTitle(plan models.TripPlan) string {
	if len(plan.Request.Destinations) == 0 {
		return "Trip plan"
	}
	title := "Trip to " + plan.Request.Destinations[0].Name
	if n := len(plan.Request.Destinations); n > 1 {
		title = fmt.Sprintf("%s and %d more", title, n-1)
	}
	return title
}
