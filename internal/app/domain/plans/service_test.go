package plans

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SavePlan(ctx context.Context, ownerID, title string, plan models.TripPlan) (*models.SavedTripPlan, error) {
	args := m.Called(ctx, ownerID, title, plan)
	if saved, ok := args.Get(0).(*models.SavedTripPlan); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetPlan(ctx context.Context, id uuid.UUID) (*models.SavedTripPlan, error) {
	args := m.Called(ctx, id)
	if saved, ok := args.Get(0).(*models.SavedTripPlan); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListPlans(ctx context.Context, filter models.PlansFilter) ([]*models.SavedTripPlan, error) {
	args := m.Called(ctx, filter)
	if listed, ok := args.Get(0).([]*models.SavedTripPlan); ok {
		return listed, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) DeletePlan(ctx context.Context, ownerID string, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func TestServiceSavePlan(t *testing.T) {
	plan := testPlan()

	tests := []struct {
		name        string
		ownerID     string
		title       string
		plan        models.TripPlan
		setupMock   func(*MockRepository)
		expectedErr error
	}{
		{
			name:    "Saves with explicit title",
			ownerID: "user-1",
			title:   "Paris getaway",
			plan:    plan,
			setupMock: func(m *MockRepository) {
				m.On("SavePlan", mock.Anything, "user-1", "Paris getaway", plan).
					Return(&models.SavedTripPlan{ID: uuid.New(), OwnerID: "user-1", Title: "Paris getaway"}, nil)
			},
		},
		{
			name:    "Derives title from destinations",
			ownerID: "user-1",
			plan:    plan,
			setupMock: func(m *MockRepository) {
				m.On("SavePlan", mock.Anything, "user-1", "Trip to Paris", plan).
					Return(&models.SavedTripPlan{ID: uuid.New(), OwnerID: "user-1", Title: "Trip to Paris"}, nil)
			},
		},
		{
			name:        "Rejects missing owner",
			ownerID:     "",
			plan:        plan,
			setupMock:   func(m *MockRepository) {},
			expectedErr: models.ErrBadRequest,
		},
		{
			name:        "Rejects empty plan",
			ownerID:     "user-1",
			plan:        models.TripPlan{},
			setupMock:   func(m *MockRepository) {},
			expectedErr: models.ErrBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepository)
			tc.setupMock(repo)
			svc := NewService(repo, zap.NewNop())

			saved, err := svc.SavePlan(context.Background(), tc.ownerID, tc.title, tc.plan)

			if tc.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, saved)
			} else {
				require.NoError(t, err)
				require.NotNil(t, saved)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestServiceDefaultTitleMultipleDestinations(t *testing.T) {
	plan := testPlan()
	plan.Request.Destinations = append(plan.Request.Destinations,
		models.Destination{ID: "rome", Name: "Rome"},
		models.Destination{ID: "lisbon", Name: "Lisbon"})

	repo := new(MockRepository)
	repo.On("SavePlan", mock.Anything, "user-1", "Trip to Paris and 2 more", plan).
		Return(&models.SavedTripPlan{ID: uuid.New()}, nil)
	svc := NewService(repo, zap.NewNop())

	_, err := svc.SavePlan(context.Background(), "user-1", "", plan)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestServiceGetPlan(t *testing.T) {
	planID := uuid.New()

	t.Run("Not found", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetPlan", mock.Anything, planID).
			Return(nil, models.ErrNotFound)
		svc := NewService(repo, zap.NewNop())

		saved, err := svc.GetPlan(context.Background(), "user-1", planID)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, saved)
		repo.AssertExpectations(t)
	})

	t.Run("Owner sees their plan", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetPlan", mock.Anything, planID).
			Return(&models.SavedTripPlan{ID: planID, OwnerID: "user-1"}, nil)
		svc := NewService(repo, zap.NewNop())

		saved, err := svc.GetPlan(context.Background(), "user-1", planID)
		require.NoError(t, err)
		assert.Equal(t, planID, saved.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Another owner's plan reads as absent", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("GetPlan", mock.Anything, planID).
			Return(&models.SavedTripPlan{ID: planID, OwnerID: "user-1"}, nil)
		svc := NewService(repo, zap.NewNop())

		saved, err := svc.GetPlan(context.Background(), "intruder", planID)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, saved)
		repo.AssertExpectations(t)
	})
}

func TestServiceListPlansClampsLimit(t *testing.T) {
	tests := []struct {
		name          string
		requested     int
		expectedLimit int
	}{
		{"Zero gets the default", 0, 50},
		{"Negative gets the default", -5, 50},
		{"Oversized gets the default", 500, 50},
		{"In range passes through", 20, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("ListPlans", mock.Anything, models.PlansFilter{OwnerID: "user-1", Limit: tc.expectedLimit}).
				Return([]*models.SavedTripPlan{}, nil)
			svc := NewService(repo, zap.NewNop())

			_, err := svc.ListPlans(context.Background(), models.PlansFilter{OwnerID: "user-1", Limit: tc.requested})
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestServiceDeletePlanPropagatesErrors(t *testing.T) {
	planID := uuid.New()
	repoErr := errors.New("connection reset")

	repo := new(MockRepository)
	repo.On("DeletePlan", mock.Anything, "user-1", planID).Return(repoErr)
	svc := NewService(repo, zap.NewNop())

	err := svc.DeletePlan(context.Background(), "user-1", planID)
	assert.ErrorIs(t, err, repoErr)
	repo.AssertExpectations(t)
}
