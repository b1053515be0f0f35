package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

func TestFetchBundleCollectsAllDestinations(t *testing.T) {
	cat := NewStaticCatalog(zap.NewNop())
	dests := []models.Destination{
		{ID: "paris", Name: "Paris"},
		{ID: "rome", Name: "Rome"},
		{ID: "lisbon", Name: "Lisbon"},
	}

	bundle, err := FetchBundle(context.Background(), cat, "home", dests, testDates(), 2)
	require.NoError(t, err)
	require.NotNil(t, bundle)

	assert.NotEmpty(t, bundle.Flights, "one flight search against the first destination")
	assert.Equal(t, "paris", bundle.Flights[0].DestinationID)

	require.Len(t, bundle.LodgingByDestination, 3)
	require.Len(t, bundle.ActivitiesByDestination, 3)
	for _, d := range dests {
		assert.NotEmpty(t, bundle.LodgingByDestination[d.ID], "lodging for %s", d.ID)
		assert.NotEmpty(t, bundle.ActivitiesByDestination[d.ID], "activities for %s", d.ID)
	}
}

func TestFetchBundleRejectsEmptyDestinationList(t *testing.T) {
	cat := NewStaticCatalog(zap.NewNop())

	bundle, err := FetchBundle(context.Background(), cat, "home", nil, testDates(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Nil(t, bundle)
}

func TestFetchBundlePropagatesFirstError(t *testing.T) {
	counting := &countingCatalog{inner: NewStaticCatalog(zap.NewNop()), activityErrors: true}
	dests := []models.Destination{{ID: "paris", Name: "Paris"}}

	bundle, err := FetchBundle(context.Background(), counting, "home", dests, testDates(), 1)
	require.Error(t, err)
	assert.Nil(t, bundle)
	assert.Contains(t, err.Error(), "activity offers for paris")
}

func TestOfferBundleFindOffer(t *testing.T) {
	cat := NewStaticCatalog(zap.NewNop())
	dests := []models.Destination{{ID: "paris", Name: "Paris"}}

	bundle, err := FetchBundle(context.Background(), cat, "home", dests, testDates(), 1)
	require.NoError(t, err)

	offer, ok := bundle.FindOffer("activity-paris-1")
	require.True(t, ok)
	assert.Equal(t, models.OfferCategoryActivity, offer.Category)

	_, ok = bundle.FindOffer("no-such-offer")
	assert.False(t, ok)
}
