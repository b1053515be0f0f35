package catalog

import (
	"context"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// OfferCatalog is the consumed boundary to the offer data sources. Empty
// result lists are valid outcomes ("no options", not an error) and all
// returned prices are strictly positive.
type OfferCatalog interface {
	GetFlightOffers(ctx context.Context, origin, destination string, dates models.DateRange, travelers int) ([]models.Offer, error)
	GetLodgingOffers(ctx context.Context, destination string, dates models.DateRange) ([]models.Offer, error)
	GetActivityOffers(ctx context.Context, destination string) ([]models.Offer, error)
}
