package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// FetchBundle collects flight, lodging and activity offers for every
// destination of a trip before synthesis starts. Fetches fan out one
// goroutine per destination; results are fully collected (or the first
// error returned) before the bundle is handed to the synthesizer. The
// engine never interleaves computation with in-flight fetches.
func FetchBundle(ctx context.Context, cat OfferCatalog, origin string, destinations []models.Destination, dates models.DateRange, travelers int) (*models.OfferBundle, error) {
	ctx, span := otel.Tracer("OfferCatalog").Start(ctx, "FetchBundle")
	defer span.End()
	span.SetAttributes(attribute.Int("destinations", len(destinations)))

	if len(destinations) == 0 {
		return nil, fmt.Errorf("no destinations to fetch offers for: %w", models.ErrInvalidInput)
	}

	bundle := &models.OfferBundle{
		LodgingByDestination:    make(map[string][]models.Offer, len(destinations)),
		ActivitiesByDestination: make(map[string][]models.Offer, len(destinations)),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, dest := range destinations {
		dest := dest
		g.Go(func() error {
			lodging, err := cat.GetLodgingOffers(gctx, dest.ID, dates)
			if err != nil {
				return fmt.Errorf("lodging offers for %s: %w", dest.ID, err)
			}
			activities, err := cat.GetActivityOffers(gctx, dest.ID)
			if err != nil {
				return fmt.Errorf("activity offers for %s: %w", dest.ID, err)
			}
			mu.Lock()
			bundle.LodgingByDestination[dest.ID] = lodging
			bundle.ActivitiesByDestination[dest.ID] = activities
			mu.Unlock()
			return nil
		})
	}

	// One flight search for the whole trip, against the first destination.
	first := destinations[0]
	g.Go(func() error {
		flights, err := cat.GetFlightOffers(gctx, origin, first.ID, dates, travelers)
		if err != nil {
			return fmt.Errorf("flight offers for %s: %w", first.ID, err)
		}
		mu.Lock()
		bundle.Flights = flights
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Offer fetch failed")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Offers collected")
	return bundle, nil
}
