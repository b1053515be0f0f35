package catalog

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
	"github.com/FACorreiaa/go-wayfarer/internal/app/observability/metrics"
)

var _ OfferCatalog = (*CachedCatalog)(nil)

// CachedCatalog memoizes catalog lookups. Offer data is immutable once
// fetched, so a plain TTL cache is enough.
type CachedCatalog struct {
	inner  OfferCatalog
	cache  *gocache.Cache
	logger *zap.Logger
}

func NewCachedCatalog(inner OfferCatalog, ttl time.Duration, logger *zap.Logger) *CachedCatalog {
	return &CachedCatalog{
		inner:  inner,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

func (c *CachedCatalog) GetFlightOffers(ctx context.Context, origin, destination string, dates models.DateRange, travelers int) ([]models.Offer, error) {
	key := fmt.Sprintf("flights:%s:%s:%s:%s:%d",
		origin, destination, dates.Start.Format("2006-01-02"), dates.End.Format("2006-01-02"), travelers)
	return c.lookup(ctx, key, func() ([]models.Offer, error) {
		return c.inner.GetFlightOffers(ctx, origin, destination, dates, travelers)
	})
}

func (c *CachedCatalog) GetLodgingOffers(ctx context.Context, destination string, dates models.DateRange) ([]models.Offer, error) {
	key := fmt.Sprintf("lodging:%s:%s:%s",
		destination, dates.Start.Format("2006-01-02"), dates.End.Format("2006-01-02"))
	return c.lookup(ctx, key, func() ([]models.Offer, error) {
		return c.inner.GetLodgingOffers(ctx, destination, dates)
	})
}

func (c *CachedCatalog) GetActivityOffers(ctx context.Context, destination string) ([]models.Offer, error) {
	key := "activities:" + destination
	return c.lookup(ctx, key, func() ([]models.Offer, error) {
		return c.inner.GetActivityOffers(ctx, destination)
	})
}

func (c *CachedCatalog) lookup(ctx context.Context, key string, fetch func() ([]models.Offer, error)) ([]models.Offer, error) {
	if cached, found := c.cache.Get(key); found {
		metrics.Get().CatalogCacheHitsTotal.Add(ctx, 1)
		return cached.([]models.Offer), nil
	}

	metrics.Get().CatalogLookupsTotal.Add(ctx, 1)
	offers, err := fetch()
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, offers)
	c.logger.Debug("Catalog result cached", zap.String("key", key), zap.Int("offers", len(offers)))
	return offers, nil
}
