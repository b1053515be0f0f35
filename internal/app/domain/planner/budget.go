package planner

import (
	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// CostTable answers daily cost lookups for a destination. Implementations
// must return a sensible generic value for destinations they do not know,
// so the aggregator stays open to new cities without code changes.
type CostTable interface {
	// DailyFoodCost is the per-traveler daily food spend for a
	// destination at a meal tier, in minor currency units.
	DailyFoodCost(destinationID string, tier models.Tier) int64
	// DailyTransportCost is the per-traveler daily local-transport spend
	// for a destination, tier-independent, in minor currency units.
	DailyTransportCost(destinationID string) int64
}

// staticCostTable is the built-in keyed-lookup-with-fallback table.
type staticCostTable struct {
	food      map[string]map[models.Tier]int64
	transport map[string]int64
}

// Per-destination daily figures in minor units. Destinations absent from
// the tables fall back to the generic row.
var defaultCosts = &staticCostTable{
	food: map[string]map[models.Tier]int64{
		"paris": {
			models.TierBudget:   30000,
			models.TierStandard: 55000,
			models.TierPremium:  95000,
		},
		"rome": {
			models.TierBudget:   25000,
			models.TierStandard: 48000,
			models.TierPremium:  85000,
		},
		"lisbon": {
			models.TierBudget:   20000,
			models.TierStandard: 40000,
			models.TierPremium:  70000,
		},
		"tokyo": {
			models.TierBudget:   28000,
			models.TierStandard: 52000,
			models.TierPremium:  98000,
		},
		"barcelona": {
			models.TierBudget:   22000,
			models.TierStandard: 42000,
			models.TierPremium:  75000,
		},
	},
	transport: map[string]int64{
		"paris":     15000,
		"rome":      10000,
		"lisbon":    8000,
		"tokyo":     14000,
		"barcelona": 10000,
	},
}

// Generic fallback rows for destinations outside the table.
var (
	fallbackFood = map[models.Tier]int64{
		models.TierBudget:   25000,
		models.TierStandard: 45000,
		models.TierPremium:  80000,
	}
	fallbackTransport int64 = 12000
)

// DefaultCostTable returns the built-in destination cost table.
func DefaultCostTable() CostTable { return defaultCosts }

func (t *staticCostTable) DailyFoodCost(destinationID string, tier models.Tier) int64 {
	if byTier, ok := t.food[destinationID]; ok {
		if cost, ok := byTier[tier]; ok {
			return cost
		}
	}
	if cost, ok := fallbackFood[tier]; ok {
		return cost
	}
	return fallbackFood[models.TierStandard]
}

func (t *staticCostTable) DailyTransportCost(destinationID string) int64 {
	if cost, ok := t.transport[destinationID]; ok {
		return cost
	}
	return fallbackTransport
}

// aggregateBudget folds the selected offers and cost-table lookups into
// the six-category breakdown. Total is derived from the leaf categories
// in exactly one place; no category is ever read back out of Total.
func aggregateBudget(
	req models.TripRequest,
	costs CostTable,
	flight *models.Offer,
	lodging map[string]models.Offer,
	activities map[string][]models.Offer,
	nights map[string]int,
) models.BudgetBreakdown {
	var b models.BudgetBreakdown

	if flight != nil {
		b.Flights = flight.PriceMinor
	}

	travelers := int64(req.Travelers)
	for destID, destNights := range nights {
		n := int64(destNights)
		if offer, ok := lodging[destID]; ok {
			b.Accommodation += offer.PriceMinor * n
		}
		b.Food += costs.DailyFoodCost(destID, req.MealTier) * n * travelers
		b.Transport += costs.DailyTransportCost(destID) * n * travelers
	}

	if req.IncludeActivities {
		for _, offers := range activities {
			for _, offer := range offers {
				b.Activities += offer.PriceMinor * travelers
			}
		}
	}

	b.RecomputeTotal()
	return b
}
