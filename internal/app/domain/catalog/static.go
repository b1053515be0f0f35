package catalog

import (
	"context"
	"fmt"
	"hash/fnv"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

var _ OfferCatalog = (*StaticCatalog)(nil)

// StaticCatalog is the built-in offer source. The educational app ships
// its own deterministic offer data: the same lookup always yields the
// same offers, which keeps worksheets and tests reproducible. Unknown
// destinations get generic offers derived from a stable hash of the
// destination ID, never an error.
type StaticCatalog struct {
	logger *zap.Logger
}

func NewStaticCatalog(logger *zap.Logger) *StaticCatalog {
	return &StaticCatalog{logger: logger}
}

type destinationSeed struct {
	name        string
	flightBase  int64 // minor units, round trip per traveler
	lodgingBase int64 // minor units per night, standard tier
	activities  []activitySeed
}

type activitySeed struct {
	name     string
	price    int64
	hours    float64
	provider string
}

var destinationSeeds = map[string]destinationSeed{
	"paris": {
		name:        "Paris",
		flightBase:  2400000,
		lodgingBase: 1500000,
		activities: []activitySeed{
			{"Louvre Museum guided tour", 650000, 3, "Paris City Tours"},
			{"Seine river cruise", 180000, 1.5, "Bateaux Parisiens"},
			{"Eiffel Tower summit access", 290000, 2, "Tour Eiffel"},
			{"Montmartre walking tour", 250000, 2.5, "Paris City Tours"},
			{"Versailles day excursion", 950000, 6, "Château Excursions"},
		},
	},
	"rome": {
		name:        "Rome",
		flightBase:  2100000,
		lodgingBase: 1200000,
		activities: []activitySeed{
			{"Colosseum and Forum tour", 550000, 3, "Roma Antica"},
			{"Vatican Museums entry", 350000, 3.5, "Musei Vaticani"},
			{"Trastevere food walk", 450000, 2.5, "Eat Roma"},
			{"Borghese Gallery visit", 230000, 2, "Galleria Borghese"},
		},
	},
	"lisbon": {
		name:        "Lisbon",
		flightBase:  1800000,
		lodgingBase: 900000,
		activities: []activitySeed{
			{"Belém and Jerónimos tour", 300000, 2.5, "Lisboa Walks"},
			{"Tram 28 and Alfama walk", 150000, 2, "Lisboa Walks"},
			{"Sintra palaces excursion", 700000, 6, "Sintra Day Trips"},
			{"Fado night with dinner", 550000, 3, "Casa de Fado"},
		},
	},
	"tokyo": {
		name:        "Tokyo",
		flightBase:  5200000,
		lodgingBase: 1400000,
		activities: []activitySeed{
			{"Tsukiji market food tour", 600000, 3, "Tokyo Bites"},
			{"Senso-ji and Asakusa walk", 200000, 2, "Tokyo Walks"},
			{"teamLab digital art museum", 380000, 2.5, "teamLab"},
			{"Mount Fuji day trip", 1200000, 8, "Fuji Excursions"},
			{"Shibuya evening izakaya crawl", 500000, 3, "Tokyo Bites"},
		},
	},
	"barcelona": {
		name:        "Barcelona",
		flightBase:  1900000,
		lodgingBase: 1100000,
		activities: []activitySeed{
			{"Sagrada Família guided visit", 420000, 2, "Gaudí Tours"},
			{"Park Güell entry", 150000, 1.5, "Gaudí Tours"},
			{"Gothic Quarter tapas walk", 400000, 2.5, "Barcelona Eats"},
			{"Montjuïc cable car and castle", 250000, 2, "Montjuïc"},
		},
	},
}

// Relative price factors per airline/lodging tier position in the ranked
// result list.
var (
	flightCarriers = []struct {
		provider string
		factor   int64 // percent of base
	}{
		{"SkyBridge Air", 85},
		{"Continental Blue", 100},
		{"Aurora Premium", 140},
	}
	lodgingTiers = []struct {
		label  string
		tier   models.Tier
		factor int64 // percent of base
	}{
		{"Hostel & guesthouse", models.TierBudget, 45},
		{"City-center hotel", models.TierStandard, 100},
		{"Boutique five-star", models.TierPremium, 220},
	}
)

func (c *StaticCatalog) GetFlightOffers(ctx context.Context, origin, destination string, dates models.DateRange, travelers int) ([]models.Offer, error) {
	seed := seedFor(destination)
	offers := make([]models.Offer, 0, len(flightCarriers))
	for i, carrier := range flightCarriers {
		price := seed.flightBase * carrier.factor / 100 * int64(maxInt(travelers, 1))
		offers = append(offers, models.Offer{
			ID:            fmt.Sprintf("flight-%s-%d", destination, i+1),
			Category:      models.OfferCategoryFlight,
			Name:          fmt.Sprintf("%s → %s round trip", origin, seed.name),
			Provider:      carrier.provider,
			Description:   fmt.Sprintf("Round-trip fare for %d traveler(s), economy", maxInt(travelers, 1)),
			DestinationID: destination,
			PriceMinor:    price,
			DurationHours: flightHoursFor(destination),
		})
	}
	c.logger.Debug("Static flight offers resolved",
		zap.String("destination", destination),
		zap.Int("count", len(offers)))
	return offers, nil
}

func (c *StaticCatalog) GetLodgingOffers(ctx context.Context, destination string, dates models.DateRange) ([]models.Offer, error) {
	seed := seedFor(destination)
	offers := make([]models.Offer, 0, len(lodgingTiers))
	for i, lt := range lodgingTiers {
		offers = append(offers, models.Offer{
			ID:            fmt.Sprintf("lodging-%s-%d", destination, i+1),
			Category:      models.OfferCategoryLodging,
			Name:          fmt.Sprintf("%s — %s", seed.name, lt.label),
			Provider:      "StayFinder",
			Description:   fmt.Sprintf("Nightly rate, %s tier", lt.tier),
			DestinationID: destination,
			PriceMinor:    seed.lodgingBase * lt.factor / 100,
		})
	}
	return offers, nil
}

func (c *StaticCatalog) GetActivityOffers(ctx context.Context, destination string) ([]models.Offer, error) {
	seed := seedFor(destination)
	offers := make([]models.Offer, 0, len(seed.activities))
	for i, a := range seed.activities {
		offers = append(offers, models.Offer{
			ID:            fmt.Sprintf("activity-%s-%d", destination, i+1),
			Category:      models.OfferCategoryActivity,
			Name:          a.name,
			Provider:      a.provider,
			DestinationID: destination,
			PriceMinor:    a.price,
			DurationHours: a.hours,
		})
	}
	return offers, nil
}

// seedFor returns the seeded destination data, or a generic seed derived
// from a stable hash for destinations outside the table.
func seedFor(destinationID string) destinationSeed {
	if seed, ok := destinationSeeds[destinationID]; ok {
		return seed
	}
	h := fnv.New32a()
	h.Write([]byte(destinationID))
	// Keep generated prices positive and within a plausible band.
	jitter := int64(h.Sum32() % 800000)
	return destinationSeed{
		name:        destinationID,
		flightBase:  2000000 + jitter,
		lodgingBase: 1000000 + jitter/2,
		activities: []activitySeed{
			{"City highlights walking tour", 300000 + jitter/4, 2.5, "Local Guides"},
			{"Old town and market visit", 200000 + jitter/8, 2, "Local Guides"},
			{"Regional day excursion", 800000 + jitter/2, 6, "Local Guides"},
		},
	}
}

func flightHoursFor(destinationID string) float64 {
	if destinationID == "tokyo" {
		return 13
	}
	return 2.5
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
