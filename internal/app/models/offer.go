package models

import "time"

// OfferCategory classifies a catalog offer.
type OfferCategory string

const (
	OfferCategoryFlight   OfferCategory = "flight"
	OfferCategoryLodging  OfferCategory = "lodging"
	OfferCategoryActivity OfferCategory = "activity"
)

// Offer is a priced catalog entry the user may select for a trip.
// Offers are immutable once fetched; the engine only selects subsets.
type Offer struct {
	ID            string        `json:"id"`
	Category      OfferCategory `json:"category"`
	Name          string        `json:"name"`
	Provider      string        `json:"provider,omitempty"`
	Description   string        `json:"description,omitempty"`
	DestinationID string        `json:"destination_id,omitempty"`
	PriceMinor    int64         `json:"price_minor"`
	DurationHours float64       `json:"duration_hours,omitempty"`
}

// DateRange is an inclusive-start, exclusive-end calendar range used for
// catalog lookups.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// OfferBundle holds all catalog results collected for a trip before
// synthesis starts. Empty lists are valid ("no options", not an error).
type OfferBundle struct {
	Flights                 []Offer            `json:"flights"`
	LodgingByDestination    map[string][]Offer `json:"lodging_by_destination"`
	ActivitiesByDestination map[string][]Offer `json:"activities_by_destination"`
}

// FindOffer looks an offer up by ID across the whole bundle.
func (b *OfferBundle) FindOffer(id string) (Offer, bool) {
	for _, o := range b.Flights {
		if o.ID == id {
			return o, true
		}
	}
	for _, offers := range b.LodgingByDestination {
		for _, o := range offers {
			if o.ID == id {
				return o, true
			}
		}
	}
	for _, offers := range b.ActivitiesByDestination {
		for _, o := range offers {
			if o.ID == id {
				return o, true
			}
		}
	}
	return Offer{}, false
}
