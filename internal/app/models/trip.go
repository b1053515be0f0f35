package models

import (
	"fmt"
	"time"
)

// Tier is a coarse service-quality level used to index cost tables.
type Tier string

const (
	TierBudget   Tier = "budget"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Valid reports whether the tier is one of the known levels.
func (t Tier) Valid() bool {
	switch t {
	case TierBudget, TierStandard, TierPremium:
		return true
	}
	return false
}

// Destination identifies one city on the trip.
type Destination struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TripRequest is the input aggregate for one synthesis call.
type TripRequest struct {
	Destinations      []Destination `json:"destinations"`
	StartDate         time.Time     `json:"start_date"`
	EndDate           time.Time     `json:"end_date"`
	Travelers         int           `json:"travelers"`
	AccommodationTier Tier          `json:"accommodation_tier"`
	MealTier          Tier          `json:"meal_tier"`
	IncludeActivities bool          `json:"include_activities"`
}

// TripDays returns the trip length in whole calendar days, end date
// exclusive. A three-night city break from Friday to Monday is 3 days.
// The same convention is applied everywhere: day allocation, schedule
// count and budget multipliers, so nights per destination always equals
// the days allocated to it.
func (r TripRequest) TripDays() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}

// Validate checks the request invariants shared by all engine entry points.
func (r TripRequest) Validate() error {
	if len(r.Destinations) == 0 {
		return fmt.Errorf("at least one destination is required: %w", ErrInvalidInput)
	}
	if r.Travelers < 1 {
		return fmt.Errorf("traveler count must be at least 1, got %d: %w", r.Travelers, ErrInvalidInput)
	}
	if r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("end date %s precedes start date %s: %w",
			r.EndDate.Format("2006-01-02"), r.StartDate.Format("2006-01-02"), ErrInvalidInput)
	}
	if r.TripDays() < 1 {
		return fmt.Errorf("trip must span at least one day: %w", ErrInvalidInput)
	}
	if !r.AccommodationTier.Valid() {
		return fmt.Errorf("unknown accommodation tier %q: %w", r.AccommodationTier, ErrInvalidInput)
	}
	if !r.MealTier.Valid() {
		return fmt.Errorf("unknown meal tier %q: %w", r.MealTier, ErrInvalidInput)
	}
	return nil
}

// Selections is the user's chosen subset of offers, supplied fully
// resolved by the caller: at most one flight for the whole trip, at most
// one lodging per destination and zero-or-more activities per destination.
type Selections struct {
	Flight                  *Offer             `json:"flight,omitempty"`
	LodgingByDestination    map[string]Offer   `json:"lodging_by_destination,omitempty"`
	ActivitiesByDestination map[string][]Offer `json:"activities_by_destination,omitempty"`
}

// ScheduleEntry is one time-stamped row of a day's plan. Free entries
// carry a nil cost.
type ScheduleEntry struct {
	Time          string `json:"time"` // HH:MM
	Label         string `json:"label"`
	DurationLabel string `json:"duration_label"`
	CostMinor     *int64 `json:"cost_minor,omitempty"`
	Location      string `json:"location,omitempty"`
}

// DaySchedule is one calendar day of the trip. Entries are sorted
// ascending by time.
type DaySchedule struct {
	DayIndex           int             `json:"day_index"` // 1-based
	Date               time.Time       `json:"date"`
	Destination        Destination     `json:"destination"`
	Entries            []ScheduleEntry `json:"entries"`
	Breakfast          string          `json:"breakfast"`
	Lunch              string          `json:"lunch"`
	Dinner             string          `json:"dinner"`
	AccommodationLabel string          `json:"accommodation_label"`
	DailyBudgetMinor   int64           `json:"daily_budget_minor"`
}

// TripPlan is the finished output of one synthesis call. It is
// constructed once and immutable afterwards; persistence is the caller's
// concern. The plan itself carries no identifier so that synthesis stays
// a pure function of its inputs; the store assigns one on save.
type TripPlan struct {
	Request    TripRequest     `json:"request"`
	Days       []DaySchedule   `json:"days"`
	Budget     BudgetBreakdown `json:"budget"`
	Selections Selections      `json:"selections"`
	CreatedAt  time.Time       `json:"created_at"`
}
