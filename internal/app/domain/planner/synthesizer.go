package planner

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// Default shape of a planned day.
const (
	defaultDayStartMinute  = 8 * 60 // 08:00
	defaultDailyHourBudget = 12.0
)

// Service synthesizes trip plans.
type Service interface {
	Synthesize(ctx context.Context, req models.TripRequest, sel models.Selections, now time.Time) (*models.TripPlan, error)
}

var _ Service = (*Synthesizer)(nil)

// Synthesizer turns a validated trip request plus fully resolved
// selections into a finished multi-day plan with its budget breakdown.
// It holds no state across calls and performs no I/O; the clock is
// injected so identical inputs always produce identical plans.
type Synthesizer struct {
	logger          *zap.Logger
	costs           CostTable
	contingencyPct  int
	dayStartMinute  int
	dailyHourBudget float64
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithCostTable replaces the built-in destination cost table.
func WithCostTable(costs CostTable) Option {
	return func(s *Synthesizer) { s.costs = costs }
}

// WithContingencyPercent adds a contingency share of the five leaf
// categories to the miscellaneous category. Zero by default.
func WithContingencyPercent(pct int) Option {
	return func(s *Synthesizer) { s.contingencyPct = pct }
}

// WithDayStart moves the first breakfast entry of every day.
func WithDayStart(hour, minute int) Option {
	return func(s *Synthesizer) { s.dayStartMinute = hour*60 + minute }
}

// NewSynthesizer creates a synthesizer with the default day shape.
func NewSynthesizer(logger *zap.Logger, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		logger:          logger,
		costs:           DefaultCostTable(),
		dayStartMinute:  defaultDayStartMinute,
		dailyHourBudget: defaultDailyHourBudget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize validates the request, allocates days across destinations,
// schedules every city-day and aggregates the budget in one pass. It
// returns a fully populated plan or an error, never a partial plan.
func (s *Synthesizer) Synthesize(ctx context.Context, req models.TripRequest, sel models.Selections, now time.Time) (*models.TripPlan, error) {
	_, span := otel.Tracer("PlannerService").Start(ctx, "Synthesize")
	defer span.End()

	l := s.logger.With(zap.String("method", "Synthesize"))

	if err := req.Validate(); err != nil {
		l.Warn("Rejected trip request", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid trip request")
		return nil, err
	}

	tripDays := req.TripDays()
	span.SetAttributes(
		attribute.Int("trip.days", tripDays),
		attribute.Int("trip.destinations", len(req.Destinations)),
		attribute.Int("trip.travelers", req.Travelers),
	)

	allocation, err := AllocateDays(tripDays, req.Destinations)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Day allocation failed")
		return nil, fmt.Errorf("allocating days: %w", err)
	}
	nights := nightsPerDestination(allocation)

	budget := aggregateBudget(req, s.costs, sel.Flight, sel.LodgingByDestination, sel.ActivitiesByDestination, nights)
	if s.contingencyPct > 0 {
		budget.Miscellaneous = budget.Sum() * int64(s.contingencyPct) / 100
		budget.RecomputeTotal()
	}

	dailyBudget := int64(0)
	if tripDays > 0 {
		dailyBudget = budget.Total / int64(tripDays)
	}

	activitiesByDay := s.distributeActivities(allocation, sel.ActivitiesByDestination, req.IncludeActivities)

	days := make([]models.DaySchedule, tripDays)
	for i, dest := range allocation {
		dayActivities := activitiesByDay[i]
		foodBudget := s.costs.DailyFoodCost(dest.ID, req.MealTier)

		entries := BuildDaySchedule(s.dayStartMinute, dayActivities, foodBudget)
		for j := range entries {
			if entries[j].Location == "" {
				entries[j].Location = dest.Name
			}
		}

		days[i] = models.DaySchedule{
			DayIndex:           i + 1,
			Date:               req.StartDate.AddDate(0, 0, i),
			Destination:        dest,
			Entries:            entries,
			Breakfast:          mealDescriptor("breakfast", req.MealTier),
			Lunch:              mealDescriptor("lunch", req.MealTier),
			Dinner:             mealDescriptor("dinner", req.MealTier),
			AccommodationLabel: s.accommodationLabel(dest, sel, req.AccommodationTier),
			DailyBudgetMinor:   dailyBudget,
		}
	}

	l.Info("Trip plan synthesized",
		zap.Int("days", tripDays),
		zap.Int("destinations", len(req.Destinations)),
		zap.Int64("total_minor", budget.Total))
	span.SetStatus(codes.Ok, "Plan synthesized")

	return &models.TripPlan{
		Request:    req,
		Days:       days,
		Budget:     budget,
		Selections: sel,
		CreatedAt:  now,
	}, nil
}

// distributeActivities spreads each destination's selected activities
// round-robin across the days allocated to that destination, keeping
// both the day order and the selection order stable.
func (s *Synthesizer) distributeActivities(allocation []models.Destination, byDestination map[string][]models.Offer, include bool) map[int][]models.Offer {
	byDay := make(map[int][]models.Offer)
	if !include || len(byDestination) == 0 {
		return byDay
	}

	dayIndexes := make(map[string][]int, len(byDestination))
	for i, dest := range allocation {
		dayIndexes[dest.ID] = append(dayIndexes[dest.ID], i)
	}

	for destID, offers := range byDestination {
		days := dayIndexes[destID]
		if len(days) == 0 {
			continue // destination not part of the allocation
		}
		for k, offer := range offers {
			day := days[k%len(days)]
			byDay[day] = append(byDay[day], offer)
		}
	}
	return byDay
}

// accommodationLabel prefers the selected lodging's name and degrades to
// a tier-derived generic label when no lodging was selected for the
// destination.
func (s *Synthesizer) accommodationLabel(dest models.Destination, sel models.Selections, tier models.Tier) string {
	if offer, ok := sel.LodgingByDestination[dest.ID]; ok && offer.Name != "" {
		return offer.Name
	}
	switch tier {
	case models.TierBudget:
		return "Budget guesthouse"
	case models.TierPremium:
		return "Premium hotel"
	default:
		return "Standard hotel"
	}
}

func mealDescriptor(meal string, tier models.Tier) string {
	switch tier {
	case models.TierBudget:
		switch meal {
		case "breakfast":
			return "Local bakery or market breakfast"
		case "lunch":
			return "Street food or casual lunch"
		default:
			return "Neighborhood eatery dinner"
		}
	case models.TierPremium:
		switch meal {
		case "breakfast":
			return "Hotel breakfast service"
		case "lunch":
			return "Restaurant lunch with reservation"
		default:
			return "Fine dining dinner"
		}
	default:
		switch meal {
		case "breakfast":
			return "Café breakfast"
		case "lunch":
			return "Bistro lunch"
		default:
			return "Mid-range restaurant dinner"
		}
	}
}
