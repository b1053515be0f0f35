package planner

import (
	"fmt"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// AllocateDays splits a trip's day count across the ordered destination
// list as evenly as possible. Each destination gets tripDays/n days and
// the trailing tripDays%n destinations absorb one extra day each, so
// every destination is visited at least once whenever tripDays >= n.
// When the trip is shorter than the destination list, only the leading
// destinations get a day. The split is deterministic and order-preserving.
func AllocateDays(tripDays int, destinations []models.Destination) ([]models.Destination, error) {
	if len(destinations) == 0 {
		return nil, fmt.Errorf("no destinations to allocate days across: %w", models.ErrInvalidInput)
	}
	if tripDays < 0 {
		return nil, fmt.Errorf("negative trip day count %d: %w", tripDays, models.ErrInvalidInput)
	}
	if tripDays == 0 {
		// A zero-day trip is an empty allocation, not an error.
		return []models.Destination{}, nil
	}

	n := len(destinations)
	base := tripDays / n
	extra := tripDays % n

	allocation := make([]models.Destination, 0, tripDays)
	for i, dest := range destinations {
		days := base
		if base == 0 {
			// Trip shorter than the destination list: leading cities win.
			if i < extra {
				days = 1
			}
		} else if i >= n-extra {
			days++
		}
		for d := 0; d < days; d++ {
			allocation = append(allocation, dest)
		}
	}
	return allocation, nil
}

// nightsPerDestination counts how many days of the allocation each
// destination received, keyed by destination ID. With the exclusive
// day-count convention this is also the number of nights spent there.
func nightsPerDestination(allocation []models.Destination) map[string]int {
	nights := make(map[string]int, len(allocation))
	for _, d := range allocation {
		nights[d.ID]++
	}
	return nights
}
