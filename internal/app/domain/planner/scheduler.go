package planner

import (
	"fmt"
	"math"
	"sort"

	"github.com/FACorreiaa/go-wayfarer/internal/app/models"
)

// Fixed anchors for one city-day, in minutes from midnight.
const (
	lunchMinute  = 12*60 + 30 // 12:30
	dinnerMinute = 19 * 60    // 19:00

	breakfastMinutes = 60
	transitMinutes   = 30

	defaultActivityHours = 2.0

	// Shares of the per-traveler daily food budget. The missing 10% is
	// deliberate slack for snacks and incidentals and is never emitted
	// as an entry.
	lunchFoodShare  = 40
	dinnerFoodShare = 50
)

// Hours reserved before any activities are placed: breakfast 1h, lunch
// 1.5h, dinner 1.5h, rest 1h, transit 0.5h.
const fixedDayHours = 5.5

// BuildDaySchedule produces the ordered, time-stamped entries for a
// single city-day. Breakfast opens the day at startMinute with no cost;
// lunch and dinner sit at their fixed anchors and cost 40% and 50% of
// the per-traveler daily food budget. Activities run sequentially from
// startMinute+1h, each but the first preceded by a 30-minute transit
// buffer. The daily hour budget is advisory only; overruns are
// surfaced, not rejected. The result is sorted by placement minute so
// fixed meals and activities interleave correctly, and an overrunning
// chain stays at the end of the day instead of wrapping past midnight.
func BuildDaySchedule(startMinute int, activities []models.Offer, foodBudgetMinor int64) []models.ScheduleEntry {
	type slot struct {
		minute int
		entry  models.ScheduleEntry
	}
	slots := make([]slot, 0, len(activities)+3)

	slots = append(slots, slot{startMinute, models.ScheduleEntry{
		Time:          formatClock(startMinute),
		Label:         "Breakfast",
		DurationLabel: formatDuration(breakfastMinutes),
	}})

	lunchCost := foodBudgetMinor * lunchFoodShare / 100
	slots = append(slots, slot{lunchMinute, models.ScheduleEntry{
		Time:          formatClock(lunchMinute),
		Label:         "Lunch",
		DurationLabel: formatDuration(90),
		CostMinor:     &lunchCost,
	}})

	dinnerCost := foodBudgetMinor * dinnerFoodShare / 100
	slots = append(slots, slot{dinnerMinute, models.ScheduleEntry{
		Time:          formatClock(dinnerMinute),
		Label:         "Dinner",
		DurationLabel: formatDuration(90),
		CostMinor:     &dinnerCost,
	}})

	cursor := startMinute + breakfastMinutes
	for i, activity := range activities {
		if i > 0 {
			cursor += transitMinutes
		}
		hours := activity.DurationHours
		if hours <= 0 {
			hours = defaultActivityHours
		}
		durationMinutes := int(hours * 60)

		price := activity.PriceMinor
		slots = append(slots, slot{cursor, models.ScheduleEntry{
			Time:          formatClock(cursor),
			Label:         activity.Name,
			DurationLabel: formatDuration(durationMinutes),
			CostMinor:     &price,
		}})
		cursor += durationMinutes
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].minute < slots[j].minute
	})

	entries := make([]models.ScheduleEntry, len(slots))
	for i, s := range slots {
		entries[i] = s.entry
	}
	return entries
}

// SuggestedActivityHours is the advisory per-activity duration for a day:
// the hours left after the 5.5h fixed reserve, divided across the
// activities beyond the three fixed meal slots, floored to one decimal
// place and never below one hour. It informs the learner; BuildDaySchedule
// does not enforce it.
func SuggestedActivityHours(totalHours float64, activityCount int) float64 {
	available := totalHours - fixedDayHours
	divisor := activityCount - 3
	if divisor < 1 {
		divisor = 1
	}
	perActivity := available / float64(divisor)
	perActivity = math.Floor(perActivity*10) / 10
	if perActivity < 1 {
		perActivity = 1
	}
	return perActivity
}

func formatClock(minuteOfDay int) string {
	// Overrunning entries pin to the last minute of the day.
	if minuteOfDay > 23*60+59 {
		minuteOfDay = 23*60 + 59
	}
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}

func formatDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
