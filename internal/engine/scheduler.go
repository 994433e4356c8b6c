package engine

import (
	"math"
	"sort"

	"nomadai/internal/providers"
	"nomadai/pkg/utils"
)

// Canonical day shape in minutes from midnight.
const (
	dayStartMin = 8 * 60  // 08:00
	dayEndMin   = 21 * 60 // 21:00

	breakfastStartMin = 8 * 60
	breakfastEndMin   = 9 * 60
	lunchStartMin     = 12*60 + 30
	lunchEndMin       = 13*60 + 30
	dinnerStartMin    = 19 * 60
	dinnerEndMin      = 20*60 + 30

	defaultActivityDurationMin = 90
	defaultMealDurationMin     = 60
)

var mealWindows = []struct{ startMin, endMin int }{
	{breakfastStartMin, breakfastEndMin},
	{lunchStartMin, lunchEndMin},
	{dinnerStartMin, dinnerEndMin},
}

// SchedulerConfig tunes the deterministic travel-time approximation. Travel
// time is straight-line distance over an assumed average speed, never a
// live routing call.
type SchedulerConfig struct {
	TravelSpeedKmh float64
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.TravelSpeedKmh <= 0 {
		c.TravelSpeedKmh = 25
	}
	return c
}

func (c SchedulerConfig) travelMinutes(from, to *providers.GeoPoint) int {
	if from == nil || to == nil {
		return 0
	}
	return int(math.Ceil(from.DistanceKm(*to) / c.TravelSpeedKmh * 60))
}

// Schedule places ranked meal and activity candidates into the trip's days.
// Candidates are consumed at most once across the whole trip, and per-slot
// spend is tracked against each category's allocation so the assembled cost
// cannot outgrow the budget split. Every day ending unplanned is fatal; a
// subset of unplanned days is reported via the returned days' Unplanned flag.
func Schedule(request TripRequest, allocation BudgetAllocation,
	activities, meals []providers.CandidateOption,
	config SchedulerConfig) ([]ItineraryDay, error) {

	config = config.withDefaults()
	days := make([]ItineraryDay, request.Days())

	used := make(map[string]bool)
	activityBudget := allocation[providers.CategoryActivity]
	mealBudget := allocation[providers.CategoryMeal]
	plannedDays := 0

	for dayIndex := range days {
		day := ItineraryDay{
			Day:   dayIndex,
			Date:  utils.DateOfDay(request.StartDate, dayIndex),
			State: DayEmpty,
		}

		// Meals first at their canonical windows.
		for _, window := range mealWindows {
			meal, ok := takeMeal(meals, used, window.startMin, window.endMin, mealBudget)
			if !ok {
				continue
			}
			mealBudget -= meal.PriceMinor
			day.Slots = append(day.Slots, ScheduledSlot{
				Day:      dayIndex,
				StartMin: window.startMin,
				EndMin:   window.endMin,
				Option:   meal,
			})
			day.State = DayFilling
		}

		fillActivities(&day, activities, used, &activityBudget, config)

		if len(day.Slots) == 0 {
			day.State = DayPartial
			day.Unplanned = true
		} else {
			day.State = DayFull
			plannedDays++
		}

		sort.Slice(day.Slots, func(i, j int) bool {
			return day.Slots[i].StartMin < day.Slots[j].StartMin
		})
		days[dayIndex] = day
	}

	if plannedDays == 0 {
		return nil, newFailure(FailureScheduleInfeasible,
			"no candidates could be placed on any of the %d days", len(days))
	}
	return days, nil
}

func takeMeal(meals []providers.CandidateOption, used map[string]bool,
	startMin, endMin int, budget int64) (providers.CandidateOption, bool) {

	for _, meal := range meals {
		if used[meal.Key()] {
			continue
		}
		if meal.PriceMinor > budget {
			continue
		}
		if meal.Hours != nil && !meal.Hours.Contains(startMin, endMin) {
			continue
		}
		used[meal.Key()] = true
		return meal, true
	}
	return providers.CandidateOption{}, false
}

type freeGap struct {
	startMin     int
	endMin       int
	prevLocation *providers.GeoPoint
}

// fillActivities keeps dropping the highest-ranked unused activity into the
// day's free gaps until no remaining affordable activity fits anywhere.
// budget is the category's remaining allocation across the whole trip.
func fillActivities(day *ItineraryDay, activities []providers.CandidateOption,
	used map[string]bool, budget *int64, config SchedulerConfig) {

	for {
		placed := false
		for _, gap := range freeGaps(day) {
			if placeInGap(day, gap, activities, used, budget, config) {
				placed = true
				break
			}
		}
		if !placed {
			return
		}
	}
}

func placeInGap(day *ItineraryDay, gap freeGap, activities []providers.CandidateOption,
	used map[string]bool, budget *int64, config SchedulerConfig) bool {

	for _, activity := range activities {
		if used[activity.Key()] {
			continue
		}
		if activity.PriceMinor > *budget {
			continue
		}
		duration := activity.DurationMin
		if duration <= 0 {
			duration = defaultActivityDurationMin
		}
		travel := config.travelMinutes(gap.prevLocation, activity.Location)

		startMin := gap.startMin + travel
		if activity.Hours != nil && startMin < activity.Hours.OpenMin {
			startMin = activity.Hours.OpenMin
		}
		endMin := startMin + duration
		if endMin > gap.endMin {
			continue
		}
		if activity.Hours != nil && !activity.Hours.Contains(startMin, endMin) {
			continue
		}

		used[activity.Key()] = true
		*budget -= activity.PriceMinor
		day.Slots = append(day.Slots, ScheduledSlot{
			Day:       day.Day,
			StartMin:  startMin,
			EndMin:    endMin,
			Option:    activity,
			TravelMin: travel,
		})
		day.State = DayFilling
		return true
	}
	return false
}

// freeGaps lists the day's free windows of useful size in chronological
// order, each carrying the location of the slot before it.
func freeGaps(day *ItineraryDay) []freeGap {
	slots := append([]ScheduledSlot(nil), day.Slots...)
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartMin < slots[j].StartMin })

	var gaps []freeGap
	cursor := dayStartMin
	var prevLocation *providers.GeoPoint
	for _, slot := range slots {
		if slot.StartMin-cursor >= defaultMealDurationMin {
			gaps = append(gaps, freeGap{startMin: cursor, endMin: slot.StartMin, prevLocation: prevLocation})
		}
		if slot.EndMin > cursor {
			cursor = slot.EndMin
		}
		if slot.Option.Location != nil {
			prevLocation = slot.Option.Location
		}
	}
	if dayEndMin-cursor >= defaultMealDurationMin {
		gaps = append(gaps, freeGap{startMin: cursor, endMin: dayEndMin, prevLocation: prevLocation})
	}
	return gaps
}
