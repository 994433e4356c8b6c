package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadai/internal/providers"
)

func mealOption(id string) providers.CandidateOption {
	return providers.CandidateOption{
		Category:   providers.CategoryMeal,
		ProviderID: id,
		Name:       "Meal " + id,
		PriceMinor: 800,
		Currency:   "USD",
	}
}

func timedActivity(id string, openMin, closeMin, durationMin int) providers.CandidateOption {
	option := activityOption(id, 500, 4)
	option.DurationMin = durationMin
	if openMin >= 0 {
		option.Hours = &providers.OpeningHours{OpenMin: openMin, CloseMin: closeMin}
	}
	return option
}

// openAllocation leaves ample room in every category so placement tests
// exercise time constraints, not spend tracking.
func openAllocation() BudgetAllocation {
	return BudgetAllocation{
		providers.CategoryActivity: 1_000_000,
		providers.CategoryMeal:     1_000_000,
	}
}

func assertNoOverlaps(t *testing.T, days []ItineraryDay) {
	t.Helper()
	for _, day := range days {
		for i := 1; i < len(day.Slots); i++ {
			assert.GreaterOrEqual(t, day.Slots[i].StartMin, day.Slots[i-1].EndMin,
				"day %d: slots overlap", day.Day)
		}
	}
}

func TestScheduleMealsAtCanonicalWindows(t *testing.T) {
	request := newTestRequest(100_000) // 3 days
	meals := []providers.CandidateOption{
		mealOption("m1"), mealOption("m2"), mealOption("m3"),
	}

	days, err := Schedule(request, openAllocation(), nil, meals, SchedulerConfig{})
	require.NoError(t, err)

	require.Len(t, days, 3)
	require.Len(t, days[0].Slots, 3)
	assert.Equal(t, breakfastStartMin, days[0].Slots[0].StartMin)
	assert.Equal(t, lunchStartMin, days[0].Slots[1].StartMin)
	assert.Equal(t, dinnerStartMin, days[0].Slots[2].StartMin)
	assertNoOverlaps(t, days)
}

func TestScheduleConsumesCandidatesOnce(t *testing.T) {
	request := newTestRequest(100_000)
	activities := []providers.CandidateOption{timedActivity("solo", -1, 0, 120)}

	days, err := Schedule(request, openAllocation(), activities, nil, SchedulerConfig{})
	require.NoError(t, err)

	placements := 0
	for _, day := range days {
		for _, slot := range day.Slots {
			if slot.Option.ProviderID == "solo" {
				placements++
			}
		}
	}
	assert.Equal(t, 1, placements)
}

func TestScheduleRespectsOpeningHours(t *testing.T) {
	request := newTestRequest(100_000)
	// Open only 10:00-12:00.
	activities := []providers.CandidateOption{timedActivity("museum", 600, 720, 90)}

	days, err := Schedule(request, openAllocation(), activities, nil, SchedulerConfig{})
	require.NoError(t, err)

	var placed *ScheduledSlot
	for _, day := range days {
		for i := range day.Slots {
			if day.Slots[i].Option.ProviderID == "museum" {
				placed = &day.Slots[i]
			}
		}
	}
	require.NotNil(t, placed)
	assert.GreaterOrEqual(t, placed.StartMin, 600)
	assert.LessOrEqual(t, placed.EndMin, 720)
}

func TestScheduleMarksUnplannedDays(t *testing.T) {
	request := newTestRequest(100_000) // 3 days
	activities := []providers.CandidateOption{
		timedActivity("one", -1, 0, 120),
		timedActivity("two", -1, 0, 120),
	}

	days, err := Schedule(request, openAllocation(), activities, nil, SchedulerConfig{})
	require.NoError(t, err)

	unplanned := 0
	for _, day := range days {
		if day.Unplanned {
			assert.Empty(t, day.Slots)
			assert.Equal(t, DayPartial, day.State)
			unplanned++
		} else {
			assert.Equal(t, DayFull, day.State)
		}
	}
	assert.Positive(t, unplanned)
}

func TestScheduleAllDaysUnplannedIsFatal(t *testing.T) {
	request := newTestRequest(100_000)

	_, err := Schedule(request, openAllocation(), nil, nil, SchedulerConfig{})

	failure, ok := AsPlanningFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureScheduleInfeasible, failure.Kind)
}

func TestScheduleHonorsCategoryAllocations(t *testing.T) {
	request := newTestRequest(100_000) // 3 days
	activities := make([]providers.CandidateOption, 0, 12)
	for i := 0; i < 12; i++ {
		activities = append(activities, timedActivity(fmt.Sprintf("act-%02d", i), -1, 0, 90))
	}
	meals := []providers.CandidateOption{
		mealOption("m1"), mealOption("m2"), mealOption("m3"), mealOption("m4"),
	}
	// Room for three 500-priced activities and two 800-priced meals.
	allocation := BudgetAllocation{
		providers.CategoryActivity: 1_600,
		providers.CategoryMeal:     2_000,
	}

	days, err := Schedule(request, allocation, activities, meals, SchedulerConfig{})
	require.NoError(t, err)

	var activitySpend, mealSpend int64
	for _, day := range days {
		for _, slot := range day.Slots {
			switch slot.Option.Category {
			case providers.CategoryActivity:
				activitySpend += slot.Option.PriceMinor
			case providers.CategoryMeal:
				mealSpend += slot.Option.PriceMinor
			}
		}
	}
	assert.Equal(t, int64(1_500), activitySpend)
	assert.Equal(t, int64(1_600), mealSpend)
}

func TestScheduleAccountsForTravelTime(t *testing.T) {
	request := newTestRequest(100_000)

	near := timedActivity("near", -1, 0, 60)
	near.Location = &providers.GeoPoint{Lat: 48.8566, Lng: 2.3522}
	far := timedActivity("far", -1, 0, 60)
	far.Location = &providers.GeoPoint{Lat: 48.9000, Lng: 2.4500}

	days, err := Schedule(request, openAllocation(), []providers.CandidateOption{near, far}, nil, SchedulerConfig{TravelSpeedKmh: 25})
	require.NoError(t, err)

	var nearSlot, farSlot *ScheduledSlot
	for _, day := range days {
		for i := range day.Slots {
			switch day.Slots[i].Option.ProviderID {
			case "near":
				nearSlot = &day.Slots[i]
			case "far":
				farSlot = &day.Slots[i]
			}
		}
	}
	require.NotNil(t, nearSlot)
	require.NotNil(t, farSlot)
	// The second placement pays a travel gap after the first.
	assert.Positive(t, farSlot.TravelMin)
	assert.GreaterOrEqual(t, farSlot.StartMin, nearSlot.EndMin+farSlot.TravelMin)
}
