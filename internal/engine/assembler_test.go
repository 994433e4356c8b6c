package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadai/internal/providers"
	"nomadai/pkg/utils"
)

func scheduledDays(request TripRequest, slots ...ScheduledSlot) []ItineraryDay {
	days := make([]ItineraryDay, request.Days())
	for i := range days {
		days[i] = ItineraryDay{Day: i, Date: utils.DateOfDay(request.StartDate, i), State: DayFull}
	}
	for _, slot := range slots {
		days[slot.Day].Slots = append(days[slot.Day].Slots, slot)
	}
	return days
}

func TestAssembleComputesExactCost(t *testing.T) {
	request := newTestRequest(100_000)
	flight := flightOption("f1", 30_000, 4)
	lodging := providers.CandidateOption{
		Category: providers.CategoryLodging, ProviderID: "h1", Name: "Hotel", PriceMinor: 25_000, Currency: "USD",
	}
	days := scheduledDays(request,
		ScheduledSlot{Day: 0, StartMin: 600, EndMin: 690, Option: activityOption("a1", 1_500, 4)},
		ScheduledSlot{Day: 1, StartMin: 600, EndMin: 690, Option: activityOption("a2", 2_000, 4)},
	)

	itinerary, err := Assemble(request, BudgetAllocation{}, &flight, &lodging, days, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(30_000+25_000+1_500+2_000), itinerary.TotalCostMinor)
	assert.NotEmpty(t, itinerary.ID)
	assert.Equal(t, "USD", itinerary.Currency)
}

func TestAssembleBudgetExceeded(t *testing.T) {
	request := newTestRequest(40_000)
	flight := flightOption("f1", 30_000, 4)
	lodging := providers.CandidateOption{
		Category: providers.CategoryLodging, ProviderID: "h1", PriceMinor: 25_000,
	}
	days := scheduledDays(request)

	_, err := Assemble(request, BudgetAllocation{}, &flight, &lodging, days, nil)

	failure, ok := AsPlanningFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureBudgetExceeded, failure.Kind)
}

func TestAssembleRejectsOverlappingSlots(t *testing.T) {
	request := newTestRequest(100_000)
	flight := flightOption("f1", 10_000, 4)
	lodging := providers.CandidateOption{Category: providers.CategoryLodging, ProviderID: "h1", PriceMinor: 10_000}
	days := scheduledDays(request,
		ScheduledSlot{Day: 0, StartMin: 600, EndMin: 720, Option: activityOption("a1", 500, 4)},
		ScheduledSlot{Day: 0, StartMin: 700, EndMin: 780, Option: activityOption("a2", 500, 4)},
	)

	_, err := Assemble(request, BudgetAllocation{}, &flight, &lodging, days, nil)

	failure, ok := AsPlanningFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureAssemblyInvariantViolation, failure.Kind)
}

func TestAssembleRejectsSlotOutsideOpeningHours(t *testing.T) {
	request := newTestRequest(100_000)
	flight := flightOption("f1", 10_000, 4)
	lodging := providers.CandidateOption{Category: providers.CategoryLodging, ProviderID: "h1", PriceMinor: 10_000}

	outside := activityOption("a1", 500, 4)
	outside.Hours = &providers.OpeningHours{OpenMin: 600, CloseMin: 660}
	days := scheduledDays(request,
		ScheduledSlot{Day: 0, StartMin: 600, EndMin: 700, Option: outside},
	)

	_, err := Assemble(request, BudgetAllocation{}, &flight, &lodging, days, nil)

	failure, ok := AsPlanningFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureAssemblyInvariantViolation, failure.Kind)
}

func TestAssembleRejectsDayCountMismatch(t *testing.T) {
	request := newTestRequest(100_000) // 3 days
	flight := flightOption("f1", 10_000, 4)
	lodging := providers.CandidateOption{Category: providers.CategoryLodging, ProviderID: "h1", PriceMinor: 10_000}

	_, err := Assemble(request, BudgetAllocation{}, &flight, &lodging, []ItineraryDay{{Day: 0}}, nil)

	failure, ok := AsPlanningFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureAssemblyInvariantViolation, failure.Kind)
}

func TestAssembleRequiresCoreSelections(t *testing.T) {
	request := newTestRequest(100_000)
	days := scheduledDays(request)

	_, err := Assemble(request, BudgetAllocation{}, nil, nil, days, nil)

	failure, ok := AsPlanningFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureAssemblyInvariantViolation, failure.Kind)
}

func TestAssembleAllowsExcludedCoreCategories(t *testing.T) {
	request := newTestRequest(100_000)
	request.Excluded = map[providers.Category]bool{
		providers.CategoryFlight:  true,
		providers.CategoryLodging: true,
	}
	days := scheduledDays(request,
		ScheduledSlot{Day: 0, StartMin: 600, EndMin: 690, Option: activityOption("a1", 1_500, 4)},
	)

	itinerary, err := Assemble(request, BudgetAllocation{}, nil, nil, days, nil)
	require.NoError(t, err)

	assert.Nil(t, itinerary.Flight)
	assert.Nil(t, itinerary.Lodging)
	assert.Equal(t, int64(1_500), itinerary.TotalCostMinor)
}
