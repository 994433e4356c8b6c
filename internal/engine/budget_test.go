package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadai/internal/providers"
)

func newTestRequest(budgetMinor int64) TripRequest {
	return TripRequest{
		Origin:      "JFK",
		Destination: "CDG",
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
		Travelers:   2,
		BudgetMinor: budgetMinor,
		Currency:    "USD",
	}
}

func TestAllocateDefaultSplit(t *testing.T) {
	request := newTestRequest(100_000)

	allocation, err := Allocate(request, AllocatorConfig{})
	require.NoError(t, err)

	assert.LessOrEqual(t, allocation.Total(), request.BudgetMinor)
	for _, category := range providers.AllCategories {
		assert.Positive(t, allocation[category], "category %s should get a share", category)
	}
	assert.GreaterOrEqual(t, allocation[providers.CategoryFlight], int64(5000))
	assert.GreaterOrEqual(t, allocation[providers.CategoryLodging], int64(3000))
}

func TestAllocateInterestShift(t *testing.T) {
	plain := newTestRequest(100_000)
	curious := newTestRequest(100_000)
	curious.Interests = []string{"culture", "adventure", "nature"}

	plainAllocation, err := Allocate(plain, AllocatorConfig{})
	require.NoError(t, err)
	curiousAllocation, err := Allocate(curious, AllocatorConfig{})
	require.NoError(t, err)

	assert.Greater(t, curiousAllocation[providers.CategoryActivity],
		plainAllocation[providers.CategoryActivity])
	assert.LessOrEqual(t, curiousAllocation.Total(), int64(100_000))
}

func TestAllocateHintOverride(t *testing.T) {
	request := newTestRequest(100_000)
	request.Hints = map[providers.Category]int64{
		providers.CategoryFlight: 42_000,
	}

	allocation, err := Allocate(request, AllocatorConfig{})
	require.NoError(t, err)

	assert.Equal(t, int64(42_000), allocation[providers.CategoryFlight])
	assert.LessOrEqual(t, allocation.Total(), int64(100_000))
	assert.Positive(t, allocation[providers.CategoryLodging])
}

func TestAllocateFloorsExceedBudget(t *testing.T) {
	request := newTestRequest(5_000) // $50

	_, err := Allocate(request, AllocatorConfig{FlightFloorMinor: 30_000}) // $300 floor

	failure, ok := AsPlanningFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureBudgetInfeasible, failure.Kind)
}

func TestAllocateExcludedCategorySkipsFloor(t *testing.T) {
	request := newTestRequest(5_000)
	request.Excluded = map[providers.Category]bool{
		providers.CategoryFlight: true,
	}

	allocation, err := Allocate(request, AllocatorConfig{FlightFloorMinor: 30_000})
	require.NoError(t, err)

	_, hasFlight := allocation[providers.CategoryFlight]
	assert.False(t, hasFlight)
	assert.LessOrEqual(t, allocation.Total(), int64(5_000))
}

func TestAllocateHintsExceedBudget(t *testing.T) {
	request := newTestRequest(100_000)
	request.Hints = map[providers.Category]int64{
		providers.CategoryFlight:  60_000,
		providers.CategoryLodging: 60_000,
	}

	_, err := Allocate(request, AllocatorConfig{})

	failure, ok := AsPlanningFailure(err)
	require.True(t, ok)
	assert.Equal(t, FailureBudgetInfeasible, failure.Kind)
}

func TestAllocateDeterministic(t *testing.T) {
	request := newTestRequest(100_000)
	request.Interests = []string{"culture", "food"}

	first, err := Allocate(request, AllocatorConfig{})
	require.NoError(t, err)
	second, err := Allocate(request, AllocatorConfig{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
