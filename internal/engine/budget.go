package engine

import (
	"strings"

	"nomadai/internal/providers"
)

// AllocatorConfig carries the tunable weights of the budget split. Zero
// values fall back to the defaults below.
type AllocatorConfig struct {
	// Baseline share of the total budget per category.
	FlightShare   float64
	LodgingShare  float64
	ActivityShare float64
	MealShare     float64

	// Extra share moved into activities per activity-relevant interest tag.
	InterestWeight float64

	// No category may exceed this fraction of the total budget.
	CategoryCeiling float64

	// Mandatory minimums in minor units for the core categories.
	FlightFloorMinor  int64
	LodgingFloorMinor int64
}

func (c AllocatorConfig) withDefaults() AllocatorConfig {
	if c.FlightShare <= 0 {
		c.FlightShare = 0.35
	}
	if c.LodgingShare <= 0 {
		c.LodgingShare = 0.30
	}
	if c.ActivityShare <= 0 {
		c.ActivityShare = 0.20
	}
	if c.MealShare <= 0 {
		c.MealShare = 0.15
	}
	if c.InterestWeight <= 0 {
		c.InterestWeight = 0.03
	}
	if c.CategoryCeiling <= 0 {
		c.CategoryCeiling = 0.60
	}
	if c.FlightFloorMinor <= 0 {
		c.FlightFloorMinor = 5000
	}
	if c.LodgingFloorMinor <= 0 {
		c.LodgingFloorMinor = 3000
	}
	return c
}

// Allocate splits the request's budget across categories. Pure function of
// its inputs so the weighting rules stay unit-testable.
func Allocate(request TripRequest, config AllocatorConfig) (BudgetAllocation, error) {
	config = config.withDefaults()
	total := request.BudgetMinor

	// Mandatory floors must fit before anything else is computed.
	var floors int64
	if !request.IsExcluded(providers.CategoryFlight) {
		floors += config.FlightFloorMinor
	}
	if !request.IsExcluded(providers.CategoryLodging) {
		floors += config.LodgingFloorMinor
	}
	if floors > total {
		return nil, newFailure(FailureBudgetInfeasible,
			"mandatory minimums (%d) exceed total budget (%d)", floors, total)
	}

	shares := map[providers.Category]float64{
		providers.CategoryFlight:   config.FlightShare,
		providers.CategoryLodging:  config.LodgingShare,
		providers.CategoryActivity: config.ActivityShare,
		providers.CategoryMeal:     config.MealShare,
	}

	// Shift weight toward activities per matching interest, taken evenly
	// from flight and lodging.
	shift := config.InterestWeight * float64(countActivityInterests(request.Interests))
	if maxShift := shares[providers.CategoryFlight] + shares[providers.CategoryLodging] - 0.10; shift > maxShift {
		shift = maxShift
	}
	shares[providers.CategoryActivity] += shift
	shares[providers.CategoryFlight] -= shift / 2
	shares[providers.CategoryLodging] -= shift / 2

	for category := range shares {
		if request.IsExcluded(category) {
			delete(shares, category)
		}
	}

	// Hints override the computed split; the remainder is split across the
	// non-hinted categories by renormalized weight.
	allocation := make(BudgetAllocation, len(shares))
	remaining := total
	var openWeight float64
	for category, share := range shares {
		if hint, ok := request.Hints[category]; ok && hint <= total {
			allocation[category] = hint
			remaining -= hint
			continue
		}
		openWeight += share
	}
	if remaining < 0 {
		return nil, newFailure(FailureBudgetInfeasible,
			"budget hints (%d) exceed total budget (%d)", total-remaining, total)
	}

	for category, share := range shares {
		if _, hinted := allocation[category]; hinted {
			continue
		}
		amount := int64(float64(remaining) * share / openWeight)
		ceiling := int64(float64(total) * config.CategoryCeiling)
		if amount > ceiling {
			amount = ceiling
		}
		allocation[category] = amount
	}

	// Floors win over the weighted split. Shortfall comes out of the
	// activity then the meal allocation.
	raiseToFloor(allocation, providers.CategoryFlight, config.FlightFloorMinor, request)
	raiseToFloor(allocation, providers.CategoryLodging, config.LodgingFloorMinor, request)

	if allocation.Total() > total {
		excess := allocation.Total() - total
		for _, category := range []providers.Category{providers.CategoryActivity, providers.CategoryMeal} {
			if excess <= 0 {
				break
			}
			if _, hinted := request.Hints[category]; hinted {
				continue
			}
			cut := excess
			if cut > allocation[category] {
				cut = allocation[category]
			}
			allocation[category] -= cut
			excess -= cut
		}
		if excess > 0 {
			return nil, newFailure(FailureBudgetInfeasible,
				"cannot satisfy floors and hints within total budget (%d)", total)
		}
	}

	return allocation, nil
}

func raiseToFloor(allocation BudgetAllocation, category providers.Category, floor int64, request TripRequest) {
	if request.IsExcluded(category) {
		return
	}
	if _, hinted := request.Hints[category]; hinted {
		return
	}
	if allocation[category] < floor {
		allocation[category] = floor
	}
}

func countActivityInterests(interests []string) int {
	count := 0
	for _, interest := range interests {
		if activityInterests[strings.ToLower(strings.TrimSpace(interest))] {
			count++
		}
	}
	return count
}
