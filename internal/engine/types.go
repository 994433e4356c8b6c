package engine

import (
	"fmt"
	"strings"
	"time"

	"nomadai/internal/providers"
	"nomadai/pkg/utils"
)

// Interest tags the planner understands. Unknown tags are carried through to
// providers untouched but contribute no activity weighting.
var KnownInterests = []string{
	"culture", "relaxation", "adventure", "food", "nature", "nightlife",
	"luxury", "budget", "family", "shopping", "beach", "mountain",
}

// Interests that bias the budget split toward the activity category.
var activityInterests = map[string]bool{
	"culture":   true,
	"adventure": true,
	"nature":    true,
	"nightlife": true,
	"shopping":  true,
	"beach":     true,
	"mountain":  true,
}

// TripRequest is the caller-owned input to a planning run. Passed by value
// and never mutated by the engine.
type TripRequest struct {
	Origin      string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Travelers   int
	BudgetMinor int64
	Currency    string
	Interests   []string

	// Hints override the computed allocation for a category when present
	// and individually within budget.
	Hints map[providers.Category]int64

	// Excluded categories get no allocation and no mandatory floor.
	Excluded map[providers.Category]bool
}

// Days returns the inclusive length of the trip's date range.
func (r TripRequest) Days() int {
	return utils.DaysBetween(r.StartDate, r.EndDate)
}

func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	if r.BudgetMinor <= 0 {
		return fmt.Errorf("%w: budget must be positive", utils.ErrInvalidInput)
	}
	if r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("%w: end date before start date", utils.ErrInvalidInput)
	}
	if r.Travelers <= 0 {
		return fmt.Errorf("%w: traveler count must be positive", utils.ErrInvalidInput)
	}
	for category, hint := range r.Hints {
		if hint < 0 {
			return fmt.Errorf("%w: negative budget hint for %s", utils.ErrInvalidInput, category)
		}
	}
	return nil
}

// IsExcluded reports whether the traveler opted a category out of the plan.
func (r TripRequest) IsExcluded(category providers.Category) bool {
	return r.Excluded[category]
}

// BudgetAllocation maps each category to its sub-budget in minor units.
// Sum of allocations never exceeds the request's total budget.
type BudgetAllocation map[providers.Category]int64

func (a BudgetAllocation) Total() int64 {
	var total int64
	for _, amount := range a {
		total += amount
	}
	return total
}

// ScheduledSlot is one placed candidate on one day.
type ScheduledSlot struct {
	Day      int // 0-based day index
	StartMin int // minutes from midnight
	EndMin   int
	Option   providers.CandidateOption
	// Estimated minutes spent travelling from the previous slot's location.
	TravelMin int
}

// DayState tracks how far the scheduler got with a given day.
type DayState string

const (
	DayEmpty   DayState = "empty"
	DayFilling DayState = "filling"
	DayFull    DayState = "full"
	DayPartial DayState = "partial"
)

// ItineraryDay holds one day's ordered slots. Unplanned days carry zero
// slots and are reported rather than dropped.
type ItineraryDay struct {
	Day       int
	Date      time.Time
	State     DayState
	Slots     []ScheduledSlot
	Unplanned bool
	Narrative string
}

// Itinerary is the engine's validated output. Immutable after assembly.
type Itinerary struct {
	ID             string
	Request        TripRequest
	Allocation     BudgetAllocation
	Flight         *providers.CandidateOption
	Lodging        *providers.CandidateOption
	Days           []ItineraryDay
	TotalCostMinor int64
	Currency       string
	Warnings       []string
	CreatedAt      time.Time
}
