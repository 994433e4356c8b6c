package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"nomadai/internal/providers"
	"nomadai/pkg/utils"
)

// Assemble merges the core selections and the scheduled days into a fully
// validated Itinerary. Any invariant violation aborts the run; a partial
// plan is never released.
func Assemble(request TripRequest, allocation BudgetAllocation,
	flight, lodging *providers.CandidateOption,
	days []ItineraryDay, warnings []string) (*Itinerary, error) {

	if expected := request.Days(); len(days) != expected {
		return nil, newFailure(FailureAssemblyInvariantViolation,
			"scheduled %d days for a %d-day trip", len(days), expected)
	}
	if flight == nil && !request.IsExcluded(providers.CategoryFlight) {
		return nil, newFailure(FailureAssemblyInvariantViolation, "flight selection missing")
	}
	if lodging == nil && !request.IsExcluded(providers.CategoryLodging) {
		return nil, newFailure(FailureAssemblyInvariantViolation, "lodging selection missing")
	}

	var total int64
	if flight != nil {
		total += flight.PriceMinor
	}
	if lodging != nil {
		total += lodging.PriceMinor
	}

	for _, day := range days {
		if err := validateDay(day); err != nil {
			return nil, err
		}
		for _, slot := range day.Slots {
			total += slot.Option.PriceMinor
		}
	}

	if total > request.BudgetMinor {
		return nil, newFailure(FailureBudgetExceeded,
			"assembled cost %d exceeds budget %d", total, request.BudgetMinor)
	}

	return &Itinerary{
		ID:             uuid.NewString(),
		Request:        request,
		Allocation:     allocation,
		Flight:         flight,
		Lodging:        lodging,
		Days:           days,
		TotalCostMinor: total,
		Currency:       request.Currency,
		Warnings:       warnings,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func validateDay(day ItineraryDay) error {
	slots := append([]ScheduledSlot(nil), day.Slots...)
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartMin < slots[j].StartMin })

	for i, slot := range slots {
		if slot.EndMin <= slot.StartMin {
			return newFailure(FailureAssemblyInvariantViolation,
				"day %d: slot %q has non-positive window %s-%s", day.Day,
				slot.Option.Name, utils.FormatClock(slot.StartMin), utils.FormatClock(slot.EndMin))
		}
		if i > 0 && slot.StartMin < slots[i-1].EndMin {
			return newFailure(FailureAssemblyInvariantViolation,
				"day %d: slots %q and %q overlap", day.Day,
				slots[i-1].Option.Name, slot.Option.Name)
		}
		if slot.Option.Hours != nil && !slot.Option.Hours.Contains(slot.StartMin, slot.EndMin) {
			return newFailure(FailureAssemblyInvariantViolation,
				"day %d: slot %q falls outside opening hours", day.Day, slot.Option.Name)
		}
	}
	return nil
}
