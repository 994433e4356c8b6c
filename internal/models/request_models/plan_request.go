package request_models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"nomadai/internal/engine"
	"nomadai/internal/providers"
	"nomadai/pkg/utils"
)

// PlanItineraryRequest is the inbound body for a planning run. Money is
// accepted in major units and converted to minor units internally.
type PlanItineraryRequest struct {
	Origin      string             `json:"origin"`
	Destination string             `json:"destination" binding:"required"`
	StartDate   string             `json:"start_date" binding:"required"`
	EndDate     string             `json:"end_date" binding:"required"`
	Travelers   int                `json:"travelers"`
	Budget      float64            `json:"budget" binding:"required,gt=0"`
	Currency    string             `json:"currency"`
	Interests   []string           `json:"interests"`
	BudgetHints map[string]float64 `json:"budget_hints"`
	Exclude     []string           `json:"exclude"`
}

func majorToMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ToTripRequest validates date formats and converts into the engine's
// input shape.
func (r PlanItineraryRequest) ToTripRequest() (engine.TripRequest, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return engine.TripRequest{}, fmt.Errorf("%w: invalid start_date %q", utils.ErrInvalidInput, r.StartDate)
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return engine.TripRequest{}, fmt.Errorf("%w: invalid end_date %q", utils.ErrInvalidInput, r.EndDate)
	}

	travelers := r.Travelers
	if travelers == 0 {
		travelers = 1
	}
	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if currency == "" {
		currency = "USD"
	}

	request := engine.TripRequest{
		Origin:      strings.TrimSpace(r.Origin),
		Destination: strings.TrimSpace(r.Destination),
		StartDate:   start,
		EndDate:     end,
		Travelers:   travelers,
		BudgetMinor: majorToMinor(r.Budget),
		Currency:    currency,
		Interests:   r.Interests,
	}

	if len(r.BudgetHints) > 0 {
		request.Hints = make(map[providers.Category]int64, len(r.BudgetHints))
		for name, amount := range r.BudgetHints {
			category, err := parseCategory(name)
			if err != nil {
				return engine.TripRequest{}, err
			}
			request.Hints[category] = majorToMinor(amount)
		}
	}
	if len(r.Exclude) > 0 {
		request.Excluded = make(map[providers.Category]bool, len(r.Exclude))
		for _, name := range r.Exclude {
			category, err := parseCategory(name)
			if err != nil {
				return engine.TripRequest{}, err
			}
			request.Excluded[category] = true
		}
	}

	return request, request.Validate()
}

func parseCategory(name string) (providers.Category, error) {
	category := providers.Category(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range providers.AllCategories {
		if category == known {
			return category, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", utils.ErrInvalidInput, name)
}
