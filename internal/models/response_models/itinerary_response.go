package response_models

import (
	"nomadai/internal/engine"
	"nomadai/internal/providers"
	"nomadai/pkg/utils"
)

type OptionResponse struct {
	Category    string   `json:"category"`
	ProviderID  string   `json:"provider_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	PriceMinor  int64    `json:"price_minor"`
	Currency    string   `json:"currency"`
	Tags        []string `json:"tags,omitempty"`
}

type SlotResponse struct {
	Start     string         `json:"start"`
	End       string         `json:"end"`
	TravelMin int            `json:"travel_minutes,omitempty"`
	Option    OptionResponse `json:"option"`
}

type DayResponse struct {
	Day       int            `json:"day"`
	Date      string         `json:"date"`
	Unplanned bool           `json:"unplanned"`
	Narrative string         `json:"narrative"`
	Slots     []SlotResponse `json:"slots"`
}

type ItineraryResponse struct {
	ID              string           `json:"id"`
	Destination     string           `json:"destination"`
	StartDate       string           `json:"start_date"`
	EndDate         string           `json:"end_date"`
	Flight          *OptionResponse  `json:"flight,omitempty"`
	Lodging         *OptionResponse  `json:"lodging,omitempty"`
	Days            []DayResponse    `json:"days"`
	TotalCostMinor  int64            `json:"total_cost_minor"`
	BudgetMinor     int64            `json:"budget_minor"`
	Currency        string           `json:"currency"`
	AllocationMinor map[string]int64 `json:"allocation_minor"`
	Warnings        []string         `json:"warnings,omitempty"`
}

func toOptionResponse(option providers.CandidateOption) OptionResponse {
	return OptionResponse{
		Category:    string(option.Category),
		ProviderID:  option.ProviderID,
		Name:        option.Name,
		Description: option.Description,
		PriceMinor:  option.PriceMinor,
		Currency:    option.Currency,
		Tags:        option.Tags,
	}
}

// BuildItineraryResponse maps an assembled itinerary into the wire shape.
func BuildItineraryResponse(itinerary *engine.Itinerary) ItineraryResponse {
	response := ItineraryResponse{
		ID:              itinerary.ID,
		Destination:     itinerary.Request.Destination,
		StartDate:       utils.FormatDate(itinerary.Request.StartDate),
		EndDate:         utils.FormatDate(itinerary.Request.EndDate),
		TotalCostMinor:  itinerary.TotalCostMinor,
		BudgetMinor:     itinerary.Request.BudgetMinor,
		Currency:        itinerary.Currency,
		AllocationMinor: make(map[string]int64, len(itinerary.Allocation)),
		Warnings:        itinerary.Warnings,
	}
	for category, amount := range itinerary.Allocation {
		response.AllocationMinor[string(category)] = amount
	}

	if itinerary.Flight != nil {
		flight := toOptionResponse(*itinerary.Flight)
		response.Flight = &flight
	}
	if itinerary.Lodging != nil {
		lodging := toOptionResponse(*itinerary.Lodging)
		response.Lodging = &lodging
	}

	response.Days = make([]DayResponse, 0, len(itinerary.Days))
	for _, day := range itinerary.Days {
		dayResponse := DayResponse{
			Day:       day.Day,
			Date:      utils.FormatDate(day.Date),
			Unplanned: day.Unplanned,
			Narrative: day.Narrative,
			Slots:     make([]SlotResponse, 0, len(day.Slots)),
		}
		for _, slot := range day.Slots {
			dayResponse.Slots = append(dayResponse.Slots, SlotResponse{
				Start:     utils.FormatClock(slot.StartMin),
				End:       utils.FormatClock(slot.EndMin),
				TravelMin: slot.TravelMin,
				Option:    toOptionResponse(slot.Option),
			})
		}
		response.Days = append(response.Days, dayResponse)
	}

	return response
}
