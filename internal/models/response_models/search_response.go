package response_models

type CityResponse struct {
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	IataCode    string `json:"iata_code"`
	Description string `json:"description,omitempty"`
}

type SearchResponse struct {
	Category string           `json:"category"`
	Count    int              `json:"count"`
	Options  []OptionResponse `json:"options"`
	Degraded bool             `json:"degraded,omitempty"`
}
