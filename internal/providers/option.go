package providers

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"nomadai/pkg/utils"
)

// Category identifies which budget bucket a candidate belongs to.
type Category string

const (
	CategoryFlight   Category = "flight"
	CategoryLodging  Category = "lodging"
	CategoryActivity Category = "activity"
	CategoryMeal     Category = "meal"
)

// AllCategories in pipeline order.
var AllCategories = []Category{CategoryFlight, CategoryLodging, CategoryActivity, CategoryMeal}

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm returns the great-circle distance to other in kilometres.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	const earthRadiusKm = 6371.0
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// OpeningHours is a single daily open window in minutes from midnight.
type OpeningHours struct {
	OpenMin  int `json:"open_min"`
	CloseMin int `json:"close_min"`
}

// Contains reports whether [startMin, endMin] lies inside the window.
func (h OpeningHours) Contains(startMin, endMin int) bool {
	return startMin >= h.OpenMin && endMin <= h.CloseMin
}

// ParseOpeningHours parses the catalog's "HH:MM-HH:MM" form.
func ParseOpeningHours(s string) (*OpeningHours, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid opening hours %q", s)
	}
	open, err := utils.ParseClock(parts[0])
	if err != nil {
		return nil, err
	}
	closeAt, err := utils.ParseClock(parts[1])
	if err != nil {
		return nil, err
	}
	if closeAt <= open {
		return nil, fmt.Errorf("opening hours %q close before open", s)
	}
	return &OpeningHours{OpenMin: open, CloseMin: closeAt}, nil
}

// CandidateOption is the normalized shape every provider response is reduced
// to at the adapter boundary. Provider-native fields never leak past here.
// Prices are whole-offering totals in minor units (a lodging price covers the
// full stay, not one night).
type CandidateOption struct {
	Category    Category  `json:"category"`
	ProviderID  string    `json:"provider_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceMinor  int64     `json:"price_minor"`
	Currency    string    `json:"currency"`
	Location    *GeoPoint `json:"location,omitempty"`
	// Hours is nil when the offering has no open window (flights, lodging).
	Hours       *OpeningHours `json:"hours,omitempty"`
	DurationMin int           `json:"duration_min,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Quality     float64       `json:"quality"`
}

// Key identifies the real-world offering for dedup purposes.
func (o CandidateOption) Key() string {
	return string(o.Category) + ":" + o.ProviderID
}

// Constraints narrows a provider fetch. Origin is only meaningful for
// flights.
type Constraints struct {
	Origin      string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Travelers   int
	Tags        []string
	Limit       int
}

// CacheKey normalizes the constraints into a stable cache key for a
// category. Tags are sorted and lowercased so equivalent requests share an
// entry.
func (c Constraints) CacheKey(category Category) string {
	tags := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(t)))
	}
	sort.Strings(tags)

	return fmt.Sprintf("%s:%s:%s:%s:%s:%d:%s:%d",
		category,
		strings.ToLower(strings.TrimSpace(c.Origin)),
		strings.ToLower(strings.TrimSpace(c.Destination)),
		utils.FormatDate(c.StartDate),
		utils.FormatDate(c.EndDate),
		c.Travelers,
		strings.Join(tags, ","),
		c.Limit,
	)
}

// Provider is one upstream capability (flight search, lodging search, POI
// search). Implementations return provider-native data already normalized
// into CandidateOption; the adapter owns caching, dedup and retries.
type Provider interface {
	Category() Category
	Fetch(ctx context.Context, cons Constraints) ([]CandidateOption, error)
}
