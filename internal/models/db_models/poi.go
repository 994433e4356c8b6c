package db_models

// POI is a curated point of interest in the catalog. Category is either
// "activity" or "meal" and decides which planning bucket it feeds.
type POI struct {
	BaseModel
	Name            string
	City            string `gorm:"index"`
	Category        string `gorm:"index"`
	Latitude        float64
	Longitude       float64
	OpeningHours    string // "HH:MM-HH:MM", empty when always open
	EntryFeeMinor   int64
	Currency        string
	DurationMinutes int
	Rating          float64
	Description     string

	Tags []Tag `gorm:"many2many:poi_tags"`
}
