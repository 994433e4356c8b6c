package db_models

// City backs the popular-destinations listing. IataCode doubles as the
// lookup key for flight and hotel searches.
type City struct {
	BaseModel
	Name        string `gorm:"index"`
	CountryCode string
	IataCode    string `gorm:"uniqueIndex"`
	Description string
	Popularity  int `gorm:"index"`
}
