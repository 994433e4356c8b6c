package request_models

// FlightSearchRequest binds the flight search query parameters.
type FlightSearchRequest struct {
	Origin      string `form:"origin" binding:"required"`
	Destination string `form:"destination" binding:"required"`
	StartDate   string `form:"start_date" binding:"required"`
	EndDate     string `form:"end_date" binding:"required"`
	Travelers   int    `form:"travelers"`
}

// HotelSearchRequest binds the hotel search query parameters.
type HotelSearchRequest struct {
	Destination string `form:"destination" binding:"required"`
	StartDate   string `form:"start_date" binding:"required"`
	EndDate     string `form:"end_date" binding:"required"`
	Travelers   int    `form:"travelers"`
}

// PoiSearchRequest binds the points-of-interest search query parameters.
type PoiSearchRequest struct {
	City     string   `form:"city" binding:"required"`
	Category string   `form:"category"`
	Tags     []string `form:"tags"`
	Limit    int      `form:"limit"`
}
