package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeyNormalizesConstraints(t *testing.T) {
	base := testConstraints()
	base.Tags = []string{"Culture", "food"}

	variant := testConstraints()
	variant.Origin = "jfk"
	variant.Destination = "cdg "
	variant.Tags = []string{"food", " culture"}

	assert.Equal(t, base.CacheKey(CategoryFlight), variant.CacheKey(CategoryFlight))
	assert.NotEqual(t, base.CacheKey(CategoryFlight), base.CacheKey(CategoryLodging))
}

func TestParseOpeningHours(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOpen int
		wantErr  bool
	}{
		{name: "valid window", input: "09:00-17:30", wantOpen: 540},
		{name: "whitespace tolerated", input: " 08:15-12:00", wantOpen: 495},
		{name: "missing separator", input: "0900", wantErr: true},
		{name: "close before open", input: "17:00-09:00", wantErr: true},
		{name: "garbage", input: "ab:cd-ef:gh", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, err := ParseOpeningHours(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOpen, hours.OpenMin)
		})
	}
}

func TestOpeningHoursContains(t *testing.T) {
	hours := OpeningHours{OpenMin: 540, CloseMin: 1020} // 09:00-17:00

	assert.True(t, hours.Contains(540, 600))
	assert.True(t, hours.Contains(960, 1020))
	assert.False(t, hours.Contains(480, 600))
	assert.False(t, hours.Contains(1000, 1080))
}

func TestGeoPointDistance(t *testing.T) {
	paris := GeoPoint{Lat: 48.8566, Lng: 2.3522}
	london := GeoPoint{Lat: 51.5074, Lng: -0.1278}

	distance := paris.DistanceKm(london)
	assert.InDelta(t, 344, distance, 10)
	assert.Zero(t, paris.DistanceKm(paris))
}
