package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nomadai/internal/providers"
)

func flightOption(id string, priceMinor int64, quality float64) providers.CandidateOption {
	return providers.CandidateOption{
		Category:   providers.CategoryFlight,
		ProviderID: id,
		Name:       "Flight " + id,
		PriceMinor: priceMinor,
		Currency:   "USD",
		Quality:    quality,
	}
}

func activityOption(id string, priceMinor int64, quality float64, tags ...string) providers.CandidateOption {
	return providers.CandidateOption{
		Category:   providers.CategoryActivity,
		ProviderID: id,
		Name:       "Activity " + id,
		PriceMinor: priceMinor,
		Currency:   "USD",
		Quality:    quality,
		Tags:       tags,
	}
}

func TestSelectFiltersByAllocation(t *testing.T) {
	request := newTestRequest(100_000)
	candidates := []providers.CandidateOption{
		flightOption("cheap", 20_000, 3),
		flightOption("pricey", 50_000, 5),
	}

	selected, err := Select(providers.CategoryFlight, candidates, 35_000, request, SelectorConfig{})
	require.NoError(t, err)

	require.Len(t, selected, 1)
	assert.Equal(t, "cheap", selected[0].ProviderID)
}

func TestSelectPerSlotShareForActivities(t *testing.T) {
	request := newTestRequest(100_000) // 3 days
	candidates := []providers.CandidateOption{
		activityOption("affordable", 900, 4),
		activityOption("splurge", 5_000, 5),
	}

	// 9_000 over 3 days x 3 slots leaves a 1_000 per-slot share.
	selected, err := Select(providers.CategoryActivity, candidates, 9_000, request, SelectorConfig{})
	require.NoError(t, err)

	require.Len(t, selected, 1)
	assert.Equal(t, "affordable", selected[0].ProviderID)
}

func TestSelectRanksByInterestOverlapAndQuality(t *testing.T) {
	request := newTestRequest(100_000)
	request.Interests = []string{"culture"}
	candidates := []providers.CandidateOption{
		activityOption("high-quality", 500, 4.5),
		activityOption("on-interest", 500, 3, "culture"),
	}

	selected, err := Select(providers.CategoryActivity, candidates, 90_000, request, SelectorConfig{})
	require.NoError(t, err)

	require.Len(t, selected, 2)
	// One culture tag at the default weight outranks the quality edge.
	assert.Equal(t, "on-interest", selected[0].ProviderID)
}

func TestSelectTieBreaksDeterministic(t *testing.T) {
	request := newTestRequest(100_000)
	candidates := []providers.CandidateOption{
		activityOption("b-id", 500, 3),
		activityOption("a-id", 500, 3),
		activityOption("cheaper", 400, 3),
	}

	selected, err := Select(providers.CategoryActivity, candidates, 90_000, request, SelectorConfig{})
	require.NoError(t, err)

	require.Len(t, selected, 3)
	assert.Equal(t, "cheaper", selected[0].ProviderID)
	assert.Equal(t, "a-id", selected[1].ProviderID)
	assert.Equal(t, "b-id", selected[2].ProviderID)
}

func TestSelectTopKTruncates(t *testing.T) {
	request := newTestRequest(100_000)
	var candidates []providers.CandidateOption
	for _, id := range []string{"a", "b", "c", "d"} {
		candidates = append(candidates, activityOption(id, 500, 3))
	}

	selected, err := Select(providers.CategoryActivity, candidates, 90_000, request, SelectorConfig{TopK: 2})
	require.NoError(t, err)

	assert.Len(t, selected, 2)
}

func TestSelectNoCandidatesFound(t *testing.T) {
	request := newTestRequest(100_000)
	candidates := []providers.CandidateOption{
		flightOption("pricey", 90_000, 5),
	}

	_, err := Select(providers.CategoryFlight, candidates, 10_000, request, SelectorConfig{})
	assert.ErrorIs(t, err, ErrNoCandidatesFound)

	_, err = Select(providers.CategoryLodging, nil, 10_000, request, SelectorConfig{})
	assert.ErrorIs(t, err, ErrNoCandidatesFound)
}
