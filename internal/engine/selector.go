package engine

import (
	"sort"
	"strings"

	"nomadai/internal/providers"
)

// Activity slots a day can reasonably hold; used to derive the fair
// per-item share and the default selection depth.
const slotsPerDay = 3

// SelectorConfig tunes candidate ranking.
type SelectorConfig struct {
	// Score contribution per matching interest tag.
	InterestOverlapWeight float64
	// Candidates returned per category. Zero means enough to cover every
	// day slot with margin.
	TopK int
}

func (c SelectorConfig) withDefaults(days int) SelectorConfig {
	if c.InterestOverlapWeight <= 0 {
		c.InterestOverlapWeight = 2.0
	}
	if c.TopK <= 0 {
		c.TopK = days * slotsPerDay * 2
	}
	return c
}

type rankedCandidate struct {
	option providers.CandidateOption
	score  float64
}

// Select filters and ranks one category's candidates against its allocation.
// Returns ErrNoCandidatesFound when filtering leaves nothing; core-category
// absence is escalated by the caller, not here.
func Select(category providers.Category, candidates []providers.CandidateOption,
	allocation int64, request TripRequest, config SelectorConfig) ([]providers.CandidateOption, error) {

	days := request.Days()
	config = config.withDefaults(days)

	// Whole-trip categories spend against the full allocation. Per-item
	// categories spend against a fair per-slot share so one expensive pick
	// cannot starve the rest of the trip.
	priceCap := allocation
	if category == providers.CategoryActivity || category == providers.CategoryMeal {
		perSlot := allocation / int64(days*slotsPerDay)
		if perSlot > 0 {
			priceCap = perSlot
		}
	}

	interests := normalizeInterests(request.Interests)

	ranked := make([]rankedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.PriceMinor > priceCap {
			continue
		}
		ranked = append(ranked, rankedCandidate{
			option: candidate,
			score:  overlapScore(candidate.Tags, interests)*config.InterestOverlapWeight + candidate.Quality,
		})
	}
	if len(ranked) == 0 {
		return nil, ErrNoCandidatesFound
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].option.PriceMinor != ranked[j].option.PriceMinor {
			return ranked[i].option.PriceMinor < ranked[j].option.PriceMinor
		}
		return ranked[i].option.ProviderID < ranked[j].option.ProviderID
	})

	if len(ranked) > config.TopK {
		ranked = ranked[:config.TopK]
	}

	selected := make([]providers.CandidateOption, len(ranked))
	for i, r := range ranked {
		selected[i] = r.option
	}
	return selected, nil
}

func normalizeInterests(interests []string) map[string]bool {
	set := make(map[string]bool, len(interests))
	for _, interest := range interests {
		set[strings.ToLower(strings.TrimSpace(interest))] = true
	}
	return set
}

func overlapScore(tags []string, interests map[string]bool) float64 {
	var overlap float64
	for _, tag := range tags {
		if interests[strings.ToLower(strings.TrimSpace(tag))] {
			overlap++
		}
	}
	return overlap
}
