package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"nomadai/internal/providers"
	"nomadai/pkg/utils"
)

// Fetcher is the candidate source the planner draws from. Satisfied by
// providers.Adapter.
type Fetcher interface {
	Fetch(ctx context.Context, category providers.Category, cons providers.Constraints) ([]providers.CandidateOption, error)
}

// Narrator turns an assembled itinerary into per-day display text. Errors
// and timeouts degrade to the deterministic fallback; narration output is
// never fed back into planning.
type Narrator interface {
	Narrate(ctx context.Context, itinerary *Itinerary) (map[int]string, error)
}

// Config bundles the planner's tunables.
type Config struct {
	Allocator AllocatorConfig
	Selector  SelectorConfig
	Scheduler SchedulerConfig

	ProviderTimeout  time.Duration
	NarrationTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.ProviderTimeout <= 0 {
		c.ProviderTimeout = 30 * time.Second
	}
	if c.NarrationTimeout <= 0 {
		c.NarrationTimeout = 30 * time.Second
	}
	return c
}

// Planner runs the full pipeline: allocate, fetch, select, schedule,
// assemble, narrate.
type Planner struct {
	fetcher  Fetcher
	narrator Narrator
	config   Config
	logger   *zap.Logger
}

func NewPlanner(fetcher Fetcher, narrator Narrator, config Config, logger *zap.Logger) *Planner {
	return &Planner{
		fetcher:  fetcher,
		narrator: narrator,
		config:   config.withDefaults(),
		logger:   logger,
	}
}

type fetchResult struct {
	category providers.Category
	options  []providers.CandidateOption
	err      error
}

// Plan produces a validated Itinerary or a typed failure. Each run owns its
// intermediate state; cancelling ctx cancels outstanding provider and
// narration calls.
func (p *Planner) Plan(ctx context.Context, request TripRequest) (*Itinerary, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	allocation, err := Allocate(request, p.config.Allocator)
	if err != nil {
		return nil, err
	}

	candidates, warnings := p.fetchAll(ctx, request)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selected := make(map[providers.Category][]providers.CandidateOption)
	for _, category := range providers.AllCategories {
		if request.IsExcluded(category) {
			continue
		}
		picked, err := Select(category, candidates[category], allocation[category], request, p.config.Selector)
		if errors.Is(err, ErrNoCandidatesFound) {
			if category == providers.CategoryFlight || category == providers.CategoryLodging {
				return nil, newFailure(FailureInsufficientCoreOptions,
					"no viable %s options within allocation", category)
			}
			warnings = append(warnings, fmt.Sprintf("%s options limited, category left unplanned", category))
			continue
		}
		if err != nil {
			return nil, err
		}
		selected[category] = picked
	}

	var flight, lodging *providers.CandidateOption
	if options := selected[providers.CategoryFlight]; len(options) > 0 {
		flight = &options[0]
	}
	if options := selected[providers.CategoryLodging]; len(options) > 0 {
		lodging = &options[0]
	}

	days, err := Schedule(request, allocation, selected[providers.CategoryActivity],
		selected[providers.CategoryMeal], p.config.Scheduler)
	if err != nil {
		return nil, err
	}
	for _, day := range days {
		if day.Unplanned {
			warnings = append(warnings, fmt.Sprintf("day %d could not be planned", day.Day+1))
		}
	}

	itinerary, err := Assemble(request, allocation, flight, lodging, days, warnings)
	if err != nil {
		return nil, err
	}

	p.attachNarratives(ctx, itinerary)
	return itinerary, nil
}

// fetchAll pulls every non-excluded category concurrently. Provider outages
// degrade to warnings; the categories simply contribute no candidates.
func (p *Planner) fetchAll(ctx context.Context, request TripRequest) (map[providers.Category][]providers.CandidateOption, []string) {
	cons := providers.Constraints{
		Origin:      request.Origin,
		Destination: request.Destination,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Travelers:   request.Travelers,
		Tags:        request.Interests,
	}

	results := make(chan fetchResult)
	var wg sync.WaitGroup
	for _, category := range providers.AllCategories {
		if request.IsExcluded(category) {
			continue
		}
		wg.Add(1)
		go func(category providers.Category) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, p.config.ProviderTimeout)
			defer cancel()
			options, err := p.fetcher.Fetch(fetchCtx, category, cons)
			results <- fetchResult{category: category, options: options, err: err}
		}(category)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	candidates := make(map[providers.Category][]providers.CandidateOption)
	var warnings []string
	for result := range results {
		if result.err != nil {
			p.logger.Warn("provider fetch degraded",
				zap.String("category", string(result.category)),
				zap.Error(result.err))
			warnings = append(warnings, fmt.Sprintf("%s provider unavailable", result.category))
		}
		candidates[result.category] = result.options
	}
	return candidates, warnings
}

// attachNarratives fills each day's Narrative, falling back to a templated
// summary when the narrator is absent, slow, or failing.
func (p *Planner) attachNarratives(ctx context.Context, itinerary *Itinerary) {
	if p.narrator != nil {
		narrateCtx, cancel := context.WithTimeout(ctx, p.config.NarrationTimeout)
		defer cancel()

		narratives, err := p.narrator.Narrate(narrateCtx, itinerary)
		if err == nil {
			applied := true
			for i := range itinerary.Days {
				text, ok := narratives[itinerary.Days[i].Day]
				if !ok || strings.TrimSpace(text) == "" {
					applied = false
					break
				}
				itinerary.Days[i].Narrative = text
			}
			if applied {
				return
			}
		} else {
			p.logger.Warn("narration failed, using fallback", zap.Error(err))
		}
	}

	for i := range itinerary.Days {
		itinerary.Days[i].Narrative = FallbackNarrative(itinerary.Days[i])
	}
}

// FallbackNarrative builds a deterministic per-day description from the
// scheduled slots.
func FallbackNarrative(day ItineraryDay) string {
	if len(day.Slots) == 0 {
		return fmt.Sprintf("Day %d (%s): free day, no scheduled activities.",
			day.Day+1, utils.FormatDate(day.Date))
	}

	parts := make([]string, 0, len(day.Slots))
	for _, slot := range day.Slots {
		parts = append(parts, fmt.Sprintf("%s-%s %s",
			utils.FormatClock(slot.StartMin), utils.FormatClock(slot.EndMin), slot.Option.Name))
	}
	return fmt.Sprintf("Day %d (%s): %s.", day.Day+1, utils.FormatDate(day.Date),
		strings.Join(parts, "; "))
}
