package providers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrProviderUnavailable signals that a provider stayed unreachable after
// the retry budget. Callers get it together with an empty candidate list and
// must treat the pair as "no data", never as a zero-cost option.
var ErrProviderUnavailable = errors.New("provider unavailable")

// AdapterConfig carries the adapter tunables.
type AdapterConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	SearchTTL    time.Duration // flights, lodging
	CatalogTTL   time.Duration // activities, meals
}

func (c AdapterConfig) ttl(category Category) time.Duration {
	switch category {
	case CategoryActivity, CategoryMeal:
		return c.CatalogTTL
	default:
		return c.SearchTTL
	}
}

// pendingFetch tracks one in-flight upstream call so concurrent requesters
// for the same key await it instead of duplicating the call.
type pendingFetch struct {
	done    chan struct{}
	options []CandidateOption
	err     error
}

// Adapter fronts the upstream providers with caching, dedup and retries.
// It is the only component that talks to provider-native payloads.
type Adapter struct {
	providers map[Category]Provider
	cache     Cache
	config    AdapterConfig
	logger    *zap.Logger

	mu      sync.Mutex
	pending map[string]*pendingFetch
}

func NewAdapter(registered []Provider, cache Cache, config AdapterConfig, logger *zap.Logger) *Adapter {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 3
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 500 * time.Millisecond
	}

	byCategory := make(map[Category]Provider, len(registered))
	for _, p := range registered {
		byCategory[p.Category()] = p
	}

	return &Adapter{
		providers: byCategory,
		cache:     cache,
		config:    config,
		logger:    logger,
		pending:   make(map[string]*pendingFetch),
	}
}

// Fetch returns normalized, deduplicated candidates for a category. A cache
// hit returns without touching the network. On exhausted retries it returns
// an empty list together with ErrProviderUnavailable.
func (a *Adapter) Fetch(ctx context.Context, category Category, cons Constraints) ([]CandidateOption, error) {
	provider, ok := a.providers[category]
	if !ok {
		return nil, fmt.Errorf("no provider registered for category %s", category)
	}

	key := cons.CacheKey(category)
	if options, ok := a.cache.Get(ctx, key); ok {
		a.logger.Debug("provider cache hit", zap.String("key", key))
		return options, nil
	}

	// At-most-once population: the first miss for a key performs the fetch,
	// later requesters for the same key await its outcome.
	a.mu.Lock()
	if call, exists := a.pending[key]; exists {
		a.mu.Unlock()
		select {
		case <-call.done:
			return call.options, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &pendingFetch{done: make(chan struct{})}
	a.pending[key] = call
	a.mu.Unlock()

	call.options, call.err = a.fetchWithRetry(ctx, provider, cons)
	if call.err == nil {
		a.cache.Set(ctx, key, call.options, a.config.ttl(category))
	}

	// Release the population slot even when the fetch failed or the owning
	// run was cancelled, so waiters never hang.
	a.mu.Lock()
	delete(a.pending, key)
	a.mu.Unlock()
	close(call.done)

	return call.options, call.err
}

func (a *Adapter) fetchWithRetry(ctx context.Context, provider Provider, cons Constraints) ([]CandidateOption, error) {
	delay := a.config.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= a.config.MaxAttempts; attempt++ {
		options, err := provider.Fetch(ctx, cons)
		if err == nil {
			return dedupe(options), nil
		}
		lastErr = err
		a.logger.Warn("provider fetch failed",
			zap.String("category", string(provider.Category())),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == a.config.MaxAttempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		delay *= 2
	}

	return []CandidateOption{}, fmt.Errorf("%w: %s: %v", ErrProviderUnavailable, provider.Category(), lastErr)
}

// dedupe drops options representing the same real-world offering (same
// provider id within the category), keeping the first occurrence.
func dedupe(options []CandidateOption) []CandidateOption {
	seen := make(map[string]bool, len(options))
	out := make([]CandidateOption, 0, len(options))
	for _, o := range options {
		if seen[o.Key()] {
			continue
		}
		seen[o.Key()] = true
		out = append(out, o)
	}
	return out
}
