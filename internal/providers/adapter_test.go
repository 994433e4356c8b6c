package providers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProvider struct {
	category Category
	options  []CandidateOption
	err      error

	calls   atomic.Int32
	release chan struct{} // when set, Fetch blocks until closed
}

func (p *stubProvider) Category() Category { return p.category }

func (p *stubProvider) Fetch(ctx context.Context, _ Constraints) ([]CandidateOption, error) {
	p.calls.Add(1)
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.options, nil
}

func testConstraints() Constraints {
	return Constraints{
		Origin:      "JFK",
		Destination: "CDG",
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
		Travelers:   2,
	}
}

func testOption(id string) CandidateOption {
	return CandidateOption{
		Category:   CategoryFlight,
		ProviderID: id,
		Name:       "Option " + id,
		PriceMinor: 10_000,
		Currency:   "USD",
	}
}

func newTestAdapter(provider Provider) *Adapter {
	return NewAdapter([]Provider{provider}, NewInMemoryCache(), AdapterConfig{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		SearchTTL:    time.Minute,
		CatalogTTL:   time.Minute,
	}, zap.NewNop())
}

func TestAdapterCachesSuccessfulFetch(t *testing.T) {
	provider := &stubProvider{category: CategoryFlight, options: []CandidateOption{testOption("a")}}
	adapter := newTestAdapter(provider)

	first, err := adapter.Fetch(context.Background(), CategoryFlight, testConstraints())
	require.NoError(t, err)
	second, err := adapter.Fetch(context.Background(), CategoryFlight, testConstraints())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), provider.calls.Load(), "second fetch must be served from cache")
}

func TestAdapterDeduplicatesOptions(t *testing.T) {
	provider := &stubProvider{
		category: CategoryFlight,
		options:  []CandidateOption{testOption("a"), testOption("a"), testOption("b")},
	}
	adapter := newTestAdapter(provider)

	options, err := adapter.Fetch(context.Background(), CategoryFlight, testConstraints())
	require.NoError(t, err)

	assert.Len(t, options, 2)
}

func TestAdapterRetriesThenSignalsUnavailable(t *testing.T) {
	provider := &stubProvider{category: CategoryFlight, err: errors.New("upstream down")}
	adapter := newTestAdapter(provider)

	options, err := adapter.Fetch(context.Background(), CategoryFlight, testConstraints())

	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.NotNil(t, options)
	assert.Empty(t, options)
	assert.Equal(t, int32(2), provider.calls.Load())
}

func TestAdapterUnknownCategory(t *testing.T) {
	adapter := newTestAdapter(&stubProvider{category: CategoryFlight})

	_, err := adapter.Fetch(context.Background(), CategoryLodging, testConstraints())
	assert.Error(t, err)
}

func TestAdapterSingleFlightPerKey(t *testing.T) {
	provider := &stubProvider{
		category: CategoryFlight,
		options:  []CandidateOption{testOption("a")},
		release:  make(chan struct{}),
	}
	adapter := newTestAdapter(provider)

	const waiters = 5
	var wg sync.WaitGroup
	results := make([][]CandidateOption, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			options, err := adapter.Fetch(context.Background(), CategoryFlight, testConstraints())
			assert.NoError(t, err)
			results[i] = options
		}(i)
	}

	// Let every goroutine reach the adapter before the fetch completes.
	time.Sleep(50 * time.Millisecond)
	close(provider.release)
	wg.Wait()

	assert.Equal(t, int32(1), provider.calls.Load(), "concurrent misses for one key must share one fetch")
	for _, options := range results {
		assert.Len(t, options, 1)
	}
}

func TestAdapterWaiterHonorsCancellation(t *testing.T) {
	provider := &stubProvider{
		category: CategoryFlight,
		options:  []CandidateOption{testOption("a")},
		release:  make(chan struct{}),
	}
	adapter := newTestAdapter(provider)

	go func() {
		_, _ = adapter.Fetch(context.Background(), CategoryFlight, testConstraints())
	}()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := adapter.Fetch(ctx, CategoryFlight, testConstraints())
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled waiter did not return")
	}

	close(provider.release)
}
