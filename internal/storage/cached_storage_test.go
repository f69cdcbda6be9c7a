package storage

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mashley00/venue-webhook/internal/cache"
	"github.com/mashley00/venue-webhook/internal/database"
)

// fakeOperations counts calls so tests can assert cache hits skip the store
type fakeOperations struct {
	marketCalls int
	statsCalls  int
	events      []database.Event
}

func (f *fakeOperations) InsertEvents(ctx context.Context, events []database.Event) error {
	f.events = append(f.events, events...)
	return nil
}

func (f *fakeOperations) MarketEvents(ctx context.Context, filter database.EventFilter) ([]database.Event, error) {
	f.marketCalls++
	return f.events, nil
}

func (f *fakeOperations) Markets(ctx context.Context) ([]database.MarketInfo, error) {
	return []database.MarketInfo{{Topic: "TIR", City: "Tampa", State: "FL", EventCount: len(f.events)}}, nil
}

func (f *fakeOperations) Stats(ctx context.Context) (*database.EventStats, error) {
	f.statsCalls++
	return &database.EventStats{TotalEvents: len(f.events)}, nil
}

func (f *fakeOperations) Close() error { return nil }

// memCache is a minimal in-process Cache for tests
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	metrics cache.Metrics
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		m.metrics.Hits++
		return v, nil
	}
	m.metrics.Misses++
	return nil, cache.ErrCacheMiss
}

func (m *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.metrics.Sets++
	return nil
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *memCache) GetMetrics() *cache.Metrics { return &m.metrics }
func (m *memCache) Close() error               { return nil }

func marketFilter() database.EventFilter {
	topic := "TIR"
	city := "Tampa"
	state := "FL"
	return database.EventFilter{Topic: &topic, City: &city, State: &state}
}

func TestCachedMarketEvents(t *testing.T) {
	ctx := context.Background()
	inner := &fakeOperations{events: []database.Event{{Topic: "TIR", City: "Tampa", State: "FL", Venue: "Crowne Plaza"}}}
	cs := NewCachedStorage(inner, newMemCache(), nil)

	for i := 0; i < 3; i++ {
		events, err := cs.MarketEvents(ctx, marketFilter())
		if err != nil {
			t.Fatalf("MarketEvents() error: %v", err)
		}
		if len(events) != 1 || events[0].Venue != "Crowne Plaza" {
			t.Fatalf("unexpected events: %+v", events)
		}
	}

	if inner.marketCalls != 1 {
		t.Errorf("inner store hit %d times, want 1 (cache should absorb repeats)", inner.marketCalls)
	}
}

func TestInsertInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	inner := &fakeOperations{}
	cs := NewCachedStorage(inner, newMemCache(), nil)

	if _, err := cs.MarketEvents(ctx, marketFilter()); err != nil {
		t.Fatal(err)
	}
	if _, err := cs.Stats(ctx); err != nil {
		t.Fatal(err)
	}

	if err := cs.InsertEvents(ctx, []database.Event{{Topic: "TIR", City: "Tampa", State: "FL", Venue: "New Venue"}}); err != nil {
		t.Fatal(err)
	}

	events, err := cs.MarketEvents(ctx, marketFilter())
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Errorf("expected fresh read after import, got %+v", events)
	}
	if inner.marketCalls != 2 {
		t.Errorf("inner store hit %d times, want 2 (import must invalidate)", inner.marketCalls)
	}
}

func TestCacheDisabledPassesThrough(t *testing.T) {
	ctx := context.Background()
	inner := &fakeOperations{}
	cs := NewCachedStorage(inner, nil, &CacheStorageConfig{Enabled: false})

	for i := 0; i < 2; i++ {
		if _, err := cs.Stats(ctx); err != nil {
			t.Fatal(err)
		}
	}

	if inner.statsCalls != 2 {
		t.Errorf("inner store hit %d times, want 2 when cache disabled", inner.statsCalls)
	}
}
