package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"autopick/internal/domain"
	"autopick/internal/eventbus"
	"autopick/internal/ui/logic"
)

// DefaultCacheSize bounds the number of cached queries
const DefaultCacheSize = 64

// Service runs async lookups and remembers their results per query
type Service struct {
	fn    Func
	cache *lru.Cache[string, []domain.Option]
	bus   eventbus.EventBus
}

// NewService creates a search service. bus may be nil; a cacheSize of zero
// selects DefaultCacheSize.
func NewService(fn Func, cacheSize int, bus eventbus.EventBus) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []domain.Option](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create search cache: %w", err)
	}
	return &Service{fn: fn, cache: cache, bus: bus}, nil
}

// Search returns the options for query, from the cache when it has them
func (s *Service) Search(ctx context.Context, query string) Result {
	if cached, ok := s.cache.Get(query); ok {
		s.publish(eventbus.SearchCompletedEvent{Query: query, Count: len(cached), Cached: true})
		return Result{Query: query, Options: clone(cached), Cached: true}
	}

	if s.fn == nil {
		return Result{Query: query, Err: ErrNoSearchFunc}
	}

	s.publish(eventbus.SearchStartedEvent{Query: query})
	opts, err := s.fn(ctx, query)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("Search for %q failed: %v", query, err)
		}
		s.publish(eventbus.SearchCompletedEvent{Query: query, Err: err})
		return Result{Query: query, Err: err}
	}

	if opts == nil {
		opts = []domain.Option{}
	}
	s.cache.Add(query, clone(opts))
	s.publish(eventbus.SearchCompletedEvent{Query: query, Count: len(opts)})
	return Result{Query: query, Options: opts}
}

// Cached reports whether query has a cached result
func (s *Service) Cached(query string) bool {
	return s.cache.Contains(query)
}

// Purge drops all cached results
func (s *Service) Purge() {
	s.cache.Purge()
}

func (s *Service) publish(e eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

// Simulated returns a Func that filters options after a fixed delay, standing
// in for a remote lookup. It never fails unless ctx is cancelled first.
func Simulated(options []domain.Option, delay time.Duration) Func {
	catalog := clone(options)
	return func(ctx context.Context, query string) ([]domain.Option, error) {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return logic.Filter(query, catalog), nil
		}
	}
}

func clone(opts []domain.Option) []domain.Option {
	out := make([]domain.Option, len(opts))
	copy(out, opts)
	return out
}
