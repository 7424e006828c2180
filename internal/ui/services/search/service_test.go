package search

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autopick/internal/config"
	"autopick/internal/domain"
	"autopick/internal/eventbus"
)

func TestSimulatedResolvesAfterDelay(t *testing.T) {
	fn := Simulated(config.DefaultConfig().Options, 30*time.Millisecond)

	start := time.Now()
	got, err := fn(context.Background(), "yen")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, []domain.Option{{Value: "jpy", Label: "JPY - Japanese Yen"}}, got)
}

func TestSimulatedStopsOnCancel(t *testing.T) {
	fn := Simulated(config.DefaultConfig().Options, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fn(ctx, "eu")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchCachesPerQuery(t *testing.T) {
	var calls atomic.Int32
	fn := func(ctx context.Context, q string) ([]domain.Option, error) {
		calls.Add(1)
		return []domain.Option{{Value: q, Label: q}}, nil
	}
	svc, err := NewService(fn, 2, nil)
	require.NoError(t, err)

	first := svc.Search(context.Background(), "eu")
	require.NoError(t, first.Err)
	assert.False(t, first.Cached)

	second := svc.Search(context.Background(), "eu")
	assert.True(t, second.Cached)
	assert.Equal(t, first.Options, second.Options)
	assert.Equal(t, int32(1), calls.Load())

	svc.Search(context.Background(), "a")
	svc.Search(context.Background(), "b") // evicts "eu"
	assert.False(t, svc.Cached("eu"))

	svc.Purge()
	assert.False(t, svc.Cached("b"))
}

func TestSearchDoesNotCacheFailures(t *testing.T) {
	boom := errors.New("boom")
	fn := func(ctx context.Context, q string) ([]domain.Option, error) { return nil, boom }
	svc, err := NewService(fn, 0, nil)
	require.NoError(t, err)

	res := svc.Search(context.Background(), "eu")
	assert.ErrorIs(t, res.Err, boom)
	assert.False(t, svc.Cached("eu"))
}

func TestSearchCancelledIsNotCached(t *testing.T) {
	svc, err := NewService(Simulated(config.DefaultConfig().Options, time.Hour), 0, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	res := svc.Search(ctx, "eu")
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.False(t, svc.Cached("eu"))
}

func TestSearchWithoutFunc(t *testing.T) {
	svc, err := NewService(nil, 0, nil)
	require.NoError(t, err)

	res := svc.Search(context.Background(), "eu")
	assert.ErrorIs(t, res.Err, ErrNoSearchFunc)
}

func TestSearchNilResultBecomesEmpty(t *testing.T) {
	fn := func(ctx context.Context, q string) ([]domain.Option, error) { return nil, nil }
	svc, err := NewService(fn, 0, nil)
	require.NoError(t, err)

	res := svc.Search(context.Background(), "zzz")
	require.NoError(t, res.Err)
	assert.NotNil(t, res.Options)
	assert.Empty(t, res.Options)
}

func TestSearchPublishesEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	completed := make(chan eventbus.SearchCompletedEvent, 2)
	bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
		completed <- e.(eventbus.SearchCompletedEvent)
	})

	svc, err := NewService(Simulated(config.DefaultConfig().Options, 0), 0, bus)
	require.NoError(t, err)
	svc.Search(context.Background(), "dollar")
	svc.Search(context.Background(), "dollar")

	var got []eventbus.SearchCompletedEvent
	for i := 0; i < 2; i++ {
		select {
		case ev := <-completed:
			got = append(got, ev)
		case <-time.After(time.Second):
			t.Fatal("missing search event")
		}
	}
	for _, ev := range got {
		assert.Equal(t, 4, ev.Count)
	}
	// handlers run concurrently, so only the set of flags is stable
	assert.ElementsMatch(t, []bool{false, true}, []bool{got[0].Cached, got[1].Cached})
}
