package search

import (
	"context"
	"errors"

	"autopick/internal/domain"
)

// Func looks up the options matching query. Implementations should return
// promptly with ctx.Err() once ctx is cancelled.
type Func func(ctx context.Context, query string) ([]domain.Option, error)

// ErrNoSearchFunc is returned when async search is used without a Func
var ErrNoSearchFunc = errors.New("search: no async search function configured")

// Result is the outcome of one lookup
type Result struct {
	Query   string
	Options []domain.Option
	Cached  bool
	Err     error
}
