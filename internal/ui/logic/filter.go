package logic

import (
	"strings"

	"autopick/internal/domain"
)

// Filter returns the options whose label contains query, ignoring case.
// Catalog order is kept; an empty query matches everything.
func Filter(query string, options []domain.Option) []domain.Option {
	matches := make([]domain.Option, 0, len(options))
	if query == "" {
		return append(matches, options...)
	}

	q := strings.ToLower(query)
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Label), q) {
			matches = append(matches, opt)
		}
	}
	return matches
}

// Without drops the options whose value is in exclude
func Without(options []domain.Option, exclude func(value string) bool) []domain.Option {
	kept := make([]domain.Option, 0, len(options))
	for _, opt := range options {
		if !exclude(opt.Value) {
			kept = append(kept, opt)
		}
	}
	return kept
}
