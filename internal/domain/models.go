package domain

import (
	"fmt"
	"strings"
)

// Option is a single catalog entry offered by the autocomplete widget.
// Two options are the same option when their values match.
type Option struct {
	Value string `toml:"value"`
	Label string `toml:"label"`
}

// SearchMode selects how the widget finds options for a query
type SearchMode string

const (
	SearchModeLocal SearchMode = "local" // filter the in-memory catalog
	SearchModeAsync SearchMode = "async" // delegate to a search function
)

// ParseSearchMode converts a config string into a SearchMode
func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case SearchModeLocal, "":
		return SearchModeLocal, nil
	case SearchModeAsync:
		return SearchModeAsync, nil
	default:
		return "", fmt.Errorf("unknown search mode %q", s)
	}
}

// Labels returns the labels of the given options in order
func Labels(options []Option) []string {
	labels := make([]string, 0, len(options))
	for _, opt := range options {
		labels = append(labels, opt.Label)
	}
	return labels
}

// Values returns the values of the given options in order
func Values(options []Option) []string {
	values := make([]string, 0, len(options))
	for _, opt := range options {
		values = append(values, opt.Value)
	}
	return values
}
