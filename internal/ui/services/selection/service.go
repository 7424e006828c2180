package selection

import (
	"strings"

	"autopick/internal/domain"
	"autopick/internal/eventbus"
)

// DisplaySeparator joins selected labels into the widget's display text
const DisplaySeparator = ", "

// Service keeps an ordered set of selected options, unique by value
type Service struct {
	state  *State
	bus    eventbus.EventBus
	source string
}

// NewService creates a selection service. bus may be nil; source names the
// owning widget in published events.
func NewService(bus eventbus.EventBus, source string) *Service {
	return &Service{
		state:  newState(),
		bus:    bus,
		source: source,
	}
}

// Toggle removes opt if it is selected, otherwise appends it.
// It reports whether opt was added.
func (s *Service) Toggle(opt domain.Option) bool {
	if idx, ok := s.state.byValue[opt.Value]; ok {
		s.state.Items = append(s.state.Items[:idx:idx], s.state.Items[idx+1:]...)
		s.state.reindex()
		s.publish(nil, []string{opt.Value})
		return false
	}

	s.state.Items = append(s.state.Items, opt)
	s.state.byValue[opt.Value] = len(s.state.Items) - 1
	s.publish([]string{opt.Value}, nil)
	return true
}

// Replace swaps the whole selection for opts. Later duplicates are dropped.
func (s *Service) Replace(opts []domain.Option) {
	old := s.state.byValue

	next := newState()
	for _, opt := range opts {
		if _, dup := next.byValue[opt.Value]; dup {
			continue
		}
		next.byValue[opt.Value] = len(next.Items)
		next.Items = append(next.Items, opt)
	}

	var added, removed []string
	for _, opt := range next.Items {
		if _, ok := old[opt.Value]; !ok {
			added = append(added, opt.Value)
		}
	}
	for _, opt := range s.state.Items {
		if _, ok := next.byValue[opt.Value]; !ok {
			removed = append(removed, opt.Value)
		}
	}

	s.state = next
	s.publish(added, removed)
}

// Contains reports whether an option with value is selected
func (s *Service) Contains(value string) bool {
	_, ok := s.state.byValue[value]
	return ok
}

// Items returns a copy of the selection in selection order. Never nil.
func (s *Service) Items() []domain.Option {
	out := make([]domain.Option, len(s.state.Items))
	copy(out, s.state.Items)
	return out
}

// Labels returns the selected labels in selection order
func (s *Service) Labels() []string {
	return domain.Labels(s.state.Items)
}

// DisplayText is the selected labels joined for the input box
func (s *Service) DisplayText() string {
	return strings.Join(s.Labels(), DisplaySeparator)
}

// Len returns the number of selected options
func (s *Service) Len() int {
	return len(s.state.Items)
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return len(s.state.Items) > 0
}

func (s *Service) publish(added, removed []string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventbus.SelectionChangedEvent{
		Source:   s.source,
		Selected: s.Items(),
		Added:    added,
		Removed:  removed,
	})
}
