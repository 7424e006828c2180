package autocomplete

import (
	"autopick/internal/domain"
	"autopick/internal/ui/services/search"
)

// Messages are tagged with the widget id so several widgets can share one
// program; a widget ignores messages addressed to another instance.

// FocusRequestMsg asks the host to move keyboard focus to widget ID
type FocusRequestMsg struct {
	ID int
}

// clearNotificationMsg clears the submit notification if seq is still current
type clearNotificationMsg struct {
	id  int
	seq int
}

// searchDebounceMsg starts an async lookup once typing has paused
type searchDebounceMsg struct {
	id    int
	seq   int
	query string
}

// searchResultMsg carries a finished async lookup
type searchResultMsg struct {
	id     int
	seq    int
	result search.Result
}

// pointerMsg is a pointer press delivered through the event bus
type pointerMsg struct {
	id    int
	event domain.PointerPressedEvent
}
