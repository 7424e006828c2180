package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventInputChanged     EventType = "InputChanged"
	EventSubmitted        EventType = "Submitted"
	EventPointerPressed   EventType = "PointerPressed"
	EventSearchStarted    EventType = "SearchStarted"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted after every selection mutation
type SelectionChangedEvent struct {
	Source   string // widget label
	Selected []Option
	Added    []string // values
	Removed  []string // values
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// InputChangedEvent carries a debounced raw query edit
type InputChangedEvent struct {
	Source string
	Text   string
}

func (e InputChangedEvent) Type() EventType { return EventInputChanged }

// SubmittedEvent is emitted when a widget's submit button is pressed
type SubmittedEvent struct {
	Source  string
	Count   int
	Message string
}

func (e SubmittedEvent) Type() EventType { return EventSubmitted }

// PointerPressedEvent is a mouse press anywhere on the screen
type PointerPressedEvent struct {
	X int
	Y int
}

func (e PointerPressedEvent) Type() EventType { return EventPointerPressed }

// SearchStartedEvent is emitted when an async lookup begins
type SearchStartedEvent struct {
	Query string
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when an async lookup finishes
type SearchCompletedEvent struct {
	Query  string
	Count  int
	Cached bool
	Err    error
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
