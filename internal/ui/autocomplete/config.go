package autocomplete

import (
	"time"

	"autopick/internal/domain"
	"autopick/internal/eventbus"
	"autopick/internal/ui/services/search"
	"autopick/internal/ui/views"
)

// Defaults applied by New when a Config field is left zero
const (
	DefaultInputDebounce   = 300 * time.Millisecond
	DefaultSearchDebounce  = 300 * time.Millisecond
	DefaultNotificationTTL = 3 * time.Second
	DefaultMaxVisible      = 6
	DefaultWidth           = 48
	asyncPlaceholder       = "Start typing for results..."
)

// Notification texts shown after Submit
const (
	MsgSubmitted      = "Submission successful"
	MsgChooseAtLeast1 = "Please choose at least 1 option"
)

// Config is everything a host can tell the widget
type Config struct {
	Label       string
	Description string
	Options     []domain.Option
	Placeholder string
	Disabled    bool
	Loading     bool // force the async loading indicator
	Multiple    bool // display hint; see Model.Multiple
	Value       []domain.Option
	SearchMode  domain.SearchMode
	AsyncSearch search.Func

	// OnChange receives the full selection after every change. Never nil.
	OnChange func(selected []domain.Option)
	// OnInputChange receives raw query edits, debounced by InputDebounce.
	// It is called from a timer goroutine.
	OnInputChange func(text string)
	// RenderOption renders one dropdown row in local mode
	RenderOption func(opt domain.Option) string

	InputDebounce   time.Duration
	SearchDebounce  time.Duration
	NotificationTTL time.Duration
	CacheSize       int
	MaxVisible      int
	Width           int

	// Bus delivers pointer presses for outside-click detection and receives
	// selection/submit events. Optional.
	Bus    eventbus.EventBus
	Styles *views.Styles
	Keys   *KeyMap
}

func (c *Config) applyDefaults() {
	if c.SearchMode == "" {
		c.SearchMode = domain.SearchModeLocal
	}
	if c.InputDebounce == 0 {
		c.InputDebounce = DefaultInputDebounce
	}
	if c.SearchDebounce == 0 {
		c.SearchDebounce = DefaultSearchDebounce
	}
	if c.NotificationTTL == 0 {
		c.NotificationTTL = DefaultNotificationTTL
	}
	if c.MaxVisible <= 0 {
		c.MaxVisible = DefaultMaxVisible
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Placeholder == "" && c.SearchMode == domain.SearchModeAsync {
		c.Placeholder = asyncPlaceholder
	}
	if c.RenderOption == nil {
		c.RenderOption = func(opt domain.Option) string { return opt.Label }
	}
	if c.Styles == nil {
		c.Styles = views.NewStyles()
	}
	if c.Keys == nil {
		keys := DefaultKeyMap()
		c.Keys = &keys
	}
}
