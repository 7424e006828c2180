// Package autocomplete implements a searchable multi-select input for Bubble
// Tea programs. In local mode it filters an in-memory catalog into a checkbox
// dropdown; in async mode it delegates lookups to a search function and shows
// the selection as chips.
package autocomplete

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"autopick/internal/debounce"
	"autopick/internal/domain"
	"autopick/internal/eventbus"
	"autopick/internal/ui/logic"
	"autopick/internal/ui/services/search"
	"autopick/internal/ui/services/selection"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// DropdownState is the open/closed state of the local-mode dropdown
type DropdownState int

const (
	Idle DropdownState = iota
	Open
)

func (s DropdownState) String() string {
	if s == Open {
		return "open"
	}
	return "idle"
}

// Model is the autocomplete widget
type Model struct {
	id  int
	cfg Config

	input     textinput.Model
	spinner   spinner.Model
	selection *selection.Service
	nav       *logic.Navigator
	focused   bool
	originX   int
	originY   int

	// raw query text; kept apart from the display text written into the input
	query    string
	display  string
	dropdown DropdownState
	filtered []domain.Option

	// async mode
	searcher   *search.Service
	results    []domain.Option
	menuOpen   bool
	searching  bool
	searchSeq  int
	cancelLoad context.CancelFunc

	notification string
	notifySeq    int

	inputChanged *debounce.Debouncer[string]
	ctx          context.Context
	cancel       context.CancelFunc
	pointerCh    chan domain.PointerPressedEvent
	done         chan struct{}
	unsubscribe  func()
	closeOnce    sync.Once
	closed       bool
}

// New creates a widget from cfg
func New(cfg Config) *Model {
	cfg.applyDefaults()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = cfg.Placeholder
	ti.PlaceholderStyle = cfg.Styles.Placeholder
	ti.Width = cfg.Width - len(ti.Prompt) - 1

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		id:        nextID(),
		cfg:       cfg,
		input:     ti,
		spinner:   sp,
		selection: selection.NewService(cfg.Bus, cfg.Label),
		nav:       logic.NewNavigator(cfg.MaxVisible),
		filtered:  logic.Filter("", cfg.Options),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	m.nav.SetItems(len(m.filtered))

	if cfg.OnInputChange != nil {
		m.inputChanged = debounce.New(cfg.InputDebounce, cfg.OnInputChange)
	}

	if cfg.SearchMode == domain.SearchModeAsync {
		svc, err := search.NewService(cfg.AsyncSearch, cfg.CacheSize, cfg.Bus)
		if err != nil {
			log.Printf("Autocomplete %q: %v", cfg.Label, err)
		}
		m.searcher = svc
	}

	if cfg.Bus != nil {
		m.subscribePointer(cfg.Bus)
	}

	if len(cfg.Value) > 0 {
		m.selection.Replace(cfg.Value)
	}
	return m
}

// subscribePointer registers the outside-click listener owned by this widget.
// Close removes it.
func (m *Model) subscribePointer(bus eventbus.EventBus) {
	m.pointerCh = make(chan domain.PointerPressedEvent, 8)
	ch, done := m.pointerCh, m.done
	m.unsubscribe = bus.Subscribe(eventbus.EventPointerPressed, func(e eventbus.DomainEvent) {
		ev, ok := e.(eventbus.PointerPressedEvent)
		if !ok {
			return
		}
		select {
		case ch <- ev:
		case <-done:
		default:
			log.Printf("Autocomplete: pointer queue full, dropping press at %d,%d", ev.X, ev.Y)
		}
	})
}

func (m *Model) waitForPointer() tea.Cmd {
	if m.pointerCh == nil {
		return nil
	}
	id, ch, done := m.id, m.pointerCh, m.done
	return func() tea.Msg {
		select {
		case ev := <-ch:
			return pointerMsg{id: id, event: ev}
		case <-done:
			return nil
		}
	}
}

// ID returns the widget's message tag
func (m *Model) ID() int { return m.id }

// Init applies the initial value (notifying the host) and starts listening for
// pointer presses
func (m *Model) Init() tea.Cmd {
	m.selectionChanged()

	cmds := []tea.Cmd{m.waitForPointer()}
	if m.loading() {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages. Key messages should only be sent to the focused
// widget; everything else may be broadcast.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused || m.cfg.Disabled {
			return m, nil
		}
		if m.cfg.SearchMode == domain.SearchModeAsync {
			return m, m.handleAsyncKey(msg)
		}
		return m, m.handleLocalKey(msg)

	case pointerMsg:
		if msg.id != m.id {
			return m, nil
		}
		cmd := m.HandlePointer(msg.event.X, msg.event.Y)
		return m, tea.Batch(cmd, m.waitForPointer())

	case clearNotificationMsg:
		if msg.id == m.id && msg.seq == m.notifySeq {
			m.notification = ""
		}
		return m, nil

	case searchDebounceMsg:
		if msg.id != m.id || msg.seq != m.searchSeq {
			return m, nil
		}
		return m, m.startSearch(msg.query)

	case searchResultMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.handleSearchResult(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		// cursor blink and other textinput internals
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// Focus gives the widget keyboard focus. In local mode this opens the dropdown.
func (m *Model) Focus() tea.Cmd {
	if m.closed {
		return nil
	}
	m.focused = true
	cmd := m.input.Focus()
	if m.cfg.SearchMode == domain.SearchModeLocal && !m.cfg.Disabled {
		m.dropdown = Open
	}
	return cmd
}

// Blur removes keyboard focus and closes any open list
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
	m.dropdown = Idle
	m.menuOpen = false
}

// Focused reports whether the widget has keyboard focus
func (m *Model) Focused() bool { return m.focused }

// SetOrigin records where the host drew the widget, for pointer hit-testing
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// SetWidth sets the rendered width
func (m *Model) SetWidth(w int) {
	if w <= 0 {
		return
	}
	m.cfg.Width = w
	m.input.Width = w - len(m.input.Prompt) - 1
}

// Toggle selects opt if it is not selected and deselects it otherwise.
// The dropdown state is left alone.
func (m *Model) Toggle(opt domain.Option) {
	if m.closed {
		return
	}
	m.selection.Toggle(opt)
	m.selectionChanged()
}

// SetSelection replaces the whole selection, as the async control does
func (m *Model) SetSelection(opts []domain.Option) {
	if m.closed {
		return
	}
	m.selection.Replace(opts)
	m.selectionChanged()
}

// selectionChanged runs after every selection mutation: it rewrites the
// display text and hands the full selection to the host
func (m *Model) selectionChanged() {
	m.display = m.selection.DisplayText()
	if m.cfg.SearchMode == domain.SearchModeLocal {
		m.input.SetValue(m.display)
		m.input.CursorEnd()
	} else {
		m.syncMenu()
	}
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(m.selection.Items())
	}
}

// Submit validates the selection and shows a notification that clears
// NotificationTTL after the most recent submit
func (m *Model) Submit() tea.Cmd {
	if m.closed {
		return nil
	}
	if m.selection.HasSelection() {
		m.notification = MsgSubmitted
	} else {
		m.notification = MsgChooseAtLeast1
	}
	m.notifySeq++

	if m.cfg.Bus != nil {
		m.cfg.Bus.Publish(eventbus.SubmittedEvent{
			Source:  m.cfg.Label,
			Count:   m.selection.Len(),
			Message: m.notification,
		})
	}

	id, seq := m.id, m.notifySeq
	return tea.Tick(m.cfg.NotificationTTL, func(time.Time) tea.Msg {
		return clearNotificationMsg{id: id, seq: seq}
	})
}

// Close releases the widget's timers, in-flight search and pointer
// subscription. Messages arriving afterwards are ignored.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.closed = true
		m.inputChanged.Stop()
		if m.cancelLoad != nil {
			m.cancelLoad()
		}
		m.cancel()
		if m.unsubscribe != nil {
			m.unsubscribe()
		}
		close(m.done)
	})
}

// Selected returns the current selection in selection order
func (m *Model) Selected() []domain.Option { return m.selection.Items() }

// DisplayText is the selected labels joined by ", "
func (m *Model) DisplayText() string { return m.display }

// InputValue is the text currently in the input box
func (m *Model) InputValue() string { return m.input.Value() }

// Query is the last raw text the user typed
func (m *Model) Query() string { return m.query }

// Dropdown returns the local-mode dropdown state
func (m *Model) Dropdown() DropdownState { return m.dropdown }

// DropdownOpen reports whether the local dropdown or async menu is showing
func (m *Model) DropdownOpen() bool {
	if m.cfg.SearchMode == domain.SearchModeAsync {
		return m.menuOpen
	}
	return m.dropdown == Open
}

// Filtered returns the options listed in the local dropdown
func (m *Model) Filtered() []domain.Option {
	out := make([]domain.Option, len(m.filtered))
	copy(out, m.filtered)
	return out
}

// Notification returns the submit notification, or "" when none is showing
func (m *Model) Notification() string { return m.notification }

// Multiple is true when the host asked for it or anything is selected.
// It is derived on every call; the configuration is never rewritten.
func (m *Model) Multiple() bool {
	return m.cfg.Multiple || m.selection.HasSelection()
}

// Label returns the configured label
func (m *Model) Label() string { return m.cfg.Label }

// Mode returns the configured search mode
func (m *Model) Mode() domain.SearchMode { return m.cfg.SearchMode }

// Closed reports whether Close has been called
func (m *Model) Closed() bool { return m.closed }

// only async widgets render the spinner
func (m *Model) loading() bool {
	return m.cfg.SearchMode == domain.SearchModeAsync && (m.cfg.Loading || m.searching)
}
