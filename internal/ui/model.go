package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"autopick/internal/config"
	"autopick/internal/domain"
	"autopick/internal/eventbus"
	"autopick/internal/ui/autocomplete"
	"autopick/internal/ui/services/search"
	"autopick/internal/ui/views"
)

const (
	pageTitle = "Autocomplete Component Example"
	// header lines above the widget row: title and a blank line
	headerHeight = 2
	leftMargin   = 1
	columnGap    = 2
)

// keyMap holds the page bindings plus the widget bindings shown in help
type keyMap struct {
	Widget autocomplete.KeyMap
	Next   key.Binding
	Prev   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Widget: autocomplete.DefaultKeyMap(),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next widget"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous widget"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return append(k.Widget.ShortHelp(), k.Next, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return append(k.Widget.FullHelp(), []key.Binding{k.Next, k.Prev, k.Help, k.Quit})
}

// Model is the demo page hosting the autocomplete widgets side by side
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	styles *views.Styles

	widgets []*autocomplete.Model
	focus   int

	width  int
	height int
	help   help.Model
	keys   keyMap

	// last selection reported by any widget
	selected []domain.Option
	status   string

	inPagerMode bool
	program     *tea.Program
	helpOps     *HelpOps
}

// NewModel builds the page and one widget per configured entry
func NewModel(bus eventbus.EventBus, cfg *config.Config) *Model {
	m := &Model{
		bus:      bus,
		config:   cfg,
		styles:   views.NewStyles(),
		help:     help.New(),
		keys:     defaultKeyMap(),
		selected: []domain.Option{},
	}

	asyncSearch := search.Simulated(cfg.Options, cfg.Timing.SearchDelay.Std())
	for _, wc := range cfg.Widgets {
		mode, err := domain.ParseSearchMode(wc.SearchMode)
		if err != nil {
			log.Printf("Widget %q: %v, falling back to local search", wc.Label, err)
			mode = domain.SearchModeLocal
		}

		wcfg := autocomplete.Config{
			Label:           wc.Label,
			Description:     wc.Description,
			Options:         cfg.Options,
			Placeholder:     wc.Placeholder,
			Disabled:        wc.Disabled,
			Loading:         wc.Loading,
			Multiple:        wc.Multiple,
			Value:           cfg.InitialOptions(wc),
			SearchMode:      mode,
			OnChange:        m.handleChange,
			OnInputChange:   m.inputLogger(wc.Label),
			InputDebounce:   cfg.Timing.InputDebounce.Std(),
			SearchDebounce:  cfg.Timing.SearchDebounce.Std(),
			NotificationTTL: cfg.Timing.NotificationTTL.Std(),
			CacheSize:       cfg.Timing.SearchCacheSize,
			Bus:             bus,
			Styles:          m.styles,
			Keys:            &m.keys.Widget,
		}
		if mode == domain.SearchModeAsync {
			wcfg.AsyncSearch = asyncSearch
		}
		m.widgets = append(m.widgets, autocomplete.New(wcfg))
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// handleChange is the OnChange handler shared by every widget
func (m *Model) handleChange(selected []domain.Option) {
	if selected == nil {
		m.selected = []domain.Option{}
		return
	}
	m.selected = selected
}

// inputLogger returns the OnInputChange handler for one widget. It runs on
// the debouncer's timer goroutine, so it only logs and publishes.
func (m *Model) inputLogger(source string) func(string) {
	return func(text string) {
		log.Printf("Input changed: %s", text)
		if m.bus != nil {
			m.bus.Publish(eventbus.InputChangedEvent{Source: source, Text: text})
		}
	}
}

// Init mounts the widgets and focuses the first one
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.widgets)+1)
	for _, w := range m.widgets {
		cmds = append(cmds, w.Init())
	}
	cmds = append(cmds, m.setFocus(0))
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.bus != nil {
			m.bus.Publish(eventbus.PointerPressedEvent{X: msg.X, Y: msg.Y})
		}
		return m, nil

	case autocomplete.FocusRequestMsg:
		for i, w := range m.widgets {
			if w.ID() == msg.ID {
				return m, m.setFocus(i)
			}
		}
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	// timers, search results, pointer presses and spinner ticks carry the
	// widget id; every widget sees them and keeps only its own
	cmds := make([]tea.Cmd, 0, len(m.widgets))
	for _, w := range m.widgets {
		_, cmd := w.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus(m.focus + 1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus(m.focus - 1)

	case key.Matches(msg, m.keys.Help):
		return m, m.fetchHelpPager(NewHelpRenderer().RenderHelpContent(m.keys))
	}

	if w := m.focusedWidget(); w != nil {
		_, cmd := w.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.SearchCompletedEvent:
		switch {
		case e.Err != nil:
			m.status = ""
		case e.Cached:
			m.status = fmt.Sprintf("%q: %d result(s) from cache", e.Query, e.Count)
		default:
			m.status = fmt.Sprintf("%q: %d result(s)", e.Query, e.Count)
		}
	case eventbus.SubmittedEvent:
		m.status = fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
}

// setFocus moves keyboard focus to widget i, wrapping around
func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.widgets)
	if n == 0 {
		return nil
	}
	i = ((i % n) + n) % n

	for j, w := range m.widgets {
		if j != i {
			w.Blur()
		}
	}
	m.focus = i
	return m.widgets[i].Focus()
}

func (m *Model) focusedWidget() *autocomplete.Model {
	if m.focus < 0 || m.focus >= len(m.widgets) {
		return nil
	}
	return m.widgets[m.focus]
}

func (m *Model) columnWidth() int {
	n := len(m.widgets)
	if n == 0 {
		return 0
	}
	return (m.width - leftMargin - columnGap*(n-1)) / n
}

// layout sizes the widgets into equal columns and tells each where it is
// drawn so pointer presses can be hit-tested
func (m *Model) layout() {
	colW := m.columnWidth()
	if colW <= 0 {
		return
	}
	for i, w := range m.widgets {
		w.SetWidth(colW)
		w.SetOrigin(leftMargin+i*(colW+columnGap), headerHeight)
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	if m.program == nil || m.helpOps == nil {
		log.Printf("Help pager unavailable: program not set")
		return nil
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().MarginLeft(leftMargin).Render(m.styles.Title.Render(pageTitle)))
	b.WriteString("\n\n")

	colW := m.columnWidth()
	columns := make([]string, len(m.widgets))
	for i, w := range m.widgets {
		margin := columnGap
		if i == 0 {
			margin = leftMargin
		}
		columns[i] = lipgloss.NewStyle().Width(colW).MarginLeft(margin).Render(w.View())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")

	b.WriteString(m.styles.Footer.Render(m.footer()))
	return b.String()
}

func (m *Model) footer() string {
	selected := "none"
	if len(m.selected) > 0 {
		selected = strings.Join(domain.Labels(m.selected), ", ")
	}
	lines := []string{" Selected: " + selected}
	if m.status != "" {
		lines = append(lines, " "+m.styles.Dim.Render(m.status))
	}
	lines = append(lines, " "+m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

// Selected returns the last selection any widget reported
func (m *Model) Selected() []domain.Option {
	out := make([]domain.Option, len(m.selected))
	copy(out, m.selected)
	return out
}

// Widgets returns the hosted widgets in layout order
func (m *Model) Widgets() []*autocomplete.Model {
	return m.widgets
}

// Focused returns the index of the widget with keyboard focus
func (m *Model) Focused() int {
	return m.focus
}

// Close tears down every widget
func (m *Model) Close() {
	for _, w := range m.widgets {
		w.Close()
	}
}
