package autocomplete

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"autopick/internal/domain"
	"autopick/internal/ui/logic"
	"autopick/internal/ui/services/search"
)

func (m *Model) handleAsyncKey(msg tea.KeyMsg) tea.Cmd {
	keys := m.cfg.Keys

	switch {
	case key.Matches(msg, keys.Submit):
		return m.Submit()

	case key.Matches(msg, keys.Close):
		m.menuOpen = false
		return nil

	case key.Matches(msg, keys.Up):
		if m.menuOpen {
			m.nav.Up()
		}
		return nil

	case key.Matches(msg, keys.Down):
		if m.menuOpen {
			m.nav.Down()
		} else if m.query != "" {
			m.menuOpen = true
		}
		return nil

	case key.Matches(msg, keys.Toggle):
		if !m.menuOpen || m.searching {
			return nil
		}
		opts := m.MenuOptions()
		if i := m.nav.Cursor(); i >= 0 && i < len(opts) {
			m.selectResult(opts[i])
		}
		return nil

	case key.Matches(msg, keys.RemoveLast) && m.input.Value() == "":
		m.removeLast()
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return tea.Batch(cmd, m.setAsyncQuery(after))
	}
	return cmd
}

// setAsyncQuery records a user edit and schedules a lookup once typing pauses.
// Any lookup for an older query is abandoned.
func (m *Model) setAsyncQuery(text string) tea.Cmd {
	m.query = text
	m.inputChanged.Call(text)
	m.searchSeq++
	m.cancelSearch()

	if strings.TrimSpace(text) == "" {
		m.searching = false
		m.menuOpen = false
		m.results = nil
		m.syncMenu()
		return nil
	}

	m.menuOpen = true
	m.searching = true
	id, seq := m.id, m.searchSeq

	var start tea.Cmd
	if m.cfg.SearchDebounce <= 0 {
		start = m.startSearch(text)
	} else {
		start = tea.Tick(m.cfg.SearchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{id: id, seq: seq, query: text}
		})
	}
	return tea.Batch(start, m.spinner.Tick)
}

// startSearch runs the lookup for the current sequence number
func (m *Model) startSearch(query string) tea.Cmd {
	m.cancelSearch()

	id, seq := m.id, m.searchSeq
	svc := m.searcher
	if svc == nil {
		return func() tea.Msg {
			return searchResultMsg{id: id, seq: seq, result: search.Result{Query: query, Err: search.ErrNoSearchFunc}}
		}
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelLoad = cancel
	return func() tea.Msg {
		return searchResultMsg{id: id, seq: seq, result: svc.Search(ctx, query)}
	}
}

func (m *Model) cancelSearch() {
	if m.cancelLoad != nil {
		m.cancelLoad()
		m.cancelLoad = nil
	}
}

func (m *Model) handleSearchResult(msg searchResultMsg) {
	if msg.seq != m.searchSeq {
		return
	}
	m.searching = false
	m.cancelLoad = nil

	if err := msg.result.Err; err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("Autocomplete %q: search for %q failed: %v", m.cfg.Label, msg.result.Query, err)
		}
		m.results = nil
	} else {
		m.results = msg.result.Options
	}
	m.nav.Reset()
	m.syncMenu()
}

// selectResult adds opt to the selection, clears the query and closes the menu
func (m *Model) selectResult(opt domain.Option) {
	m.SetSelection(append(m.selection.Items(), opt))

	m.input.SetValue("")
	m.query = ""
	m.searchSeq++
	m.cancelSearch()
	m.searching = false
	m.menuOpen = false
}

func (m *Model) removeLast() {
	items := m.selection.Items()
	if len(items) == 0 {
		return
	}
	m.SetSelection(items[:len(items)-1])
}

func (m *Model) syncMenu() {
	m.nav.SetItems(len(m.MenuOptions()))
}

// MenuOptions returns the async results that are not already selected
func (m *Model) MenuOptions() []domain.Option {
	return logic.Without(m.results, m.selection.Contains)
}

// Searching reports whether an async lookup is pending or in flight
func (m *Model) Searching() bool { return m.searching }
