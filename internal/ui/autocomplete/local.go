package autocomplete

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"autopick/internal/domain"
	"autopick/internal/ui/logic"
)

func (m *Model) handleLocalKey(msg tea.KeyMsg) tea.Cmd {
	keys := m.cfg.Keys

	switch {
	case key.Matches(msg, keys.Submit):
		return m.Submit()

	case key.Matches(msg, keys.Close):
		m.dropdown = Idle
		return nil

	case key.Matches(msg, keys.Up):
		if m.dropdown == Idle {
			m.dropdown = Open
			return nil
		}
		m.nav.Up()
		return nil

	case key.Matches(msg, keys.Down):
		if m.dropdown == Idle {
			m.dropdown = Open
			return nil
		}
		m.nav.Down()
		return nil

	case key.Matches(msg, keys.Toggle):
		if m.dropdown == Idle {
			m.dropdown = Open
			return nil
		}
		if i := m.nav.Cursor(); i >= 0 && i < len(m.filtered) {
			m.Toggle(m.filtered[i])
		}
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.setLocalQuery(after)
	}
	return cmd
}

// setLocalQuery refilters the catalog for a user edit and opens the dropdown
func (m *Model) setLocalQuery(text string) {
	m.query = text
	m.filtered = logic.Filter(text, m.cfg.Options)
	m.nav.SetItems(len(m.filtered))
	m.nav.Reset()
	m.dropdown = Open
	m.inputChanged.Call(text)
}

// SetQuery behaves as if the user had replaced the input text with text
func (m *Model) SetQuery(text string) tea.Cmd {
	if m.closed || m.cfg.Disabled {
		return nil
	}
	m.input.SetValue(text)
	m.input.CursorEnd()
	if m.cfg.SearchMode == domain.SearchModeAsync {
		return m.setAsyncQuery(text)
	}
	m.setLocalQuery(text)
	return nil
}
