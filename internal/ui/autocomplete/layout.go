package autocomplete

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"autopick/internal/domain"
)

type rowKind int

const (
	rowText rowKind = iota
	rowInput
	rowOption
	rowList // scroll indicators and list status, part of the input area
	rowSubmit
)

// row is one rendered line of the widget. option indexes Filtered() in local
// mode and MenuOptions() in async mode.
type row struct {
	kind   rowKind
	text   string
	option int
}

// inInputArea reports whether a press on this row counts as inside the
// input/dropdown region. Label, description, button and notification lie
// outside of it.
func (r row) inInputArea() bool {
	return r.kind == rowInput || r.kind == rowOption || r.kind == rowList
}

// View renders the widget
func (m *Model) View() string {
	rows := m.rows()
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = ansi.Truncate(r.text, m.cfg.Width, "…")
	}
	return strings.Join(lines, "\n")
}

// Height is the number of lines View currently renders
func (m *Model) Height() int {
	return len(m.rows())
}

func (m *Model) rows() []row {
	s := m.cfg.Styles
	var rows []row

	if m.cfg.Label != "" {
		rows = append(rows, row{kind: rowText, text: s.Label.Render(m.cfg.Label)})
	}

	if m.cfg.SearchMode == domain.SearchModeAsync {
		if chips := m.chips(); chips != "" {
			rows = append(rows, row{kind: rowInput, text: chips})
		}
	}

	rows = append(rows, row{kind: rowInput, text: m.inputView()})

	if m.cfg.SearchMode == domain.SearchModeAsync {
		rows = append(rows, m.asyncRows()...)
	} else if m.dropdown == Open {
		rows = append(rows, m.optionRows(m.filtered, true)...)
	}

	if m.cfg.Description != "" {
		rows = append(rows, row{kind: rowText, text: s.Description.Render(m.cfg.Description)})
	}

	button := s.Button
	if m.cfg.Disabled {
		button = s.Dim
	}
	rows = append(rows, row{kind: rowSubmit, text: button.Render(" Submit ")})

	if m.notification != "" {
		style := s.StatusError
		if m.notification == MsgSubmitted {
			style = s.StatusSuccess
		}
		rows = append(rows, row{kind: rowText, text: style.Render(m.notification)})
	}
	return rows
}

func (m *Model) inputView() string {
	s := m.cfg.Styles
	switch {
	case m.cfg.Disabled:
		return s.Dim.Render(m.input.View())
	case m.focused:
		return s.InputFocused.Render(m.input.View())
	default:
		return s.Input.Render(m.input.View())
	}
}

func (m *Model) chips() string {
	labels := m.selection.Labels()
	if len(labels) == 0 {
		return ""
	}
	chips := make([]string, len(labels))
	for i, l := range labels {
		chips[i] = m.cfg.Styles.Chip.Render(" " + l + " ×")
	}
	return strings.Join(chips, " ")
}

func (m *Model) asyncRows() []row {
	s := m.cfg.Styles
	var rows []row
	if m.loading() {
		rows = append(rows, row{kind: rowList, text: s.StatusLoading.Render(m.spinner.View() + " Loading...")})
	}
	if !m.menuOpen || m.searching {
		return rows
	}
	opts := m.MenuOptions()
	if len(opts) == 0 {
		return append(rows, row{kind: rowList, text: s.Dim.Render("  No options")})
	}
	return append(rows, m.optionRows(opts, false)...)
}

// optionRows renders the navigator's window over opts. Local rows carry a
// checkbox; async rows only list unselected results.
func (m *Model) optionRows(opts []domain.Option, checkbox bool) []row {
	s := m.cfg.Styles
	start, end, more := m.nav.Window()
	if end > len(opts) {
		end = len(opts)
	}

	var rows []row
	if more.Above {
		rows = append(rows, row{kind: rowList, text: s.Scroll.Render("  ↑ more")})
	}
	cursor := m.nav.Cursor()
	for i := start; i < end; i++ {
		opt := opts[i]
		text := m.cfg.RenderOption(opt)
		if checkbox {
			box := "[ ] "
			if m.selection.Contains(opt.Value) {
				box = s.Checked.Render("[x]") + " "
			}
			text = box + text
		}

		line := "  " + s.Option.Render(text)
		if i == cursor && m.focused {
			line = s.OptionCursor.Render("› ") + s.Option.Render(text)
		}
		rows = append(rows, row{kind: rowOption, text: line, option: i})
	}
	if more.Below {
		rows = append(rows, row{kind: rowList, text: s.Scroll.Render("  ↓ more")})
	}
	return rows
}

// HandlePointer reacts to a pointer press at absolute screen coordinates.
// Presses outside the input area close the dropdown; a press on an option
// toggles (local) or selects (async) it; a press on the button submits.
func (m *Model) HandlePointer(x, y int) tea.Cmd {
	if m.closed {
		return nil
	}

	rows := m.rows()
	rx, ry := x-m.originX, y-m.originY
	var hit *row
	if rx >= 0 && rx < m.cfg.Width && ry >= 0 && ry < len(rows) {
		hit = &rows[ry]
	}

	if hit == nil || !hit.inInputArea() {
		m.dropdown = Idle
		m.menuOpen = false
	}
	if hit == nil || m.cfg.Disabled {
		return nil
	}

	switch hit.kind {
	case rowSubmit:
		return m.Submit()
	case rowInput:
		// a press on the input of a local widget whose list was closed by an
		// outside press reopens it, as focusing would
		if m.cfg.SearchMode == domain.SearchModeLocal {
			m.dropdown = Open
		}
		return m.requestFocus()
	case rowList:
		return m.requestFocus()
	case rowOption:
		if m.cfg.SearchMode == domain.SearchModeAsync {
			opts := m.MenuOptions()
			if hit.option < len(opts) {
				m.selectResult(opts[hit.option])
			}
		} else if hit.option < len(m.filtered) {
			m.nav.Select(hit.option)
			m.Toggle(m.filtered[hit.option])
		}
		return m.requestFocus()
	}
	return nil
}

func (m *Model) requestFocus() tea.Cmd {
	if m.focused {
		return nil
	}
	id := m.id
	return func() tea.Msg { return FocusRequestMsg{ID: id} }
}
