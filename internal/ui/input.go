package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/oilnote/submenu-popup/internal/logging/events"
)

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.level.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput applies filter editing keys and reports whether the key was
// consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+u":
		if m.level.Filter == "" {
			return false
		}
		m.clearFilter()
		return true
	case "ctrl+w":
		return m.editFilter(m.level.DeleteFilterWordBackward)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.editFilter(m.level.DeleteFilterRuneBackward)
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		text := string(msg.Runes)
		return m.editFilter(func() bool { return m.level.InsertFilterText(text) })
	case tea.KeySpace:
		if m.level.Filter == "" {
			return false
		}
		return m.editFilter(func() bool { return m.level.InsertFilterText(" ") })
	}
	return false
}

func (m *Model) editFilter(edit func() bool) bool {
	before := m.level.FilterCursorPos()
	if !edit() {
		return false
	}
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Query(m.ctrl.GroupKey(), m.level.Filter, len(m.level.Items))
	m.syncViewport()
	return true
}

func (m *Model) clearFilter() {
	m.editFilter(func() bool {
		m.level.SetFilter("", 0)
		return true
	})
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	}
	prompt := render(styles.FilterPrompt, "» ")
	text := m.level.Filter
	if text == "" {
		runes := []rune("(type to filter)")
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		return prompt + m.renderFilterCursor(string(runes[0])) + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := m.level.FilterCursorPos()
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + render(styles.Filter, string(runes[:pos])) + m.renderFilterCursor(caret) + after
}

func (m *Model) renderFilterCursor(char string) string {
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink || styles.Cursor == nil {
		return base.Render(char)
	}
	return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
}
