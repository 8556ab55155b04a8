package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oilnote/submenu-popup/internal/logging"
	"github.com/oilnote/submenu-popup/internal/logging/events"
	"github.com/oilnote/submenu-popup/internal/popup"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		m.closeQuietly()
		return tea.Quit
	}
	if !m.open {
		return tea.Quit
	}
	switch keyMsg.Type {
	case tea.KeyTab:
		m.cycleShortcut(1)
		return nil
	case tea.KeyShiftTab:
		m.cycleShortcut(-1)
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursor(m.level.MoveCursorUp)
	case "down":
		m.moveCursor(m.level.MoveCursorDown)
	case "pgup":
		m.moveCursor(func() bool { return m.level.MoveCursorPageUp(m.maxVisibleItems()) })
	case "pgdown":
		m.moveCursor(func() bool { return m.level.MoveCursorPageDown(m.maxVisibleItems()) })
	case "home":
		m.moveCursor(m.level.MoveCursorHome)
	case "end":
		m.moveCursor(m.level.MoveCursorEnd)
	}
	return nil
}

// handleEscapeKey clears an active filter first, then leaves the nested view,
// and finally dismisses the popup.
func (m *Model) handleEscapeKey() tea.Cmd {
	if m.level.Filter != "" {
		m.clearFilter()
		return nil
	}
	m.errMsg = ""
	m.forceClearInfo()
	if m.ctrl.State() == popup.StateNested {
		if err := m.ctrl.ReturnToTopLevel(); err != nil {
			m.errMsg = err.Error()
		}
		return nil
	}
	m.closeQuietly()
	return tea.Quit
}

func (m *Model) handleEnterKey() tea.Cmd {
	row, ok := m.level.Current()
	if !ok {
		return nil
	}
	events.UI.Select(m.ctrl.GroupKey(), row.Index, row.Text)
	out, err := m.ctrl.Select(row.Index)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.errMsg = ""
	switch out.Action {
	case popup.ActionNavigate:
		m.result = out.Target
		return tea.Quit
	case popup.ActionInert:
		m.setInfo(fmt.Sprintf("%s has no further submenu", row.Text))
	default:
		m.forceClearInfo()
	}
	return nil
}

// cycleShortcut opens the menu-bar shortcut delta steps away from the current
// one, wrapping at both ends.
func (m *Model) cycleShortcut(delta int) {
	n := len(m.shortcuts)
	if n < 2 {
		return
	}
	next := ((m.shortcut+delta)%n + n) % n
	sc := m.shortcuts[next]
	if err := m.ctrl.OpenShortcut(sc.Name); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.shortcut = next
	m.errMsg = ""
	m.forceClearInfo()
	events.UI.Shortcut(sc.Name)
}

func (m *Model) moveCursor(move func() bool) {
	if move() {
		events.UI.Cursor(m.ctrl.GroupKey(), m.level.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	if m.level == nil {
		return
	}
	m.level.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) closeQuietly() {
	if err := m.ctrl.ClosePopup(); err != nil && !errors.Is(err, popup.ErrClosed) {
		logging.Error(err)
	}
}
