package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/oilnote/submenu-popup/internal/popup"
)

const infoTTL = 5 * time.Second

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	if bar := m.shortcutBar(); bar != "" {
		lines = append(lines, styledLine{text: bar})
	}
	if !m.open {
		lines = append(lines, styledLine{text: "(popup closed)", style: styles.Info})
		return renderLines(applyWidth(lines, m.width))
	}
	lines = append(lines, m.headerLine())

	m.syncViewport()
	items := m.level.Items
	start := 0
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(items) > maxItems {
		start = m.level.ViewportOffset
		if start+maxItems > len(items) {
			start = len(items) - maxItems
		}
		if start < 0 {
			start = 0
		}
		items = items[start : start+maxItems]
	}
	if len(m.level.Items) == 0 {
		msg := "(no entries)"
		if m.level.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.level.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	}
	for i, row := range items {
		lines = append(lines, m.buildRowLine(row, start+i == m.level.Cursor))
	}

	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: m.footerText(), style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var status styledLine
	if m.errMsg != "" {
		status = styledLine{text: "Error: " + m.errMsg, style: styles.Error}
	}
	lines = append(lines, applyWidth([]styledLine{status}, m.width)...)
	return renderLines(lines) + "\n" + m.filterPrompt()
}

// shortcutBar renders the menu-bar shortcuts with the open group marked.
func (m *Model) shortcutBar() string {
	if len(m.shortcuts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.shortcuts))
	for i, sc := range m.shortcuts {
		style := styles.Shortcut
		if m.open && i == m.shortcut && sc.Group == m.ctrl.GroupKey() {
			style = styles.CurrentShortcut
		}
		parts = append(parts, renderStyled(style, sc.Title))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) headerLine() styledLine {
	if m.title.Back {
		control := "← "
		return styledLine{
			text:          control + m.title.Text,
			style:         styles.Header,
			prefixStyle:   styles.HeaderControl,
			highlightFrom: len([]rune(control)),
		}
	}
	line := styledLine{text: m.title.Text, style: styles.Header}
	if m.title.Close {
		line.text += "  ×"
	}
	return line
}

func (m *Model) buildRowLine(row popup.Row, selected bool) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if row.Active {
		lineStyle = styles.ActiveItem
	}
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	marker := " "
	if row.Active {
		marker = "•"
	}
	suffix := ""
	switch row.Action {
	case popup.ActionDrill:
		suffix = " ›"
	case popup.ActionInert:
		suffix = " ·"
	}
	text := "▌" + " " + marker + " " + row.Text + suffix
	if m.width > 0 {
		if pad := m.width - lipgloss.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) footerText() string {
	back := "esc close"
	if m.ctrl.State() == popup.StateNested {
		back = "esc back"
	}
	return "↑/↓ move  enter select  tab next menu  " + back + "  ctrl+c quit"
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 4 // shortcut bar, header, status line, filter prompt
	if m.infoMsg != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	return append(trimmed, styledLine{text: truncateText("…", width)})
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		runes := []rune(line.text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := renderStyled(line.prefixStyle, string(runes[:line.highlightFrom]))
			out[i] = head + renderStyled(line.style, string(runes[line.highlightFrom:]))
			continue
		}
		out[i] = renderStyled(line.style, line.text)
	}
	return strings.Join(out, "\n")
}

func renderStyled(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

// truncateText shortens text to width display cells. Menu labels are mostly
// Hangul, which occupies two cells per rune.
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
