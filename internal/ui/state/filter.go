package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/oilnote/submenu-popup/internal/popup"
)

// SetFilter updates the filter query and its cursor position. Entering a
// query remembers the cursor; clearing it restores that position.
func (l *Level) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(l.Filter)
	l.Filter = query
	runes := []rune(query)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	l.FilterCursor = cursor
	if trimmed != "" && prevTrimmed == "" {
		l.LastCursor = l.Cursor
	}
	l.Items = FilterRows(l.Full, query)
	l.ViewportOffset = 0
	switch {
	case trimmed != "":
		l.Cursor = BestMatchIndex(l.Items, trimmed)
		if l.Cursor < 0 {
			l.Cursor = 0
		}
	case prevTrimmed != "":
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		} else {
			l.Cursor = 0
		}
		l.LastCursor = -1
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *Level) FilterCursorPos() int {
	n := len([]rune(l.Filter))
	switch {
	case l.FilterCursor < 0:
		return 0
	case l.FilterCursor > n:
		return n
	default:
		return l.FilterCursor
	}
}

// InsertFilterText inserts text into the filter at the cursor position.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	l.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes the rune before the filter cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	updated := append(runes[:pos-1:pos-1], runes[pos:]...)
	l.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the filter cursor.
func (l *Level) DeleteFilterWordBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i:i], runes[pos:]...)
	l.SetFilter(string(updated), i)
	return true
}

// FilterRows returns the rows whose label matches query, in their original
// order. Fuzzy matches are preferred; plain substring matching on the label
// and target is the fallback.
func FilterRows(rows []popup.Row, query string) []popup.Row {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return cloneRows(rows)
	}
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = row.Text
	}
	if ranks := fuzzy.RankFindNormalizedFold(trimmed, labels); len(ranks) > 0 {
		matched := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matched[rank.OriginalIndex] = struct{}{}
		}
		out := make([]popup.Row, 0, len(matched))
		for i, row := range rows {
			if _, ok := matched[i]; ok {
				out = append(out, row)
			}
		}
		return out
	}
	lower := strings.ToLower(trimmed)
	out := make([]popup.Row, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Text), lower) || strings.Contains(strings.ToLower(row.Href), lower) {
			out = append(out, row)
		}
	}
	return out
}

// BestMatchIndex returns the index of the row that best matches query: an
// exact label, then a label prefix, then the closest fuzzy match.
func BestMatchIndex(rows []popup.Row, query string) int {
	if len(rows) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	for i, row := range rows {
		if strings.EqualFold(row.Text, trimmed) {
			return i
		}
	}
	lower := strings.ToLower(trimmed)
	for i, row := range rows {
		if strings.HasPrefix(strings.ToLower(row.Text), lower) {
			return i
		}
	}
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = row.Text
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
