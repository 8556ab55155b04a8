package state

import "github.com/oilnote/submenu-popup/internal/popup"

// Level holds the rows of the popup's current view together with the cursor,
// filter and viewport used to browse them.
type Level struct {
	Full           []popup.Row
	Items          []popup.Row
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level for rows with the cursor on the active row, or
// on the first row when none is active.
func NewLevel(rows []popup.Row) *Level {
	l := &Level{LastCursor: -1}
	l.Full = cloneRows(rows)
	l.Items = cloneRows(rows)
	for i, row := range l.Items {
		if row.Active {
			l.Cursor = i
			break
		}
	}
	return l
}

// Current returns the row under the cursor.
func (l *Level) Current() (popup.Row, bool) {
	if l == nil || l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return popup.Row{}, false
	}
	return l.Items[l.Cursor], true
}

func cloneRows(rows []popup.Row) []popup.Row {
	dup := make([]popup.Row, len(rows))
	copy(dup, rows)
	return dup
}
