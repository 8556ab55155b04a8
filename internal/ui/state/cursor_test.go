package state

import (
	"testing"

	"github.com/oilnote/submenu-popup/internal/popup"
)

func newTestLevel(labels ...string) *Level {
	rows := make([]popup.Row, len(labels))
	for i, label := range labels {
		rows[i] = popup.Row{Index: i, Text: label, Href: "/" + label + "/"}
	}
	return NewLevel(rows)
}

func TestNewLevelStartsOnActiveRow(t *testing.T) {
	rows := []popup.Row{{Text: "a"}, {Text: "b", Active: true}, {Text: "c"}}
	if l := NewLevel(rows); l.Cursor != 1 {
		t.Fatalf("expected cursor on active row, got %d", l.Cursor)
	}
	if l := newTestLevel("a", "b"); l.Cursor != 0 {
		t.Fatalf("expected cursor on first row, got %d", l.Cursor)
	}
}

func TestMoveCursorWraps(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	l.MoveCursorUp()
	if l.Cursor != 2 {
		t.Fatalf("expected wrap to last row, got %d", l.Cursor)
	}
	l.MoveCursorDown()
	if l.Cursor != 0 {
		t.Fatalf("expected wrap to first row, got %d", l.Cursor)
	}
	empty := newTestLevel()
	if empty.MoveCursorDown() || empty.MoveCursorUp() {
		t.Fatalf("expected no movement on empty level")
	}
}

func TestMoveCursorHomeEnd(t *testing.T) {
	l := newTestLevel("a", "b", "c")
	if !l.MoveCursorEnd() || l.Cursor != 2 {
		t.Fatalf("expected cursor at end, got %d", l.Cursor)
	}
	if l.MoveCursorEnd() {
		t.Fatalf("expected no movement when already at end")
	}
	if !l.MoveCursorHome() || l.Cursor != 0 {
		t.Fatalf("expected cursor at home, got %d", l.Cursor)
	}
	empty := newTestLevel()
	empty.Cursor = 4
	if empty.MoveCursorHome() || empty.Cursor != 0 {
		t.Fatalf("expected cursor reset on empty level")
	}
}

func TestMoveCursorPaging(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	if !l.MoveCursorPageDown(2) || l.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor)
	}
	l.MoveCursorPageDown(2)
	l.MoveCursorPageDown(2)
	if l.Cursor != 4 {
		t.Fatalf("expected clamp at 4, got %d", l.Cursor)
	}
	l.MoveCursorPageUp(10)
	if l.Cursor != 0 {
		t.Fatalf("expected page larger than list to reach top, got %d", l.Cursor)
	}
}

func TestEnsureCursorVisible(t *testing.T) {
	l := newTestLevel("a", "b", "c", "d", "e")
	l.Cursor = 4
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", l.ViewportOffset)
	}
	l.Cursor = 1
	l.EnsureCursorVisible(2)
	if l.ViewportOffset != 1 {
		t.Fatalf("expected offset 1, got %d", l.ViewportOffset)
	}
	l.EnsureCursorVisible(0)
	if l.ViewportOffset != 0 {
		t.Fatalf("expected offset reset without a height limit, got %d", l.ViewportOffset)
	}
}
