package popup

import (
	"errors"

	"github.com/oilnote/submenu-popup/internal/menu"
)

var (
	// ErrMissingAnchor is reported by a Panel whose title, content, popup or
	// main-content region is unavailable.
	ErrMissingAnchor = errors.New("popup anchor missing")
	// ErrUnknownGroup is returned when a group key has no configuration.
	ErrUnknownGroup = errors.New("unknown menu group")
	// ErrClosed is returned by operations that require an open popup.
	ErrClosed = errors.New("popup is closed")
	// ErrNoRow is returned when a selection index does not address a row.
	ErrNoRow = errors.New("no such row")
)

// Action describes what selecting a row does.
type Action int

const (
	// ActionNavigate leaves the page for the row's target.
	ActionNavigate Action = iota
	// ActionDrill replaces the content with the row's nested items.
	ActionDrill
	// ActionInert suppresses navigation and does nothing else.
	ActionInert
)

func (a Action) String() string {
	switch a {
	case ActionNavigate:
		return "navigate"
	case ActionDrill:
		return "drill"
	case ActionInert:
		return "inert"
	default:
		return "unknown"
	}
}

// Row is one rendered menu entry.
type Row struct {
	Index  int
	Text   string
	Icon   string
	Href   string
	Active bool
	Action Action
	Nested []menu.Item
}

// TitleBar is the content of the popup's title region.
type TitleBar struct {
	Text  string
	Back  bool
	Close bool
}

// Panel is the surface a Controller renders into: a title region, a content
// region, and the open markers on the popup and the main content area.
type Panel interface {
	// Check returns an error wrapping ErrMissingAnchor when any required
	// region is unavailable. No other method is called in that case.
	Check() error
	SetTitle(TitleBar)
	SetRows([]Row)
	SetOpen(bool)
}
