package popup

import (
	"fmt"

	"github.com/oilnote/submenu-popup/internal/logging"
	"github.com/oilnote/submenu-popup/internal/logging/events"
	"github.com/oilnote/submenu-popup/internal/menu"
)

// maxDepth is the deepest level whose expand rows may still drill in.
const maxDepth = 0

// State is the view the popup currently shows.
type State int

const (
	StateClosed State = iota
	StateTop
	StateNested
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateTop:
		return "top"
	case StateNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Outcome reports the effect of selecting a row.
type Outcome struct {
	Action Action
	Target string
}

// Option customises a Controller.
type Option func(*Controller)

// WithCurrentPath sets the page path used for active highlighting.
func WithCurrentPath(path string) Option {
	return func(c *Controller) {
		c.currentPath = path
	}
}

// WithReturnGroup pins the back control to a fixed group instead of the
// group that was open before drilling in.
func WithReturnGroup(key string) Option {
	return func(c *Controller) {
		c.returnGroup = key
	}
}

// Controller shows, populates, and dismisses a single shared popup panel
// holding one menu group at a time, with one level of drill-down.
// A Controller is not safe for concurrent use.
type Controller struct {
	registry    *menu.Registry
	panel       Panel
	currentPath string
	returnGroup string

	state  State
	group  menu.Group
	title  string
	parent string
	rows   []Row
}

// New constructs a closed Controller rendering into panel.
func New(registry *menu.Registry, panel Panel, opts ...Option) *Controller {
	c := &Controller{registry: registry, panel: panel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetCurrentPath updates the page path used for active highlighting. It takes
// effect on the next render.
func (c *Controller) SetCurrentPath(path string) {
	c.currentPath = path
}

// State returns the current view state.
func (c *Controller) State() State { return c.state }

// GroupKey returns the key of the open group, or "" when closed.
func (c *Controller) GroupKey() string {
	if c.state == StateClosed {
		return ""
	}
	return c.group.Key
}

// Title returns the label shown in the title region.
func (c *Controller) Title() string {
	if c.state == StateNested {
		return c.parent
	}
	return c.title
}

// Rows returns a copy of the rows currently rendered.
func (c *Controller) Rows() []Row {
	dup := make([]Row, len(c.rows))
	copy(dup, c.rows)
	return dup
}

// OpenGroup renders the top-level items of the group and reveals the popup.
// An empty title falls back to the group's configured title.
func (c *Controller) OpenGroup(key, title string) error {
	if err := c.checkPanel("open"); err != nil {
		return err
	}
	group, ok := c.registry.Group(key)
	if !ok {
		err := fmt.Errorf("open: %w: %q", ErrUnknownGroup, key)
		logging.Error(err)
		return err
	}
	if title == "" {
		title = group.Title
	}
	c.group = group
	c.title = title
	c.renderTop()
	c.panel.SetOpen(true)
	c.state = StateTop
	events.Popup.Open(key, title, len(c.rows))
	return nil
}

// OpenShortcut opens the group bound to a menu-bar entry point.
func (c *Controller) OpenShortcut(name string) error {
	s, ok := c.registry.Shortcut(name)
	if !ok {
		err := fmt.Errorf("shortcut: %w: %q", ErrUnknownGroup, name)
		logging.Error(err)
		return err
	}
	return c.OpenGroup(s.Group, s.Title)
}

// OpenBasicData is the menu-bar entry point for the basic-data group.
func (c *Controller) OpenBasicData() error {
	return c.OpenShortcut(menu.GroupBasicData)
}

// OpenCustomerManagement is the menu-bar entry point for the customer group.
func (c *Controller) OpenCustomerManagement() error {
	return c.OpenShortcut(menu.GroupCustomerManagement)
}

// OpenPriceManagement is the menu-bar entry point for the price group.
func (c *Controller) OpenPriceManagement() error {
	return c.OpenShortcut(menu.GroupPriceManagement)
}

// Select applies the click contract to the row at index. Navigation closes
// the popup and returns the target for the host to load.
func (c *Controller) Select(index int) (Outcome, error) {
	if c.state == StateClosed {
		return Outcome{}, fmt.Errorf("select: %w", ErrClosed)
	}
	if index < 0 || index >= len(c.rows) {
		return Outcome{}, fmt.Errorf("select %d of %d: %w", index, len(c.rows), ErrNoRow)
	}
	row := c.rows[index]
	switch row.Action {
	case ActionDrill:
		if err := c.DrillIntoSubmenu(row.Nested, row.Text); err != nil {
			return Outcome{}, err
		}
		return Outcome{Action: ActionDrill}, nil
	case ActionInert:
		events.Popup.Inert(c.group.Key, row.Text)
		return Outcome{Action: ActionInert}, nil
	default:
		key := c.group.Key
		if err := c.ClosePopup(); err != nil {
			return Outcome{}, err
		}
		events.Popup.Navigate(key, row.Href)
		return Outcome{Action: ActionNavigate, Target: row.Href}, nil
	}
}

// DrillIntoSubmenu shows a back control with the parent label and replaces
// the content with rows for items. Expand rows at this depth are inert.
func (c *Controller) DrillIntoSubmenu(items []menu.Item, parentTitle string) error {
	if err := c.checkPanel("drill"); err != nil {
		return err
	}
	if c.state == StateClosed {
		return fmt.Errorf("drill: %w", ErrClosed)
	}
	c.parent = parentTitle
	c.rows = buildRows(items, maxDepth+1, c.currentPath)
	c.panel.SetTitle(TitleBar{Text: parentTitle, Back: true})
	c.panel.SetRows(c.rows)
	c.state = StateNested
	events.Popup.Drill(c.group.Key, parentTitle, len(c.rows))
	return nil
}

// ReturnToTopLevel restores the title with its close control and re-renders
// the top-level items of the group that was open before drilling in.
func (c *Controller) ReturnToTopLevel() error {
	if err := c.checkPanel("back"); err != nil {
		return err
	}
	if c.state == StateClosed {
		return fmt.Errorf("back: %w", ErrClosed)
	}
	if c.returnGroup != "" && c.returnGroup != c.group.Key {
		group, ok := c.registry.Group(c.returnGroup)
		if !ok {
			err := fmt.Errorf("back: %w: %q", ErrUnknownGroup, c.returnGroup)
			logging.Error(err)
			return err
		}
		c.group = group
		c.title = group.Title
	}
	c.renderTop()
	c.state = StateTop
	events.Popup.Back(c.group.Key)
	return nil
}

// ClosePopup hides the popup and un-shifts the main content. Closing an
// already closed popup only re-applies the closed markers.
func (c *Controller) ClosePopup() error {
	if err := c.checkPanel("close"); err != nil {
		return err
	}
	c.panel.SetOpen(false)
	if c.state != StateClosed {
		events.Popup.Close(c.group.Key)
	}
	c.state = StateClosed
	c.parent = ""
	return nil
}

func (c *Controller) renderTop() {
	c.parent = ""
	c.rows = buildRows(c.group.Items, 0, c.currentPath)
	c.panel.SetTitle(TitleBar{Text: c.title, Close: true})
	c.panel.SetRows(c.rows)
}

func (c *Controller) checkPanel(op string) error {
	if c.panel == nil {
		err := fmt.Errorf("%s: %w: no panel", op, ErrMissingAnchor)
		logging.Error(err)
		return err
	}
	if err := c.panel.Check(); err != nil {
		err = fmt.Errorf("%s: %w", op, err)
		logging.Error(err)
		return err
	}
	return nil
}

// buildRows converts items at the given depth into rows. Expand rows drill in
// while depth allows it and become inert beyond that.
func buildRows(items []menu.Item, depth int, currentPath string) []Row {
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		row := Row{
			Index:  i,
			Text:   item.Text,
			Icon:   item.Icon,
			Href:   item.Href,
			Active: item.Href == currentPath,
		}
		switch {
		case !item.Expands():
			row.Action = ActionNavigate
		case depth <= maxDepth && len(item.Items) > 0:
			row.Action = ActionDrill
			row.Nested = menu.CloneItems(item.Items)
		default:
			row.Action = ActionInert
		}
		rows = append(rows, row)
	}
	return rows
}
