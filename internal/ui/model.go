package ui

import (
	"errors"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oilnote/submenu-popup/internal/menu"
	"github.com/oilnote/submenu-popup/internal/popup"
	"github.com/oilnote/submenu-popup/internal/theme"
	uistate "github.com/oilnote/submenu-popup/internal/ui/state"
)

type level = uistate.Level

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options describes how the terminal popup starts.
type Options struct {
	// Group is the key of the group opened at start; empty opens the first
	// menu-bar shortcut.
	Group       string
	CurrentPath string
	ReturnGroup string
	Width       int
	Height      int
	ShowFooter  bool
}

// Model implements the Bubble Tea model for the submenu popup. It is also the
// popup.Panel the controller renders into.
type Model struct {
	ctrl      *popup.Controller
	registry  *menu.Registry
	shortcuts []menu.Shortcut
	shortcut  int

	title popup.TitleBar
	level *level
	open  bool

	result     string
	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the popup model and opens the starting group.
func NewModel(registry *menu.Registry, opts Options) (*Model, error) {
	m := &Model{
		registry:   registry,
		shortcuts:  registry.Shortcuts(),
		level:      uistate.NewLevel(nil),
		showFooter: opts.ShowFooter,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	ctrlOpts := []popup.Option{popup.WithCurrentPath(opts.CurrentPath)}
	if opts.ReturnGroup != "" {
		ctrlOpts = append(ctrlOpts, popup.WithReturnGroup(opts.ReturnGroup))
	}
	m.ctrl = popup.New(registry, m, ctrlOpts...)

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()

	if err := m.openStart(opts.Group); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) openStart(group string) error {
	if group == "" {
		if len(m.shortcuts) == 0 {
			return errors.New("no menu groups configured")
		}
		return m.ctrl.OpenShortcut(m.shortcuts[0].Name)
	}
	for i, s := range m.shortcuts {
		if s.Group == group {
			m.shortcut = i
			return m.ctrl.OpenShortcut(s.Name)
		}
	}
	return m.ctrl.OpenGroup(group, "")
}

// Check implements popup.Panel. The terminal always has its regions.
func (m *Model) Check() error { return nil }

// SetTitle implements popup.Panel.
func (m *Model) SetTitle(t popup.TitleBar) { m.title = t }

// SetRows implements popup.Panel. A new row set starts with an empty filter.
func (m *Model) SetRows(rows []popup.Row) {
	m.level = uistate.NewLevel(rows)
	m.filterCursorDirty = true
	m.syncViewport()
}

// SetOpen implements popup.Panel.
func (m *Model) SetOpen(open bool) { m.open = open }

// Result returns the navigation target chosen before the program quit, or ""
// when the popup was dismissed.
func (m *Model) Result() string { return m.result }

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.filterCursor.Focus()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}
