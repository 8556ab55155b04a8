package events

import "github.com/oilnote/submenu-popup/internal/logging"

type PopupTracer struct{}

var Popup = PopupTracer{}

func (PopupTracer) Open(group, title string, rows int) {
	logging.Trace("popup.open", map[string]interface{}{"group": group, "title": title, "rows": rows})
}

func (PopupTracer) Drill(group, parent string, rows int) {
	logging.Trace("popup.drill", map[string]interface{}{"group": group, "parent": parent, "rows": rows})
}

func (PopupTracer) Back(group string) {
	logging.Trace("popup.back", map[string]interface{}{"group": group})
}

func (PopupTracer) Close(group string) {
	logging.Trace("popup.close", map[string]interface{}{"group": group})
}

func (PopupTracer) Navigate(group, target string) {
	logging.Trace("popup.navigate", map[string]interface{}{"group": group, "target": target})
}

// Inert records a selection that has no effect, such as an expand row at the
// deepest level.
func (PopupTracer) Inert(group, label string) {
	logging.Trace("popup.inert", map[string]interface{}{"group": group, "label": label})
}
