package events

import "github.com/oilnote/submenu-popup/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
)

func (UITracer) Select(group string, index int, label string) {
	logging.Trace("ui.select", map[string]interface{}{"group": group, "index": index, "label": label})
}

func (UITracer) Cursor(group string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"group": group, "cursor": cursor})
}

func (UITracer) Shortcut(name string) {
	logging.Trace("ui.shortcut", map[string]interface{}{"name": name})
}

func (FilterTracer) Query(group, query string, matches int) {
	logging.Trace("filter.query", map[string]interface{}{"group": group, "query": query, "matches": matches})
}
