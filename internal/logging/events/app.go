package events

import "github.com/oilnote/submenu-popup/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Serve(addr string) {
	logging.Trace("app.serve", map[string]interface{}{"addr": addr})
}

func (AppTracer) Result(target string) {
	logging.Trace("app.result", map[string]interface{}{"target": target})
}

func (AppTracer) Reload(path string, groups int) {
	logging.Trace("app.reload", map[string]interface{}{"path": path, "groups": groups})
}
