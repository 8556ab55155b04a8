package events

import (
	"time"

	"github.com/oilnote/submenu-popup/internal/logging"
)

type WebTracer struct{}

var Web = WebTracer{}

func (WebTracer) Request(method, path string, status int, took time.Duration) {
	logging.Trace("web.request", map[string]interface{}{
		"method": method,
		"path":   path,
		"status": status,
		"tookMs": took.Milliseconds(),
	})
}
