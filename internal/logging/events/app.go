package events

import "github.com/atomicstack/tmux-popup-select/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(cancelled bool, selected int) {
	logging.Trace("app.exit", map[string]interface{}{"cancelled": cancelled, "selected": selected})
}
