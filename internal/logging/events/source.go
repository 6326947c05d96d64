package events

import "github.com/atomicstack/tmux-popup-select/internal/logging"

type SourceTracer struct{}

var Source = SourceTracer{}

func (SourceTracer) Load(field, spec string, count int) {
	logging.Trace("source.load", map[string]interface{}{"field": field, "source": spec, "count": count})
}

func (SourceTracer) Error(field, spec string, err error) {
	if err == nil {
		return
	}
	logging.Trace("source.error", map[string]interface{}{"field": field, "source": spec, "error": err.Error()})
}

func (SourceTracer) Reload(field, spec string) {
	logging.Trace("source.reload", map[string]interface{}{"field": field, "source": spec})
}
