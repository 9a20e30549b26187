package events

import "github.com/atomicstack/pman/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
	Action = ActionTracer{}
)

func (UITracer) View(view string) {
	logging.Trace("ui.view", map[string]interface{}{"view": view})
}

func (UITracer) Cursor(view string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"view": view, "cursor": cursor})
}

func (UITracer) Key(key, action string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "action": action})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Append(view, query string) {
	logging.Trace("filter.append", map[string]interface{}{"view": view, "query": query})
}

func (FilterTracer) Backspace(view, query string) {
	logging.Trace("filter.backspace", map[string]interface{}{"view": view, "query": query})
}

func (FilterTracer) Cleared(view string) {
	logging.Trace("filter.clear", map[string]interface{}{"view": view})
}
