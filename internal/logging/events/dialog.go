package events

import "github.com/atomicstack/pman/internal/logging"

type DialogTracer struct{}

var Dialog = DialogTracer{}

func (DialogTracer) Open(name string) {
	logging.Trace("dialog.open", map[string]interface{}{"dialog": name})
}

func (DialogTracer) Close(name string) {
	logging.Trace("dialog.close", map[string]interface{}{"dialog": name})
}

func (DialogTracer) Submit(name, result string) {
	logging.Trace("dialog.submit", map[string]interface{}{"dialog": name, "result": result})
}
