package events

import "github.com/atomicstack/pman/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) MissingPrerequisite(tool string) {
	logging.Trace("app.prereq.missing", map[string]interface{}{"tool": tool})
}

func (AppTracer) Exit(view string, err error) {
	payload := map[string]interface{}{"view": view}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
