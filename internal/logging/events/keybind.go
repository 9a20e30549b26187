package events

import "github.com/atomicstack/pman/internal/logging"

type KeybindTracer struct{}

var Keybind = KeybindTracer{}

func (KeybindTracer) Install(path string, changed bool) {
	logging.Trace("keybind.install", map[string]interface{}{"path": path, "changed": changed})
}

func (KeybindTracer) Uninstall(path string, changed bool) {
	logging.Trace("keybind.uninstall", map[string]interface{}{"path": path, "changed": changed})
}
