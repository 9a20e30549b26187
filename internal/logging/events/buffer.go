package events

import "github.com/atomicstack/pman/internal/logging"

type BufferTracer struct{}

var Buffer = BufferTracer{}

func (BufferTracer) Discover(sockets []string) {
	logging.Trace("buffer.discover", map[string]interface{}{"sockets": sockets})
}

func (BufferTracer) Skip(address string, err error) {
	payload := map[string]interface{}{"address": address}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("buffer.skip", payload)
}

func (BufferTracer) Open(address string, id int) {
	logging.Trace("buffer.open", map[string]interface{}{"address": address, "buffer": id})
}

func (BufferTracer) OpenFile(path string) {
	logging.Trace("buffer.open-file", map[string]interface{}{"path": path})
}
