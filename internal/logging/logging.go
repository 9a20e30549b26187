// Package logging writes error lines and optional JSON trace entries to a
// rotating log file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "pman.log"

// Rotation controls when the log file is rolled over.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultRotation keeps a handful of small compressed backups.
func DefaultRotation() Rotation {
	return Rotation{MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 14, Compress: true}
}

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	rotation     = DefaultRotation()
	sink         io.WriteCloser
)

// writer returns the shared sink, opening it on first use. Callers hold mu.
func writer() io.Writer {
	if sink == nil {
		sink = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
			MaxAge:     rotation.MaxAgeDays,
			Compress:   rotation.Compress,
		}
	}
	return sink
}

func resetSink() {
	if sink != nil {
		_ = sink.Close()
		sink = nil
	}
}

// Error writes err to the log file with a timestamp.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(writer(), "", log.LstdFlags)
	logger.Println(err)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace currently writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled {
		return
	}
	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}
	if err := json.NewEncoder(writer()).Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	resetSink()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetRotation replaces the rollover policy. Non-positive sizes fall back to
// the defaults.
func SetRotation(r Rotation) {
	def := DefaultRotation()
	if r.MaxSizeMB <= 0 {
		r.MaxSizeMB = def.MaxSizeMB
	}
	if r.MaxBackups < 0 {
		r.MaxBackups = def.MaxBackups
	}
	if r.MaxAgeDays < 0 {
		r.MaxAgeDays = def.MaxAgeDays
	}
	mu.Lock()
	defer mu.Unlock()
	resetSink()
	rotation = r
}

// Close flushes and releases the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	return err
}
