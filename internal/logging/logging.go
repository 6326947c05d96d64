package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "tmux-popup-select.log"

var (
	traceMu      sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	warnSink     func(string)
)

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	appendLine(err.Error())
}

// Warn records a non-fatal developer diagnostic. Diagnostics always reach the
// log file and, when installed, the warn sink.
func Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	traceMu.Lock()
	sink := warnSink
	traceMu.Unlock()
	if sink != nil {
		sink(msg)
	}
	appendLine("warning: " + msg)
}

// SetWarnSink installs a callback receiving every diagnostic and returns a
// function restoring the previous sink.
func SetWarnSink(sink func(string)) func() {
	traceMu.Lock()
	prev := warnSink
	warnSink = sink
	traceMu.Unlock()
	return func() {
		traceMu.Lock()
		warnSink = prev
		traceMu.Unlock()
	}
}

func appendLine(line string) {
	traceMu.Lock()
	path := logPath
	traceMu.Unlock()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()

	logger := log.New(f, "", log.LstdFlags)
	logger.Println(line)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	traceMu.Lock()
	enabled := traceEnabled
	path := logPath
	traceMu.Unlock()
	if !enabled {
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

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace logging failed: %v\n", err)
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	traceMu.Lock()
	defer traceMu.Unlock()
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
