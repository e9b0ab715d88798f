// Package logging provides the engine-wide diagnostic logger: a thin
// zap wrapper that also keeps an in-memory ring buffer of entries and fans
// them out to listeners, so a host application can surface hook install
// failures, panicking callbacks, and worker pool lifecycle events in its
// own UI without scraping stdout.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Entry is a single diagnostic event: a hook install/uninstall outcome, a
// panicking predicate or callback, a worker pool start/stop, a dispatcher
// registration.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Source    string    `json:"source,omitempty"`
}

// Logger wraps a zap logger with a bounded ring buffer and listener
// fan-out. A nil *Logger is valid everywhere it is accepted in this
// module and means "silent" — every method on a nil *Logger is a no-op.
type Logger struct {
	zap        *zap.Logger
	sugar      *zap.SugaredLogger
	entries    []Entry
	maxEntries int
	mu         sync.RWMutex
	enabled    bool
	listeners  []func(Entry)
	logFile    *os.File
	component  string
}

// Config holds logger construction options.
type Config struct {
	Enabled    bool
	MaxEntries int
	Level      Level
	Component  string // names the embedding process, used in log file naming
	LogToFile  bool
}

// New constructs a Logger. Passing a zero Config yields a logger that is
// enabled, logs at Debug, and keeps the last 1000 entries in memory.
func New(cfg Config) (*Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case LevelDebug:
		level = zapcore.DebugLevel
	case LevelInfo:
		level = zapcore.InfoLevel
	case LevelWarn:
		level = zapcore.WarnLevel
	case LevelError:
		level = zapcore.ErrorLevel
	default:
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var logFile *os.File
	var cores []zapcore.Core

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), level))

	if cfg.LogToFile {
		exePath, err := os.Executable()
		if err == nil {
			exeDir := filepath.Dir(exePath)
			component := cfg.Component
			if component == "" {
				component = "keybinds"
			}
			dateStr := time.Now().Format("2006-01-02_15-04-05")
			logPath := filepath.Join(exeDir, fmt.Sprintf("keybinds_%s_%s.log", component, dateStr))
			logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				fileEncoder := zapcore.NewConsoleEncoder(encoderConfig)
				cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(logFile), zapcore.DebugLevel))
			}
		}
	}

	core := zapcore.NewTee(cores...)
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 1000
	}

	return &Logger{
		zap:        zapLogger,
		sugar:      zapLogger.Sugar(),
		entries:    make([]Entry, 0, maxEntries),
		maxEntries: maxEntries,
		enabled:    true,
		logFile:    logFile,
		component:  cfg.Component,
	}, nil
}

// ListenerID identifies a registered listener for later removal.
type ListenerID int

// AddListener registers a listener invoked for every new Entry after
// registration. Returns an ID usable with RemoveListener.
func (l *Logger) AddListener(listener func(Entry)) ListenerID {
	if l == nil {
		return -1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	id := ListenerID(len(l.listeners))
	l.listeners = append(l.listeners, listener)
	return id
}

// RemoveListener unregisters a listener previously added with AddListener.
func (l *Logger) RemoveListener(id ListenerID) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if int(id) >= 0 && int(id) < len(l.listeners) {
		l.listeners[id] = nil
	}
}

func (l *Logger) addEntry(level Level, source, message string) {
	if l == nil || !l.enabled {
		return
	}

	entry := Entry{Timestamp: time.Now(), Level: level, Message: message, Source: source}

	l.mu.Lock()
	if len(l.entries) >= l.maxEntries {
		l.entries = l.entries[1:]
	}
	l.entries = append(l.entries, entry)
	listeners := make([]func(Entry), len(l.listeners))
	copy(listeners, l.listeners)
	l.mu.Unlock()

	for _, listener := range listeners {
		if listener != nil {
			listener(entry)
		}
	}
}

// Debugw logs a debug-level message with the given source tag and
// structured key/value pairs, matching the teacher's Sugared logging
// idiom. Safe to call on a nil *Logger.
func (l *Logger) Debugw(source, msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Debugw(msg, append([]interface{}{"source", source}, kv...)...)
	l.addEntry(LevelDebug, source, formatWithKV(msg, kv))
}

// Infow logs an info-level message. Safe to call on a nil *Logger.
func (l *Logger) Infow(source, msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Infow(msg, append([]interface{}{"source", source}, kv...)...)
	l.addEntry(LevelInfo, source, formatWithKV(msg, kv))
}

// Warnw logs a warn-level message. Safe to call on a nil *Logger.
func (l *Logger) Warnw(source, msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Warnw(msg, append([]interface{}{"source", source}, kv...)...)
	l.addEntry(LevelWarn, source, formatWithKV(msg, kv))
}

// Errorw logs an error-level message. Safe to call on a nil *Logger.
func (l *Logger) Errorw(source, msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Errorw(msg, append([]interface{}{"source", source}, kv...)...)
	l.addEntry(LevelError, source, formatWithKV(msg, kv))
}

func formatWithKV(msg string, kv []interface{}) string {
	if len(kv) == 0 {
		return msg
	}
	return fmt.Sprintf("%s %v", msg, kv)
}

// Entries returns a copy of every buffered entry.
func (l *Logger) Entries() []Entry {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Recent returns the most recent n buffered entries.
func (l *Logger) Recent(n int) []Entry {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n <= 0 || n >= len(l.entries) {
		entries := make([]Entry, len(l.entries))
		copy(entries, l.entries)
		return entries
	}
	start := len(l.entries) - n
	entries := make([]Entry, n)
	copy(entries, l.entries[start:])
	return entries
}

// Clear empties the in-memory ring buffer.
func (l *Logger) Clear() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}

// Close flushes the underlying zap logger and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	err := l.zap.Sync()
	if l.logFile != nil {
		l.logFile.Close()
	}
	return err
}

// LogFilePath returns the path of the active log file, or "" if file
// logging is disabled.
func (l *Logger) LogFilePath() string {
	if l == nil || l.logFile == nil {
		return ""
	}
	return l.logFile.Name()
}

// FormatEntry renders an Entry for plain-text display.
func FormatEntry(entry Entry) string {
	return fmt.Sprintf("[%s] [%s] %s: %s",
		entry.Timestamp.Format("15:04:05"),
		entry.Level,
		entry.Source,
		entry.Message,
	)
}
