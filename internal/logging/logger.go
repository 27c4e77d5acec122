// Package logging wraps log/slog with file rotation and global
// convenience functions.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Level is the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// Config holds logger configuration.
type Config struct {
	Level      Level
	OutputFile string // empty: stdout only
	MaxSize    int64  // bytes before rotation; default 10MB
	MaxBackups int    // default 3
	JSONFormat bool
	AddSource  bool
}

// Logger wraps slog.Logger with rotation support.
type Logger struct {
	slog   *slog.Logger
	config Config
	file   *os.File
	mu     sync.Mutex
}

var (
	global Logger
	once   sync.Once
)

// Initialize configures the package-level global logger. Safe to call more
// than once; only the first call takes effect.
func Initialize(config Config) error {
	var initErr error
	once.Do(func() {
		l, err := New(config)
		if err != nil {
			initErr = fmt.Errorf("initialize logger: %w", err)
			return
		}
		global = *l
	})
	return initErr
}

// New builds a standalone Logger (does not touch the package global).
func New(config Config) (*Logger, error) {
	if config.MaxSize == 0 {
		config.MaxSize = 10 * 1024 * 1024
	}
	if config.MaxBackups == 0 {
		config.MaxBackups = 3
	}

	l := &Logger{config: config}

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if config.OutputFile != "" {
		dir := filepath.Dir(config.OutputFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory %s: %w", dir, err)
		}
		if err := l.rotateIfNeeded(); err != nil {
			return nil, fmt.Errorf("rotate logs: %w", err)
		}
		file, err := os.OpenFile(config.OutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", config.OutputFile, err)
		}
		l.file = file
		writers = append(writers, file)
	}

	multi := io.MultiWriter(writers...)
	opts := &slog.HandlerOptions{Level: toSlogLevel(config.Level), AddSource: config.AddSource}

	var handler slog.Handler
	if config.JSONFormat {
		handler = slog.NewJSONHandler(multi, opts)
	} else {
		handler = slog.NewTextHandler(multi, opts)
	}
	l.slog = slog.New(handler)
	return l, nil
}

func (l *Logger) rotateIfNeeded() error {
	if l.config.OutputFile == "" {
		return nil
	}
	info, err := os.Stat(l.config.OutputFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() < l.config.MaxSize {
		return nil
	}
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	for i := l.config.MaxBackups - 1; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", l.config.OutputFile, i)
		newPath := fmt.Sprintf("%s.%d", l.config.OutputFile, i+1)
		if _, err := os.Stat(oldPath); err == nil {
			os.Rename(oldPath, newPath)
		}
	}
	return os.Rename(l.config.OutputFile, l.config.OutputFile+".1")
}

func toSlogLevel(level Level) slog.Level {
	switch level {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// With returns a derived Logger carrying additional structured fields.
func (l *Logger) With(args ...any) *Logger {
	derived := *l
	derived.slog = l.slog.With(args...)
	return &derived
}

// Close closes the log file, if one is open.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// DefaultConfig returns a text-to-stdout configuration at INFO level.
func DefaultConfig() Config {
	return Config{Level: INFO, JSONFormat: false}
}

// Package-level convenience functions delegate to the global logger once
// Initialize has been called, falling back to slog's default logger
// otherwise.

func Debug(msg string, args ...any) { logOrDefault(DEBUG, msg, args...) }
func Info(msg string, args ...any)  { logOrDefault(INFO, msg, args...) }
func Warn(msg string, args ...any)  { logOrDefault(WARN, msg, args...) }
func Error(msg string, args ...any) { logOrDefault(ERROR, msg, args...) }

func logOrDefault(level Level, msg string, args ...any) {
	if global.slog != nil {
		switch level {
		case DEBUG:
			global.Debug(msg, args...)
		case WARN:
			global.Warn(msg, args...)
		case ERROR:
			global.Error(msg, args...)
		default:
			global.Info(msg, args...)
		}
		return
	}
	switch level {
	case DEBUG:
		slog.Debug(msg, args...)
	case WARN:
		slog.Warn(msg, args...)
	case ERROR:
		slog.Error(msg, args...)
	default:
		slog.Info(msg, args...)
	}
}
