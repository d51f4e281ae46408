// Package logging provides component-tagged file logging for pagesage.
//
// Every process gets one session id; all components append to the same
// session file under ~/.pagesage/logs so a single request can be followed
// from the popup through the orchestrator to the page extractor.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level is a log severity. Messages below the logger's level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag written into each log line.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name (debug, info, warn, error) to a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger writes structured lines for a single component.
type Logger struct {
	sessionID string
	component string
	level     Level
	file      *os.File
	logger    *log.Logger
	mu        *sync.Mutex
	logPath   string
	closeOnce *sync.Once
}

var (
	sessionID     string
	sessionIDOnce sync.Once

	dirMu       sync.Mutex
	logDir      string
	logDirReady bool

	defaultLevel = LevelInfo
)

func getSessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

// SetLogDirectory overrides the directory log files are written to.
// It must be called before the first logger is created to take effect for it.
func SetLogDirectory(dir string) {
	dirMu.Lock()
	defer dirMu.Unlock()
	logDir = dir
	logDirReady = false
}

// SetDefaultLevel sets the level for loggers created afterwards.
func SetDefaultLevel(level Level) {
	dirMu.Lock()
	defer dirMu.Unlock()
	defaultLevel = level
}

func ensureLogDirectory() (string, error) {
	dirMu.Lock()
	defer dirMu.Unlock()

	if logDirReady {
		return logDir, nil
	}

	if logDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		logDir = filepath.Join(homeDir, ".pagesage", "logs")
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	logDirReady = true
	return logDir, nil
}

// NewLogger creates a logger for component writing to
// <log dir>/<session-id>-pagesage.log.
//
// When the file cannot be opened the returned logger writes to stderr and the
// error is returned alongside it, so callers may keep going.
func NewLogger(component string) (*Logger, error) {
	dir, err := ensureLogDirectory()
	if err != nil {
		return newStreamLogger(component, os.Stderr, err), err
	}

	sessID := getSessionID()
	logPath := filepath.Join(dir, sessID+"-pagesage.log")

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		err = fmt.Errorf("failed to open log file: %w", err)
		return newStreamLogger(component, os.Stderr, err), err
	}

	return &Logger{
		sessionID: sessID,
		component: component,
		level:     currentDefaultLevel(),
		file:      file,
		logger:    log.New(file, "", 0),
		mu:        &sync.Mutex{},
		logPath:   logPath,
		closeOnce: &sync.Once{},
	}, nil
}

// Discard returns a logger that drops everything. Useful as a default.
func Discard(component string) *Logger {
	return newStreamLogger(component, io.Discard, nil)
}

func currentDefaultLevel() Level {
	dirMu.Lock()
	defer dirMu.Unlock()
	return defaultLevel
}

func newStreamLogger(component string, w io.Writer, cause error) *Logger {
	l := &Logger{
		sessionID: getSessionID(),
		component: component,
		level:     currentDefaultLevel(),
		logger:    log.New(w, "", 0),
		mu:        &sync.Mutex{},
		closeOnce: &sync.Once{},
	}
	if cause != nil {
		l.Warnf("file logging unavailable, using stderr: %v", cause)
	}
	return l
}

// Named returns a logger for another component sharing this logger's output.
func (l *Logger) Named(component string) *Logger {
	child := *l
	child.component = component
	return &child
}

// SetLevel changes the minimum level written by this logger.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) write(level Level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, v...)
	l.logger.Printf("[%s] [%s] [%s] %s", timestamp, l.component, level, message)
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, v ...interface{}) { l.write(LevelDebug, format, v...) }

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...interface{}) { l.write(LevelInfo, format, v...) }

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, v ...interface{}) { l.write(LevelWarn, format, v...) }

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...interface{}) { l.write(LevelError, format, v...) }

// SessionID returns the process-wide session id.
func (l *Logger) SessionID() string {
	return l.sessionID
}

// LogPath returns the file this logger writes to, or "" for stream loggers.
func (l *Logger) LogPath() string {
	return l.logPath
}

// Close closes the underlying file. Safe to call multiple times; loggers
// returned by Named share the file and must not be closed separately.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}

// GetSessionID returns the process-wide session id.
func GetSessionID() string {
	return getSessionID()
}
