package util

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Output is a log output destination
type Output interface {
	Write(record LogRecord) error
	Close() error
}

// LogRecord is a single diagnostic record emitted by the engine itself
// (not to be confused with the log entries the engine analyzes).
type LogRecord struct {
	Timestamp time.Time
	Level     string
	Message   string
}

// Logger provides leveled logging to one or more outputs
type Logger struct {
	level   LogLevel
	outputs []Output
	mu      sync.RWMutex
}

// NewLogger creates a logger writing at the given level to the given outputs.
func NewLogger(levelStr string, outputs ...Output) *Logger {
	return &Logger{
		level:   parseLogLevel(levelStr),
		outputs: outputs,
	}
}

func parseLogLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func levelToString(level LogLevel) string {
	switch level {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level LogLevel, msg string) {
	if l.level > level {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	record := LogRecord{
		Timestamp: time.Now(),
		Level:     levelToString(level),
		Message:   msg,
	}
	for _, output := range l.outputs {
		if err := output.Write(record); err != nil {
			log.Printf("Failed to write log record: %v", err)
		}
	}
}

func (l *Logger) Debug(msg string) { l.log(LevelDebug, msg) }
func (l *Logger) Info(msg string)  { l.log(LevelInfo, msg) }
func (l *Logger) Warn(msg string)  { l.log(LevelWarn, msg) }
func (l *Logger) Error(msg string) { l.log(LevelError, msg) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, args...))
}
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(LevelWarn, fmt.Sprintf(format, args...))
}
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, args...))
}

// AddOutput attaches another output destination.
func (l *Logger) AddOutput(output Output) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outputs = append(l.outputs, output)
}

var (
	globalLogger *Logger
	loggerOnce   sync.Once
)

// InitLogger initializes the process-wide logger. debugToConsole mirrors
// diagnostics to stderr in addition to the log file.
func InitLogger(levelStr, logFile string, debugToConsole bool) error {
	var initErr error
	loggerOnce.Do(func() {
		var outputs []Output
		if debugToConsole {
			outputs = append(outputs, NewConsoleOutput())
		}
		if logFile != "" {
			fileOutput, err := NewFileOutput(logFile)
			if err != nil {
				initErr = fmt.Errorf("open log file %s: %w", logFile, err)
				return
			}
			outputs = append(outputs, fileOutput)
		}
		globalLogger = NewLogger(levelStr, outputs...)
	})
	return initErr
}

func LogDebug(msg string) {
	if globalLogger != nil {
		globalLogger.Debug(msg)
	}
}

func LogInfo(msg string) {
	if globalLogger != nil {
		globalLogger.Info(msg)
	}
}

func LogWarn(msg string) {
	if globalLogger != nil {
		globalLogger.Warn(msg)
	}
}

func LogError(msg string) {
	if globalLogger != nil {
		globalLogger.Error(msg)
	}
}
