package logger

import (
	"fmt"
	"time"
)

// logEntry is a single rendered log line together with the level it was
// produced at, handed off from a Logger to its Backend's write goroutine.
type logEntry struct {
	level Level
	log   []byte
}

// Logger writes log messages for a single subsystem to a shared Backend.
// A Logger is safe for concurrent use.
type Logger struct {
	level        Level
	subsystemTag string
	backend      *Backend
	writeChan    chan logEntry
}

// Backend returns the Backend this Logger writes to.
func (l *Logger) Backend() *Backend {
	return l.backend
}

// Level returns the current logging level of the logger.
func (l *Logger) Level() Level {
	return Level(l.level)
}

// SetLevel changes the logging level of the logger.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) write(level Level, s string) {
	if l.level > level {
		return
	}
	now := time.Now().Format("2006-01-02 15:04:05.000")
	line := fmt.Sprintf("%s [%s] %s %s\n", now, level, l.subsystemTag, s)
	select {
	case l.writeChan <- logEntry{level: level, log: []byte(line)}:
	default:
		// The backend isn't running (Run was never called) or is saturated;
		// fall back to stdout so nothing is silently lost during tests.
		fmt.Print(line)
	}
}

// Tracef formats and writes a trace-level log message.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.write(LevelTrace, fmt.Sprintf(format, args...))
}

// Debugf formats and writes a debug-level log message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.write(LevelDebug, fmt.Sprintf(format, args...))
}

// Infof formats and writes an info-level log message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf formats and writes a warn-level log message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf formats and writes an error-level log message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(LevelError, fmt.Sprintf(format, args...))
}

// Criticalf formats and writes a critical-level log message.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.write(LevelCritical, fmt.Sprintf(format, args...))
}

// Trace writes a trace-level log message.
func (l *Logger) Trace(args ...interface{}) {
	l.write(LevelTrace, fmt.Sprint(args...))
}

// Warn writes a warn-level log message.
func (l *Logger) Warn(args ...interface{}) {
	l.write(LevelWarn, fmt.Sprint(args...))
}
