package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetLevel sets the log level from its string name; unknown names fall back
// to info.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
}

// SetFormat selects the output format: "json" for structured logging,
// anything else keeps the text formatter.
func SetFormat(format string) {
	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
		return
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetOutput sets the output for all log entries
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// WithFields creates a new entry with the given fields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

// WithField creates a new entry with a single field
func WithField(key string, value any) *logrus.Entry {
	return log.WithField(key, value)
}

// WithError creates a new entry with an error field
func WithError(err error) *logrus.Entry {
	return log.WithError(err)
}

// Debug logs a debug message
func Debug(format string, v ...any) {
	log.Debugf(format, v...)
}

// Info logs an info message
func Info(format string, v ...any) {
	log.Infof(format, v...)
}

// Warn logs a warning message
func Warn(format string, v ...any) {
	log.Warnf(format, v...)
}

// Error logs an error message
func Error(format string, v ...any) {
	log.Errorf(format, v...)
}
