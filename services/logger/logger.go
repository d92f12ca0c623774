package logger

import "github.com/sirupsen/logrus"

// Level defines the supported log levels
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

// Logger is the logging interface services depend on
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// DefaultLogger implements Logger on top of logrus
type DefaultLogger struct {
	log *logrus.Logger
}

// NewDefaultLogger creates a DefaultLogger at the given level
func NewDefaultLogger(level Level) *DefaultLogger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	switch level {
	case DebugLevel:
		log.SetLevel(logrus.DebugLevel)
	case ErrorLevel:
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
	return &DefaultLogger{log: log}
}

// Info logs at info level
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

// Error logs at error level
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.log.Errorf(format, v...)
}

// Debug logs at debug level
func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.log.Debugf(format, v...)
}
