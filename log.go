package streamjson

import "github.com/sirupsen/logrus"

// Logger is the one-level-per-method logging capability the parser and CLI
// depend on. The parser never logs on its own hot path; Config.Logger lets
// an embedder opt in.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

var defaultLogger Logger = noopLogger{}

// logrusLogger adapts a logrus.FieldLogger to Logger.
type logrusLogger struct {
	l logrus.FieldLogger
}

// NewLogrusLogger wraps l as a Logger.
func NewLogrusLogger(l logrus.FieldLogger) Logger {
	return logrusLogger{l: l}
}

func (g logrusLogger) Debugf(format string, args ...interface{}) { g.l.Debugf(format, args...) }
func (g logrusLogger) Infof(format string, args ...interface{})  { g.l.Infof(format, args...) }
func (g logrusLogger) Warnf(format string, args ...interface{})  { g.l.Warnf(format, args...) }
func (g logrusLogger) Errorf(format string, args ...interface{}) { g.l.Errorf(format, args...) }
