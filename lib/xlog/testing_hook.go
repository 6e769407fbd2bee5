package xlog

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
)

// TestingHook forwards log entries to the test log
type TestingHook struct {
	t testing.TB
}

// NewTestingHook returns a hook that writes log entries to t
func NewTestingHook(t testing.TB) *TestingHook {
	return &TestingHook{t: t}
}

func (hook *TestingHook) Fire(e *logrus.Entry) error {
	if len(e.Data) == 0 {
		hook.t.Log(e.Level, e.Message)
		return nil
	}
	hook.t.Log(e.Level, e.Message, fmt.Sprint(e.Data))
	return nil
}

// Levels returns logging levels supported by logrus
func (hook *TestingHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
		logrus.DebugLevel,
	}
}

// NewLogger returns logger which prints entries at or above consoleLevel to console
// and everything to the test log
func NewLogger(t testing.TB, consoleLevel logrus.Level, commonFields logrus.Fields) logrus.FieldLogger {
	log := ConsoleLogger(consoleLevel)
	log.Hooks.Add(NewTestingHook(t))
	return log.WithFields(commonFields)
}
