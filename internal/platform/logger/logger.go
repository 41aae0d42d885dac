// Package logger builds the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to stdout. Development uses the text
// formatter; every other environment logs JSON.
func New(appName, env, level string) *logrus.Logger {
	return newWithOutput(os.Stdout, appName, env, level)
}

func newWithOutput(out io.Writer, appName, env, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	if env == "development" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	l.WithFields(logrus.Fields{"app": appName, "env": env, "level": lvl.String()}).Info("logger initialized")
	return l
}

// Discard returns a logger that drops everything. Used by tests and tools.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
