package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logger for one binary. format is "json" or "text"; unknown levels fall back to info.
func New(component, level, format string) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l.WithField("component", component)
}

// Discard returns a logger that drops everything.
func Discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// OrDiscard returns logger, or a discarding logger when it is nil.
func OrDiscard(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger == nil {
		return Discard()
	}
	return logger
}
