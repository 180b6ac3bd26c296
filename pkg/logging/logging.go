// Package logging wraps sirupsen/logrus with a one-line-per-request idiom
// adapted to a query's lifecycle: one structured event per phase
// transition rather than one per storage operation.
package logging

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger emits query lifecycle events. It wraps an unexported
// *logrus.Entry; WithFields and SetOutput are the only pass-throughs to it.
type Logger struct {
	entry *logrus.Entry
}

// New builds a Logger writing JSON-formatted entries at the given level
// ("debug", "info", "warn", "error", case-insensitive).
func New(level string) *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	return &Logger{entry: logrus.NewEntry(l)}
}

// WithFields returns a Logger carrying additional fields on every
// subsequent event, mirroring logrus.Entry.WithFields.
func (l *Logger) WithFields(fields logrus.Fields) *Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

// SetOutput redirects where log entries are written; tests use this to
// capture output instead of writing to logrus's stderr default.
func (l *Logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

// QueryStart logs the beginning of a query run.
func (l *Logger) QueryStart(queryText string) {
	l.entry.WithField("query", queryText).Info("query.start")
}

// QueryCommit logs a successfully committed query run.
func (l *Logger) QueryCommit(queryText string, elapsed time.Duration, rows int) {
	l.entry.WithFields(logrus.Fields{
		"query":   queryText,
		"elapsed": elapsed.String(),
		"rows":    rows,
	}).Info("query.commit")
}

// QueryError logs a query run that failed before or during execution;
// errorKind should be the failing error's cerr.Kind.String() when
// available, so log lines are groupable by failure category.
func (l *Logger) QueryError(queryText string, elapsed time.Duration, errorKind string, err error) {
	l.entry.WithFields(logrus.Fields{
		"query":      queryText,
		"elapsed":    elapsed.String(),
		"error_kind": errorKind,
		"error":      err.Error(),
	}).Error("query.error")
}
