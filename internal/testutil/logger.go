// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger routes debug-level slog output into tb.Log, so engine and
// storage logs show up next to the failing test.
func NewTestLogger(tb testing.TB) *slog.Logger {
	tb.Helper()
	h := slog.NewTextHandler(tbWriter{tb: tb}, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h)
}

type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
