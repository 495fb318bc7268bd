package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger is a logger whose entries are kept in memory for assertions.
type TestLogger struct {
	*zerolog.Logger
	out *capture
}

// capture is a bytes.Buffer safe for concurrent writers.
type capture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *capture) snapshot(reset bool) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.buf.String()
	if reset {
		c.buf.Reset()
	}
	return s
}

// NewTestLogger returns a TestLogger that records every level. The global
// level is lowered to trace until t finishes.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	out := &capture{}
	l := zerolog.New(out).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	return &TestLogger{Logger: &l, out: out}
}

// Output returns everything logged so far.
func (tl *TestLogger) Output() string { return tl.out.snapshot(false) }

// Lines returns one string per logged entry.
func (tl *TestLogger) Lines() []string {
	s := strings.TrimSpace(tl.Output())
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}

// Count returns the number of logged entries.
func (tl *TestLogger) Count() int { return len(tl.Lines()) }

// Contains reports whether any entry contains substr.
func (tl *TestLogger) Contains(substr string) bool {
	return strings.Contains(tl.Output(), substr)
}

// Clear drops everything logged so far.
func (tl *TestLogger) Clear() { tl.out.snapshot(true) }

func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if out := tl.Output(); !strings.Contains(out, substr) {
		t.Errorf("log output missing %q\n%s", substr, out)
	}
}

func (tl *TestLogger) AssertNotContains(t testing.TB, substr string) {
	t.Helper()
	if out := tl.Output(); strings.Contains(out, substr) {
		t.Errorf("log output unexpectedly has %q\n%s", substr, out)
	}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// CaptureLoggingForTest swaps the default logger for a TestLogger until t
// finishes.
func CaptureLoggingForTest(t testing.TB) *TestLogger {
	t.Helper()

	prev := *Default()
	tl := NewTestLogger(t)
	SetDefault(*tl.Logger)
	t.Cleanup(func() { SetDefault(prev) })
	return tl
}
