package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

type recordingLogger struct {
	calls  int
	closed bool
	err    error
}

func (l *recordingLogger) LogResolved(ctx context.Context, res *Resolved) error {
	l.calls++
	return l.err
}

func (l *recordingLogger) Close() error {
	l.closed = true
	return l.err
}

func quietSlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRouter_FansOutToAllLoggers(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}
	r := NewRouter(quietSlog(), a, b)

	if err := r.LogResolved(context.Background(), sampleResolved()); err != nil {
		t.Fatalf("LogResolved: %v", err)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("calls = %d, %d, want 1, 1", a.calls, b.calls)
	}
}

func TestRouter_FirstErrorReturnedOthersStillCalled(t *testing.T) {
	boom := errors.New("boom")
	failing := &recordingLogger{err: boom}
	after := &recordingLogger{}
	r := NewRouter(quietSlog(), failing, after)

	err := r.LogResolved(context.Background(), sampleResolved())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the first logger's error", err)
	}
	if after.calls != 1 {
		t.Error("a failing logger must not block the rest")
	}
}

func TestRouter_CloseClosesAll(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{err: errors.New("close failed")}
	r := NewRouter(quietSlog(), a, b)

	if err := r.Close(); err == nil {
		t.Error("expected close error to propagate")
	}
	if !a.closed || !b.closed {
		t.Error("all loggers must be closed")
	}
}
