package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Detail controls which locator grammars a logger reports.
type Detail int

const (
	DetailNone Detail = iota
	DetailXPathOnly
	DetailCSSOnly
	DetailBoth
)

// LogsXPath reports whether the XPath locator should be included.
func (d Detail) LogsXPath() bool { return d == DetailXPathOnly || d == DetailBoth }

// LogsCSS reports whether the CSS locator should be included.
func (d Detail) LogsCSS() bool { return d == DetailCSSOnly || d == DetailBoth }

func (d Detail) String() string {
	switch d {
	case DetailNone:
		return "none"
	case DetailXPathOnly:
		return "xpath_only"
	case DetailCSSOnly:
		return "css_only"
	case DetailBoth:
		return "both"
	}
	return fmt.Sprintf("detail(%d)", int(d))
}

// Logger receives every successful resolution. Implementations deliver the
// record to different backends (slog, a writer, the sqlite journal).
//
// Implementations must be comparable, in practice pointer types: the
// resolution cache compares loggers by identity when deciding whether a
// cached entry is still coherent, and a non-comparable implementation
// would panic there.
type Logger interface {
	LogResolved(ctx context.Context, res *Resolved) error
	Close() error
}

// SlogLogger reports resolutions through structured logging.
type SlogLogger struct {
	log    *slog.Logger
	detail Detail
}

// NewSlogLogger builds a logger writing to log at the given detail.
// A nil log falls back to slog.Default().
func NewSlogLogger(log *slog.Logger, detail Detail) *SlogLogger {
	if log == nil {
		log = slog.Default()
	}
	return &SlogLogger{log: log, detail: detail}
}

func (l *SlogLogger) LogResolved(ctx context.Context, res *Resolved) error {
	if res == nil {
		return nil
	}
	attrs := []any{"intent", res.Phrase, "role", res.Role.String()}
	if l.detail.LogsXPath() {
		attrs = append(attrs, "xpath", res.XPath)
	}
	if l.detail.LogsCSS() {
		attrs = append(attrs, "css", res.CSS)
	}
	if res.Element != nil {
		attrs = append(attrs, "id", res.Element.ID, "name", res.Element.Name)
	}
	l.log.InfoContext(ctx, "intent resolved", attrs...)
	return nil
}

func (l *SlogLogger) Close() error { return nil }

// WriterLogger prints one line per resolution to an io.Writer. Useful for
// test output and quick debugging sessions.
type WriterLogger struct {
	w      io.Writer
	detail Detail
}

func NewWriterLogger(w io.Writer, detail Detail) *WriterLogger {
	return &WriterLogger{w: w, detail: detail}
}

func (l *WriterLogger) LogResolved(ctx context.Context, res *Resolved) error {
	if res == nil || l.w == nil {
		return nil
	}
	line := fmt.Sprintf("intent=%q, role=%s", res.Phrase, res.Role)
	if l.detail.LogsXPath() {
		line += ", xpath=" + res.XPath
	}
	if l.detail.LogsCSS() {
		line += ", css=" + res.CSS
	}
	if res.Element != nil {
		line += fmt.Sprintf(", id=%s, name=%s", res.Element.ID, res.Element.Name)
	}
	_, err := fmt.Fprintln(l.w, line)
	return err
}

func (l *WriterLogger) Close() error { return nil }
