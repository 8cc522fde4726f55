package session

import (
	"context"
	"log/slog"
)

// Router fans out resolutions to all configured loggers. One logger error
// does not block the others — errors are logged and the first encountered
// is returned.
type Router struct {
	loggers []Logger
	log     *slog.Logger
}

// NewRouter creates a fan-out router delivering to all loggers.
func NewRouter(log *slog.Logger, loggers ...Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{loggers: loggers, log: log}
}

func (r *Router) LogResolved(ctx context.Context, res *Resolved) error {
	var firstErr error
	for _, l := range r.loggers {
		if err := l.LogResolved(ctx, res); err != nil {
			r.log.Warn("session: log resolved failed", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (r *Router) Close() error {
	var firstErr error
	for _, l := range r.loggers {
		if err := l.Close(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
