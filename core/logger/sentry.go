package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/m3rciful/chroniclebot/core/buildinfo"
)

// sentryHandler forwards error-level records to Sentry before delegating.
type sentryHandler struct {
	next      slog.Handler
	component string
}

func newSentryHandler(next slog.Handler, dsn, environment string) (slog.Handler, func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     buildinfo.Version,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("sentry init: %w", err)
	}
	flush := func() { sentry.Flush(2 * time.Second) }
	return &sentryHandler{next: next}, flush, nil
}

// Enabled reports whether the wrapped handler handles records at the given level.
func (h *sentryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle captures error records and passes every record through.
func (h *sentryHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		h.capture(ctx, r)
	}
	return h.next.Handle(ctx, r)
}

func (h *sentryHandler) capture(ctx context.Context, r slog.Record) {
	event := r.Message
	var cause error
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "event":
			if event == "" {
				event = a.Value.String()
			}
		case "err", "error":
			if e, ok := a.Value.Any().(error); ok {
				cause = e
			} else {
				cause = errors.New(a.Value.String())
			}
		}
		return true
	})

	sentry.WithScope(func(scope *sentry.Scope) {
		if h.component != "" {
			scope.SetTag("component", h.component)
		}
		if rid := RIDFrom(ctx); rid != "" {
			scope.SetTag("rid", rid)
		}
		if cause != nil {
			sentry.CaptureException(fmt.Errorf("%s: %w", event, cause))
			return
		}
		sentry.CaptureMessage(event)
	})
}

// WithAttrs remembers the component attribute for tagging.
func (h *sentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := &sentryHandler{next: h.next.WithAttrs(attrs), component: h.component}
	for _, a := range attrs {
		if a.Key == "component" {
			clone.component = a.Value.String()
		}
	}
	return clone
}

// WithGroup returns a new handler with the given group name.
func (h *sentryHandler) WithGroup(name string) slog.Handler {
	return &sentryHandler{next: h.next.WithGroup(name), component: h.component}
}
