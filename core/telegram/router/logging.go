// Package router binds registry entries to telebot endpoints and logs one
// summary line per handled update.
package router

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/m3rciful/chroniclebot/core/logger"
	"github.com/m3rciful/chroniclebot/core/metrics"
	tghelpers "github.com/m3rciful/chroniclebot/core/telegram/helpers"
	"github.com/m3rciful/chroniclebot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// summary describes how a handler invocation is reported.
type summary struct {
	handler string
	start   time.Time
	status  string
	outcome string
	extras  []slog.Attr
	metrics *metrics.Collector
}

func handleWithSummary(c tele.Context, s summary, fn func() error) error {
	tghelpers.WithHandler(c, s.handler)
	err := fn()
	logHandlerSummary(c, s, err)
	return err
}

func logHandlerSummary(c tele.Context, s summary, err error) {
	ctx := tghelpers.WithHandler(c, s.handler)
	msgs, kb := middleware.GetCounters(c)

	status := s.status
	if status == "" {
		status = logger.Status(err)
	}
	outcome := s.outcome
	if outcome == "" {
		outcome = logger.Status(err)
	}
	took := time.Since(s.start)

	attrs := []slog.Attr{
		slog.String("status", status),
		slog.String("handler", s.handler),
		slog.String("outcome", outcome),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Duration("duration", took),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", deriveErrorCode(err)),
		)
	}
	attrs = append(attrs, s.extras...)

	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
	}
	logger.LogEvent(ctx, logger.TG, level, "handler.handled", attrs...)
	s.metrics.ObserveHandler(s.handler, status, took)
}

func normalizeHandlerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	name = strings.TrimPrefix(name, "/")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

// deriveErrorCode prefers a Code() method anywhere in the chain and falls back to the type name.
func deriveErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var c interface{ Code() string }
	if errors.As(err, &c) {
		if code := strings.TrimSpace(c.Code()); code != "" {
			return strings.ToUpper(strings.ReplaceAll(code, " ", "_"))
		}
	}
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Name() != "" {
		return strings.ToUpper(t.Name())
	}
	return "UNKNOWN_ERROR"
}
