package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/chroniclebot/core/logger"
	"github.com/m3rciful/chroniclebot/core/metrics"
	tg "github.com/m3rciful/chroniclebot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	Metrics *metrics.Collector
}

// CommandRoutes binds every registered command and its aliases to a handler
// that reports a summary line.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for name, def := range reg.Commands() {
		cmdName := normalizeHandlerName(name)
		h := def.Handler
		wrapped := func(c tele.Context) error {
			return handleWithSummary(c, summary{
				handler: "command." + cmdName,
				start:   time.Now(),
				metrics: opts.Metrics,
			}, func() error { return h(c) })
		}
		routes = append(routes, tg.Route{Endpoint: name, Handler: wrapped})
		for _, alias := range def.Aliases {
			if alias == "" {
				continue
			}
			if alias[0] != '/' {
				alias = "/" + alias
			}
			routes = append(routes, tg.Route{Endpoint: alias, Handler: wrapped})
		}
	}

	logger.LogEvent(context.Background(), logger.TWire, slog.LevelInfo, "complete",
		slog.Int("commands", len(reg.Commands())),
		slog.Int("routes", len(routes)),
	)
	return routes
}
