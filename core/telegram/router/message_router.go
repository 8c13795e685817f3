package router

import (
	"time"

	"github.com/m3rciful/chroniclebot/core/metrics"
	tg "github.com/m3rciful/chroniclebot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// TextOptions configures the free text route.
type TextOptions struct {
	Metrics *metrics.Collector
}

// TextRoutes builds the handler for free text. Text naming a command (for
// example "start" without the slash) runs that command; anything else is
// logged as skipped.
func TextRoutes(reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		s := summary{start: start, metrics: opts.Metrics}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Handler != nil {
				s.handler = "command." + normalizeHandlerName(key)
				return handleWithSummary(c, s, func() error { return cmd.Handler(c) })
			}
		}

		s.handler, s.status, s.outcome = "unknown_text", "skip", "noop"
		logHandlerSummary(c, s, nil)
		return nil
	}

	return []tg.Route{{Endpoint: tele.OnText, Handler: handler}}
}
