package router

import (
	"log/slog"
	"time"

	"github.com/m3rciful/chroniclebot/core/logger"
	"github.com/m3rciful/chroniclebot/core/metrics"
	tg "github.com/m3rciful/chroniclebot/core/telegram"
	"github.com/m3rciful/chroniclebot/core/telegram/callbacks"

	tele "gopkg.in/telebot.v4"
)

// CallbackOptions configures the callback route.
type CallbackOptions struct {
	Metrics *metrics.Collector
	// Name maps a callback code onto a bounded handler name for logs and
	// metrics. Without it every callback is reported as "callback".
	Name func(code string) string
}

// CallbackRoute returns the route that hands every inline button press to the
// registry's callback handler.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}
		code := callbacks.Code(c)
		s := summary{
			handler: opts.name(code),
			start:   start,
			extras:  []slog.Attr{slog.String("code", logger.SanitizeLimit(code, 64))},
			metrics: opts.Metrics,
		}
		return handleWithSummary(c, s, func() error {
			return reg.CallbackHandler()(c)
		})
	}
	return tg.Route{Endpoint: tele.OnCallback, Handler: handler}
}

func (o CallbackOptions) name(code string) string {
	if o.Name == nil {
		return "callback"
	}
	return "callback." + normalizeHandlerName(o.Name(code))
}
