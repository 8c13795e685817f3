package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/chroniclebot/core/logger"
	"github.com/m3rciful/chroniclebot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/chroniclebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

const dedupWindow = 10 * time.Second

// seenUpdates remembers recently logged update IDs so that a middleware
// applied on several branches logs each update once.
type seenUpdates struct {
	mu   sync.Mutex
	seen map[int]time.Time
}

var recent = &seenUpdates{seen: make(map[int]time.Time)}

func (s *seenUpdates) firstTime(updateID int, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ts := range s.seen {
		if now.Sub(ts) > dedupWindow {
			delete(s.seen, id)
		}
	}
	if _, ok := s.seen[updateID]; ok {
		return false
	}
	s.seen[updateID] = now
	return true
}

// LoggerMiddleware builds the request context (rid, update metadata) and
// logs one sampled debug line per received update.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		upd := c.Update()

		if logger.ShouldSampleDebug() && recent.firstTime(upd.ID, time.Now()) {
			attrs := []slog.Attr{
				slog.String("status", "ok"),
				slog.String("kind", UpdateKind(c)),
			}
			if chat := c.Chat(); chat != nil {
				attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
			}
			if user := c.Sender(); user != nil {
				if user.Username != "" {
					attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
				}
				if user.LanguageCode != "" {
					attrs = append(attrs, slog.String("lang", user.LanguageCode))
				}
			}
			switch {
			case upd.Callback != nil:
				attrs = append(attrs, slog.String("code", logger.SanitizeLimit(callbacks.CodeOf(upd.Callback), 64)))
			case upd.Message != nil:
				if t := c.Text(); t != "" {
					attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
				}
			}
			logger.LogEvent(ctx, logger.TG, slog.LevelDebug, "update.received", attrs...)
		}

		return next(c)
	}
}
