package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/chroniclebot/core/logger"
	"github.com/m3rciful/chroniclebot/core/metrics"
	tghelpers "github.com/m3rciful/chroniclebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// Update kinds used for rate limit exclusions and metrics labels.
const (
	KindCallback    = "callback"
	KindMessage     = "message"
	KindInlineQuery = "inline_query"
	KindOther       = "other"
)

// UpdateKind classifies the update carried by c.
func UpdateKind(c tele.Context) string {
	upd := c.Update()
	switch {
	case upd.Callback != nil:
		return KindCallback
	case upd.Message != nil:
		return KindMessage
	case upd.Query != nil:
		return KindInlineQuery
	default:
		return KindOther
	}
}

// RateLimitOptions configures behaviour of the rate limit middleware.
// OnLimited defaults to AnswerCallback.
type RateLimitOptions struct {
	Interval  time.Duration
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
	Metrics   *metrics.Collector

	now func() time.Time
}

// userWindow remembers when each user was last let through.
type userWindow struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[int64]time.Time
}

func newUserWindow(interval time.Duration) *userWindow {
	return &userWindow{interval: interval, last: make(map[int64]time.Time)}
}

// allow reports whether userID may pass at ts and records it if so.
// Entries older than the interval are dropped on every call.
func (w *userWindow) allow(userID int64, ts time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id, last := range w.last {
		if ts.Sub(last) >= w.interval {
			delete(w.last, id)
		}
	}
	if _, ok := w.last[userID]; ok {
		return false
	}
	w.last[userID] = ts
	return true
}

func (w *userWindow) size() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.last)
}

// AnswerCallback answers a dropped button press so the client stops its
// spinner. Other updates are left alone.
func AnswerCallback(c tele.Context) error {
	if c.Callback() == nil {
		return nil
	}
	return c.Respond()
}

// RateLimitMiddleware returns a middleware that enforces a minimum interval
// between updates from the same user. Limited updates are passed to
// OnLimited instead of the handler.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	window := newUserWindow(opts.Interval)
	now := opts.now
	if now == nil {
		now = time.Now
	}
	onLimited := opts.OnLimited
	if onLimited == nil {
		onLimited = AnswerCallback
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}
			if _, skip := opts.Exclude[UpdateKind(c)]; skip {
				return next(c)
			}

			if !window.allow(user.ID, now()) {
				logger.LogEvent(tghelpers.BuildContext(c), logger.TG, slog.LevelWarn, "tg.rate_limit",
					slog.String("outcome", "rate_limited"),
					slog.String("kind", UpdateKind(c)),
				)
				opts.Metrics.ObserveRateLimited()
				if err := onLimited(c); err != nil {
					logger.LogEvent(tghelpers.BuildContext(c), logger.TG, slog.LevelWarn, "tg.rate_limit",
						slog.String("status", "fail"),
						slog.String("err", err.Error()),
					)
				}
				return nil
			}
			return next(c)
		}
	}
}
