// Package middleware holds the bot-wide telebot middlewares.
package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/m3rciful/chroniclebot/core/logger"
	tghelpers "github.com/m3rciful/chroniclebot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// ErrPanic is returned for an update whose handler panicked.
type ErrPanic struct {
	Value any
}

func (e *ErrPanic) Error() string { return fmt.Sprintf("handler panic: %v", e.Value) }

// Code identifies the error in handler summaries.
func (e *ErrPanic) Code() string { return "PANIC" }

// RecoverMiddleware catches panics in handlers and prevents the bot from crashing.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.LogEvent(tghelpers.BuildContext(c), logger.TG, slog.LevelError, "tg.panic",
					slog.String("status", "fail"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
				err = &ErrPanic{Value: r}
			}
		}()
		return next(c)
	}
}
