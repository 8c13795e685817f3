package navigator

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m3rciful/chroniclebot/core/logger"
)

// Selection outcomes reported to the Observer.
const (
	OutcomeOK          = "ok"
	OutcomeNoop        = "noop"
	OutcomeUnavailable = "unavailable"
	OutcomeFail        = "fail"
)

// Presenter shows screens to the user on behalf of the navigator.
type Presenter interface {
	// Render replaces the current message with s, or sends a new one on session start.
	Render(ctx context.Context, s Screen) error
	// Acknowledge confirms a button press to the messaging client.
	Acknowledge(ctx context.Context) error
}

// Serve handles sel and renders the result through p.
//
// Button presses are acknowledged before anything else. Unknown selections
// render nothing. A selection pointing outside the content tables is logged
// and answered with the Unavailable screen. Render errors are returned as is.
func (n *Navigator) Serve(ctx context.Context, p Presenter, sel Selection) error {
	if sel.Kind != KindStart {
		if err := p.Acknowledge(ctx); err != nil {
			logger.LogEvent(ctx, logger.NAV, slog.LevelWarn, "selection.ack_failed",
				slog.String("code", sel.Raw),
				slog.Any("err", err),
			)
		}
	}

	screen, ok, err := n.Handle(sel)
	if err != nil {
		var ie *IndexError
		var ke *KeyError
		if !errors.As(err, &ie) && !errors.As(err, &ke) {
			n.observeSelection(OutcomeFail)
			return err
		}
		logger.LogEvent(ctx, logger.NAV, slog.LevelWarn, "selection.unavailable",
			slog.String("outcome", OutcomeUnavailable),
			slog.String("code", logger.SanitizeLimit(sel.Raw, 64)),
			slog.Any("err", err),
		)
		n.observeSelection(OutcomeUnavailable)
		return n.render(ctx, p, Unavailable())
	}
	if !ok {
		if logger.ShouldSampleDebug() {
			logger.LogEvent(ctx, logger.NAV, slog.LevelDebug, "selection.ignored",
				slog.String("outcome", OutcomeNoop),
				slog.String("code", logger.SanitizeLimit(sel.Raw, 64)),
			)
		}
		n.observeSelection(OutcomeNoop)
		return nil
	}

	n.observeSelection(OutcomeOK)
	return n.render(ctx, p, screen)
}

func (n *Navigator) render(ctx context.Context, p Presenter, s Screen) error {
	if err := p.Render(ctx, s); err != nil {
		return err
	}
	if n.observer != nil {
		n.observer.ObserveScreen(s.Name)
	}
	return nil
}

func (n *Navigator) observeSelection(outcome string) {
	if n.observer != nil {
		n.observer.ObserveSelection(outcome)
	}
}
