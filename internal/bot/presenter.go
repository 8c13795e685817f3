// Package bot adapts the navigator to telebot updates.
package bot

import (
	"context"
	"strings"

	"github.com/m3rciful/chroniclebot/core/telegram/helpers"
	"github.com/m3rciful/chroniclebot/core/telegram/keyboard"
	"github.com/m3rciful/chroniclebot/internal/navigator"

	tele "gopkg.in/telebot.v4"
)

// errNotModified is the Bot API description for an edit that changes nothing.
const errNotModified = "message is not modified"

// Presenter renders navigator screens into the chat of one update.
type Presenter struct {
	c tele.Context
}

// NewPresenter returns a Presenter bound to c.
func NewPresenter(c tele.Context) *Presenter {
	return &Presenter{c: c}
}

// Render edits the message carrying the pressed button, or sends a new
// message for commands. Re-rendering an identical screen is not an error.
func (p *Presenter) Render(_ context.Context, s navigator.Screen) error {
	markup := Markup(s.Options)
	if p.c.Callback() == nil {
		return helpers.SendMD(p.c, s.Text, markup)
	}
	err := helpers.EditOrSendMD(p.c, s.Text, markup)
	if err != nil && strings.Contains(err.Error(), errNotModified) {
		return nil
	}
	return err
}

// Acknowledge answers the callback query so the client stops its spinner.
func (p *Presenter) Acknowledge(context.Context) error {
	if p.c.Callback() == nil {
		return nil
	}
	return p.c.Respond()
}

// Markup lays out options one per row; each button sends its code back verbatim.
func Markup(opts []navigator.Option) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(opts))
	for _, o := range opts {
		buttons = append(buttons, keyboard.InlineBtn{Text: o.Label, Data: o.Code})
	}
	return keyboard.InlineButtons(buttons)
}
