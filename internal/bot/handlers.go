package bot

import (
	"github.com/m3rciful/chroniclebot/core/telegram"
	"github.com/m3rciful/chroniclebot/core/telegram/callbacks"
	"github.com/m3rciful/chroniclebot/core/telegram/commands"
	"github.com/m3rciful/chroniclebot/core/telegram/helpers"
	"github.com/m3rciful/chroniclebot/internal/navigator"

	tele "gopkg.in/telebot.v4"
)

const startDescription = "Главное меню"

// Handlers binds the navigator to the /start command and inline buttons.
type Handlers struct {
	nav *navigator.Navigator
}

// New returns handlers serving nav.
func New(nav *navigator.Navigator) *Handlers {
	return &Handlers{nav: nav}
}

// Register adds /start and the callback handler to reg.
func (h *Handlers) Register(reg *telegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: startDescription,
	})
	reg.SetCallbackHandler(h.Callback)
}

// Start sends the main menu as a new message.
func (h *Handlers) Start(c tele.Context) error {
	return h.nav.Serve(helpers.BuildContext(c), NewPresenter(c), navigator.StartSelection())
}

// Callback serves the selection carried by the pressed button.
func (h *Handlers) Callback(c tele.Context) error {
	sel := navigator.Decode(callbacks.Code(c))
	return h.nav.Serve(helpers.BuildContext(c), NewPresenter(c), sel)
}

// HandlerName names a callback code by its selection kind, for logs and metrics.
func HandlerName(code string) string {
	return navigator.Decode(code).Kind.String()
}
