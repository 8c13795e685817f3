package navigator

// Option is a tappable choice: a label and the code it sends back.
type Option struct {
	Label string
	Code  string
}

// Screen is the text and ordered options shown after a selection.
// Text uses Telegram's legacy Markdown. Name identifies the screen in logs and metrics.
type Screen struct {
	Name    string
	Text    string
	Options []Option
}

// Screen names.
const (
	ScreenMain        = "main"
	ScreenDates       = "dates"
	ScreenAuthors     = "authors"
	ScreenAbout       = "about"
	ScreenEvent       = "event"
	ScreenAuthor      = "author"
	ScreenUnavailable = "unavailable"
)

const (
	labelDates        = "📅 События по датам"
	labelAuthors      = "✍️ Авторы"
	labelAbout        = "ℹ️ О боте"
	labelBack         = "◀️ Назад"
	labelBackDates    = "◀️ Назад к датам"
	labelBackAuthors  = "◀️ Назад к авторам"
	labelBackMainMenu = "◀️ В главное меню"

	textMain = "👋 Добро пожаловать!\n\n" +
		"Этот бот предоставляет информацию об исторических событиях и их авторах.\n\n" +
		"Выберите действие:"
	textDates   = "📅 *События по датам:*\n\nВыберите событие для подробной информации:"
	textAuthors = "✍️ *Авторы:*\n\nВыберите автора для просмотра биографии:"
	textAbout   = "ℹ️ *О боте*\n\n" +
		"Этот бот предоставляет информацию об исторических событиях " +
		"и известных авторах, изучающих эти темы.\n\n" +
		"Разработано для образовательных целей."
	textUnavailable = "⚠️ *Раздел недоступен*\n\n" +
		"Эта кнопка устарела или ведёт к удалённым данным. Вернитесь в главное меню."

	displayDate = "02.01.2006"
	labelRunes  = 40
)

// Unavailable is shown when a selection points outside the content tables.
func Unavailable() Screen {
	return Screen{
		Name:    ScreenUnavailable,
		Text:    textUnavailable,
		Options: []Option{{Label: labelBackMainMenu, Code: CodeBackMain}},
	}
}
