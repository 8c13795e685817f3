// Package navigator maps selections onto menu screens over the content catalog.
package navigator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m3rciful/chroniclebot/core/telegram/format"
	"github.com/m3rciful/chroniclebot/internal/catalog"
)

// Observer receives navigation outcomes; *metrics.Collector satisfies it.
type Observer interface {
	ObserveScreen(screen string)
	ObserveSelection(outcome string)
}

// Navigator renders screens from an immutable catalog. It holds no mutable
// state, so one value serves all concurrent interactions.
type Navigator struct {
	catalog  *catalog.Catalog
	observer Observer
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithObserver reports outcomes of Serve to o.
func WithObserver(o Observer) NavigatorOption {
	return func(n *Navigator) { n.observer = o }
}

// New returns a Navigator over c.
func New(c *catalog.Catalog, opts ...NavigatorOption) *Navigator {
	n := &Navigator{catalog: c}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Handle returns the screen for sel. ok is false for unknown selections, which
// leave the current screen untouched. Out-of-range events yield *IndexError and
// unknown authors *KeyError.
func (n *Navigator) Handle(sel Selection) (screen Screen, ok bool, err error) {
	switch sel.Kind {
	case KindStart, KindBackToMain:
		return n.mainMenu(), true, nil
	case KindDates:
		return n.dates(), true, nil
	case KindAuthors:
		return n.authors(), true, nil
	case KindAbout:
		return about(), true, nil
	case KindEvent:
		screen, err = n.event(sel.Index)
	case KindAuthor:
		screen, err = n.author(sel.Key)
	default:
		return Screen{}, false, nil
	}
	if err != nil {
		return Screen{}, false, err
	}
	return screen, true, nil
}

func (n *Navigator) mainMenu() Screen {
	return Screen{
		Name: ScreenMain,
		Text: textMain,
		Options: []Option{
			{Label: labelDates, Code: CodeDates},
			{Label: labelAuthors, Code: CodeAuthors},
			{Label: labelAbout, Code: CodeAbout},
		},
	}
}

func (n *Navigator) dates() Screen {
	events := n.catalog.Events()
	opts := make([]Option, 0, len(events)+1)
	for i, e := range events {
		opts = append(opts, Option{
			Label: fmt.Sprintf("%s - %s...", e.Date.Format(displayDate), format.Truncate(e.Description, labelRunes)),
			Code:  EventSelection(i).Code(),
		})
	}
	opts = append(opts, Option{Label: labelBack, Code: CodeBackMain})
	return Screen{Name: ScreenDates, Text: textDates, Options: opts}
}

func (n *Navigator) authors() Screen {
	authors := n.catalog.Authors()
	opts := make([]Option, 0, len(authors)+1)
	for _, a := range authors {
		opts = append(opts, Option{Label: a.Name, Code: AuthorSelection(a.Key).Code()})
	}
	opts = append(opts, Option{Label: labelBack, Code: CodeBackMain})
	return Screen{Name: ScreenAuthors, Text: textAuthors, Options: opts}
}

func about() Screen {
	return Screen{
		Name:    ScreenAbout,
		Text:    textAbout,
		Options: []Option{{Label: labelBack, Code: CodeBackMain}},
	}
}

func (n *Navigator) event(i int) (Screen, error) {
	e, ok := n.catalog.Event(i)
	if !ok {
		return Screen{}, &IndexError{Index: i, Len: n.catalog.LenEvents()}
	}
	a, ok := n.catalog.Author(e.AuthorKey)
	if !ok {
		return Screen{}, &KeyError{Key: e.AuthorKey}
	}

	var b strings.Builder
	b.WriteString("📅 *Дата:* " + e.Date.Format(displayDate) + "\n\n")
	b.WriteString("📌 *Событие:*\n" + format.EscapeMarkdown(e.Description) + "\n\n")
	b.WriteString("✍️ *Автор:* " + format.EscapeMarkdown(a.Name))

	return Screen{
		Name:    ScreenEvent,
		Text:    b.String(),
		Options: []Option{{Label: labelBackDates, Code: CodeDates}},
	}, nil
}

func (n *Navigator) author(key string) (Screen, error) {
	a, ok := n.catalog.Author(key)
	if !ok {
		return Screen{}, &KeyError{Key: key}
	}

	var b strings.Builder
	b.WriteString("✍️ " + format.BoldMarkdown(a.Name) + "\n\n")
	b.WriteString(format.EscapeMarkdown(a.Bio) + "\n\n")
	if events := n.catalog.EventsByAuthor(key); len(events) > 0 {
		b.WriteString("*Связанные события (" + strconv.Itoa(len(events)) + "):*\n")
		for _, e := range events {
			b.WriteString("• " + e.Date.Format(displayDate) + ": " + format.EscapeMarkdown(e.Description) + "\n")
		}
	}

	return Screen{
		Name:    ScreenAuthor,
		Text:    b.String(),
		Options: []Option{{Label: labelBackAuthors, Code: CodeAuthors}},
	}, nil
}
