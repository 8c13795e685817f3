package navigator

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/m3rciful/chroniclebot/internal/catalog"
)

func handle(t *testing.T, n *Navigator, code string) Screen {
	t.Helper()
	screen, ok, err := n.Handle(Decode(code))
	if err != nil {
		t.Fatalf("Handle(%q): %v", code, err)
	}
	if !ok {
		t.Fatalf("Handle(%q) was ignored", code)
	}
	return screen
}

func codes(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Code
	}
	return out
}

func TestStartAndBackMainAreIdentical(t *testing.T) {
	n := New(catalog.Builtin())
	start, ok, err := n.Handle(StartSelection())
	if err != nil || !ok {
		t.Fatalf("Handle(start) = %v, %v", ok, err)
	}
	back := handle(t, n, "back_main")
	if !reflect.DeepEqual(start, back) {
		t.Fatalf("start %+v != back_main %+v", start, back)
	}
	if got, want := codes(start.Options), []string{"dates", "authors", "about"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("main options = %v, want %v", got, want)
	}
	if !strings.HasPrefix(start.Text, "👋 Добро пожаловать!") {
		t.Fatalf("unexpected main text %q", start.Text)
	}
}

func TestDatesListsEveryEventThenBack(t *testing.T) {
	c := catalog.Builtin()
	screen := handle(t, New(c), "dates")

	want := []string{"event_0", "event_1", "event_2", "event_3", "event_4", "back_main"}
	if got := codes(screen.Options); !reflect.DeepEqual(got, want) {
		t.Fatalf("dates codes = %v, want %v", got, want)
	}
	if got, want := screen.Options[0].Label, "19.08.1953 - Операция 'Аякс': свержение премьер-минис..."; got != want {
		t.Fatalf("first label = %q, want %q", got, want)
	}
	if got, want := screen.Options[4].Label, "25.10.1983 - Вторжение США в Гренаду..."; got != want {
		t.Fatalf("short label = %q, want %q", got, want)
	}
	if screen.Options[5].Label != labelBack {
		t.Fatalf("back label = %q", screen.Options[5].Label)
	}
}

func TestAuthorsListsEveryAuthorThenBack(t *testing.T) {
	screen := handle(t, New(catalog.Builtin()), "authors")

	want := []string{"author_chomsky", "author_zinn", "author_blum", "author_parenti", "author_pilger", "back_main"}
	if got := codes(screen.Options); !reflect.DeepEqual(got, want) {
		t.Fatalf("authors codes = %v, want %v", got, want)
	}
	if screen.Options[0].Label != "Ноам Хомский" {
		t.Fatalf("first label = %q", screen.Options[0].Label)
	}
}

func TestAboutOffersOnlyBack(t *testing.T) {
	screen := handle(t, New(catalog.Builtin()), "about")
	if got := codes(screen.Options); !reflect.DeepEqual(got, []string{"back_main"}) {
		t.Fatalf("about codes = %v", got)
	}
	if !strings.Contains(screen.Text, "О боте") {
		t.Fatalf("about text = %q", screen.Text)
	}
}

func TestEventDetail(t *testing.T) {
	n := New(catalog.Builtin())
	screen := handle(t, n, "event_0")

	for _, want := range []string{
		"19.08.1953",
		"Операция 'Аякс': свержение премьер-министра Ирана Мохаммеда Мосаддыка",
		"Ноам Хомский",
	} {
		if !strings.Contains(screen.Text, want) {
			t.Errorf("event text %q lacks %q", screen.Text, want)
		}
	}
	if got := codes(screen.Options); !reflect.DeepEqual(got, []string{"dates"}) {
		t.Fatalf("event codes = %v", got)
	}
}

func TestEventOutOfRange(t *testing.T) {
	n := New(catalog.Builtin())
	for _, i := range []int{5, 100} {
		_, ok, err := n.Handle(EventSelection(i))
		var ie *IndexError
		if !errors.As(err, &ie) {
			t.Fatalf("Handle(event_%d) err = %v, want *IndexError", i, err)
		}
		if ok || ie.Index != i || ie.Len != 5 {
			t.Fatalf("unexpected result ok=%v err=%+v", ok, ie)
		}
	}
}

func TestAuthorDetailListsLinkedEvents(t *testing.T) {
	screen := handle(t, New(catalog.Builtin()), "author_chomsky")

	want := "✍️ *Ноам Хомский*\n\n" +
		"Американский лингвист, философ, политический активист и теоретик. " +
		"Профессор лингвистики Массачусетского технологического института.\n\n" +
		"*Связанные события (1):*\n" +
		"• 19.08.1953: Операция 'Аякс': свержение премьер-министра Ирана Мохаммеда Мосаддыка\n"
	if screen.Text != want {
		t.Fatalf("author text =\n%q\nwant\n%q", screen.Text, want)
	}
	if got := codes(screen.Options); !reflect.DeepEqual(got, []string{"authors"}) {
		t.Fatalf("author codes = %v", got)
	}
}

func TestAuthorDetailEscapesNameOutsideBold(t *testing.T) {
	c, err := catalog.New([]catalog.Author{{Key: "dlc", Name: "de_la*Cruz", Bio: "bio"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	screen := handle(t, New(c), "author_dlc")
	if want := "✍️ *de*\\_*la*\\**Cruz*\n\n"; !strings.HasPrefix(screen.Text, want) {
		t.Fatalf("author text = %q, want prefix %q", screen.Text, want)
	}
}

func TestAuthorDetailWithoutEvents(t *testing.T) {
	c, err := catalog.New(
		[]catalog.Author{
			{Key: "a", Name: "Alpha", Bio: "bio_a"},
			{Key: "b", Name: "Beta", Bio: "bio b"},
		},
		[]catalog.Event{
			{Date: time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC), Description: "first", AuthorKey: "a"},
			{Date: time.Date(2001, 3, 4, 0, 0, 0, 0, time.UTC), Description: "second", AuthorKey: "a"},
		},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	n := New(c)

	a := handle(t, n, "author_a")
	if !strings.Contains(a.Text, `bio\_a`) {
		t.Fatalf("bio not escaped: %q", a.Text)
	}
	if !strings.Contains(a.Text, "(2):*\n• 02.01.2000: first\n• 04.03.2001: second\n") {
		t.Fatalf("linked events out of order: %q", a.Text)
	}

	b := handle(t, n, "author_b")
	if strings.Contains(b.Text, "Связанные события") {
		t.Fatalf("author without events lists a section: %q", b.Text)
	}
}

func TestUnknownAuthor(t *testing.T) {
	_, ok, err := New(catalog.Builtin()).Handle(Decode("author_nobody"))
	var ke *KeyError
	if !errors.As(err, &ke) || ke.Key != "nobody" || ok {
		t.Fatalf("Handle(author_nobody) = %v, %v", ok, err)
	}
}

func TestUnknownSelectionIsIgnored(t *testing.T) {
	n := New(catalog.Builtin())
	for _, code := range []string{"", "settings", "event_x", "event_-1"} {
		screen, ok, err := n.Handle(Decode(code))
		if err != nil || ok || !reflect.DeepEqual(screen, Screen{}) {
			t.Errorf("Handle(%q) = %+v, %v, %v", code, screen, ok, err)
		}
	}
}

func TestEveryOfferedCodeResolves(t *testing.T) {
	n := New(catalog.Builtin())
	seen := map[string]bool{}
	queue := []string{"back_main"}
	for len(queue) > 0 {
		code := queue[0]
		queue = queue[1:]
		if seen[code] {
			continue
		}
		seen[code] = true
		for _, o := range handle(t, n, code).Options {
			queue = append(queue, o.Code)
		}
	}
	if len(seen) != 14 {
		t.Fatalf("reachable codes = %d, want 14", len(seen))
	}
}
