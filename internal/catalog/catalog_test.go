package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBuiltinTables(t *testing.T) {
	c := Builtin()
	if c.LenAuthors() != 5 {
		t.Fatalf("authors = %d, want 5", c.LenAuthors())
	}
	if c.LenEvents() != 5 {
		t.Fatalf("events = %d, want 5", c.LenEvents())
	}

	wantOrder := []string{"chomsky", "zinn", "blum", "parenti", "pilger"}
	for i, a := range c.Authors() {
		if a.Key != wantOrder[i] {
			t.Errorf("author #%d = %q, want %q", i, a.Key, wantOrder[i])
		}
	}

	for i, e := range c.Events() {
		if _, ok := c.Author(e.AuthorKey); !ok {
			t.Errorf("event #%d references unknown author %q", i, e.AuthorKey)
		}
	}

	first, ok := c.Event(0)
	if !ok {
		t.Fatal("expected event #0")
	}
	if got := first.Date.Format("02.01.2006"); got != "19.08.1953" {
		t.Fatalf("event #0 date = %s, want 19.08.1953", got)
	}
}

func TestEventLookupBounds(t *testing.T) {
	c := Builtin()
	for _, i := range []int{-1, c.LenEvents(), 99} {
		if _, ok := c.Event(i); ok {
			t.Errorf("Event(%d) should be out of range", i)
		}
	}
	if _, ok := c.Author("nobody"); ok {
		t.Error("Author(nobody) should be absent")
	}
}

func TestEventsByAuthorKeepsTableOrder(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2000, 1, d, 0, 0, 0, 0, time.UTC) }
	c, err := New(
		[]Author{{Key: "a", Name: "A"}, {Key: "b", Name: "B"}, {Key: "c", Name: "C"}},
		[]Event{
			{Date: day(3), Description: "first", AuthorKey: "a"},
			{Date: day(1), Description: "second", AuthorKey: "b"},
			{Date: day(2), Description: "third", AuthorKey: "a"},
		},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := c.EventsByAuthor("a")
	if len(got) != 2 || got[0].Description != "first" || got[1].Description != "third" {
		t.Fatalf("EventsByAuthor(a) = %+v", got)
	}
	if got := c.EventsByAuthor("c"); len(got) != 0 {
		t.Fatalf("EventsByAuthor(c) = %+v, want none", got)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := Builtin()
	authors := c.Authors()
	authors[0].Name = "changed"
	events := c.Events()
	events[0].Description = "changed"

	if a, _ := c.Author("chomsky"); a.Name == "changed" {
		t.Fatal("Authors() must not expose the backing table")
	}
	if e, _ := c.Event(0); e.Description == "changed" {
		t.Fatal("Events() must not expose the backing table")
	}
}

func TestValidate(t *testing.T) {
	d := time.Date(2001, 9, 11, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		authors []Author
		events  []Event
	}{
		{
			name:    "dangling author key",
			authors: []Author{{Key: "a", Name: "A"}},
			events:  []Event{{Date: d, Description: "x", AuthorKey: "b"}},
		},
		{
			name:    "duplicate key",
			authors: []Author{{Key: "a", Name: "A"}, {Key: "a", Name: "B"}},
		},
		{
			name:    "empty key",
			authors: []Author{{Key: " ", Name: "A"}},
		},
		{
			name:    "missing date",
			authors: []Author{{Key: "a", Name: "A"}},
			events:  []Event{{Description: "x", AuthorKey: "a"}},
		},
		{
			name:    "empty description",
			authors: []Author{{Key: "a", Name: "A"}},
			events:  []Event{{Date: d, AuthorKey: "a"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.authors, tt.events)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("Validate() = %v, want ErrInvalidCatalog", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := []byte(`
authors:
  - key: zinn
    name: Говард Зинн
    bio: Американский историк.
events:
  - date: 1954-06-18
    event: Операция в Гватемале
    author: zinn
`)
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	e, ok := c.Event(0)
	if !ok || e.AuthorKey != "zinn" || e.Date.Format(DateLayout) != "1954-06-18" {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	if _, err := Parse([]byte("events:\n  - {date: 18.06.1954, event: x, author: a}\n")); err == nil {
		t.Fatal("expected date parse error")
	}
	_, err := Parse([]byte("authors: []\nevents:\n  - {date: 1954-06-18, event: x, author: ghost}\n"))
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
}
