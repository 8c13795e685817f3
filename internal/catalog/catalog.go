// Package catalog holds the immutable content tables served by the bot:
// authors and the historical events attributed to them.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage layout of event dates.
const DateLayout = "2006-01-02"

// ErrInvalidCatalog marks content that breaks the table invariants.
var ErrInvalidCatalog = errors.New("catalog: invalid content")

// Author is a person whose work covers one or more events.
type Author struct {
	Key  string
	Name string
	Bio  string
}

// Event is a dated historical event linked to an author.
type Event struct {
	Date        time.Time
	Description string
	AuthorKey   string
}

// Catalog is a read-only pair of tables. Every method is safe for concurrent use.
type Catalog struct {
	authors []Author
	byKey   map[string]int
	events  []Event
}

// New validates and copies the given tables.
func New(authors []Author, events []Event) (*Catalog, error) {
	if err := Validate(authors, events); err != nil {
		return nil, err
	}
	c := &Catalog{
		authors: append([]Author(nil), authors...),
		byKey:   make(map[string]int, len(authors)),
		events:  append([]Event(nil), events...),
	}
	for i, a := range c.authors {
		c.byKey[a.Key] = i
	}
	return c, nil
}

// Validate checks key uniqueness, referential integrity and event dates.
func Validate(authors []Author, events []Event) error {
	keys := make(map[string]struct{}, len(authors))
	for i, a := range authors {
		if strings.TrimSpace(a.Key) == "" {
			return fmt.Errorf("%w: author #%d has empty key", ErrInvalidCatalog, i)
		}
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: author %q has empty name", ErrInvalidCatalog, a.Key)
		}
		if _, dup := keys[a.Key]; dup {
			return fmt.Errorf("%w: duplicate author key %q", ErrInvalidCatalog, a.Key)
		}
		keys[a.Key] = struct{}{}
	}
	for i, e := range events {
		if e.Date.IsZero() {
			return fmt.Errorf("%w: event #%d has no date", ErrInvalidCatalog, i)
		}
		if strings.TrimSpace(e.Description) == "" {
			return fmt.Errorf("%w: event #%d has empty description", ErrInvalidCatalog, i)
		}
		if _, ok := keys[e.AuthorKey]; !ok {
			return fmt.Errorf("%w: event #%d references unknown author %q", ErrInvalidCatalog, i, e.AuthorKey)
		}
	}
	return nil
}

// Authors returns a copy of the authors table in insertion order.
func (c *Catalog) Authors() []Author {
	return append([]Author(nil), c.authors...)
}

// Events returns a copy of the events table in sequence order.
func (c *Catalog) Events() []Event {
	return append([]Event(nil), c.events...)
}

// Author looks up an author by key.
func (c *Catalog) Author(key string) (Author, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Author{}, false
	}
	return c.authors[i], true
}

// Event returns the event at position i.
func (c *Catalog) Event(i int) (Event, bool) {
	if i < 0 || i >= len(c.events) {
		return Event{}, false
	}
	return c.events[i], true
}

// EventsByAuthor returns the events linked to key, in table order.
func (c *Catalog) EventsByAuthor(key string) []Event {
	var out []Event
	for _, e := range c.events {
		if e.AuthorKey == key {
			out = append(out, e)
		}
	}
	return out
}

// LenAuthors reports the number of authors.
func (c *Catalog) LenAuthors() int {
	return len(c.authors)
}

// LenEvents reports the number of events.
func (c *Catalog) LenEvents() int {
	return len(c.events)
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("catalog: parse date %q: %w", s, err)
	}
	return t, nil
}
