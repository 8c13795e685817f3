package catalog

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/chroniclebot/core/logger"
)

// Migrations holds the SQL schema for the catalog tables.
//
//go:embed migrations/*.sql
var Migrations embed.FS

type authorRow struct {
	Key  string `db:"key"`
	Name string `db:"name"`
	Bio  string `db:"bio"`
}

type eventRow struct {
	Date        time.Time `db:"event_date"`
	Description string    `db:"description"`
	AuthorKey   string    `db:"author_key"`
}

// LoadStore reads both tables ordered by position.
func LoadStore(ctx context.Context, db *sqlx.DB) (*Catalog, error) {
	start := time.Now()

	var authorRows []authorRow
	if err := db.SelectContext(ctx, &authorRows,
		`SELECT key, name, bio FROM authors ORDER BY position`); err != nil {
		return nil, fmt.Errorf("catalog: select authors: %w", err)
	}
	var eventRows []eventRow
	if err := db.SelectContext(ctx, &eventRows,
		`SELECT event_date, description, author_key FROM events ORDER BY position`); err != nil {
		return nil, fmt.Errorf("catalog: select events: %w", err)
	}

	authors := make([]Author, 0, len(authorRows))
	for _, r := range authorRows {
		authors = append(authors, Author{Key: r.Key, Name: r.Name, Bio: r.Bio})
	}
	events := make([]Event, 0, len(eventRows))
	for _, r := range eventRows {
		d := r.Date.UTC()
		events = append(events, Event{
			Date:        time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Description: r.Description,
			AuthorKey:   r.AuthorKey,
		})
	}

	c, err := New(authors, events)
	if err != nil {
		return nil, err
	}
	logger.DB.Debug("catalog loaded from store",
		slog.String("event", "catalog.select"),
		slog.Int("authors", len(authors)),
		slog.Int("events", len(events)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return c, nil
}

// Seed upserts c into the store. Running it twice leaves the tables unchanged.
func Seed(ctx context.Context, db *sqlx.DB, c *Catalog) error {
	start := time.Now()
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog: begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, a := range c.authors {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO authors (key, position, name, bio)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (key) DO UPDATE
			SET position = EXCLUDED.position, name = EXCLUDED.name, bio = EXCLUDED.bio`,
			a.Key, i, a.Name, a.Bio); err != nil {
			return fmt.Errorf("catalog: seed author %q: %w", a.Key, err)
		}
	}
	for i, e := range c.events {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO events (position, event_date, description, author_key)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (position) DO UPDATE
			SET event_date = EXCLUDED.event_date, description = EXCLUDED.description, author_key = EXCLUDED.author_key`,
			i, e.Date.Format(DateLayout), e.Description, e.AuthorKey); err != nil {
			return fmt.Errorf("catalog: seed event #%d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog: commit seed: %w", err)
	}

	logger.SEED.Info("catalog seeded",
		slog.String("event", "seed"),
		slog.Int("authors", len(c.authors)),
		slog.Int("events", len(c.events)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}
