package catalog

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// TestStoreRoundTrip needs a disposable PostgreSQL database with the catalog
// migrations applied; set CHRONICLEBOT_TEST_DSN to run it.
func TestStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("CHRONICLEBOT_TEST_DSN")
	if dsn == "" {
		t.Skip("CHRONICLEBOT_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	want := Builtin()
	for i := 0; i < 2; i++ {
		if err := Seed(ctx, db, want); err != nil {
			t.Fatalf("seed #%d: %v", i, err)
		}
	}

	got, err := LoadStore(ctx, db)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.LenAuthors() != want.LenAuthors() || got.LenEvents() != want.LenEvents() {
		t.Fatalf("sizes = %d/%d, want %d/%d", got.LenAuthors(), got.LenEvents(), want.LenAuthors(), want.LenEvents())
	}
	for i, e := range want.Events() {
		g, _ := got.Event(i)
		if !g.Date.Equal(e.Date) || g.Description != e.Description || g.AuthorKey != e.AuthorKey {
			t.Errorf("event #%d = %+v, want %+v", i, g, e)
		}
	}
}
