package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	entry := SeedEntry(t, pool, "French")

	// Verify the row exists in DB via SELECT.
	var word string
	err := pool.QueryRow(
		context.Background(),
		`SELECT word FROM vocabulary WHERE id = $1`,
		entry.ID,
	).Scan(&word)
	if err != nil {
		t.Fatalf("expected entry in DB, got error: %v", err)
	}

	if word != entry.Word {
		t.Fatalf("expected word %q, got %q", entry.Word, word)
	}
}
