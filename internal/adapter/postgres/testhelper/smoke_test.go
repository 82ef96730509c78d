package testhelper

import (
	"context"
	"testing"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	word := SeedWord(t, pool, 10, 1, domain.CategoryProverb)

	// Verify the word exists in DB via SELECT.
	var rawWord string
	err := pool.QueryRow(
		context.Background(),
		`SELECT raw_word FROM words WHERE id = $1`,
		word.ID,
	).Scan(&rawWord)
	if err != nil {
		t.Fatalf("expected word in DB, got error: %v", err)
	}

	if rawWord != word.RawWord {
		t.Fatalf("expected raw_word %q, got %q", word.RawWord, rawWord)
	}
}
