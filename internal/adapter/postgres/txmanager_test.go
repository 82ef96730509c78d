package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kotobanote/kotoba-backend/internal/adapter/postgres"
	"github.com/kotobanote/kotoba-backend/internal/adapter/postgres/testhelper"
)

// wordExists checks whether a word row with the given ID exists in the database.
func wordExists(t *testing.T, pool *pgxpool.Pool, wordID int64) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM words WHERE id = $1)`,
		wordID,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("wordExists query: %v", err)
	}
	return exists
}

func insertWord(t *testing.T, ctx context.Context, q postgres.Querier, word string) int64 {
	t.Helper()
	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO words (page, number_in_page, category, raw_word, yomigana, raw_meaning)
		 VALUES (10, 1, 'ことわざ', $1, '', '') RETURNING id`,
		word,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert word: %v", err)
	}
	return id
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	var wordID int64
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		wordID = insertWord(t, ctx, q, "commit-test")
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !wordExists(t, pool, wordID) {
		t.Fatal("expected word to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	sentinel := errors.New("business logic error")

	var wordID int64
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		wordID = insertWord(t, ctx, q, "rollback-test")
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if wordExists(t, pool, wordID) {
		t.Fatal("expected word NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	var wordID int64

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		// Verify data was rolled back.
		if wordExists(t, pool, wordID) {
			t.Fatal("expected word NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		wordID = insertWord(t, ctx, q, "panic-test")
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	var wordID int64

	// Insert inside a transaction, then verify it's visible within the same tx
	// but NOT outside until commit.
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		wordID = insertWord(t, ctx, q, "ctx-test")

		// Should be visible within the transaction.
		var exists bool
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM words WHERE id = $1)`, wordID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected word to be visible within the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	// After commit, also visible outside.
	if !wordExists(t, pool, wordID) {
		t.Fatal("expected word to exist after committed transaction")
	}
}
