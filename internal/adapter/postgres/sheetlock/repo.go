// Package sheetlock implements the persisted mask-lock repository
// using PostgreSQL. Locks are keyed by mask key; re-locking an already
// locked segment is a no-op, not a conflict.
package sheetlock

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotobanote/kotoba-backend/internal/adapter/postgres"
	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// Repo provides sheet-lock persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sheet-lock repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const lockSQL = `
INSERT INTO sheet_locks (mask_key, word_id, side)
VALUES ($1, $2, $3)
ON CONFLICT (mask_key) DO NOTHING`

const unlockSQL = `DELETE FROM sheet_locks WHERE mask_key = $1`

const listByWordIDsSQL = `
SELECT id, mask_key, word_id, side, created_at FROM sheet_locks
WHERE word_id = ANY($1::bigint[])
ORDER BY word_id, mask_key`

const deleteByWordAndSideSQL = `DELETE FROM sheet_locks WHERE word_id = $1 AND side = $2`

const deleteByWordIDsSQL = `DELETE FROM sheet_locks WHERE word_id = ANY($1::bigint[])`

const deleteAllSQL = `DELETE FROM sheet_locks`

// Lock persists a lock on one masked segment. Idempotent.
func (r *Repo) Lock(ctx context.Context, entry domain.SheetLockEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, lockSQL, entry.MaskKey, entry.WordID, string(entry.Side)); err != nil {
		return postgres.MapError(err, "sheet_lock", entry.MaskKey)
	}
	return nil
}

// LockBatch persists many locks under one statement batch. Idempotent
// per entry.
func (r *Repo) LockBatch(ctx context.Context, entries []domain.SheetLockEntry) error {
	if len(entries) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(lockSQL, e.MaskKey, e.WordID, string(e.Side))
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for _, e := range entries {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "sheet_lock", e.MaskKey)
		}
	}
	return nil
}

// Unlock removes the lock on one segment. Unlocking an unlocked
// segment is a no-op.
func (r *Repo) Unlock(ctx context.Context, maskKey string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, unlockSQL, maskKey); err != nil {
		return postgres.MapError(err, "sheet_lock", maskKey)
	}
	return nil
}

// ListByWordIDs returns the locks of the given words. Returns an empty
// slice for empty input.
func (r *Repo) ListByWordIDs(ctx context.Context, wordIDs []int64) ([]domain.SheetLockEntry, error) {
	if len(wordIDs) == 0 {
		return []domain.SheetLockEntry{}, nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByWordIDsSQL, wordIDs)
	if err != nil {
		return nil, fmt.Errorf("list sheet_locks: %w", err)
	}
	defer rows.Close()

	var entries []domain.SheetLockEntry
	for rows.Next() {
		var (
			e    domain.SheetLockEntry
			side string
		)
		if err := rows.Scan(&e.ID, &e.MaskKey, &e.WordID, &side, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sheet_lock: %w", err)
		}
		e.Side = domain.Side(side)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sheet_locks: %w", err)
	}

	if entries == nil {
		entries = []domain.SheetLockEntry{}
	}
	return entries, nil
}

// DeleteByWordAndSide removes all locks of one word's side. A test
// retry uses this to re-expose the side it drills.
func (r *Repo) DeleteByWordAndSide(ctx context.Context, wordID int64, side domain.Side) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteByWordAndSideSQL, wordID, string(side)); err != nil {
		return postgres.MapError(err, "sheet_lock", wordID)
	}
	return nil
}

// DeleteByWordIDs removes all locks of the given words.
func (r *Repo) DeleteByWordIDs(ctx context.Context, wordIDs []int64) error {
	if len(wordIDs) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteByWordIDsSQL, wordIDs); err != nil {
		return fmt.Errorf("delete sheet_locks by word ids: %w", err)
	}
	return nil
}

// DeleteAll removes every lock.
func (r *Repo) DeleteAll(ctx context.Context) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteAllSQL); err != nil {
		return fmt.Errorf("delete all sheet_locks: %w", err)
	}
	return nil
}
