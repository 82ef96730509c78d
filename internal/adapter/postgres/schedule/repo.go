// Package schedule implements the test-schedule repository using
// PostgreSQL. One row per scope; saving again moves the date.
package schedule

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotobanote/kotoba-backend/internal/adapter/postgres"
	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// Repo provides schedule persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new schedule repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const upsertSQL = `
INSERT INTO schedules (scope_id, date, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (scope_id) DO UPDATE SET date = EXCLUDED.date, updated_at = now()`

const deleteSQL = `DELETE FROM schedules WHERE scope_id = ANY($1::text[])`

const getByScopeIDSQL = `SELECT scope_id, date, updated_at FROM schedules WHERE scope_id = $1`

const listAllSQL = `SELECT scope_id, date, updated_at FROM schedules ORDER BY date, scope_id`

// UpsertBatch saves all entries under one statement batch. Each scope
// keeps at most one date.
func (r *Repo) UpsertBatch(ctx context.Context, entries []domain.Schedule) error {
	if len(entries) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(upsertSQL, e.ScopeID, e.Date)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for _, e := range entries {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "schedule", e.ScopeID)
		}
	}
	return nil
}

// DeleteBatch removes the schedules of the given scopes. Missing scopes
// are not an error; deletion is idempotent.
func (r *Repo) DeleteBatch(ctx context.Context, scopeIDs []string) error {
	if len(scopeIDs) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteSQL, scopeIDs); err != nil {
		return fmt.Errorf("delete schedules: %w", err)
	}
	return nil
}

// GetByScopeID returns the schedule of one scope.
// Returns domain.ErrNotFound when the scope has no date.
func (r *Repo) GetByScopeID(ctx context.Context, scopeID string) (*domain.Schedule, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.Schedule
	err := querier.QueryRow(ctx, getByScopeIDSQL, scopeID).Scan(&s.ScopeID, &s.Date, &s.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "schedule", scopeID)
	}
	return &s, nil
}

// ListAll returns every schedule ordered by date then scope.
// ISO dates order correctly as strings.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Schedule, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listAllSQL)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(&s.ScopeID, &s.Date, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules: %w", err)
	}

	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	return schedules, nil
}
