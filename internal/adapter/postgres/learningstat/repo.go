// Package learningstat implements the daily learning-stat repository
// using PostgreSQL. Rows are keyed by the composite daily key; an
// increment either inserts a fresh row or adds onto the existing
// counters. The date-range listing uses squirrel because its filter
// set is dynamic.
package learningstat

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotobanote/kotoba-backend/internal/adapter/postgres"
	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// Repo provides learning-stat persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new learning-stat repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const statColumns = `id, daily_key, scope_id, date, unit_key, side,
reveal_count, test_correct_count, test_wrong_count, test_forgot_count, updated_at`

const incrementSQL = `
INSERT INTO learning_daily_stats
    (daily_key, scope_id, date, unit_key, side,
     reveal_count, test_correct_count, test_wrong_count, test_forgot_count)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (daily_key) DO UPDATE SET
    reveal_count = learning_daily_stats.reveal_count + EXCLUDED.reveal_count,
    test_correct_count = learning_daily_stats.test_correct_count + EXCLUDED.test_correct_count,
    test_wrong_count = learning_daily_stats.test_wrong_count + EXCLUDED.test_wrong_count,
    test_forgot_count = learning_daily_stats.test_forgot_count + EXCLUDED.test_forgot_count,
    updated_at = now()`

const deleteAllSQL = `DELETE FROM learning_daily_stats`

// IncrementBatch applies pre-aggregated counter deltas under one
// statement batch. Callers aggregate same-key deltas before calling;
// the upsert still sums correctly if they do not.
func (r *Repo) IncrementBatch(ctx context.Context, stats []domain.LearningDailyStat) error {
	if len(stats) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, s := range stats {
		batch.Queue(incrementSQL,
			s.DailyKey, s.ScopeID, s.Date, s.UnitKey, string(s.Side),
			s.RevealCount, s.TestCorrectCount, s.TestWrongCount, s.TestForgotCount,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for _, s := range stats {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "learning_daily_stat", s.DailyKey)
		}
	}
	return nil
}

// ListByScopeAndRange returns the stat rows of one scope within a date
// range, inclusive on both ends, ordered by date, unit key, then side.
func (r *Repo) ListByScopeAndRange(ctx context.Context, scopeID, fromDate, toDate string) ([]domain.LearningDailyStat, error) {
	query := psql.Select(statColumns).
		From("learning_daily_stats").
		Where(squirrel.Eq{"scope_id": scopeID}).
		Where(squirrel.GtOrEq{"date": fromDate}).
		Where(squirrel.LtOrEq{"date": toDate}).
		OrderBy("date", "unit_key", "side")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list stats query: %w", err)
	}

	return r.queryStats(ctx, sql, args...)
}

// ListByRange returns every scope's stat rows within a date range,
// ordered by date, scope, unit key, then side.
func (r *Repo) ListByRange(ctx context.Context, fromDate, toDate string) ([]domain.LearningDailyStat, error) {
	query := psql.Select(statColumns).
		From("learning_daily_stats").
		Where(squirrel.GtOrEq{"date": fromDate}).
		Where(squirrel.LtOrEq{"date": toDate}).
		OrderBy("date", "scope_id", "unit_key", "side")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list stats query: %w", err)
	}

	return r.queryStats(ctx, sql, args...)
}

func (r *Repo) queryStats(ctx context.Context, sql string, args ...any) ([]domain.LearningDailyStat, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query learning_daily_stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.LearningDailyStat
	for rows.Next() {
		var (
			s    domain.LearningDailyStat
			side string
		)
		err := rows.Scan(
			&s.ID, &s.DailyKey, &s.ScopeID, &s.Date, &s.UnitKey, &side,
			&s.RevealCount, &s.TestCorrectCount, &s.TestWrongCount, &s.TestForgotCount, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan learning_daily_stat: %w", err)
		}
		s.Side = domain.Side(side)
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate learning_daily_stats: %w", err)
	}

	if stats == nil {
		stats = []domain.LearningDailyStat{}
	}
	return stats, nil
}

// DeleteAll removes every stat row. A fresh import reassigns every
// word id, so all recorded unit keys become stale at once.
func (r *Repo) DeleteAll(ctx context.Context) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteAllSQL); err != nil {
		return fmt.Errorf("delete all learning_daily_stats: %w", err)
	}
	return nil
}
