package testhelper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedWord inserts a plain word on the given page and returns it with
// its assigned ID.
func SeedWord(t *testing.T, pool *pgxpool.Pool, page, numberInPage int, cat domain.Category) domain.Word {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	w := domain.Word{
		Page:         page,
		NumberInPage: numberInPage,
		Category:     cat,
		RawWord:      "言葉-" + suffix,
		Yomigana:     "ことば",
		RawMeaning:   "意味-" + suffix,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO words (page, number_in_page, category, raw_word, yomigana, raw_meaning)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		w.Page, w.NumberInPage, string(w.Category), w.RawWord, w.Yomigana, w.RawMeaning,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedWord insert: %v", err)
	}

	return w
}

// SeedGroupedWord inserts a word carrying the given group members.
func SeedGroupedWord(t *testing.T, pool *pgxpool.Pool, page, numberInPage int, cat domain.Category, members []domain.GroupMember) domain.Word {
	t.Helper()
	ctx := context.Background()

	type memberJSON struct {
		RawWord                 string  `json:"rawWord"`
		Yomigana                string  `json:"yomigana"`
		CustomLabel             *string `json:"customLabel,omitempty"`
		ExampleSentence         *string `json:"exampleSentence,omitempty"`
		ExampleSentenceYomigana *string `json:"exampleSentenceYomigana,omitempty"`
	}

	raw := make([]memberJSON, len(members))
	for i, m := range members {
		raw[i] = memberJSON(m)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("testhelper: SeedGroupedWord marshal members: %v", err)
	}

	w := domain.Word{
		Page:         page,
		NumberInPage: numberInPage,
		Category:     cat,
		RawWord:      "グループ-" + uniqueSuffix(),
		GroupMembers: members,
	}

	err = pool.QueryRow(ctx,
		`INSERT INTO words (page, number_in_page, category, raw_word, group_members)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		w.Page, w.NumberInPage, string(w.Category), w.RawWord, data,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedGroupedWord insert: %v", err)
	}

	return w
}

// SeedSchedule inserts a test date for a scope.
func SeedSchedule(t *testing.T, pool *pgxpool.Pool, scopeID, date string) domain.Schedule {
	t.Helper()
	ctx := context.Background()

	s := domain.Schedule{ScopeID: scopeID, Date: date}
	err := pool.QueryRow(ctx,
		`INSERT INTO schedules (scope_id, date) VALUES ($1, $2)
		 ON CONFLICT (scope_id) DO UPDATE SET date = EXCLUDED.date, updated_at = now()
		 RETURNING updated_at`,
		s.ScopeID, s.Date,
	).Scan(&s.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSchedule insert: %v", err)
	}

	return s
}

// SeedSheetLock inserts a persisted mask lock for a word's segment.
func SeedSheetLock(t *testing.T, pool *pgxpool.Pool, wordID int64, side domain.Side, maskKey string) domain.SheetLockEntry {
	t.Helper()
	ctx := context.Background()

	e := domain.SheetLockEntry{MaskKey: maskKey, WordID: wordID, Side: side}
	err := pool.QueryRow(ctx,
		`INSERT INTO sheet_locks (mask_key, word_id, side) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		e.MaskKey, e.WordID, string(e.Side),
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSheetLock insert: %v", err)
	}

	return e
}

// SeedDailyStat inserts one aggregated stat row.
func SeedDailyStat(t *testing.T, pool *pgxpool.Pool, scopeID, date, unitKey string, side domain.Side, counters domain.StatCounters) domain.LearningDailyStat {
	t.Helper()
	ctx := context.Background()

	s := domain.LearningDailyStat{
		DailyKey:     domain.BuildDailyKey(scopeID, date, unitKey, side),
		ScopeID:      scopeID,
		Date:         date,
		UnitKey:      unitKey,
		Side:         side,
		StatCounters: counters,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO learning_daily_stats
		     (daily_key, scope_id, date, unit_key, side,
		      reveal_count, test_correct_count, test_wrong_count, test_forgot_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, updated_at`,
		s.DailyKey, s.ScopeID, s.Date, s.UnitKey, string(s.Side),
		s.RevealCount, s.TestCorrectCount, s.TestWrongCount, s.TestForgotCount,
	).Scan(&s.ID, &s.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedDailyStat insert: %v", err)
	}

	return s
}
