// Package word implements the word repository using PostgreSQL.
// Simple lookups use raw SQL; the page-scoped listing uses squirrel
// because its filter set is dynamic. Group members live in a JSONB
// column; the domain struct carries no json tags, so serialization is
// handled here.
package word

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/kotobanote/kotoba-backend/internal/adapter/postgres"
	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const wordColumns = `id, page, number_in_page, category, raw_word, yomigana, raw_meaning,
example_sentence, example_sentence_yomigana, group_members,
is_learned_category, is_learned_meaning, last_studied, created_at, updated_at`

const getByIDSQL = `SELECT ` + wordColumns + ` FROM words WHERE id = $1`

const listByIDsSQL = `SELECT ` + wordColumns + ` FROM words
WHERE id = ANY($1::bigint[])
ORDER BY page, number_in_page`

const insertSQL = `
INSERT INTO words (page, number_in_page, category, raw_word, yomigana, raw_meaning,
    example_sentence, example_sentence_yomigana, group_members)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + wordColumns

const updateSQL = `
UPDATE words SET
    raw_word = $2, yomigana = $3, raw_meaning = $4,
    example_sentence = $5, example_sentence_yomigana = $6,
    group_members = $7, updated_at = now()
WHERE id = $1
RETURNING ` + wordColumns

const setLearnedCategorySQL = `UPDATE words SET is_learned_category = $2, updated_at = now() WHERE id = $1`
const setLearnedMeaningSQL = `UPDATE words SET is_learned_meaning = $2, updated_at = now() WHERE id = $1`

const touchLastStudiedSQL = `UPDATE words SET last_studied = $2 WHERE id = ANY($1::bigint[])`

const deleteByPagesSQL = `DELETE FROM words WHERE page = ANY($1::int[])`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a word by ID. Returns domain.ErrNotFound when absent.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	w, err := scanWord(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "word", id)
	}
	return w, nil
}

// ListByPages returns the words of the given pages ordered by page and
// number_in_page. Returns an empty slice for empty input.
func (r *Repo) ListByPages(ctx context.Context, pages []int) ([]*domain.Word, error) {
	if len(pages) == 0 {
		return []*domain.Word{}, nil
	}

	query := psql.Select(wordColumns).
		From("words").
		Where(squirrel.Eq{"page": pages}).
		OrderBy("page", "number_in_page")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words query: %w", err)
	}

	return r.queryWords(ctx, sql, args...)
}

// ListByCategory returns the words of one category ordered by page and
// number_in_page.
func (r *Repo) ListByCategory(ctx context.Context, cat domain.Category) ([]*domain.Word, error) {
	query := psql.Select(wordColumns).
		From("words").
		Where(squirrel.Eq{"category": string(cat)}).
		OrderBy("page", "number_in_page")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words query: %w", err)
	}

	return r.queryWords(ctx, sql, args...)
}

// ListByIDs returns the words with the given IDs. Returns an empty
// slice for empty input.
func (r *Repo) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Word, error) {
	if len(ids) == 0 {
		return []*domain.Word{}, nil
	}
	return r.queryWords(ctx, listByIDsSQL, ids)
}

func (r *Repo) queryWords(ctx context.Context, sql string, args ...any) ([]*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var words []*domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	if words == nil {
		words = []*domain.Word{}
	}
	return words, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new word and returns the persisted row.
func (r *Repo) Create(ctx context.Context, w *domain.Word) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	members, err := marshalMembers(w.GroupMembers)
	if err != nil {
		return nil, fmt.Errorf("word marshal group_members: %w", err)
	}

	created, err := scanWord(querier.QueryRow(ctx, insertSQL,
		w.Page, w.NumberInPage, string(w.Category), w.RawWord, w.Yomigana, w.RawMeaning,
		w.ExampleSentence, w.ExampleSentenceYomigana, members,
	))
	if err != nil {
		return nil, postgres.MapError(err, "word", w.RawWord)
	}
	return created, nil
}

// Update rewrites the editable fields of a word and returns the updated
// row. Returns domain.ErrNotFound when the word does not exist.
func (r *Repo) Update(ctx context.Context, w *domain.Word) (*domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	members, err := marshalMembers(w.GroupMembers)
	if err != nil {
		return nil, fmt.Errorf("word marshal group_members: %w", err)
	}

	updated, err := scanWord(querier.QueryRow(ctx, updateSQL,
		w.ID, w.RawWord, w.Yomigana, w.RawMeaning,
		w.ExampleSentence, w.ExampleSentenceYomigana, members,
	))
	if err != nil {
		return nil, postgres.MapError(err, "word", w.ID)
	}
	return updated, nil
}

// SetLearned flips one side's learned flag of a word.
// Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) SetLearned(ctx context.Context, id int64, side domain.Side, value bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	sql := setLearnedCategorySQL
	if side == domain.SideRight {
		sql = setLearnedMeaningSQL
	}

	tag, err := querier.Exec(ctx, sql, id, value)
	if err != nil {
		return postgres.MapError(err, "word", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// TouchLastStudied stamps last_studied on the given words.
func (r *Repo) TouchLastStudied(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, touchLastStudiedSQL, ids, at); err != nil {
		return fmt.Errorf("touch last_studied: %w", err)
	}
	return nil
}

// DeleteByPages removes all words of the given pages; the import
// pipeline calls this before inserting a fresh batch. Returns the
// number of deleted rows.
func (r *Repo) DeleteByPages(ctx context.Context, pages []int) (int64, error) {
	if len(pages) == 0 {
		return 0, nil
	}
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByPagesSQL, pages)
	if err != nil {
		return 0, fmt.Errorf("delete words by pages: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CreateBatch inserts words in order and returns them with assigned
// IDs. Meant to run inside a transaction together with DeleteByPages.
func (r *Repo) CreateBatch(ctx context.Context, words []*domain.Word) ([]*domain.Word, error) {
	created := make([]*domain.Word, 0, len(words))
	for _, w := range words {
		c, err := r.Create(ctx, w)
		if err != nil {
			return nil, err
		}
		created = append(created, c)
	}
	return created, nil
}

// ---------------------------------------------------------------------------
// JSONB serialization for group members
// ---------------------------------------------------------------------------

// groupMemberJSON is the storage shape of one group member. The domain
// struct carries no json tags; renaming a key here requires a data
// migration.
type groupMemberJSON struct {
	RawWord                 string  `json:"rawWord"`
	Yomigana                string  `json:"yomigana"`
	CustomLabel             *string `json:"customLabel,omitempty"`
	ExampleSentence         *string `json:"exampleSentence,omitempty"`
	ExampleSentenceYomigana *string `json:"exampleSentenceYomigana,omitempty"`
}

// marshalMembers serializes members for JSONB storage. A word without
// members stores [] so the round trip stays empty, never null.
func marshalMembers(members []domain.GroupMember) ([]byte, error) {
	out := make([]groupMemberJSON, len(members))
	for i, m := range members {
		out[i] = groupMemberJSON{
			RawWord:                 m.RawWord,
			Yomigana:                m.Yomigana,
			CustomLabel:             m.CustomLabel,
			ExampleSentence:         m.ExampleSentence,
			ExampleSentenceYomigana: m.ExampleSentenceYomigana,
		}
	}
	return json.Marshal(out)
}

func unmarshalMembers(data []byte) ([]domain.GroupMember, error) {
	if len(data) == 0 {
		return []domain.GroupMember{}, nil
	}

	var raw []groupMemberJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal group_members: %w", err)
	}

	members := make([]domain.GroupMember, len(raw))
	for i, m := range raw {
		members[i] = domain.GroupMember{
			RawWord:                 m.RawWord,
			Yomigana:                m.Yomigana,
			CustomLabel:             m.CustomLabel,
			ExampleSentence:         m.ExampleSentence,
			ExampleSentenceYomigana: m.ExampleSentenceYomigana,
		}
	}
	return members, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanWord(row pgx.Row) (*domain.Word, error) {
	var (
		w        domain.Word
		category string
		members  []byte
	)

	err := row.Scan(
		&w.ID, &w.Page, &w.NumberInPage, &category, &w.RawWord, &w.Yomigana, &w.RawMeaning,
		&w.ExampleSentence, &w.ExampleSentenceYomigana, &members,
		&w.IsLearnedCategory, &w.IsLearnedMeaning, &w.LastStudied, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.Category = domain.Category(category)
	gm, err := unmarshalMembers(members)
	if err != nil {
		return nil, fmt.Errorf("word %d: %w", w.ID, err)
	}
	w.GroupMembers = gm

	return &w, nil
}
