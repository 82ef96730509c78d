package words

import (
	"context"
	"fmt"

	"github.com/kotobanote/kotoba-backend/internal/category"
	"github.com/kotobanote/kotoba-backend/internal/domain"
	"github.com/kotobanote/kotoba-backend/internal/render"
)

// RowView is one resolved list row plus the word's persisted state the
// list needs: learned flags and the mask keys locked on the sheet.
type RowView struct {
	Row               render.ListRow
	IsLearnedCategory bool
	IsLearnedMeaning  bool
	LockedKeys        []string
}

// ScopeView is the fully resolved list view of one scope.
type ScopeView struct {
	Scope       domain.Scope
	HeaderLeft  string
	HeaderRight string
	Rows        []RowView
}

// ListByScope resolves every word of the scope into display rows, with
// durable sheet locks attached per row.
func (s *Service) ListByScope(ctx context.Context, scopeID string) (*ScopeView, error) {
	sc, ok := s.scopes.ByID(scopeID)
	if !ok {
		return nil, fmt.Errorf("scope %s: %w", scopeID, domain.ErrNotFound)
	}
	settings, ok := category.SettingsFor(sc.Category)
	if !ok {
		return nil, fmt.Errorf("category %s: %w", sc.Category, domain.ErrNotFound)
	}

	pages := make([]int, 0, sc.EndPage-sc.StartPage+1)
	for p := sc.StartPage; p <= sc.EndPage; p++ {
		pages = append(pages, p)
	}

	wordList, err := s.words.ListByPages(ctx, pages)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	ids := make([]int64, len(wordList))
	for i, w := range wordList {
		ids[i] = w.ID
	}

	locks, err := s.locks.ListByWordIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list locks: %w", err)
	}
	lockedByWord := make(map[int64][]string)
	for _, l := range locks {
		lockedByWord[l.WordID] = append(lockedByWord[l.WordID], l.MaskKey)
	}

	rows := make([]RowView, len(wordList))
	for i, w := range wordList {
		rows[i] = RowView{
			Row:               render.ResolveListRow(w, settings),
			IsLearnedCategory: w.IsLearnedCategory,
			IsLearnedMeaning:  w.IsLearnedMeaning,
			LockedKeys:        lockedByWord[w.ID],
		}
	}

	return &ScopeView{
		Scope:       sc,
		HeaderLeft:  settings.HeaderLeft,
		HeaderRight: settings.HeaderRight,
		Rows:        rows,
	}, nil
}
