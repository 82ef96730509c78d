package words

import (
	"context"
	"fmt"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// UpdateInput carries the editable fields of a word record. Page,
// number and category are import-owned and stay fixed on edit.
type UpdateInput struct {
	ID                      int64
	RawWord                 string
	Yomigana                string
	RawMeaning              string
	ExampleSentence         *string
	ExampleSentenceYomigana *string
	GroupMembers            []domain.GroupMember
}

// Validate checks the input fields.
func (in *UpdateInput) Validate() error {
	if in.ID <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}
	return nil
}

// UpdateWord applies an edit to an existing word. The merged record is
// revalidated against the word invariants before writing.
func (s *Service) UpdateWord(ctx context.Context, input UpdateInput) (*domain.Word, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	w, err := s.words.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	w.RawWord = input.RawWord
	w.Yomigana = input.Yomigana
	w.RawMeaning = input.RawMeaning
	w.ExampleSentence = input.ExampleSentence
	w.ExampleSentenceYomigana = input.ExampleSentenceYomigana
	w.GroupMembers = input.GroupMembers

	if err := w.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.words.Update(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("update word: %w", err)
	}

	s.log.InfoContext(ctx, "word updated", "id", updated.ID)
	return updated, nil
}

// SetLearned flips one side's learned flag on a word.
func (s *Service) SetLearned(ctx context.Context, id int64, side domain.Side, value bool) error {
	if id <= 0 {
		return domain.NewValidationError("id", "must be positive")
	}
	if !side.IsValid() {
		return domain.NewValidationError("side", "must be left or right")
	}
	return s.words.SetLearned(ctx, id, side, value)
}

// MarkStudied stamps the study timestamp on the given words. Missing
// ids are skipped silently.
func (s *Service) MarkStudied(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return s.words.TouchLastStudied(ctx, ids, s.now())
}
