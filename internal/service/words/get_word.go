package words

import (
	"context"
	"fmt"

	"github.com/kotobanote/kotoba-backend/internal/category"
	"github.com/kotobanote/kotoba-backend/internal/domain"
	"github.com/kotobanote/kotoba-backend/internal/render"
)

// GetWord returns one word record by id.
func (s *Service) GetWord(ctx context.Context, id int64) (*domain.Word, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("id", "must be positive")
	}
	return s.words.GetByID(ctx, id)
}

// GetTestCard resolves one word into a question/answer card for the
// named test kind. Words whose category has no such test yield a
// validation error.
func (s *Service) GetTestCard(ctx context.Context, id int64, kind category.TestKind) (*render.TestCard, error) {
	w, err := s.GetWord(ctx, id)
	if err != nil {
		return nil, err
	}

	settings, ok := category.SettingsFor(w.Category)
	if !ok {
		return nil, fmt.Errorf("category %s: %w", w.Category, domain.ErrNotFound)
	}

	card, ok := render.ResolveTestCard(w, settings, kind)
	if !ok {
		return nil, domain.NewValidationError("kind", fmt.Sprintf("category %s has no %s test", w.Category, kind))
	}
	return &card, nil
}
