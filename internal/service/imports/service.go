// Package imports orchestrates CSV imports: parsing through the
// strategy pipeline, optional reading suggestion, and the transactional
// replace of the affected pages.
package imports

import (
	"context"
	"log/slog"

	"github.com/kotobanote/kotoba-backend/internal/domain"
	"github.com/kotobanote/kotoba-backend/internal/importer"
)

type wordRepo interface {
	DeleteByPages(ctx context.Context, pages []int) (int64, error)
	CreateBatch(ctx context.Context, words []*domain.Word) ([]*domain.Word, error)
}

type statRepo interface {
	DeleteAll(ctx context.Context) error
}

type lockRepo interface {
	DeleteAll(ctx context.Context) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type scopeResolver interface {
	ByPage(page int) (domain.Scope, bool)
}

// ReadingSuggester fills empty yomigana fields. Optional; nil disables
// suggestion.
type ReadingSuggester interface {
	Suggest(text string) string
}

// Service provides CSV import operations.
type Service struct {
	pipeline *importer.Pipeline
	scopes   scopeResolver
	words    wordRepo
	stats    statRepo
	locks    lockRepo
	tx       txManager
	readings ReadingSuggester
	log      *slog.Logger
}

// NewService creates a new import service. readings may be nil.
func NewService(
	log *slog.Logger,
	pipeline *importer.Pipeline,
	scopes scopeResolver,
	words wordRepo,
	stats statRepo,
	locks lockRepo,
	tx txManager,
	readings ReadingSuggester,
) *Service {
	return &Service{
		pipeline: pipeline,
		scopes:   scopes,
		words:    words,
		stats:    stats,
		locks:    locks,
		tx:       tx,
		readings: readings,
		log:      log.With("service", "imports"),
	}
}
