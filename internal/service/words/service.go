// Package words exposes the word read and edit operations: the
// resolved list view of a scope, individual test cards, record edits
// and the per-side learned flags.
package words

import (
	"context"
	"log/slog"
	"time"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

type wordRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Word, error)
	ListByPages(ctx context.Context, pages []int) ([]*domain.Word, error)
	Update(ctx context.Context, w *domain.Word) (*domain.Word, error)
	SetLearned(ctx context.Context, id int64, side domain.Side, value bool) error
	TouchLastStudied(ctx context.Context, ids []int64, at time.Time) error
}

type lockRepo interface {
	ListByWordIDs(ctx context.Context, wordIDs []int64) ([]domain.SheetLockEntry, error)
}

type scopeResolver interface {
	ByID(id string) (domain.Scope, bool)
}

// Service provides word listing and editing operations.
type Service struct {
	words  wordRepo
	locks  lockRepo
	scopes scopeResolver
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a new words service.
func NewService(log *slog.Logger, words wordRepo, locks lockRepo, scopes scopeResolver) *Service {
	return &Service{
		words:  words,
		locks:  locks,
		scopes: scopes,
		log:    log.With("service", "words"),
		now:    time.Now,
	}
}
