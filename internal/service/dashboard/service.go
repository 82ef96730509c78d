// Package dashboard assembles the per-scope learning progress view:
// learning units derived from the scope's words, crossed with a
// trailing window of daily stat counters.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// WindowDays is the length of the trailing stat window shown on the
// dashboard, today included.
const WindowDays = 14

type wordRepo interface {
	ListByPages(ctx context.Context, pages []int) ([]*domain.Word, error)
}

type statRepo interface {
	ListByScopeAndRange(ctx context.Context, scopeID, fromDate, toDate string) ([]domain.LearningDailyStat, error)
}

type scopeResolver interface {
	ByID(id string) (domain.Scope, bool)
}

// Service provides the dashboard read model.
type Service struct {
	words  wordRepo
	stats  statRepo
	scopes scopeResolver
	log    *slog.Logger
}

// NewService creates a new dashboard service.
func NewService(log *slog.Logger, words wordRepo, stats statRepo, scopes scopeResolver) *Service {
	return &Service{
		words:  words,
		stats:  stats,
		scopes: scopes,
		log:    log.With("service", "dashboard"),
	}
}
