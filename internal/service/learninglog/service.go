// Package learninglog records study events as daily counter increments
// and serves the aggregated history back to dashboards.
package learninglog

import (
	"context"
	"log/slog"
	"time"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

type statRepo interface {
	IncrementBatch(ctx context.Context, stats []domain.LearningDailyStat) error
	ListByScopeAndRange(ctx context.Context, scopeID, fromDate, toDate string) ([]domain.LearningDailyStat, error)
	DeleteAll(ctx context.Context) error
}

type scopeResolver interface {
	ByID(id string) (domain.Scope, bool)
}

// Service provides learning-event recording and history queries.
type Service struct {
	stats  statRepo
	scopes scopeResolver
	log    *slog.Logger
}

// NewService creates a new learning-log service.
func NewService(log *slog.Logger, stats statRepo, scopes scopeResolver) *Service {
	return &Service{
		stats:  stats,
		scopes: scopes,
		log:    log.With("service", "learninglog"),
	}
}

func validDate(date string) bool {
	_, err := time.Parse(domain.DateLayout, date)
	return err == nil
}
