// Package schedule manages per-scope test dates. Scopes sharing a
// display ID form one lesson slot and always carry the same date.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

type scheduleRepo interface {
	UpsertBatch(ctx context.Context, entries []domain.Schedule) error
	DeleteBatch(ctx context.Context, scopeIDs []string) error
	GetByScopeID(ctx context.Context, scopeID string) (*domain.Schedule, error)
	ListAll(ctx context.Context) ([]domain.Schedule, error)
}

type scopeResolver interface {
	All() []domain.Scope
	ByID(id string) (domain.Scope, bool)
}

// Service provides test-date scheduling operations.
type Service struct {
	schedules scheduleRepo
	scopes    scopeResolver
	log       *slog.Logger
}

// NewService creates a new schedule service.
func NewService(log *slog.Logger, schedules scheduleRepo, scopes scopeResolver) *Service {
	return &Service{
		schedules: schedules,
		scopes:    scopes,
		log:       log.With("service", "schedule"),
	}
}

var weekdayKanji = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// FormatDate renders an ISO date in the short Japanese display form,
// e.g. "2026-02-17" becomes "2/17(火)". Invalid input returns "".
func FormatDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d/%d(%s)", int(t.Month()), t.Day(), weekdayKanji[t.Weekday()])
}

// groupScopeIDs expands one scope to every scope sharing its group key,
// so grouped scopes always move together.
func (s *Service) groupScopeIDs(scopeID string) ([]string, error) {
	sc, ok := s.scopes.ByID(scopeID)
	if !ok {
		return nil, fmt.Errorf("scope %s: %w", scopeID, domain.ErrNotFound)
	}

	key := sc.GroupKey()
	var ids []string
	for _, other := range s.scopes.All() {
		if other.GroupKey() == key {
			ids = append(ids, other.ID)
		}
	}
	return ids, nil
}
