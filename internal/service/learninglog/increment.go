package learninglog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// IncrementInput is one study event to record.
type IncrementInput struct {
	ScopeID string
	Date    string // YYYY-MM-DD
	UnitKey string
	Side    domain.Side
	Event   domain.LearningEvent
	Amount  int
}

// Validate checks one increment's fields. A non-positive amount is not
// an error here; IncrementMany drops it silently.
func (in IncrementInput) Validate() error {
	var errs []domain.FieldError
	if in.ScopeID == "" {
		errs = append(errs, domain.FieldError{Field: "scopeId", Message: "required"})
	}
	if !validDate(in.Date) {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if in.UnitKey == "" {
		errs = append(errs, domain.FieldError{Field: "unitKey", Message: "required"})
	}
	if !in.Side.IsValid() {
		errs = append(errs, domain.FieldError{Field: "side", Message: "must be left or right"})
	}
	if !in.Event.IsValid() {
		errs = append(errs, domain.FieldError{Field: "event", Message: "unknown event"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// IncrementMany records a batch of study events. Events sharing the
// same daily key are pre-aggregated into one delta row; events with a
// non-positive amount are dropped. The whole batch is rejected if any
// event fails validation.
func (s *Service) IncrementMany(ctx context.Context, inputs []IncrementInput) error {
	deltas := make(map[string]*domain.LearningDailyStat)
	var order []string

	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		if _, ok := s.scopes.ByID(in.ScopeID); !ok {
			return fmt.Errorf("event %d: scope %s: %w", i, in.ScopeID, domain.ErrNotFound)
		}
		if in.Amount <= 0 {
			continue
		}

		key := domain.BuildDailyKey(in.ScopeID, in.Date, in.UnitKey, in.Side)
		delta, ok := deltas[key]
		if !ok {
			delta = &domain.LearningDailyStat{
				DailyKey: key,
				ScopeID:  in.ScopeID,
				Date:     in.Date,
				UnitKey:  in.UnitKey,
				Side:     in.Side,
			}
			deltas[key] = delta
			order = append(order, key)
		}
		delta.StatCounters = delta.StatCounters.AddEvent(in.Event, in.Amount)
	}

	if len(order) == 0 {
		return nil
	}

	stats := make([]domain.LearningDailyStat, 0, len(order))
	for _, key := range order {
		stats = append(stats, *deltas[key])
	}

	if err := s.stats.IncrementBatch(ctx, stats); err != nil {
		return fmt.Errorf("increment stats: %w", err)
	}

	s.log.InfoContext(ctx, "learning events recorded",
		slog.Int("events", len(inputs)),
		slog.Int("rows", len(stats)),
	)
	return nil
}

// GetRange returns the stat rows of one scope between two dates,
// inclusive, ordered by date, unit key, then side.
func (s *Service) GetRange(ctx context.Context, scopeID, fromDate, toDate string) ([]domain.LearningDailyStat, error) {
	if _, ok := s.scopes.ByID(scopeID); !ok {
		return nil, fmt.Errorf("scope %s: %w", scopeID, domain.ErrNotFound)
	}
	if !validDate(fromDate) || !validDate(toDate) {
		return nil, domain.NewValidationError("date", "must be YYYY-MM-DD")
	}
	if fromDate > toDate {
		return nil, domain.NewValidationError("date", "from must not be after to")
	}

	stats, err := s.stats.ListByScopeAndRange(ctx, scopeID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	return stats, nil
}

// ClearAll wipes the whole learning history.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.stats.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear stats: %w", err)
	}
	s.log.InfoContext(ctx, "learning history cleared")
	return nil
}
