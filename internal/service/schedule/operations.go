package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// SaveInput sets one scope's test date.
type SaveInput struct {
	ScopeID string
	Date    string // YYYY-MM-DD
}

// SaveBatch sets test dates. Each input expands to every scope sharing
// the target's group key; the whole batch upserts together.
func (s *Service) SaveBatch(ctx context.Context, inputs []SaveInput) error {
	var entries []domain.Schedule
	for i, in := range inputs {
		sched := domain.Schedule{ScopeID: in.ScopeID, Date: in.Date}
		if err := sched.Validate(); err != nil {
			return fmt.Errorf("schedule %d: %w", i, err)
		}

		ids, err := s.groupScopeIDs(in.ScopeID)
		if err != nil {
			return fmt.Errorf("schedule %d: %w", i, err)
		}
		for _, id := range ids {
			entries = append(entries, domain.Schedule{ScopeID: id, Date: in.Date})
		}
	}

	if err := s.schedules.UpsertBatch(ctx, entries); err != nil {
		return fmt.Errorf("save schedules: %w", err)
	}

	s.log.InfoContext(ctx, "schedules saved", slog.Int("entries", len(entries)))
	return nil
}

// DeleteBatch removes test dates, expanding each scope to its group.
// Deleting an unscheduled scope is a no-op.
func (s *Service) DeleteBatch(ctx context.Context, scopeIDs []string) error {
	var ids []string
	for _, scopeID := range scopeIDs {
		group, err := s.groupScopeIDs(scopeID)
		if err != nil {
			return err
		}
		ids = append(ids, group...)
	}

	if err := s.schedules.DeleteBatch(ctx, ids); err != nil {
		return fmt.Errorf("delete schedules: %w", err)
	}
	return nil
}

// NextTestDate returns the earliest scheduled date on or after today,
// or nil when nothing upcoming exists. ISO dates compare correctly as
// strings.
func (s *Service) NextTestDate(ctx context.Context, today string) (*string, error) {
	if _, err := domainDate(today); err != nil {
		return nil, err
	}

	all, err := s.schedules.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	// ListAll is date-ordered; the first match wins.
	for _, sched := range all {
		if sched.Date >= today {
			d := sched.Date
			return &d, nil
		}
	}
	return nil, nil
}

// ScopeEntry is one scope row in the grouped scope listing.
type ScopeEntry struct {
	Scope domain.Scope
	// Date is the scheduled test date, nil when unscheduled.
	Date *string
	// DateLabel is the display form of Date, e.g. "2/17(火)".
	DateLabel string
}

// ScopeGroup is one lesson slot: the scopes sharing a group key.
type ScopeGroup struct {
	Key    string
	Scopes []ScopeEntry
}

// GroupedScopes returns every scope grouped by its group key, in the
// resolver's natural order, each annotated with its schedule.
func (s *Service) GroupedScopes(ctx context.Context) ([]ScopeGroup, error) {
	all, err := s.schedules.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	dates := make(map[string]string, len(all))
	for _, sched := range all {
		dates[sched.ScopeID] = sched.Date
	}

	var groups []ScopeGroup
	index := make(map[string]int)
	for _, sc := range s.scopes.All() {
		entry := ScopeEntry{Scope: sc}
		if d, ok := dates[sc.ID]; ok {
			date := d
			entry.Date = &date
			entry.DateLabel = FormatDate(date)
		}

		key := sc.GroupKey()
		if i, ok := index[key]; ok {
			groups[i].Scopes = append(groups[i].Scopes, entry)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, ScopeGroup{Key: key, Scopes: []ScopeEntry{entry}})
	}
	return groups, nil
}

func domainDate(date string) (string, error) {
	sched := domain.Schedule{ScopeID: "probe", Date: date}
	if err := sched.Validate(); err != nil {
		return "", domain.NewValidationError("date", "must be YYYY-MM-DD")
	}
	return date, nil
}
